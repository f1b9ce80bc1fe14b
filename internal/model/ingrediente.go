package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredienteMasa is one required ingredient of a masa plus its weigh-in
// checklist state. The three flags advance strictly in order:
// disponible → verificado → pesado (enforced in the pesaje service).
type IngredienteMasa struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MasaID uuid.UUID `gorm:"type:uuid;not null;index"`

	IngredienteNombre  string          `gorm:"not null"`
	CodigoSAP          *string         `gorm:"type:varchar(30)"`
	CantidadGramos     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OrdenVisualizacion int             `gorm:"not null;default:0"`

	// Checklist de pesaje
	Disponible bool `gorm:"not null;default:false"`
	Verificado bool `gorm:"not null;default:false"`
	Pesado     bool `gorm:"not null;default:false"`

	PesoReal         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DiferenciaGramos *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Lote             *string
	FechaVencimiento *time.Time `gorm:"type:date"`
	Observaciones    *string

	UsuarioPeso   *uuid.UUID `gorm:"type:uuid"`
	TimestampPeso *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (IngredienteMasa) TableName() string { return "ingredientes_masa" }

// ChecklistCompleto reports whether this ingredient cleared all three flags.
func (i *IngredienteMasa) ChecklistCompleto() bool {
	return i.Disponible && i.Verificado && i.Pesado
}
