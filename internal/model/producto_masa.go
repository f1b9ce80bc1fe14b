package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoMasa is one finished product to be produced from a masa, with the
// SAP-requested units and the units actually scheduled by planning.
type ProductoMasa struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MasaID uuid.UUID `gorm:"type:uuid;not null;index"`

	ProductoCodigo  string          `gorm:"type:varchar(30);not null"`
	ProductoNombre  string          `gorm:"not null"`
	Presentacion    string          `gorm:"type:varchar(50)"`
	GramajeUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	UnidadesPedidas     int             `gorm:"not null;default:0"`
	UnidadesProgramadas int             `gorm:"not null;default:0"`
	KilosProgramados    decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	UnidadesProducidas  int             `gorm:"not null;default:0"`
	// CantidadDivisiones is the unit count handed to the formado station.
	CantidadDivisiones int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductoMasa) TableName() string { return "productos_por_masa" }
