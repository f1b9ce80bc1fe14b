package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MasaProduccion represents one dough production run tracked through the
// seven production phases.
// Estado: "PLANIFICACION" | "EN_PROCESO" | "COMPLETADA"
// FaseActual always names the most recently unlocked/advanced phase.
type MasaProduccion struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoMasa      string    `gorm:"uniqueIndex;not null"`
	TipoMasa        string    `gorm:"type:varchar(30);not null;index"`
	NombreMasa      string    `gorm:"not null"`
	FechaProduccion time.Time `gorm:"type:date;not null;index"`

	TotalKilosBase       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	TotalKilosConMerma   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PorcentajeMerma      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	FactorAbsorcionUsado decimal.Decimal `gorm:"type:decimal(6,3);not null"`

	Estado     string `gorm:"type:varchar(20);not null;default:'PLANIFICACION'"`
	FaseActual string `gorm:"type:varchar(20);not null;default:'PLANIFICACION'"`

	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Progreso     []ProgresoFase    `gorm:"foreignKey:MasaID"`
	Productos    []ProductoMasa    `gorm:"foreignKey:MasaID"`
	Ingredientes []IngredienteMasa `gorm:"foreignKey:MasaID"`
}

func (MasaProduccion) TableName() string { return "masas_produccion" }

// Masa estados globales.
const (
	MasaPlanificacion = "PLANIFICACION"
	MasaEnProceso     = "EN_PROCESO"
	MasaCompletada    = "COMPLETADA"
)

// OrdenMasaRelacion links a masa with the SAP production orders that were
// grouped into it during synchronization.
type OrdenMasaRelacion struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MasaID            uuid.UUID `gorm:"type:uuid;not null;index"`
	OrdenSAPDocEntry  int       `gorm:"not null"`
	OrdenSAPDocNum    int       `gorm:"not null"`
	ItemCode          string    `gorm:"not null"`
	CantidadPlaneada  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt         time.Time
}

func (OrdenMasaRelacion) TableName() string { return "orden_masa_relacion" }
