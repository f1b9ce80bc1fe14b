package model

import (
	"time"

	"github.com/google/uuid"
)

// Claves conocidas de configuracion_sistema.
const (
	ClaveFactorAbsorcion = "factor_absorcion_harina"
	ClaveCorreosEmpaque  = "correos_empaque"
)

// ConfiguracionSistema is a key/value row for global runtime settings
// (factor de absorción de harina, correos del área de empaque).
type ConfiguracionSistema struct {
	Clave     string `gorm:"primaryKey"`
	Valor     string `gorm:"not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time
}

func (ConfiguracionSistema) TableName() string { return "configuracion_sistema" }
