package model

import (
	"time"

	"github.com/google/uuid"
)

// Fases de producción, en el orden físico del proceso.
const (
	FasePlanificacion = "PLANIFICACION"
	FasePesaje        = "PESAJE"
	FaseAmasado       = "AMASADO"
	FaseDivision      = "DIVISION"
	FaseFormado       = "FORMADO"
	FaseFermentacion  = "FERMENTACION"
	FaseHorneado      = "HORNEADO"
)

// Estados de una fase.
const (
	EstadoBloqueada        = "BLOQUEADA"
	EstadoEnProgreso       = "EN_PROGRESO"
	EstadoCompletada       = "COMPLETADA"
	EstadoRequiereAtencion = "REQUIERE_ATENCION"
)

// FasesOrdenadas is the fixed total order of the production flow. Every masa
// gets exactly one ProgresoFase row per entry, and a phase can only complete
// after its predecessor.
var FasesOrdenadas = []string{
	FasePlanificacion,
	FasePesaje,
	FaseAmasado,
	FaseDivision,
	FaseFormado,
	FaseFermentacion,
	FaseHorneado,
}

// OrdenFase returns the 1-based position of a phase in the fixed order,
// or 0 when the phase name is unknown.
func OrdenFase(fase string) int {
	for i, f := range FasesOrdenadas {
		if f == fase {
			return i + 1
		}
	}
	return 0
}

// FaseValida reports whether fase is one of the seven known phases.
func FaseValida(fase string) bool { return OrdenFase(fase) > 0 }

// SiguienteFase returns the successor of fase in the fixed order.
// HORNEADO is terminal and has no successor.
func SiguienteFase(fase string) (string, bool) {
	orden := OrdenFase(fase)
	if orden == 0 || orden == len(FasesOrdenadas) {
		return "", false
	}
	return FasesOrdenadas[orden], true
}

// FaseAnterior returns the predecessor of fase in the fixed order.
func FaseAnterior(fase string) (string, bool) {
	orden := OrdenFase(fase)
	if orden <= 1 {
		return "", false
	}
	return FasesOrdenadas[orden-2], true
}

// ProgresoFase is the per-(masa, fase) status row. Exactly one row exists per
// pair; rows are created at ingestion and only mutated through the phase
// transition service.
type ProgresoFase struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MasaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_masa_fase"`
	Fase   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_masa_fase"`
	Estado string    `gorm:"type:varchar(20);not null;default:'BLOQUEADA'"`

	PorcentajeCompletado int        `gorm:"not null;default:0"`
	FechaInicio          *time.Time
	FechaCompletado      *time.Time
	UsuarioResponsable   *uuid.UUID `gorm:"type:uuid"`

	// DatosFase holds free-form phase telemetry (horno elegido, hora de
	// entrada a cámara, etc.); its shape varies per fase.
	DatosFase     map[string]interface{} `gorm:"serializer:json"`
	Observaciones *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProgresoFase) TableName() string { return "progreso_fases" }
