package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Phase-execution records. One row is appended per attempt; readers always
// take the most recent row by CreatedAt.

// RegistroFormado captures one run of the forming station.
type RegistroFormado struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MasaID uuid.UUID `gorm:"type:uuid;not null;index"`

	MaquinaFormadoID *uuid.UUID `gorm:"type:uuid"`
	MaquinaNombre    string     `gorm:"not null"`

	FechaInicio     time.Time `gorm:"not null"`
	FechaFin        *time.Time
	DuracionMinutos *int

	UsuarioID     *uuid.UUID `gorm:"type:uuid"`
	UsuarioNombre string
	Observaciones *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RegistroFormado) TableName() string { return "registros_formado" }

// RegistroFermentacion captures one fermentation run, including the optional
// cold-chamber leg.
type RegistroFermentacion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MasaID uuid.UUID `gorm:"type:uuid;not null;index"`

	HoraEntradaCamara        time.Time `gorm:"not null"`
	HoraSalidaCamaraSugerida time.Time `gorm:"not null"`
	HoraSalidaCamaraReal     *time.Time

	TiempoFermentacionMinutos int              `gorm:"not null"`
	TemperaturaCamara         *decimal.Decimal `gorm:"type:decimal(5,1)"`
	HumedadCamara             *decimal.Decimal `gorm:"type:decimal(5,1)"`

	// Cold-chamber leg — only populated for dough types that require it.
	RequiereCamaraFrio bool `gorm:"not null;default:false"`
	HoraEntradaFrio    *time.Time
	HoraSalidaFrio     *time.Time
	TiempoFrioMinutos  *int
	TemperaturaFrio    *decimal.Decimal `gorm:"type:decimal(5,1)"`

	UsuarioID     *uuid.UUID `gorm:"type:uuid"`
	UsuarioNombre string
	Observaciones *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RegistroFermentacion) TableName() string { return "registros_fermentacion" }

// RegistroHorneado captures one oven run: chosen oven/program, temperature
// telemetry, damper window and the final quality assessment.
type RegistroHorneado struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MasaID uuid.UUID `gorm:"type:uuid;not null;index"`

	TipoHornoID      uuid.UUID  `gorm:"type:uuid;not null"`
	HornoNombre      string     `gorm:"not null"`
	ProgramaHorneoID *uuid.UUID `gorm:"type:uuid"`
	NumeroPrograma   *int

	HoraEntrada           time.Time `gorm:"not null"`
	HoraCambioTemperatura *time.Time
	HoraSalida            *time.Time
	TiempoTotalMinutos    *int

	TemperaturaInicialReal *decimal.Decimal `gorm:"type:decimal(5,1)"`
	TemperaturaMediaReal   *decimal.Decimal `gorm:"type:decimal(5,1)"`
	TemperaturaFinalReal   *decimal.Decimal `gorm:"type:decimal(5,1)"`

	UsoDamperReal          bool `gorm:"not null;default:false"`
	TiempoInicioDamperReal *int
	TiempoFinDamperReal    *int

	// Calidad: "EXCELENTE" | "BUENA" | "REGULAR" | "DEFICIENTE"
	CalidadColor   *string `gorm:"type:varchar(20)"`
	CalidadCoccion *string `gorm:"type:varchar(20)"`

	UsuarioID     *uuid.UUID `gorm:"type:uuid"`
	UsuarioNombre string
	Observaciones *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RegistroHorneado) TableName() string { return "registros_horneado" }
