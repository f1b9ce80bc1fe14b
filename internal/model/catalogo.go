package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoMasaCatalogo configures per-dough-type process parameters. The
// fermentation sub-flow branches on RequiereCamaraFrio, and formado is only
// applicable when RequiereFormado is set.
type TipoMasaCatalogo struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoMasa string    `gorm:"uniqueIndex;not null"`
	Nombre   string    `gorm:"not null"`

	RequiereCamaraFrio                bool `gorm:"not null;default:false"`
	TiempoFermentacionEstandarMinutos int  `gorm:"not null;default:40"`
	RequiereFormado                   bool `gorm:"not null;default:true"`
	RequiereReposoPreDivision         bool `gorm:"not null;default:false"`
	TiempoReposoDivisionMinutos       int  `gorm:"not null;default:0"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TipoMasaCatalogo) TableName() string { return "catalogo_tipos_masa" }

// TipoHorno is one physical oven. Tipo: "ROTATIVO" | "PISO".
type TipoHorno struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"not null"`
	Codigo string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Tipo   string    `gorm:"type:varchar(20);not null"`

	CapacidadBandejas      int  `gorm:"not null;default:0"`
	TieneDamper            bool `gorm:"not null;default:false"`
	TieneControlAutomatico bool `gorm:"not null;default:false"`

	Activo        bool `gorm:"not null;default:true"`
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TipoHorno) TableName() string { return "tipos_horno" }

// ProgramaHorneo is a preconfigured baking program (temperature curve plus
// optional damper window).
type ProgramaHorneo struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroPrograma int       `gorm:"uniqueIndex;not null"`
	Nombre         string    `gorm:"not null"`
	Descripcion    *string

	TemperaturaInicial     decimal.Decimal `gorm:"type:decimal(5,1);not null"`
	TemperaturaMedia       decimal.Decimal `gorm:"type:decimal(5,1);not null"`
	TemperaturaFinal       decimal.Decimal `gorm:"type:decimal(5,1);not null"`
	TiempoTemperaturaMedia int             `gorm:"not null;default:0"`
	TiempoTotalMinutos     int             `gorm:"not null"`

	UsaDamper          bool `gorm:"not null;default:false"`
	TiempoInicioDamper int  `gorm:"not null;default:0"`
	TiempoFinDamper    int  `gorm:"not null;default:0"`

	// TipoMasaSugerido filters program suggestions per dough type; nil means
	// the program applies to any masa.
	TipoMasaSugerido *string `gorm:"type:varchar(30);index"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProgramaHorneo) TableName() string { return "programas_horneo" }

// MaquinaFormado is one dough-forming machine.
type MaquinaFormado struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string          `gorm:"not null"`
	Codigo      string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	Tipo        string          `gorm:"type:varchar(30)"`
	CapacidadKg decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`
	Activa      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MaquinaFormado) TableName() string { return "maquinas_formado" }

// EspecificacionFormado holds target dimensions per product (or per dough
// type when ProductoCodigo is nil).
type EspecificacionFormado struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoCodigo *string   `gorm:"type:varchar(30);index"`
	TipoMasa       *string   `gorm:"type:varchar(30);index"`

	LargoCm      *decimal.Decimal `gorm:"type:decimal(6,2)"`
	AnchoCm      *decimal.Decimal `gorm:"type:decimal(6,2)"`
	AltoCm       *decimal.Decimal `gorm:"type:decimal(6,2)"`
	DiametroCm   *decimal.Decimal `gorm:"type:decimal(6,2)"`
	ToleranciaCm *decimal.Decimal `gorm:"type:decimal(6,2)"`

	CreatedAt time.Time
}

func (EspecificacionFormado) TableName() string { return "especificaciones_formado" }
