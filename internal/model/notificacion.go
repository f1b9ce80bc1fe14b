package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification estados.
const (
	EnvioPendiente = "PENDIENTE"
	EnvioEnviado   = "ENVIADO"
	EnvioError     = "ERROR"
)

// NotificacionEmpaque records an outbound packaging-area notification.
// Delivery is asynchronous: the row is created PENDIENTE and the email worker
// flips it to ENVIADO / ERROR. A delivery failure never affects phase state.
type NotificacionEmpaque struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MasaID uuid.UUID `gorm:"type:uuid;not null;index"`

	Destinatarios []string `gorm:"serializer:json;not null"`
	Asunto        string   `gorm:"not null"`
	Cuerpo        string   `gorm:"not null"`

	EstadoEnvio  string     `gorm:"type:varchar(20);not null;default:'PENDIENTE';index"`
	FechaEnvio   *time.Time
	ErrorMensaje *string
	RetryCount   int `gorm:"not null;default:0"`

	EnviadoPor *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (NotificacionEmpaque) TableName() string { return "notificaciones_empaque" }
