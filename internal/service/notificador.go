package service

import (
	"context"

	"github.com/google/uuid"
)

// Notificador dispatches packaging-area notifications. Delivery is decoupled
// from the phase state machine: a dispatch failure is logged by the caller
// and never rolls back a phase transition.
//
// Production wiring uses the redis-backed worker dispatcher; tests use
// NotificadorNulo.
type Notificador interface {
	NotificarEmpaque(ctx context.Context, notificacionID uuid.UUID, destinatarios []string, asunto, cuerpo string) error
}

// NotificadorNulo is the no-op double used in tests and when no queue is
// configured.
type NotificadorNulo struct{}

func (NotificadorNulo) NotificarEmpaque(context.Context, uuid.UUID, []string, string, string) error {
	return nil
}
