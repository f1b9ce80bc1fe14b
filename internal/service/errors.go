package service

import (
	"fmt"
	"strings"
)

// Typed domain errors. Handlers map them to HTTP statuses with errors.As;
// anything else becomes a 500.

// NotFoundError: the referenced masa, fase, ingrediente, horno or programa
// does not exist.
type NotFoundError struct {
	Recurso string
}

func (e *NotFoundError) Error() string { return e.Recurso + " no encontrado" }

// PreconditionError: a phase transition was attempted while its required
// predecessor is not COMPLETADA, or a sub-step was attempted out of order.
type PreconditionError struct {
	Detalle string
}

func (e *PreconditionError) Error() string { return e.Detalle }

// ChecklistIncompletoError: confirmar pesaje was called with ingredients
// still unchecked. Faltantes lists the offending ingredient names.
type ChecklistIncompletoError struct {
	Total       int
	Completados int
	Faltantes   []string
}

func (e *ChecklistIncompletoError) Error() string {
	return fmt.Sprintf("pesaje incompleto: faltan %d de %d ingredientes (%s)",
		e.Total-e.Completados, e.Total, strings.Join(e.Faltantes, ", "))
}

// ConfiguracionInvalidaError: the request contradicts the equipment or
// dough-type catalog (e.g. damper on an oven without one).
type ConfiguracionInvalidaError struct {
	Detalle string
}

func (e *ConfiguracionInvalidaError) Error() string { return e.Detalle }

// ConflictoError: a conditional state update affected zero rows — the phase
// was already completed (or not yet started) by a concurrent request.
type ConflictoError struct {
	Detalle string
}

func (e *ConflictoError) Error() string { return e.Detalle }
