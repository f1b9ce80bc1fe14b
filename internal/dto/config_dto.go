package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type ActualizarFactorAbsorcionRequest struct {
	Valor decimal.Decimal `json:"valor" validate:"required"`
}

type ActualizarCorreosEmpaqueRequest struct {
	Correos []string `json:"correos" validate:"required,min=1,dive,email"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type FactorAbsorcionResponse struct {
	Valor     decimal.Decimal `json:"valor"`
	UpdatedAt string          `json:"updated_at"`
}

type CorreosEmpaqueResponse struct {
	Correos   []string `json:"correos"`
	UpdatedAt string   `json:"updated_at"`
}
