package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// ActualizarIngredienteRequest is a partial update of one checklist row:
// PATCH /v1/pesaje/:masaId/ingredientes/:id
// The three flags advance strictly disponible → verificado → pesado; the
// service rejects out-of-order flips.
type ActualizarIngredienteRequest struct {
	Disponible *bool `json:"disponible"`
	Verificado *bool `json:"verificado"`
	Pesado     *bool `json:"pesado"`

	PesoReal         *decimal.Decimal `json:"peso_real"         validate:"omitempty,min=0"`
	Lote             *string          `json:"lote"`
	FechaVencimiento *string          `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	Observaciones    *string          `json:"observaciones"`
}

// EnviarCorreoEmpaqueRequest optionally overrides the configured recipients.
type EnviarCorreoEmpaqueRequest struct {
	Destinatarios []string `json:"destinatarios" validate:"omitempty,min=1,dive,email"`
	Mensaje       *string  `json:"mensaje"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type IngredienteResponse struct {
	ID                 string          `json:"id"`
	IngredienteNombre  string          `json:"ingrediente_nombre"`
	CodigoSAP          *string         `json:"codigo_sap"`
	CantidadGramos     decimal.Decimal `json:"cantidad_gramos"`
	OrdenVisualizacion int             `json:"orden_visualizacion"`

	Disponible bool `json:"disponible"`
	Verificado bool `json:"verificado"`
	Pesado     bool `json:"pesado"`

	PesoReal         *decimal.Decimal `json:"peso_real"`
	DiferenciaGramos *decimal.Decimal `json:"diferencia_gramos"`
	Lote             *string          `json:"lote"`
	FechaVencimiento *string          `json:"fecha_vencimiento"`
	Observaciones    *string          `json:"observaciones"`
	TimestampPeso    *string          `json:"timestamp_peso"`
}

// ChecklistResponse is the full PESAJE board for one masa.
type ChecklistResponse struct {
	MasaID       string                `json:"masa_id"`
	CodigoMasa   string                `json:"codigo_masa"`
	NombreMasa   string                `json:"nombre_masa"`
	Ingredientes []IngredienteResponse `json:"ingredientes"`

	Total       int      `json:"total"`
	Completados int      `json:"completados"`
	Completo    bool     `json:"completo"`
	Faltantes   []string `json:"faltantes"`
	// Progreso is the weighted flag count: round(100·(d+v+p)/(3·total)).
	Progreso int `json:"progreso"`
}

type ConfirmarPesajeResponse struct {
	MasaID          string `json:"masa_id"`
	FaseCompletada  string `json:"fase_completada"`
	FaseDesbloquada string `json:"fase_desbloqueada"`
}

type EnviarCorreoEmpaqueResponse struct {
	NotificacionID string   `json:"notificacion_id"`
	Destinatarios  []string `json:"destinatarios"`
	EstadoEnvio    string   `json:"estado_envio"`
}
