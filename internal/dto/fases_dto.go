package dto

// ─── Requests ────────────────────────────────────────────────────────────────

// ActualizarProgresoRequest drives the phase transition engine:
// PUT /v1/masas/:masaId/fases/:fase
type ActualizarProgresoRequest struct {
	Accion               string                 `json:"accion"                validate:"required,oneof=iniciar actualizar completar"`
	PorcentajeCompletado *int                   `json:"porcentaje_completado" validate:"omitempty,min=0,max=99"`
	DatosFase            map[string]interface{} `json:"datos_fase"`
	Observaciones        *string                `json:"observaciones"`
	// RequiereAtencion toggles EN_PROGRESO ↔ REQUIERE_ATENCION on accion
	// "actualizar" (operator flags a problem without losing progress).
	RequiereAtencion *bool `json:"requiere_atencion"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type ProgresoFaseResponse struct {
	ID                   string                 `json:"id"`
	Fase                 string                 `json:"fase"`
	Orden                int                    `json:"orden"`
	Estado               string                 `json:"estado"`
	PorcentajeCompletado int                    `json:"porcentaje_completado"`
	FechaInicio          *string                `json:"fecha_inicio"`
	FechaCompletado      *string                `json:"fecha_completado"`
	UsuarioResponsable   *string                `json:"usuario_responsable"`
	DatosFase            map[string]interface{} `json:"datos_fase,omitempty"`
	Observaciones        *string                `json:"observaciones,omitempty"`
}

// ProgresoListResponse is the ordered 7-row progress board of one masa.
type ProgresoListResponse struct {
	MasaID     string                 `json:"masa_id"`
	CodigoMasa string                 `json:"codigo_masa"`
	Estado     string                 `json:"estado"`
	FaseActual string                 `json:"fase_actual"`
	Fases      []ProgresoFaseResponse `json:"fases"`
}
