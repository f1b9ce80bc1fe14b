package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type EntradaCamaraRequest struct {
	TemperaturaCamara *decimal.Decimal `json:"temperatura_camara" validate:"omitempty,min=-10,max=60"`
	HumedadCamara     *decimal.Decimal `json:"humedad_camara"     validate:"omitempty,min=0,max=100"`
	Observaciones     *string          `json:"observaciones"`
}

type SalidaCamaraRequest struct {
	Observaciones *string `json:"observaciones"`
}

type EntradaFrioRequest struct {
	TemperaturaFrio *decimal.Decimal `json:"temperatura_frio" validate:"omitempty,min=-30,max=20"`
	Observaciones   *string          `json:"observaciones"`
}

type SalidaFrioRequest struct {
	Observaciones *string `json:"observaciones"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type RegistroFermentacionResponse struct {
	ID                        string           `json:"id"`
	HoraEntradaCamara         string           `json:"hora_entrada_camara"`
	HoraSalidaCamaraSugerida  string           `json:"hora_salida_camara_sugerida"`
	HoraSalidaCamaraReal      *string          `json:"hora_salida_camara_real"`
	TiempoFermentacionMinutos int              `json:"tiempo_fermentacion_minutos"`
	TemperaturaCamara         *decimal.Decimal `json:"temperatura_camara"`
	HumedadCamara             *decimal.Decimal `json:"humedad_camara"`
	RequiereCamaraFrio        bool             `json:"requiere_camara_frio"`
	HoraEntradaFrio           *string          `json:"hora_entrada_frio"`
	HoraSalidaFrio            *string          `json:"hora_salida_frio"`
	TiempoFrioMinutos         *int             `json:"tiempo_frio_minutos"`
	TemperaturaFrio           *decimal.Decimal `json:"temperatura_frio"`
	Observaciones             *string          `json:"observaciones"`
}

// FermentacionInfoResponse shows the fermentation station board: the dough
// type's configuration plus the latest run record and phase state.
type FermentacionInfoResponse struct {
	MasaID                            string                        `json:"masa_id"`
	CodigoMasa                        string                        `json:"codigo_masa"`
	TipoMasa                          string                        `json:"tipo_masa"`
	RequiereCamaraFrio                bool                          `json:"requiere_camara_frio"`
	TiempoFermentacionEstandarMinutos int                           `json:"tiempo_fermentacion_estandar_minutos"`
	EstadoFase                        string                        `json:"estado_fase"`
	UltimoRegistro                    *RegistroFermentacionResponse `json:"ultimo_registro"`
}
