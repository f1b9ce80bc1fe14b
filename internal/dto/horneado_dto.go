package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type IniciarHorneadoRequest struct {
	TipoHornoID      string  `json:"tipo_horno_id"      validate:"required,uuid"`
	ProgramaHorneoID *string `json:"programa_horneo_id" validate:"omitempty,uuid"`

	UsoDamper          bool `json:"uso_damper"`
	TiempoInicioDamper *int `json:"tiempo_inicio_damper" validate:"omitempty,min=0"`
	TiempoFinDamper    *int `json:"tiempo_fin_damper"    validate:"omitempty,min=0"`

	TemperaturaInicial *decimal.Decimal `json:"temperatura_inicial" validate:"omitempty,min=0,max=500"`
	Observaciones      *string          `json:"observaciones"`
}

type ActualizarTemperaturasRequest struct {
	TemperaturaInicial *decimal.Decimal `json:"temperatura_inicial" validate:"omitempty,min=0,max=500"`
	TemperaturaMedia   *decimal.Decimal `json:"temperatura_media"   validate:"omitempty,min=0,max=500"`
	TemperaturaFinal   *decimal.Decimal `json:"temperatura_final"   validate:"omitempty,min=0,max=500"`
}

type ActualizarDamperRequest struct {
	UsoDamper          bool `json:"uso_damper"`
	TiempoInicioDamper *int `json:"tiempo_inicio_damper" validate:"omitempty,min=0"`
	TiempoFinDamper    *int `json:"tiempo_fin_damper"    validate:"omitempty,min=0"`
}

type CompletarHorneadoRequest struct {
	CalidadColor   *string `json:"calidad_color"   validate:"omitempty,oneof=EXCELENTE BUENA REGULAR DEFICIENTE"`
	CalidadCoccion *string `json:"calidad_coccion" validate:"omitempty,oneof=EXCELENTE BUENA REGULAR DEFICIENTE"`
	Observaciones  *string `json:"observaciones"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type RegistroHorneadoResponse struct {
	ID             string  `json:"id"`
	HornoNombre    string  `json:"horno_nombre"`
	NumeroPrograma *int    `json:"numero_programa"`
	HoraEntrada    string  `json:"hora_entrada"`
	HoraSalida     *string `json:"hora_salida"`

	TemperaturaInicialReal *decimal.Decimal `json:"temperatura_inicial_real"`
	TemperaturaMediaReal   *decimal.Decimal `json:"temperatura_media_real"`
	TemperaturaFinalReal   *decimal.Decimal `json:"temperatura_final_real"`

	UsoDamperReal          bool `json:"uso_damper_real"`
	TiempoInicioDamperReal *int `json:"tiempo_inicio_damper_real"`
	TiempoFinDamperReal    *int `json:"tiempo_fin_damper_real"`

	TiempoTotalMinutos *int    `json:"tiempo_total_minutos"`
	CalidadColor       *string `json:"calidad_color"`
	CalidadCoccion     *string `json:"calidad_coccion"`
	Observaciones      *string `json:"observaciones"`
}

type TipoHornoResponse struct {
	ID                     string `json:"id"`
	Nombre                 string `json:"nombre"`
	Codigo                 string `json:"codigo"`
	Tipo                   string `json:"tipo"`
	CapacidadBandejas      int    `json:"capacidad_bandejas"`
	TieneDamper            bool   `json:"tiene_damper"`
	TieneControlAutomatico bool   `json:"tiene_control_automatico"`
}

type ProgramaHorneoResponse struct {
	ID                     string          `json:"id"`
	NumeroPrograma         int             `json:"numero_programa"`
	Nombre                 string          `json:"nombre"`
	Descripcion            *string         `json:"descripcion"`
	TemperaturaInicial     decimal.Decimal `json:"temperatura_inicial"`
	TemperaturaMedia       decimal.Decimal `json:"temperatura_media"`
	TemperaturaFinal       decimal.Decimal `json:"temperatura_final"`
	TiempoTemperaturaMedia int             `json:"tiempo_temperatura_media"`
	TiempoTotalMinutos     int             `json:"tiempo_total_minutos"`
	UsaDamper              bool            `json:"usa_damper"`
	TiempoInicioDamper     int             `json:"tiempo_inicio_damper"`
	TiempoFinDamper        int             `json:"tiempo_fin_damper"`
	TipoMasaSugerido       *string         `json:"tipo_masa_sugerido"`
}

// HorneadoInfoResponse is the oven-station board: phase state, available
// ovens, suggested programs for the masa's dough type, latest run.
type HorneadoInfoResponse struct {
	MasaID             string                    `json:"masa_id"`
	CodigoMasa         string                    `json:"codigo_masa"`
	TipoMasa           string                    `json:"tipo_masa"`
	EstadoFase         string                    `json:"estado_fase"`
	Hornos             []TipoHornoResponse       `json:"hornos"`
	ProgramasSugeridos []ProgramaHorneoResponse  `json:"programas_sugeridos"`
	UltimoRegistro     *RegistroHorneadoResponse `json:"ultimo_registro"`
}
