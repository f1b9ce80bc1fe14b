package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type IniciarFormadoRequest struct {
	MaquinaFormadoID *string `json:"maquina_formado_id" validate:"omitempty,uuid"`
	MaquinaNombre    string  `json:"maquina_nombre"     validate:"required"`
	Observaciones    *string `json:"observaciones"`
}

type CompletarFormadoRequest struct {
	Observaciones *string `json:"observaciones"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type RegistroFormadoResponse struct {
	ID              string  `json:"id"`
	MaquinaNombre   string  `json:"maquina_nombre"`
	FechaInicio     string  `json:"fecha_inicio"`
	FechaFin        *string `json:"fecha_fin"`
	DuracionMinutos *int    `json:"duracion_minutos"`
	Observaciones   *string `json:"observaciones"`
}

type EspecificacionFormadoResponse struct {
	ProductoCodigo *string          `json:"producto_codigo"`
	TipoMasa       *string          `json:"tipo_masa"`
	LargoCm        *decimal.Decimal `json:"largo_cm"`
	AnchoCm        *decimal.Decimal `json:"ancho_cm"`
	AltoCm         *decimal.Decimal `json:"alto_cm"`
	DiametroCm     *decimal.Decimal `json:"diametro_cm"`
	ToleranciaCm   *decimal.Decimal `json:"tolerancia_cm"`
}

type MaquinaFormadoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Codigo      string          `json:"codigo"`
	Tipo        string          `json:"tipo"`
	CapacidadKg decimal.Decimal `json:"capacidad_kg"`
}

// FormadoInfoResponse is the board the forming station operator sees:
// masa + target specs + available machines + latest run.
type FormadoInfoResponse struct {
	MasaID           string                          `json:"masa_id"`
	CodigoMasa       string                          `json:"codigo_masa"`
	TipoMasa         string                          `json:"tipo_masa"`
	RequiereFormado  bool                            `json:"requiere_formado"`
	EstadoFase       string                          `json:"estado_fase"`
	Productos        []ProductoMasaResponse          `json:"productos"`
	Especificaciones []EspecificacionFormadoResponse `json:"especificaciones"`
	Maquinas         []MaquinaFormadoResponse        `json:"maquinas"`
	UltimoRegistro   *RegistroFormadoResponse        `json:"ultimo_registro"`
}
