package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// MasaFilter is bound from the query string of GET /v1/masas.
type MasaFilter struct {
	Fecha  string `form:"fecha"`                 // YYYY-MM-DD; empty = today
	Estado string `form:"estado,default=all"`    // PLANIFICACION | EN_PROCESO | COMPLETADA | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MasaListItem struct {
	ID                 string          `json:"id"`
	CodigoMasa         string          `json:"codigo_masa"`
	TipoMasa           string          `json:"tipo_masa"`
	NombreMasa         string          `json:"nombre_masa"`
	FechaProduccion    string          `json:"fecha_produccion"`
	TotalKilosBase     decimal.Decimal `json:"total_kilos_base"`
	TotalKilosConMerma decimal.Decimal `json:"total_kilos_con_merma"`
	Estado             string          `json:"estado"`
	FaseActual         string          `json:"fase_actual"`
	Productos          int             `json:"productos"`
}

type MasaListResponse struct {
	Data  []MasaListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Detail ──────────────────────────────────────────────────────────────────

type ProductoMasaResponse struct {
	ID                  string          `json:"id"`
	ProductoCodigo      string          `json:"producto_codigo"`
	ProductoNombre      string          `json:"producto_nombre"`
	Presentacion        string          `json:"presentacion"`
	GramajeUnitario     decimal.Decimal `json:"gramaje_unitario"`
	UnidadesPedidas     int             `json:"unidades_pedidas"`
	UnidadesProgramadas int             `json:"unidades_programadas"`
	KilosProgramados    decimal.Decimal `json:"kilos_programados"`
	UnidadesProducidas  int             `json:"unidades_producidas"`
	CantidadDivisiones  int             `json:"cantidad_divisiones"`
}

type MasaDetailResponse struct {
	ID                   string                 `json:"id"`
	CodigoMasa           string                 `json:"codigo_masa"`
	TipoMasa             string                 `json:"tipo_masa"`
	NombreMasa           string                 `json:"nombre_masa"`
	FechaProduccion      string                 `json:"fecha_produccion"`
	TotalKilosBase       decimal.Decimal        `json:"total_kilos_base"`
	TotalKilosConMerma   decimal.Decimal        `json:"total_kilos_con_merma"`
	PorcentajeMerma      decimal.Decimal        `json:"porcentaje_merma"`
	FactorAbsorcionUsado decimal.Decimal        `json:"factor_absorcion_usado"`
	Estado               string                 `json:"estado"`
	FaseActual           string                 `json:"fase_actual"`
	Productos            []ProductoMasaResponse `json:"productos"`
	Ingredientes         []IngredienteResponse  `json:"ingredientes"`
	Fases                []ProgresoFaseResponse `json:"fases"`
}

// ─── Requests ────────────────────────────────────────────────────────────────

// ActualizarProductoMasaRequest reprograms the units of one product of a masa.
// kilos_programados is recomputed server-side from gramaje_unitario.
type ActualizarProductoMasaRequest struct {
	UnidadesProgramadas int `json:"unidades_programadas" validate:"min=0"`
}
