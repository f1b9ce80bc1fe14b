package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

// SincronizarOrdenesRequest drives POST /v1/sap/sincronizar.
type SincronizarOrdenesRequest struct {
	FechaProduccion string `json:"fecha_produccion" validate:"required,datetime=2006-01-02"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type MasaCreadaDetalle struct {
	MasaID             string          `json:"masa_id"`
	CodigoMasa         string          `json:"codigo_masa"`
	TipoMasa           string          `json:"tipo_masa"`
	Ordenes            int             `json:"ordenes"`
	Productos          int             `json:"productos"`
	Ingredientes       int             `json:"ingredientes"`
	TotalKilosBase     decimal.Decimal `json:"total_kilos_base"`
	TotalKilosConMerma decimal.Decimal `json:"total_kilos_con_merma"`
}

type SincronizarOrdenesResponse struct {
	FechaProduccion  string              `json:"fecha_produccion"`
	OrdenesLeidas    int                 `json:"ordenes_leidas"`
	MasasCreadas     int                 `json:"masas_creadas"`
	OrdenesOmitidas  int                 `json:"ordenes_omitidas"`
	FactorAbsorcion  decimal.Decimal     `json:"factor_absorcion"`
	Detalle          []MasaCreadaDetalle `json:"detalle"`
}
