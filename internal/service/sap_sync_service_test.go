package service

import (
	"context"
	"testing"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/infra"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSAPGateway struct {
	ordenes []infra.OrdenProduccionSAP
}

func (s *stubSAPGateway) ObtenerOrdenesProduccion(_ context.Context, _ string) ([]infra.OrdenProduccionSAP, error) {
	return s.ordenes, nil
}

func ordenSAP(docEntry int, itemCode, tipoMasa string, unidades, gramaje int64, lineas ...infra.LineaOrdenSAP) infra.OrdenProduccionSAP {
	return infra.OrdenProduccionSAP{
		DocEntry:           docEntry,
		DocNum:             docEntry + 1000,
		ItemCode:           itemCode,
		ProductDescription: "Producto " + itemCode,
		PlannedQuantity:    decimal.NewFromInt(unidades),
		PostingDate:        "2025-09-01",
		Status:             "R",
		TipoMasa:           tipoMasa,
		GramajeUnitario:    decimal.NewFromInt(gramaje),
		Presentacion:       "UNIDAD",
		Lineas:             lineas,
	}
}

func nuevoSyncEnv(ordenes []infra.OrdenProduccionSAP, factor decimal.Decimal) (*stubMasaRepo, *stubFaseRepo, *stubProductoRepo, *stubIngredienteRepo, SAPSyncService) {
	masas := newStubMasaRepo()
	fases := newStubFaseRepo()
	productos := newStubProductoRepo()
	ingredientes := newStubIngredienteRepo()
	catalogo := newStubCatalogoRepo().conTipoMasa("BLANCA", false, true).conTipoMasa("INTEGRAL", false, true)
	cfg := &stubConfiguracion{factor: factor}
	gateway := &stubSAPGateway{ordenes: ordenes}

	svc := NewSAPSyncService(gateway, masas, fases, productos, ingredientes, catalogo, cfg)
	return masas, fases, productos, ingredientes, svc
}

func TestSincronizarAgrupaPorTipoMasa(t *testing.T) {
	ordenes := []infra.OrdenProduccionSAP{
		ordenSAP(1, "PT-BAGUETTE", "BLANCA", 120, 250,
			infra.LineaOrdenSAP{ItemCode: "MP-HARINA", ItemName: "Harina 000", PlannedQuantity: decimal.NewFromInt(20000)}),
		ordenSAP(2, "PT-BOLLO", "BLANCA", 300, 100,
			infra.LineaOrdenSAP{ItemCode: "MP-HARINA", ItemName: "Harina 000", PlannedQuantity: decimal.NewFromInt(16000)},
			infra.LineaOrdenSAP{ItemCode: "MP-SAL", ItemName: "Sal", PlannedQuantity: decimal.NewFromInt(700)}),
		ordenSAP(3, "PT-INTEGRAL", "INTEGRAL", 80, 500,
			infra.LineaOrdenSAP{ItemCode: "MP-HARINA-INT", ItemName: "Harina integral", PlannedQuantity: decimal.NewFromInt(30000)}),
	}
	masas, fases, productos, ingredientes, svc := nuevoSyncEnv(ordenes, decimal.NewFromInt(1))

	resp, err := svc.Sincronizar(context.Background(), nil, dto.SincronizarOrdenesRequest{FechaProduccion: "2025-09-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.OrdenesLeidas)
	assert.Equal(t, 2, resp.MasasCreadas)
	assert.Equal(t, 0, resp.OrdenesOmitidas)
	require.Len(t, resp.Detalle, 2)

	// Orden determinista por tipo
	assert.Equal(t, "MASA-20250901-BLANCA", resp.Detalle[0].CodigoMasa)
	assert.Equal(t, "MASA-20250901-INTEGRAL", resp.Detalle[1].CodigoMasa)

	blanca, err := masas.FindByCodigo(context.Background(), "MASA-20250901-BLANCA")
	require.NoError(t, err)
	// 120·250g + 300·100g = 60 kg base; merma 2% → 61.2 kg
	assert.True(t, blanca.TotalKilosBase.Equal(decimal.NewFromInt(60)), blanca.TotalKilosBase.String())
	assert.True(t, blanca.TotalKilosConMerma.Equal(decimal.NewFromFloat(61.2)), blanca.TotalKilosConMerma.String())
	assert.Equal(t, model.MasaPlanificacion, blanca.Estado)
	assert.Equal(t, model.FasePesaje, blanca.FaseActual)

	// La harina de ambas órdenes se acumula en una sola línea
	ings, _ := ingredientes.ListByMasa(context.Background(), blanca.ID)
	require.Len(t, ings, 2)
	assert.Equal(t, "Harina 000", ings[0].IngredienteNombre)
	assert.True(t, ings[0].CantidadGramos.Equal(decimal.NewFromInt(36000)), ings[0].CantidadGramos.String())

	prods, _ := productos.ListByMasa(context.Background(), blanca.ID)
	assert.Len(t, prods, 2)
	assert.Len(t, masas.relaciones, 3)

	// Las siete fases quedan sembradas: PESAJE abierta, el resto bloqueadas
	filas, _ := fases.ListByMasa(context.Background(), blanca.ID)
	require.Len(t, filas, 7)
	for _, f := range filas {
		if f.Fase == model.FasePesaje {
			assert.Equal(t, model.EstadoEnProgreso, f.Estado)
			assert.NotNil(t, f.FechaInicio)
		} else {
			assert.Equal(t, model.EstadoBloqueada, f.Estado)
		}
	}
}

func TestSincronizarEsIdempotente(t *testing.T) {
	ordenes := []infra.OrdenProduccionSAP{
		ordenSAP(1, "PT-BAGUETTE", "BLANCA", 120, 250,
			infra.LineaOrdenSAP{ItemCode: "MP-HARINA", ItemName: "Harina 000", PlannedQuantity: decimal.NewFromInt(20000)}),
	}
	masas, _, _, _, svc := nuevoSyncEnv(ordenes, decimal.NewFromInt(1))
	ctx := context.Background()

	primero, err := svc.Sincronizar(ctx, nil, dto.SincronizarOrdenesRequest{FechaProduccion: "2025-09-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, primero.MasasCreadas)

	segundo, err := svc.Sincronizar(ctx, nil, dto.SincronizarOrdenesRequest{FechaProduccion: "2025-09-01"})
	require.NoError(t, err)
	assert.Equal(t, 0, segundo.MasasCreadas)
	assert.Equal(t, 1, segundo.OrdenesOmitidas)
	assert.Len(t, masas.masas, 1)
}

func TestSincronizarOmiteOrdenesSinTipoMasa(t *testing.T) {
	ordenes := []infra.OrdenProduccionSAP{
		ordenSAP(1, "PT-X", "", 10, 100),
		ordenSAP(2, "PT-BAGUETTE", "BLANCA", 120, 250),
	}
	_, _, _, _, svc := nuevoSyncEnv(ordenes, decimal.NewFromInt(1))

	resp, err := svc.Sincronizar(context.Background(), nil, dto.SincronizarOrdenesRequest{FechaProduccion: "2025-09-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MasasCreadas)
	assert.Equal(t, 1, resp.OrdenesOmitidas)
}

func TestSincronizarEscalaIngredientesPorFactor(t *testing.T) {
	ordenes := []infra.OrdenProduccionSAP{
		ordenSAP(1, "PT-BAGUETTE", "BLANCA", 100, 250,
			infra.LineaOrdenSAP{ItemCode: "MP-HARINA", ItemName: "Harina 000", PlannedQuantity: decimal.NewFromInt(10000)}),
	}
	masas, _, _, ingredientes, svc := nuevoSyncEnv(ordenes, decimal.NewFromFloat(1.05))

	_, err := svc.Sincronizar(context.Background(), nil, dto.SincronizarOrdenesRequest{FechaProduccion: "2025-09-01"})
	require.NoError(t, err)

	masa, err := masas.FindByCodigo(context.Background(), "MASA-20250901-BLANCA")
	require.NoError(t, err)
	assert.True(t, masa.FactorAbsorcionUsado.Equal(decimal.NewFromFloat(1.05)))

	ings, _ := ingredientes.ListByMasa(context.Background(), masa.ID)
	require.Len(t, ings, 1)
	assert.True(t, ings[0].CantidadGramos.Equal(decimal.NewFromInt(10500)), ings[0].CantidadGramos.String())
}

func TestSincronizarFechaInvalida(t *testing.T) {
	_, _, _, _, svc := nuevoSyncEnv(nil, decimal.NewFromInt(1))

	_, err := svc.Sincronizar(context.Background(), nil, dto.SincronizarOrdenesRequest{FechaProduccion: "01/09/2025"})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
}
