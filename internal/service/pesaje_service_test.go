package service

import (
	"context"
	"testing"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoPesajeEnv(t *testing.T) (*stubMasaRepo, *stubFaseRepo, *stubIngredienteRepo, *stubNotificacionRepo, *stubNotificador, PesajeService, *model.MasaProduccion) {
	t.Helper()
	masas := newStubMasaRepo()
	fases := newStubFaseRepo()
	ingredientes := newStubIngredienteRepo()
	productos := newStubProductoRepo()
	notificaciones := newStubNotificacionRepo()
	notificador := &stubNotificador{}
	motor := NewFasesService(masas, fases)
	cfg := &stubConfiguracion{correos: []string{"empaque@artesa.com"}}

	masa := seedMasaConFases(masas, fases, "BLANCA", map[string]string{
		model.FasePlanificacion: model.EstadoCompletada,
	})
	svc := NewPesajeService(masas, ingredientes, fases, productos, notificaciones, motor, cfg, notificador)
	return masas, fases, ingredientes, notificaciones, notificador, svc, masa
}

func marcarCompleto(ing *model.IngredienteMasa) {
	ing.Disponible = true
	ing.Verificado = true
	ing.Pesado = true
}

func TestActualizarIngredienteOrdenDeFlags(t *testing.T) {
	_, _, ingredientes, _, _, svc, masa := nuevoPesajeEnv(t)
	ing := agregarIngrediente(ingredientes, masa.ID, "Harina 000", 36000, 0)

	v := true
	_, err := svc.ActualizarIngrediente(context.Background(), masa.ID, ing.ID, nil,
		dto.ActualizarIngredienteRequest{Verificado: &v})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre, "verificar sin disponible debe rechazarse")

	_, err = svc.ActualizarIngrediente(context.Background(), masa.ID, ing.ID, nil,
		dto.ActualizarIngredienteRequest{Pesado: &v})
	require.ErrorAs(t, err, &pre, "pesar sin verificar debe rechazarse")

	d := true
	resp, err := svc.ActualizarIngrediente(context.Background(), masa.ID, ing.ID, nil,
		dto.ActualizarIngredienteRequest{Disponible: &d, Verificado: &v})
	require.NoError(t, err)
	assert.True(t, resp.Disponible)
	assert.True(t, resp.Verificado)
	assert.False(t, resp.Pesado)
}

func TestActualizarIngredienteNoPermiteDesmarcarConPosteriores(t *testing.T) {
	_, _, ingredientes, _, _, svc, masa := nuevoPesajeEnv(t)
	ing := agregarIngrediente(ingredientes, masa.ID, "Harina 000", 36000, 0)
	ing.Disponible = true
	ing.Verificado = true

	f := false
	_, err := svc.ActualizarIngrediente(context.Background(), masa.ID, ing.ID, nil,
		dto.ActualizarIngredienteRequest{Disponible: &f})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
}

func TestActualizarIngredientePesoRealYDiferencia(t *testing.T) {
	_, _, ingredientes, _, _, svc, masa := nuevoPesajeEnv(t)
	ing := agregarIngrediente(ingredientes, masa.ID, "Sal", 720, 0)
	ing.Disponible = true
	ing.Verificado = true

	p := true
	peso := decimal.NewFromInt(715)
	resp, err := svc.ActualizarIngrediente(context.Background(), masa.ID, ing.ID, nil,
		dto.ActualizarIngredienteRequest{Pesado: &p, PesoReal: &peso})
	require.NoError(t, err)
	require.NotNil(t, resp.DiferenciaGramos)
	assert.True(t, resp.DiferenciaGramos.Equal(decimal.NewFromInt(-5)),
		"diferencia = peso_real - cantidad: %s", resp.DiferenciaGramos)
	assert.NotNil(t, resp.TimestampPeso)
}

func TestActualizarIngredientePesadoSinPeso(t *testing.T) {
	_, _, ingredientes, _, _, svc, masa := nuevoPesajeEnv(t)
	ing := agregarIngrediente(ingredientes, masa.ID, "Levadura", 360, 0)
	ing.Disponible = true
	ing.Verificado = true

	p := true
	_, err := svc.ActualizarIngrediente(context.Background(), masa.ID, ing.ID, nil,
		dto.ActualizarIngredienteRequest{Pesado: &p})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
}

func TestChecklistProgresoPonderado(t *testing.T) {
	_, _, ingredientes, _, _, svc, masa := nuevoPesajeEnv(t)
	// 5 ingredientes, 11 de 15 flags: round(100·11/15) = 73
	for i := 0; i < 3; i++ {
		marcarCompleto(agregarIngrediente(ingredientes, masa.ID, "Completo", 100, i))
	}
	casi := agregarIngrediente(ingredientes, masa.ID, "Casi", 100, 3)
	casi.Disponible = true
	casi.Verificado = true
	agregarIngrediente(ingredientes, masa.ID, "Pendiente", 100, 4)

	resp, err := svc.ObtenerChecklist(context.Background(), masa.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 3, resp.Completados)
	assert.False(t, resp.Completo)
	assert.Equal(t, 73, resp.Progreso)
	assert.ElementsMatch(t, []string{"Casi", "Pendiente"}, resp.Faltantes)
}

func TestConfirmarPesajeIncompleto(t *testing.T) {
	_, _, ingredientes, _, _, svc, masa := nuevoPesajeEnv(t)
	marcarCompleto(agregarIngrediente(ingredientes, masa.ID, "Harina 000", 36000, 0))
	agregarIngrediente(ingredientes, masa.ID, "Agua", 21600, 1)

	_, err := svc.ConfirmarPesaje(context.Background(), masa.ID, nil)
	var incompleto *ChecklistIncompletoError
	require.ErrorAs(t, err, &incompleto)
	assert.Equal(t, 2, incompleto.Total)
	assert.Equal(t, 1, incompleto.Completados)
	assert.Equal(t, []string{"Agua"}, incompleto.Faltantes)
}

func TestConfirmarPesajeSinIngredientes(t *testing.T) {
	_, _, _, _, _, svc, masa := nuevoPesajeEnv(t)

	_, err := svc.ConfirmarPesaje(context.Background(), masa.ID, nil)
	var incompleto *ChecklistIncompletoError
	require.ErrorAs(t, err, &incompleto)
}

func TestConfirmarPesajeDesbloqueaAmasado(t *testing.T) {
	_, fases, ingredientes, _, _, svc, masa := nuevoPesajeEnv(t)
	marcarCompleto(agregarIngrediente(ingredientes, masa.ID, "Harina 000", 36000, 0))
	marcarCompleto(agregarIngrediente(ingredientes, masa.ID, "Agua", 21600, 1))

	resp, err := svc.ConfirmarPesaje(context.Background(), masa.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.FasePesaje, resp.FaseCompletada)
	assert.Equal(t, model.FaseAmasado, resp.FaseDesbloquada)

	pesaje, _ := fases.FindByMasaYFase(context.Background(), masa.ID, model.FasePesaje)
	assert.Equal(t, model.EstadoCompletada, pesaje.Estado)
	amasado, _ := fases.FindByMasaYFase(context.Background(), masa.ID, model.FaseAmasado)
	assert.Equal(t, model.EstadoEnProgreso, amasado.Estado)
	assert.Equal(t, model.FaseAmasado, masa.FaseActual)
}

func TestEnviarCorreoRequierePesajeCompletado(t *testing.T) {
	_, _, _, _, _, svc, masa := nuevoPesajeEnv(t)

	_, err := svc.EnviarCorreoEmpaque(context.Background(), masa.ID, nil, dto.EnviarCorreoEmpaqueRequest{})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
}

func TestEnviarCorreoEncolaNotificacion(t *testing.T) {
	_, _, ingredientes, notificaciones, notificador, svc, masa := nuevoPesajeEnv(t)
	marcarCompleto(agregarIngrediente(ingredientes, masa.ID, "Harina 000", 36000, 0))
	_, err := svc.ConfirmarPesaje(context.Background(), masa.ID, nil)
	require.NoError(t, err)

	resp, err := svc.EnviarCorreoEmpaque(context.Background(), masa.ID, nil, dto.EnviarCorreoEmpaqueRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"empaque@artesa.com"}, resp.Destinatarios)
	assert.Equal(t, model.EnvioPendiente, resp.EstadoEnvio)
	assert.Len(t, notificador.enviados, 1)
	assert.Len(t, notificaciones.notificaciones, 1)
}

func TestEnviarCorreoFalloDeColaNoFalla(t *testing.T) {
	_, _, ingredientes, notificaciones, notificador, svc, masa := nuevoPesajeEnv(t)
	marcarCompleto(agregarIngrediente(ingredientes, masa.ID, "Harina 000", 36000, 0))
	_, err := svc.ConfirmarPesaje(context.Background(), masa.ID, nil)
	require.NoError(t, err)

	notificador.fallar = true
	resp, err := svc.EnviarCorreoEmpaque(context.Background(), masa.ID, nil, dto.EnviarCorreoEmpaqueRequest{})
	require.NoError(t, err, "un fallo al encolar no debe fallar la petición")
	assert.Equal(t, model.EnvioPendiente, resp.EstadoEnvio)
	assert.Len(t, notificaciones.notificaciones, 1, "la fila PENDIENTE queda para el retry cron")
}
