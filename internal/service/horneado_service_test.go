package service

import (
	"context"
	"testing"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoHorneadoEnv(t *testing.T, estados map[string]string) (*stubFaseRepo, *stubRegistroRepo, *stubCatalogoRepo, HorneadoService, *model.MasaProduccion) {
	t.Helper()
	masas := newStubMasaRepo()
	fases := newStubFaseRepo()
	registros := &stubRegistroRepo{}
	catalogo := newStubCatalogoRepo().conTipoMasa("BLANCA", false, true)
	motor := NewFasesService(masas, fases)

	masa := seedMasaConFases(masas, fases, "BLANCA", estados)
	svc := NewHorneadoService(masas, fases, registros, catalogo, motor)
	return fases, registros, catalogo, svc, masa
}

func TestIniciarHorneadoRechazaDamperSinDamper(t *testing.T) {
	_, registros, catalogo, svc, masa := nuevoHorneadoEnv(t, completadasHasta(model.FaseFermentacion))
	horno := catalogo.conHorno("Horno de piso", false)

	_, err := svc.Iniciar(context.Background(), masa.ID, nil, dto.IniciarHorneadoRequest{
		TipoHornoID: horno.ID.String(),
		UsoDamper:   true,
	})
	var cfg *ConfiguracionInvalidaError
	require.ErrorAs(t, err, &cfg)
	assert.Empty(t, registros.horneados, "la validación de damper ocurre antes de escribir")
}

func TestIniciarHorneadoRequiereFermentacionCompletada(t *testing.T) {
	_, registros, catalogo, svc, masa := nuevoHorneadoEnv(t, completadasHasta(model.FaseFormado))
	horno := catalogo.conHorno("Rotativo 1", true)

	_, err := svc.Iniciar(context.Background(), masa.ID, nil, dto.IniciarHorneadoRequest{
		TipoHornoID: horno.ID.String(),
	})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Empty(t, registros.horneados)
}

func TestIniciarHorneadoHeredaProgramaDamper(t *testing.T) {
	fases, registros, catalogo, svc, masa := nuevoHorneadoEnv(t, completadasHasta(model.FaseFermentacion))
	horno := catalogo.conHorno("Rotativo 1", true)
	programa := &model.ProgramaHorneo{
		ID:                 uuid.New(),
		NumeroPrograma:     1,
		Nombre:             "Pan francés",
		TemperaturaInicial: decimal.NewFromInt(230),
		UsaDamper:          true,
		TiempoInicioDamper: 15,
		TiempoFinDamper:    22,
		TiempoTotalMinutos: 22,
	}
	catalogo.programas[programa.ID] = programa

	pid := programa.ID.String()
	resp, err := svc.Iniciar(context.Background(), masa.ID, nil, dto.IniciarHorneadoRequest{
		TipoHornoID:      horno.ID.String(),
		ProgramaHorneoID: &pid,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.NumeroPrograma)
	assert.Equal(t, 1, *resp.NumeroPrograma)
	assert.True(t, resp.UsoDamperReal)
	require.NotNil(t, resp.TiempoInicioDamperReal)
	assert.Equal(t, 15, *resp.TiempoInicioDamperReal)
	require.NotNil(t, resp.TemperaturaInicialReal)
	assert.True(t, resp.TemperaturaInicialReal.Equal(decimal.NewFromInt(230)))
	require.Len(t, registros.horneados, 1)

	row, _ := fases.FindByMasaYFase(context.Background(), masa.ID, model.FaseHorneado)
	assert.Equal(t, model.EstadoEnProgreso, row.Estado)
}

func TestActualizarDamperRevalidaHorno(t *testing.T) {
	_, _, catalogo, svc, masa := nuevoHorneadoEnv(t, completadasHasta(model.FaseFermentacion))
	horno := catalogo.conHorno("Horno de piso", false)

	_, err := svc.Iniciar(context.Background(), masa.ID, nil, dto.IniciarHorneadoRequest{
		TipoHornoID: horno.ID.String(),
	})
	require.NoError(t, err)

	_, err = svc.ActualizarDamper(context.Background(), masa.ID, dto.ActualizarDamperRequest{UsoDamper: true})
	var cfg *ConfiguracionInvalidaError
	require.ErrorAs(t, err, &cfg)
}

func TestActualizarTemperaturasSinHorneadoIniciado(t *testing.T) {
	_, _, _, svc, masa := nuevoHorneadoEnv(t, completadasHasta(model.FaseFermentacion))

	media := decimal.NewFromInt(210)
	_, err := svc.ActualizarTemperaturas(context.Background(), masa.ID, dto.ActualizarTemperaturasRequest{
		TemperaturaMedia: &media,
	})
	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
}

func TestCompletarHorneadoCierraMasa(t *testing.T) {
	fases, _, catalogo, svc, masa := nuevoHorneadoEnv(t, completadasHasta(model.FaseFermentacion))
	horno := catalogo.conHorno("Rotativo 1", true)
	ctx := context.Background()

	_, err := svc.Iniciar(ctx, masa.ID, nil, dto.IniciarHorneadoRequest{TipoHornoID: horno.ID.String()})
	require.NoError(t, err)

	color := "EXCELENTE"
	resp, err := svc.Completar(ctx, masa.ID, nil, dto.CompletarHorneadoRequest{CalidadColor: &color})
	require.NoError(t, err)
	assert.NotNil(t, resp.HoraSalida)
	assert.NotNil(t, resp.TiempoTotalMinutos)
	require.NotNil(t, resp.CalidadColor)
	assert.Equal(t, "EXCELENTE", *resp.CalidadColor)

	row, _ := fases.FindByMasaYFase(ctx, masa.ID, model.FaseHorneado)
	assert.Equal(t, model.EstadoCompletada, row.Estado)
	assert.Equal(t, model.MasaCompletada, masa.Estado)

	// Un segundo cierre sobre el mismo registro es un conflicto
	_, err = svc.Completar(ctx, masa.ID, nil, dto.CompletarHorneadoRequest{})
	var conflicto *ConflictoError
	require.ErrorAs(t, err, &conflicto)
}

func TestListarProgramasFiltraPorTipoMasa(t *testing.T) {
	_, _, catalogo, svc, _ := nuevoHorneadoEnv(t, nil)
	blanca := "BLANCA"
	dulce := "DULCE"
	catalogo.programas[uuid.New()] = &model.ProgramaHorneo{ID: uuid.New(), NumeroPrograma: 1, Nombre: "Francés", TipoMasaSugerido: &blanca}
	catalogo.programas[uuid.New()] = &model.ProgramaHorneo{ID: uuid.New(), NumeroPrograma: 2, Nombre: "Brioche", TipoMasaSugerido: &dulce}
	catalogo.programas[uuid.New()] = &model.ProgramaHorneo{ID: uuid.New(), NumeroPrograma: 3, Nombre: "Genérico"}

	programas, err := svc.ListarProgramas(context.Background(), "BLANCA")
	require.NoError(t, err)
	assert.Len(t, programas, 2, "sugeridos del tipo más los genéricos")
}
