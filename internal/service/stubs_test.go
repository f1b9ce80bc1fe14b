package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubMasaRepo is an in-memory MasaRepository. DB() returns nil so runTx
// executes callbacks without a real transaction.
type stubMasaRepo struct {
	masas      map[uuid.UUID]*model.MasaProduccion
	relaciones []model.OrdenMasaRelacion
}

func newStubMasaRepo() *stubMasaRepo {
	return &stubMasaRepo{masas: make(map[uuid.UUID]*model.MasaProduccion)}
}

func (r *stubMasaRepo) Create(_ context.Context, _ *gorm.DB, m *model.MasaProduccion) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.masas[m.ID] = m
	return nil
}

func (r *stubMasaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MasaProduccion, error) {
	m, ok := r.masas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *stubMasaRepo) FindByCodigo(_ context.Context, codigo string) (*model.MasaProduccion, error) {
	for _, m := range r.masas {
		if m.CodigoMasa == codigo {
			return m, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubMasaRepo) List(_ context.Context, _ dto.MasaFilter) ([]model.MasaProduccion, int64, error) {
	out := make([]model.MasaProduccion, 0, len(r.masas))
	for _, m := range r.masas {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMasaRepo) UpdateFaseActualTx(_ *gorm.DB, id uuid.UUID, fase string) error {
	m, ok := r.masas[id]
	if !ok {
		return errors.New("not found")
	}
	m.FaseActual = fase
	if m.Estado == model.MasaPlanificacion && fase != model.FasePlanificacion {
		m.Estado = model.MasaEnProceso
	}
	return nil
}

func (r *stubMasaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	m, ok := r.masas[id]
	if !ok {
		return errors.New("not found")
	}
	m.Estado = estado
	return nil
}

func (r *stubMasaRepo) CreateOrdenRelacionTx(_ *gorm.DB, rel *model.OrdenMasaRelacion) error {
	r.relaciones = append(r.relaciones, *rel)
	return nil
}

func (r *stubMasaRepo) DB() *gorm.DB { return nil }

var _ repository.MasaRepository = (*stubMasaRepo)(nil)

// stubFaseRepo keeps one ProgresoFase row per (masa, fase).
type stubFaseRepo struct {
	rows map[uuid.UUID]map[string]*model.ProgresoFase
}

func newStubFaseRepo() *stubFaseRepo {
	return &stubFaseRepo{rows: make(map[uuid.UUID]map[string]*model.ProgresoFase)}
}

func (r *stubFaseRepo) ListByMasa(_ context.Context, masaID uuid.UUID) ([]model.ProgresoFase, error) {
	out := []model.ProgresoFase{}
	for _, fase := range model.FasesOrdenadas {
		if row, ok := r.rows[masaID][fase]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubFaseRepo) FindByMasaYFase(_ context.Context, masaID uuid.UUID, fase string) (*model.ProgresoFase, error) {
	row, ok := r.rows[masaID][fase]
	if !ok {
		return nil, errors.New("not found")
	}
	return row, nil
}

func (r *stubFaseRepo) CreateTx(_ *gorm.DB, p *model.ProgresoFase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if r.rows[p.MasaID] == nil {
		r.rows[p.MasaID] = make(map[string]*model.ProgresoFase)
	}
	r.rows[p.MasaID][p.Fase] = p
	return nil
}

func (r *stubFaseRepo) UpdateTx(_ *gorm.DB, p *model.ProgresoFase) error {
	if r.rows[p.MasaID] == nil || r.rows[p.MasaID][p.Fase] == nil {
		return errors.New("not found")
	}
	r.rows[p.MasaID][p.Fase] = p
	return nil
}

func (r *stubFaseRepo) CompletarCondicionalTx(_ *gorm.DB, masaID uuid.UUID, fase string, completadoEn time.Time) (int64, error) {
	row, ok := r.rows[masaID][fase]
	if !ok {
		return 0, errors.New("not found")
	}
	if row.Estado != model.EstadoEnProgreso {
		return 0, nil
	}
	row.Estado = model.EstadoCompletada
	row.PorcentajeCompletado = 100
	row.FechaCompletado = &completadoEn
	return 1, nil
}

func (r *stubFaseRepo) DB() *gorm.DB { return nil }

var _ repository.FaseRepository = (*stubFaseRepo)(nil)

// seedMasaConFases creates a masa plus its seven phase rows the way the SAP
// ingestion does: everything BLOQUEADA except PESAJE which starts EN_PROGRESO.
// estados overrides individual phases afterwards.
func seedMasaConFases(masas *stubMasaRepo, fases *stubFaseRepo, tipoMasa string, estados map[string]string) *model.MasaProduccion {
	masa := &model.MasaProduccion{
		ID:         uuid.New(),
		CodigoMasa: "MASA-20250901-" + tipoMasa,
		TipoMasa:   tipoMasa,
		NombreMasa: "Masa " + tipoMasa,
		Estado:     model.MasaPlanificacion,
		FaseActual: model.FasePesaje,
	}
	masas.masas[masa.ID] = masa

	now := time.Now()
	for _, fase := range model.FasesOrdenadas {
		row := &model.ProgresoFase{ID: uuid.New(), MasaID: masa.ID, Fase: fase, Estado: model.EstadoBloqueada}
		if fase == model.FasePesaje {
			row.Estado = model.EstadoEnProgreso
			row.FechaInicio = &now
		}
		if estado, ok := estados[fase]; ok {
			row.Estado = estado
			if estado == model.EstadoCompletada {
				row.PorcentajeCompletado = 100
				row.FechaCompletado = &now
			}
		}
		_ = fases.CreateTx(nil, row)
	}
	return masa
}

// stubIngredienteRepo is an in-memory IngredienteRepository.
type stubIngredienteRepo struct {
	ings map[uuid.UUID]*model.IngredienteMasa
}

func newStubIngredienteRepo() *stubIngredienteRepo {
	return &stubIngredienteRepo{ings: make(map[uuid.UUID]*model.IngredienteMasa)}
}

func (r *stubIngredienteRepo) ListByMasa(_ context.Context, masaID uuid.UUID) ([]model.IngredienteMasa, error) {
	out := []model.IngredienteMasa{}
	for _, ing := range r.ings {
		if ing.MasaID == masaID {
			out = append(out, *ing)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrdenVisualizacion < out[j].OrdenVisualizacion })
	return out, nil
}

func (r *stubIngredienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.IngredienteMasa, error) {
	ing, ok := r.ings[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return ing, nil
}

func (r *stubIngredienteRepo) Update(_ context.Context, ing *model.IngredienteMasa) error {
	r.ings[ing.ID] = ing
	return nil
}

func (r *stubIngredienteRepo) CreateBatchTx(_ *gorm.DB, ings []model.IngredienteMasa) error {
	for i := range ings {
		ing := ings[i]
		if ing.ID == uuid.Nil {
			ing.ID = uuid.New()
		}
		r.ings[ing.ID] = &ing
	}
	return nil
}

func (r *stubIngredienteRepo) DB() *gorm.DB { return nil }

var _ repository.IngredienteRepository = (*stubIngredienteRepo)(nil)

func agregarIngrediente(repo *stubIngredienteRepo, masaID uuid.UUID, nombre string, gramos int64, orden int) *model.IngredienteMasa {
	ing := &model.IngredienteMasa{
		ID:                 uuid.New(),
		MasaID:             masaID,
		IngredienteNombre:  nombre,
		CantidadGramos:     decimal.NewFromInt(gramos),
		OrdenVisualizacion: orden,
	}
	repo.ings[ing.ID] = ing
	return ing
}

// stubProductoRepo is an in-memory ProductoMasaRepository.
type stubProductoRepo struct {
	productos map[uuid.UUID]*model.ProductoMasa
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.ProductoMasa)}
}

func (r *stubProductoRepo) ListByMasa(_ context.Context, masaID uuid.UUID) ([]model.ProductoMasa, error) {
	out := []model.ProductoMasa{}
	for _, p := range r.productos {
		if p.MasaID == masaID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductoMasa, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.ProductoMasa) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) CreateBatchTx(_ *gorm.DB, productos []model.ProductoMasa) error {
	for i := range productos {
		p := productos[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.productos[p.ID] = &p
	}
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoMasaRepository = (*stubProductoRepo)(nil)

// stubCatalogoRepo serves the equipment and dough-type catalogs.
type stubCatalogoRepo struct {
	tipos     map[string]*model.TipoMasaCatalogo
	hornos    map[uuid.UUID]*model.TipoHorno
	programas map[uuid.UUID]*model.ProgramaHorneo
	maquinas  []model.MaquinaFormado
	specs     []model.EspecificacionFormado
}

func newStubCatalogoRepo() *stubCatalogoRepo {
	return &stubCatalogoRepo{
		tipos:     make(map[string]*model.TipoMasaCatalogo),
		hornos:    make(map[uuid.UUID]*model.TipoHorno),
		programas: make(map[uuid.UUID]*model.ProgramaHorneo),
	}
}

func (r *stubCatalogoRepo) FindTipoMasa(_ context.Context, tipoMasa string) (*model.TipoMasaCatalogo, error) {
	t, ok := r.tipos[tipoMasa]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *stubCatalogoRepo) ListTiposMasa(_ context.Context) ([]model.TipoMasaCatalogo, error) {
	out := []model.TipoMasaCatalogo{}
	for _, t := range r.tipos {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubCatalogoRepo) ListHornos(_ context.Context) ([]model.TipoHorno, error) {
	out := []model.TipoHorno{}
	for _, h := range r.hornos {
		out = append(out, *h)
	}
	return out, nil
}

func (r *stubCatalogoRepo) FindHorno(_ context.Context, id uuid.UUID) (*model.TipoHorno, error) {
	h, ok := r.hornos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return h, nil
}

func (r *stubCatalogoRepo) ListProgramas(_ context.Context, tipoMasa string) ([]model.ProgramaHorneo, error) {
	out := []model.ProgramaHorneo{}
	for _, p := range r.programas {
		if tipoMasa == "" || p.TipoMasaSugerido == nil || *p.TipoMasaSugerido == tipoMasa {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubCatalogoRepo) FindPrograma(_ context.Context, id uuid.UUID) (*model.ProgramaHorneo, error) {
	p, ok := r.programas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubCatalogoRepo) ListMaquinasFormado(_ context.Context) ([]model.MaquinaFormado, error) {
	return r.maquinas, nil
}

func (r *stubCatalogoRepo) ListEspecificacionesFormado(_ context.Context, _ string, _ []string) ([]model.EspecificacionFormado, error) {
	return r.specs, nil
}

var _ repository.CatalogoRepository = (*stubCatalogoRepo)(nil)

func (r *stubCatalogoRepo) conTipoMasa(tipo string, camaraFrio, formado bool) *stubCatalogoRepo {
	r.tipos[tipo] = &model.TipoMasaCatalogo{
		ID:                                uuid.New(),
		TipoMasa:                          tipo,
		Nombre:                            "Masa " + tipo,
		RequiereCamaraFrio:                camaraFrio,
		RequiereFormado:                   formado,
		TiempoFermentacionEstandarMinutos: 40,
		Activo:                            true,
	}
	return r
}

func (r *stubCatalogoRepo) conHorno(nombre string, tieneDamper bool) *model.TipoHorno {
	h := &model.TipoHorno{
		ID:          uuid.New(),
		Nombre:      nombre,
		Codigo:      nombre,
		Tipo:        "ROTATIVO",
		TieneDamper: tieneDamper,
		Activo:      true,
	}
	r.hornos[h.ID] = h
	return h
}

// stubRegistroRepo appends run records in memory.
type stubRegistroRepo struct {
	formados       []*model.RegistroFormado
	fermentaciones []*model.RegistroFermentacion
	horneados      []*model.RegistroHorneado
}

func (r *stubRegistroRepo) CreateFormadoTx(_ *gorm.DB, reg *model.RegistroFormado) error {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	r.formados = append(r.formados, reg)
	return nil
}

func (r *stubRegistroRepo) UpdateFormadoTx(_ *gorm.DB, _ *model.RegistroFormado) error { return nil }

func (r *stubRegistroRepo) LatestFormado(_ context.Context, masaID uuid.UUID) (*model.RegistroFormado, error) {
	for i := len(r.formados) - 1; i >= 0; i-- {
		if r.formados[i].MasaID == masaID {
			return r.formados[i], nil
		}
	}
	return nil, nil
}

func (r *stubRegistroRepo) CreateFermentacionTx(_ *gorm.DB, reg *model.RegistroFermentacion) error {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	r.fermentaciones = append(r.fermentaciones, reg)
	return nil
}

func (r *stubRegistroRepo) UpdateFermentacionTx(_ *gorm.DB, _ *model.RegistroFermentacion) error {
	return nil
}

func (r *stubRegistroRepo) LatestFermentacion(_ context.Context, masaID uuid.UUID) (*model.RegistroFermentacion, error) {
	for i := len(r.fermentaciones) - 1; i >= 0; i-- {
		if r.fermentaciones[i].MasaID == masaID {
			return r.fermentaciones[i], nil
		}
	}
	return nil, nil
}

func (r *stubRegistroRepo) CreateHorneadoTx(_ *gorm.DB, reg *model.RegistroHorneado) error {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	r.horneados = append(r.horneados, reg)
	return nil
}

func (r *stubRegistroRepo) UpdateHorneadoTx(_ *gorm.DB, _ *model.RegistroHorneado) error { return nil }

func (r *stubRegistroRepo) LatestHorneado(_ context.Context, masaID uuid.UUID) (*model.RegistroHorneado, error) {
	for i := len(r.horneados) - 1; i >= 0; i-- {
		if r.horneados[i].MasaID == masaID {
			return r.horneados[i], nil
		}
	}
	return nil, nil
}

func (r *stubRegistroRepo) DB() *gorm.DB { return nil }

var _ repository.RegistroRepository = (*stubRegistroRepo)(nil)

// stubNotificacionRepo captures created notifications for assertion.
type stubNotificacionRepo struct {
	notificaciones map[uuid.UUID]*model.NotificacionEmpaque
}

func newStubNotificacionRepo() *stubNotificacionRepo {
	return &stubNotificacionRepo{notificaciones: make(map[uuid.UUID]*model.NotificacionEmpaque)}
}

func (r *stubNotificacionRepo) Create(_ context.Context, n *model.NotificacionEmpaque) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.notificaciones[n.ID] = n
	return nil
}

func (r *stubNotificacionRepo) Update(_ context.Context, n *model.NotificacionEmpaque) error {
	r.notificaciones[n.ID] = n
	return nil
}

func (r *stubNotificacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.NotificacionEmpaque, error) {
	n, ok := r.notificaciones[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return n, nil
}

func (r *stubNotificacionRepo) ListPendientes(_ context.Context, _ time.Time, _ int) ([]model.NotificacionEmpaque, error) {
	out := []model.NotificacionEmpaque{}
	for _, n := range r.notificaciones {
		if n.EstadoEnvio == model.EnvioPendiente {
			out = append(out, *n)
		}
	}
	return out, nil
}

var _ repository.NotificacionRepository = (*stubNotificacionRepo)(nil)

// stubConfiguracion is a fixed-value ConfiguracionService.
type stubConfiguracion struct {
	factor  decimal.Decimal
	correos []string
}

func (s *stubConfiguracion) ObtenerFactorAbsorcion(_ context.Context) (decimal.Decimal, error) {
	if s.factor.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	return s.factor, nil
}

func (s *stubConfiguracion) ActualizarFactorAbsorcion(_ context.Context, _ *uuid.UUID, req dto.ActualizarFactorAbsorcionRequest) (*dto.FactorAbsorcionResponse, error) {
	s.factor = req.Valor
	return &dto.FactorAbsorcionResponse{Valor: s.factor}, nil
}

func (s *stubConfiguracion) ObtenerCorreosEmpaque(_ context.Context) ([]string, error) {
	return s.correos, nil
}

func (s *stubConfiguracion) ActualizarCorreosEmpaque(_ context.Context, _ *uuid.UUID, req dto.ActualizarCorreosEmpaqueRequest) (*dto.CorreosEmpaqueResponse, error) {
	s.correos = req.Correos
	return &dto.CorreosEmpaqueResponse{Correos: s.correos}, nil
}

var _ ConfiguracionService = (*stubConfiguracion)(nil)

// stubNotificador records every dispatch.
type stubNotificador struct {
	enviados []uuid.UUID
	fallar   bool
}

func (s *stubNotificador) NotificarEmpaque(_ context.Context, id uuid.UUID, _ []string, _, _ string) error {
	if s.fallar {
		return errors.New("queue down")
	}
	s.enviados = append(s.enviados, id)
	return nil
}

var _ Notificador = (*stubNotificador)(nil)
