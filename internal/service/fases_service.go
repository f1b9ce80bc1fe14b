package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FasesService is the phase transition engine: it owns every estado change of
// progreso_fases and the masa's fase_actual marker. All multi-row writes run
// in one transaction so a masa can never end up with a completed phase whose
// successor was not unlocked.
type FasesService interface {
	ObtenerProgreso(ctx context.Context, masaID uuid.UUID) (*dto.ProgresoListResponse, error)
	AplicarAccion(ctx context.Context, masaID uuid.UUID, fase string, usuarioID *uuid.UUID, req dto.ActualizarProgresoRequest) (*dto.ProgresoFaseResponse, error)
	Completar(ctx context.Context, masaID uuid.UUID, fase string, usuarioID *uuid.UUID) (*dto.ProgresoFaseResponse, error)

	// IniciarEnTx / CompletarEnTx let sibling services (pesaje, formado,
	// fermentación, horneado) drive transitions inside their own transaction.
	IniciarEnTx(ctx context.Context, tx *gorm.DB, masa *model.MasaProduccion, fase string, usuarioID *uuid.UUID) error
	CompletarEnTx(ctx context.Context, tx *gorm.DB, masa *model.MasaProduccion, fase string) error
}

type fasesService struct {
	masas repository.MasaRepository
	fases repository.FaseRepository
}

func NewFasesService(masas repository.MasaRepository, fases repository.FaseRepository) FasesService {
	return &fasesService{masas: masas, fases: fases}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *fasesService) ObtenerProgreso(ctx context.Context, masaID uuid.UUID) (*dto.ProgresoListResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	fases, err := s.fases.ListByMasa(ctx, masaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProgresoListResponse{
		MasaID:     masa.ID.String(),
		CodigoMasa: masa.CodigoMasa,
		Estado:     masa.Estado,
		FaseActual: masa.FaseActual,
		Fases:      make([]dto.ProgresoFaseResponse, 0, len(fases)),
	}
	for i := range fases {
		resp.Fases = append(resp.Fases, progresoToResponse(&fases[i]))
	}
	return resp, nil
}

func (s *fasesService) AplicarAccion(ctx context.Context, masaID uuid.UUID, fase string, usuarioID *uuid.UUID, req dto.ActualizarProgresoRequest) (*dto.ProgresoFaseResponse, error) {
	if !model.FaseValida(fase) {
		return nil, &NotFoundError{Recurso: "fase " + fase}
	}
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}

	switch req.Accion {
	case "iniciar":
		err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
			return s.IniciarEnTx(ctx, tx, masa, fase, usuarioID)
		})
	case "actualizar":
		err = s.actualizar(ctx, masaID, fase, req)
	case "completar":
		err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
			return s.CompletarEnTx(ctx, tx, masa, fase)
		})
	default:
		return nil, &PreconditionError{Detalle: "accion desconocida: " + req.Accion}
	}
	if err != nil {
		return nil, err
	}

	row, err := s.fases.FindByMasaYFase(ctx, masaID, fase)
	if err != nil {
		return nil, &NotFoundError{Recurso: "fase " + fase}
	}
	resp := progresoToResponse(row)
	return &resp, nil
}

func (s *fasesService) Completar(ctx context.Context, masaID uuid.UUID, fase string, usuarioID *uuid.UUID) (*dto.ProgresoFaseResponse, error) {
	return s.AplicarAccion(ctx, masaID, fase, usuarioID, dto.ActualizarProgresoRequest{Accion: "completar"})
}

// IniciarEnTx transitions a phase BLOQUEADA → EN_PROGRESO. The predecessor
// must already be COMPLETADA, except for PLANIFICACION and PESAJE which the
// ingestion seeds without a gate. Re-starting an EN_PROGRESO phase is a no-op
// beyond re-stamping the responsible user.
func (s *fasesService) IniciarEnTx(ctx context.Context, tx *gorm.DB, masa *model.MasaProduccion, fase string, usuarioID *uuid.UUID) error {
	row, err := s.fases.FindByMasaYFase(ctx, masa.ID, fase)
	if err != nil {
		return &NotFoundError{Recurso: "fase " + fase}
	}
	if row.Estado == model.EstadoCompletada {
		return &ConflictoError{Detalle: fmt.Sprintf("la fase %s ya fue completada", fase)}
	}

	if err := s.validarPredecesora(ctx, masa.ID, fase); err != nil {
		return err
	}

	now := time.Now()
	row.Estado = model.EstadoEnProgreso
	row.PorcentajeCompletado = 0
	if row.FechaInicio == nil {
		row.FechaInicio = &now
	}
	if usuarioID != nil {
		row.UsuarioResponsable = usuarioID
	}
	if err := s.fases.UpdateTx(tx, row); err != nil {
		return err
	}
	return s.masas.UpdateFaseActualTx(tx, masa.ID, fase)
}

func (s *fasesService) actualizar(ctx context.Context, masaID uuid.UUID, fase string, req dto.ActualizarProgresoRequest) error {
	row, err := s.fases.FindByMasaYFase(ctx, masaID, fase)
	if err != nil {
		return &NotFoundError{Recurso: "fase " + fase}
	}
	if row.Estado != model.EstadoEnProgreso && row.Estado != model.EstadoRequiereAtencion {
		return &PreconditionError{Detalle: fmt.Sprintf("la fase %s no está en progreso", fase)}
	}

	if req.PorcentajeCompletado != nil {
		row.PorcentajeCompletado = *req.PorcentajeCompletado
	}
	if len(req.DatosFase) > 0 {
		if row.DatosFase == nil {
			row.DatosFase = map[string]interface{}{}
		}
		for k, v := range req.DatosFase {
			row.DatosFase[k] = v
		}
	}
	if req.Observaciones != nil {
		row.Observaciones = req.Observaciones
	}
	if req.RequiereAtencion != nil {
		if *req.RequiereAtencion {
			row.Estado = model.EstadoRequiereAtencion
		} else {
			row.Estado = model.EstadoEnProgreso
		}
	}
	return runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		return s.fases.UpdateTx(tx, row)
	})
}

// CompletarEnTx transitions a phase EN_PROGRESO → COMPLETADA and unlocks its
// successor, all inside the caller's transaction.
//
// The estado flip is a conditional update (WHERE estado = 'EN_PROGRESO');
// zero affected rows means a concurrent request already completed the phase
// (or it was never started) and the call fails with Conflicto instead of
// silently double-advancing.
func (s *fasesService) CompletarEnTx(ctx context.Context, tx *gorm.DB, masa *model.MasaProduccion, fase string) error {
	if _, err := s.fases.FindByMasaYFase(ctx, masa.ID, fase); err != nil {
		return &NotFoundError{Recurso: "fase " + fase}
	}

	if err := s.validarPredecesora(ctx, masa.ID, fase); err != nil {
		return err
	}

	rows, err := s.fases.CompletarCondicionalTx(tx, masa.ID, fase, time.Now())
	if err != nil {
		return err
	}
	if rows == 0 {
		return &ConflictoError{Detalle: fmt.Sprintf("la fase %s no está en progreso (ya completada o bloqueada)", fase)}
	}

	return s.desbloquearSiguienteTx(ctx, tx, masa, fase)
}

// desbloquearSiguienteTx sets the fixed successor directly to EN_PROGRESO and
// moves the masa's fase_actual marker. HORNEADO has no successor: completing
// it closes the whole masa.
func (s *fasesService) desbloquearSiguienteTx(ctx context.Context, tx *gorm.DB, masa *model.MasaProduccion, fase string) error {
	siguiente, ok := model.SiguienteFase(fase)
	if !ok {
		return s.masas.UpdateEstadoTx(tx, masa.ID, model.MasaCompletada)
	}

	row, err := s.fases.FindByMasaYFase(ctx, masa.ID, siguiente)
	if err != nil {
		return &NotFoundError{Recurso: "fase " + siguiente}
	}
	now := time.Now()
	row.Estado = model.EstadoEnProgreso
	row.PorcentajeCompletado = 0
	if row.FechaInicio == nil {
		row.FechaInicio = &now
	}
	if err := s.fases.UpdateTx(tx, row); err != nil {
		return err
	}
	return s.masas.UpdateFaseActualTx(tx, masa.ID, siguiente)
}

// validarPredecesora enforces the ordering gate. PLANIFICACION has no
// predecessor; PESAJE is exempt because ingestion seeds it EN_PROGRESO while
// PLANIFICACION may still be BLOQUEADA.
func (s *fasesService) validarPredecesora(ctx context.Context, masaID uuid.UUID, fase string) error {
	if fase == model.FasePlanificacion || fase == model.FasePesaje {
		return nil
	}
	anterior, ok := model.FaseAnterior(fase)
	if !ok {
		return nil
	}
	row, err := s.fases.FindByMasaYFase(ctx, masaID, anterior)
	if err != nil {
		return &NotFoundError{Recurso: "fase " + anterior}
	}
	if row.Estado != model.EstadoCompletada {
		return &PreconditionError{
			Detalle: fmt.Sprintf("no se puede avanzar %s: la fase %s no está completada", fase, anterior),
		}
	}
	return nil
}

func progresoToResponse(p *model.ProgresoFase) dto.ProgresoFaseResponse {
	return dto.ProgresoFaseResponse{
		ID:                   p.ID.String(),
		Fase:                 p.Fase,
		Orden:                model.OrdenFase(p.Fase),
		Estado:               p.Estado,
		PorcentajeCompletado: p.PorcentajeCompletado,
		FechaInicio:          formatTime(p.FechaInicio),
		FechaCompletado:      formatTime(p.FechaCompletado),
		UsuarioResponsable:   uuidToString(p.UsuarioResponsable),
		DatosFase:            p.DatosFase,
		Observaciones:        p.Observaciones,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func uuidToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
