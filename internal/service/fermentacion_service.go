package service

import (
	"context"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FermentacionService drives the nested sub-machine inside the FERMENTACION
// phase: chamber entry → chamber exit, then — only for dough types that
// require it — cold-chamber entry → cold-chamber exit. The phase completes at
// chamber exit for warm-only doughs and at cold exit otherwise.
type FermentacionService interface {
	ObtenerInfo(ctx context.Context, masaID uuid.UUID) (*dto.FermentacionInfoResponse, error)
	RegistrarEntradaCamara(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.EntradaCamaraRequest) (*dto.RegistroFermentacionResponse, error)
	RegistrarSalidaCamara(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.SalidaCamaraRequest) (*dto.RegistroFermentacionResponse, error)
	RegistrarEntradaFrio(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.EntradaFrioRequest) (*dto.RegistroFermentacionResponse, error)
	RegistrarSalidaFrio(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.SalidaFrioRequest) (*dto.RegistroFermentacionResponse, error)
}

type fermentacionService struct {
	masas     repository.MasaRepository
	fases     repository.FaseRepository
	registros repository.RegistroRepository
	catalogo  repository.CatalogoRepository
	motor     FasesService
}

func NewFermentacionService(
	masas repository.MasaRepository,
	fases repository.FaseRepository,
	registros repository.RegistroRepository,
	catalogo repository.CatalogoRepository,
	motor FasesService,
) FermentacionService {
	return &fermentacionService{
		masas:     masas,
		fases:     fases,
		registros: registros,
		catalogo:  catalogo,
		motor:     motor,
	}
}

func (s *fermentacionService) ObtenerInfo(ctx context.Context, masaID uuid.UUID) (*dto.FermentacionInfoResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	tipo, err := s.catalogo.FindTipoMasa(ctx, masa.TipoMasa)
	if err != nil {
		return nil, &ConfiguracionInvalidaError{Detalle: "tipo de masa " + masa.TipoMasa + " no está en el catálogo"}
	}
	row, err := s.fases.FindByMasaYFase(ctx, masaID, model.FaseFermentacion)
	if err != nil {
		return nil, &NotFoundError{Recurso: "fase FERMENTACION"}
	}
	ultimo, err := s.registros.LatestFermentacion(ctx, masaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.FermentacionInfoResponse{
		MasaID:                            masa.ID.String(),
		CodigoMasa:                        masa.CodigoMasa,
		TipoMasa:                          masa.TipoMasa,
		RequiereCamaraFrio:                tipo.RequiereCamaraFrio,
		TiempoFermentacionEstandarMinutos: tipo.TiempoFermentacionEstandarMinutos,
		EstadoFase:                        row.Estado,
	}
	if ultimo != nil {
		r := fermentacionToResponse(ultimo)
		resp.UltimoRegistro = &r
	}
	return resp, nil
}

func (s *fermentacionService) RegistrarEntradaCamara(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.EntradaCamaraRequest) (*dto.RegistroFermentacionResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	tipo, err := s.catalogo.FindTipoMasa(ctx, masa.TipoMasa)
	if err != nil {
		return nil, &ConfiguracionInvalidaError{Detalle: "tipo de masa " + masa.TipoMasa + " no está en el catálogo"}
	}

	if err := s.validarPrevia(ctx, masaID, tipo); err != nil {
		return nil, err
	}

	entrada := time.Now()
	salidaSugerida := entrada.Add(time.Duration(tipo.TiempoFermentacionEstandarMinutos) * time.Minute)

	registro := &model.RegistroFermentacion{
		MasaID:                    masa.ID,
		HoraEntradaCamara:         entrada,
		HoraSalidaCamaraSugerida:  salidaSugerida,
		TiempoFermentacionMinutos: tipo.TiempoFermentacionEstandarMinutos,
		TemperaturaCamara:         req.TemperaturaCamara,
		HumedadCamara:             req.HumedadCamara,
		RequiereCamaraFrio:        tipo.RequiereCamaraFrio,
		UsuarioID:                 usuarioID,
		Observaciones:             req.Observaciones,
	}

	// The engine's generic gate requires FORMADO completed, but warm-only
	// doughs skip forming: validarPrevia already applied the right gate, so
	// the phase row is advanced directly here.
	row, err := s.fases.FindByMasaYFase(ctx, masaID, model.FaseFermentacion)
	if err != nil {
		return nil, &NotFoundError{Recurso: "fase FERMENTACION"}
	}
	if row.Estado == model.EstadoCompletada {
		return nil, &ConflictoError{Detalle: "la fase FERMENTACION ya fue completada"}
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		if err := s.registros.CreateFermentacionTx(tx, registro); err != nil {
			return err
		}
		// Dough types without forming jump DIVISION → FERMENTACION; the
		// skipped FORMADO row is closed as not-applicable so the ordering
		// invariant (and the completion gate) stays intact.
		if !tipo.RequiereFormado {
			if err := s.omitirFormadoTx(ctx, tx, masaID); err != nil {
				return err
			}
		}
		row.Estado = model.EstadoEnProgreso
		if row.FechaInicio == nil {
			row.FechaInicio = &entrada
		}
		if usuarioID != nil {
			row.UsuarioResponsable = usuarioID
		}
		if row.DatosFase == nil {
			row.DatosFase = map[string]interface{}{}
		}
		row.DatosFase["hora_entrada_camara"] = entrada.UTC().Format(time.RFC3339)
		row.DatosFase["hora_salida_sugerida"] = salidaSugerida.UTC().Format(time.RFC3339)
		if err := s.fases.UpdateTx(tx, row); err != nil {
			return err
		}
		return s.masas.UpdateFaseActualTx(tx, masa.ID, model.FaseFermentacion)
	})
	if err != nil {
		return nil, err
	}

	resp := fermentacionToResponse(registro)
	return &resp, nil
}

func (s *fermentacionService) RegistrarSalidaCamara(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.SalidaCamaraRequest) (*dto.RegistroFermentacionResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	registro, err := s.registros.LatestFermentacion(ctx, masaID)
	if err != nil {
		return nil, err
	}
	if registro == nil {
		return nil, &PreconditionError{Detalle: "no hay entrada a cámara registrada"}
	}
	if registro.HoraSalidaCamaraReal != nil {
		return nil, &ConflictoError{Detalle: "la salida de cámara ya fue registrada"}
	}

	now := time.Now()
	registro.HoraSalidaCamaraReal = &now
	if req.Observaciones != nil {
		registro.Observaciones = req.Observaciones
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		if err := s.registros.UpdateFermentacionTx(tx, registro); err != nil {
			return err
		}
		if registro.RequiereCamaraFrio {
			// Phase stays EN_PROGRESO until the cold sub-steps finish
			return nil
		}
		return s.motor.CompletarEnTx(ctx, tx, masa, model.FaseFermentacion)
	})
	if err != nil {
		return nil, err
	}

	resp := fermentacionToResponse(registro)
	return &resp, nil
}

func (s *fermentacionService) RegistrarEntradaFrio(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.EntradaFrioRequest) (*dto.RegistroFermentacionResponse, error) {
	if _, err := s.masas.FindByID(ctx, masaID); err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	registro, err := s.registros.LatestFermentacion(ctx, masaID)
	if err != nil {
		return nil, err
	}
	if registro == nil {
		return nil, &PreconditionError{Detalle: "no hay entrada a cámara registrada"}
	}
	if !registro.RequiereCamaraFrio {
		return nil, &ConfiguracionInvalidaError{Detalle: "este tipo de masa no requiere cámara de frío"}
	}
	if registro.HoraSalidaCamaraReal == nil {
		return nil, &PreconditionError{Detalle: "debe registrarse la salida de cámara antes de entrar a frío"}
	}
	if registro.HoraEntradaFrio != nil {
		return nil, &ConflictoError{Detalle: "la entrada a frío ya fue registrada"}
	}

	now := time.Now()
	registro.HoraEntradaFrio = &now
	registro.TemperaturaFrio = req.TemperaturaFrio
	if req.Observaciones != nil {
		registro.Observaciones = req.Observaciones
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		return s.registros.UpdateFermentacionTx(tx, registro)
	})
	if err != nil {
		return nil, err
	}

	resp := fermentacionToResponse(registro)
	return &resp, nil
}

func (s *fermentacionService) RegistrarSalidaFrio(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.SalidaFrioRequest) (*dto.RegistroFermentacionResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	registro, err := s.registros.LatestFermentacion(ctx, masaID)
	if err != nil {
		return nil, err
	}
	if registro == nil {
		return nil, &PreconditionError{Detalle: "no hay entrada a cámara registrada"}
	}
	if !registro.RequiereCamaraFrio {
		return nil, &ConfiguracionInvalidaError{Detalle: "este tipo de masa no requiere cámara de frío"}
	}
	if registro.HoraEntradaFrio == nil {
		return nil, &PreconditionError{Detalle: "debe registrarse la entrada a frío antes de la salida"}
	}
	if registro.HoraSalidaFrio != nil {
		return nil, &ConflictoError{Detalle: "la salida de frío ya fue registrada"}
	}

	now := time.Now()
	minutos := int(now.Sub(*registro.HoraEntradaFrio).Minutes())
	registro.HoraSalidaFrio = &now
	registro.TiempoFrioMinutos = &minutos
	if req.Observaciones != nil {
		registro.Observaciones = req.Observaciones
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		if err := s.registros.UpdateFermentacionTx(tx, registro); err != nil {
			return err
		}
		return s.motor.CompletarEnTx(ctx, tx, masa, model.FaseFermentacion)
	})
	if err != nil {
		return nil, err
	}

	resp := fermentacionToResponse(registro)
	return &resp, nil
}

// omitirFormadoTx closes a FORMADO row that does not apply to the dough type.
func (s *fermentacionService) omitirFormadoTx(ctx context.Context, tx *gorm.DB, masaID uuid.UUID) error {
	formado, err := s.fases.FindByMasaYFase(ctx, masaID, model.FaseFormado)
	if err != nil {
		return &NotFoundError{Recurso: "fase FORMADO"}
	}
	if formado.Estado == model.EstadoCompletada {
		return nil
	}
	now := time.Now()
	obs := "No aplica para este tipo de masa"
	formado.Estado = model.EstadoCompletada
	formado.PorcentajeCompletado = 100
	formado.FechaCompletado = &now
	formado.Observaciones = &obs
	return s.fases.UpdateTx(tx, formado)
}

// validarPrevia gates chamber entry on the physical predecessor: FORMADO for
// dough types that are formed, DIVISION otherwise. Accepting a completed
// FORMADO also covers types reconfigured mid-production.
func (s *fermentacionService) validarPrevia(ctx context.Context, masaID uuid.UUID, tipo *model.TipoMasaCatalogo) error {
	formado, err := s.fases.FindByMasaYFase(ctx, masaID, model.FaseFormado)
	if err != nil {
		return &NotFoundError{Recurso: "fase FORMADO"}
	}
	if formado.Estado == model.EstadoCompletada {
		return nil
	}
	if !tipo.RequiereFormado {
		division, err := s.fases.FindByMasaYFase(ctx, masaID, model.FaseDivision)
		if err != nil {
			return &NotFoundError{Recurso: "fase DIVISION"}
		}
		if division.Estado == model.EstadoCompletada {
			return nil
		}
		return &PreconditionError{Detalle: "no se puede entrar a cámara: DIVISION no está completada"}
	}
	return &PreconditionError{Detalle: "no se puede entrar a cámara: FORMADO no está completado"}
}

func fermentacionToResponse(r *model.RegistroFermentacion) dto.RegistroFermentacionResponse {
	return dto.RegistroFermentacionResponse{
		ID:                        r.ID.String(),
		HoraEntradaCamara:         r.HoraEntradaCamara.UTC().Format(time.RFC3339),
		HoraSalidaCamaraSugerida:  r.HoraSalidaCamaraSugerida.UTC().Format(time.RFC3339),
		HoraSalidaCamaraReal:      formatTime(r.HoraSalidaCamaraReal),
		TiempoFermentacionMinutos: r.TiempoFermentacionMinutos,
		TemperaturaCamara:         r.TemperaturaCamara,
		HumedadCamara:             r.HumedadCamara,
		RequiereCamaraFrio:        r.RequiereCamaraFrio,
		HoraEntradaFrio:           formatTime(r.HoraEntradaFrio),
		HoraSalidaFrio:            formatTime(r.HoraSalidaFrio),
		TiempoFrioMinutos:         r.TiempoFrioMinutos,
		TemperaturaFrio:           r.TemperaturaFrio,
		Observaciones:             r.Observaciones,
	}
}
