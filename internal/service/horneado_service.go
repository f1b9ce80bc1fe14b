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

// HorneadoService drives the terminal HORNEADO phase: oven/program selection
// with damper validation, temperature and damper telemetry, and the final
// completion that closes the whole masa.
type HorneadoService interface {
	ObtenerInfo(ctx context.Context, masaID uuid.UUID) (*dto.HorneadoInfoResponse, error)
	Iniciar(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.IniciarHorneadoRequest) (*dto.RegistroHorneadoResponse, error)
	ActualizarTemperaturas(ctx context.Context, masaID uuid.UUID, req dto.ActualizarTemperaturasRequest) (*dto.RegistroHorneadoResponse, error)
	ActualizarDamper(ctx context.Context, masaID uuid.UUID, req dto.ActualizarDamperRequest) (*dto.RegistroHorneadoResponse, error)
	Completar(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.CompletarHorneadoRequest) (*dto.RegistroHorneadoResponse, error)

	ListarHornos(ctx context.Context) ([]dto.TipoHornoResponse, error)
	ListarProgramas(ctx context.Context, tipoMasa string) ([]dto.ProgramaHorneoResponse, error)
}

type horneadoService struct {
	masas     repository.MasaRepository
	fases     repository.FaseRepository
	registros repository.RegistroRepository
	catalogo  repository.CatalogoRepository
	motor     FasesService
}

func NewHorneadoService(
	masas repository.MasaRepository,
	fases repository.FaseRepository,
	registros repository.RegistroRepository,
	catalogo repository.CatalogoRepository,
	motor FasesService,
) HorneadoService {
	return &horneadoService{
		masas:     masas,
		fases:     fases,
		registros: registros,
		catalogo:  catalogo,
		motor:     motor,
	}
}

func (s *horneadoService) ObtenerInfo(ctx context.Context, masaID uuid.UUID) (*dto.HorneadoInfoResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	row, err := s.fases.FindByMasaYFase(ctx, masaID, model.FaseHorneado)
	if err != nil {
		return nil, &NotFoundError{Recurso: "fase HORNEADO"}
	}
	hornos, err := s.ListarHornos(ctx)
	if err != nil {
		return nil, err
	}
	programas, err := s.ListarProgramas(ctx, masa.TipoMasa)
	if err != nil {
		return nil, err
	}
	ultimo, err := s.registros.LatestHorneado(ctx, masaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.HorneadoInfoResponse{
		MasaID:             masa.ID.String(),
		CodigoMasa:         masa.CodigoMasa,
		TipoMasa:           masa.TipoMasa,
		EstadoFase:         row.Estado,
		Hornos:             hornos,
		ProgramasSugeridos: programas,
	}
	if ultimo != nil {
		r := horneadoToResponse(ultimo)
		resp.UltimoRegistro = &r
	}
	return resp, nil
}

func (s *horneadoService) Iniciar(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.IniciarHorneadoRequest) (*dto.RegistroHorneadoResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}

	hornoID, err := uuid.Parse(req.TipoHornoID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "horno"}
	}
	horno, err := s.catalogo.FindHorno(ctx, hornoID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "horno"}
	}

	var programa *model.ProgramaHorneo
	if req.ProgramaHorneoID != nil {
		pid, err := uuid.Parse(*req.ProgramaHorneoID)
		if err != nil {
			return nil, &NotFoundError{Recurso: "programa de horneo"}
		}
		programa, err = s.catalogo.FindPrograma(ctx, pid)
		if err != nil {
			return nil, &NotFoundError{Recurso: "programa de horneo"}
		}
	}

	// Damper validation happens before any write: an oven without a damper
	// can never run a damper program.
	usaDamper := req.UsoDamper || (programa != nil && programa.UsaDamper)
	if usaDamper && !horno.TieneDamper {
		return nil, &ConfiguracionInvalidaError{
			Detalle: "el horno " + horno.Nombre + " no tiene damper",
		}
	}

	registro := &model.RegistroHorneado{
		MasaID:                 masa.ID,
		TipoHornoID:            horno.ID,
		HornoNombre:            horno.Nombre,
		HoraEntrada:            time.Now(),
		TemperaturaInicialReal: req.TemperaturaInicial,
		UsoDamperReal:          usaDamper,
		TiempoInicioDamperReal: req.TiempoInicioDamper,
		TiempoFinDamperReal:    req.TiempoFinDamper,
		UsuarioID:              usuarioID,
		Observaciones:          req.Observaciones,
	}
	if programa != nil {
		registro.ProgramaHorneoID = &programa.ID
		num := programa.NumeroPrograma
		registro.NumeroPrograma = &num
		if registro.TemperaturaInicialReal == nil {
			t := programa.TemperaturaInicial
			registro.TemperaturaInicialReal = &t
		}
		if usaDamper && registro.TiempoInicioDamperReal == nil {
			inicio, fin := programa.TiempoInicioDamper, programa.TiempoFinDamper
			registro.TiempoInicioDamperReal = &inicio
			registro.TiempoFinDamperReal = &fin
		}
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		// IniciarEnTx applies the FERMENTACION-completed gate
		if err := s.motor.IniciarEnTx(ctx, tx, masa, model.FaseHorneado, usuarioID); err != nil {
			return err
		}
		return s.registros.CreateHorneadoTx(tx, registro)
	})
	if err != nil {
		return nil, err
	}

	resp := horneadoToResponse(registro)
	return &resp, nil
}

func (s *horneadoService) ActualizarTemperaturas(ctx context.Context, masaID uuid.UUID, req dto.ActualizarTemperaturasRequest) (*dto.RegistroHorneadoResponse, error) {
	registro, err := s.registroActivo(ctx, masaID)
	if err != nil {
		return nil, err
	}

	if req.TemperaturaInicial != nil {
		registro.TemperaturaInicialReal = req.TemperaturaInicial
	}
	if req.TemperaturaMedia != nil {
		registro.TemperaturaMediaReal = req.TemperaturaMedia
		if registro.HoraCambioTemperatura == nil {
			now := time.Now()
			registro.HoraCambioTemperatura = &now
		}
	}
	if req.TemperaturaFinal != nil {
		registro.TemperaturaFinalReal = req.TemperaturaFinal
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		return s.registros.UpdateHorneadoTx(tx, registro)
	})
	if err != nil {
		return nil, err
	}
	resp := horneadoToResponse(registro)
	return &resp, nil
}

func (s *horneadoService) ActualizarDamper(ctx context.Context, masaID uuid.UUID, req dto.ActualizarDamperRequest) (*dto.RegistroHorneadoResponse, error) {
	registro, err := s.registroActivo(ctx, masaID)
	if err != nil {
		return nil, err
	}

	if req.UsoDamper {
		horno, err := s.catalogo.FindHorno(ctx, registro.TipoHornoID)
		if err != nil {
			return nil, &NotFoundError{Recurso: "horno"}
		}
		if !horno.TieneDamper {
			return nil, &ConfiguracionInvalidaError{
				Detalle: "el horno " + horno.Nombre + " no tiene damper",
			}
		}
	}

	registro.UsoDamperReal = req.UsoDamper
	registro.TiempoInicioDamperReal = req.TiempoInicioDamper
	registro.TiempoFinDamperReal = req.TiempoFinDamper

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		return s.registros.UpdateHorneadoTx(tx, registro)
	})
	if err != nil {
		return nil, err
	}
	resp := horneadoToResponse(registro)
	return &resp, nil
}

func (s *horneadoService) Completar(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.CompletarHorneadoRequest) (*dto.RegistroHorneadoResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	registro, err := s.registroActivo(ctx, masaID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	minutos := int(now.Sub(registro.HoraEntrada).Minutes())
	registro.HoraSalida = &now
	registro.TiempoTotalMinutos = &minutos
	registro.CalidadColor = req.CalidadColor
	registro.CalidadCoccion = req.CalidadCoccion
	if req.Observaciones != nil {
		registro.Observaciones = req.Observaciones
	}

	// CompletarEnTx has no successor for HORNEADO: it closes the masa
	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		if err := s.registros.UpdateHorneadoTx(tx, registro); err != nil {
			return err
		}
		return s.motor.CompletarEnTx(ctx, tx, masa, model.FaseHorneado)
	})
	if err != nil {
		return nil, err
	}

	resp := horneadoToResponse(registro)
	return &resp, nil
}

// registroActivo returns the most recent baking run that has not exited yet.
func (s *horneadoService) registroActivo(ctx context.Context, masaID uuid.UUID) (*model.RegistroHorneado, error) {
	registro, err := s.registros.LatestHorneado(ctx, masaID)
	if err != nil {
		return nil, err
	}
	if registro == nil {
		return nil, &PreconditionError{Detalle: "no hay horneado iniciado"}
	}
	if registro.HoraSalida != nil {
		return nil, &ConflictoError{Detalle: "el horneado ya fue completado"}
	}
	return registro, nil
}

func (s *horneadoService) ListarHornos(ctx context.Context) ([]dto.TipoHornoResponse, error) {
	hornos, err := s.catalogo.ListHornos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoHornoResponse, 0, len(hornos))
	for _, h := range hornos {
		resp = append(resp, dto.TipoHornoResponse{
			ID:                     h.ID.String(),
			Nombre:                 h.Nombre,
			Codigo:                 h.Codigo,
			Tipo:                   h.Tipo,
			CapacidadBandejas:      h.CapacidadBandejas,
			TieneDamper:            h.TieneDamper,
			TieneControlAutomatico: h.TieneControlAutomatico,
		})
	}
	return resp, nil
}

func (s *horneadoService) ListarProgramas(ctx context.Context, tipoMasa string) ([]dto.ProgramaHorneoResponse, error) {
	programas, err := s.catalogo.ListProgramas(ctx, tipoMasa)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProgramaHorneoResponse, 0, len(programas))
	for _, p := range programas {
		resp = append(resp, dto.ProgramaHorneoResponse{
			ID:                     p.ID.String(),
			NumeroPrograma:         p.NumeroPrograma,
			Nombre:                 p.Nombre,
			Descripcion:            p.Descripcion,
			TemperaturaInicial:     p.TemperaturaInicial,
			TemperaturaMedia:       p.TemperaturaMedia,
			TemperaturaFinal:       p.TemperaturaFinal,
			TiempoTemperaturaMedia: p.TiempoTemperaturaMedia,
			TiempoTotalMinutos:     p.TiempoTotalMinutos,
			UsaDamper:              p.UsaDamper,
			TiempoInicioDamper:     p.TiempoInicioDamper,
			TiempoFinDamper:        p.TiempoFinDamper,
			TipoMasaSugerido:       p.TipoMasaSugerido,
		})
	}
	return resp, nil
}

func horneadoToResponse(r *model.RegistroHorneado) dto.RegistroHorneadoResponse {
	return dto.RegistroHorneadoResponse{
		ID:                     r.ID.String(),
		HornoNombre:            r.HornoNombre,
		NumeroPrograma:         r.NumeroPrograma,
		HoraEntrada:            r.HoraEntrada.UTC().Format(time.RFC3339),
		HoraSalida:             formatTime(r.HoraSalida),
		TemperaturaInicialReal: r.TemperaturaInicialReal,
		TemperaturaMediaReal:   r.TemperaturaMediaReal,
		TemperaturaFinalReal:   r.TemperaturaFinalReal,
		UsoDamperReal:          r.UsoDamperReal,
		TiempoInicioDamperReal: r.TiempoInicioDamperReal,
		TiempoFinDamperReal:    r.TiempoFinDamperReal,
		TiempoTotalMinutos:     r.TiempoTotalMinutos,
		CalidadColor:           r.CalidadColor,
		CalidadCoccion:         r.CalidadCoccion,
		Observaciones:          r.Observaciones,
	}
}
