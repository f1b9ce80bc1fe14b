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

// FormadoService drives the forming station: machine selection, run records
// and phase completion for dough types that require forming.
type FormadoService interface {
	ObtenerInfo(ctx context.Context, masaID uuid.UUID) (*dto.FormadoInfoResponse, error)
	Iniciar(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.IniciarFormadoRequest) (*dto.RegistroFormadoResponse, error)
	Completar(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.CompletarFormadoRequest) (*dto.RegistroFormadoResponse, error)
}

type formadoService struct {
	masas     repository.MasaRepository
	fases     repository.FaseRepository
	registros repository.RegistroRepository
	catalogo  repository.CatalogoRepository
	productos repository.ProductoMasaRepository
	motor     FasesService
}

func NewFormadoService(
	masas repository.MasaRepository,
	fases repository.FaseRepository,
	registros repository.RegistroRepository,
	catalogo repository.CatalogoRepository,
	productos repository.ProductoMasaRepository,
	motor FasesService,
) FormadoService {
	return &formadoService{
		masas:     masas,
		fases:     fases,
		registros: registros,
		catalogo:  catalogo,
		productos: productos,
		motor:     motor,
	}
}

func (s *formadoService) ObtenerInfo(ctx context.Context, masaID uuid.UUID) (*dto.FormadoInfoResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	tipo, err := s.catalogo.FindTipoMasa(ctx, masa.TipoMasa)
	if err != nil {
		return nil, &ConfiguracionInvalidaError{Detalle: "tipo de masa " + masa.TipoMasa + " no está en el catálogo"}
	}
	row, err := s.fases.FindByMasaYFase(ctx, masaID, model.FaseFormado)
	if err != nil {
		return nil, &NotFoundError{Recurso: "fase FORMADO"}
	}

	productos, err := s.productos.ListByMasa(ctx, masaID)
	if err != nil {
		return nil, err
	}
	codigos := make([]string, 0, len(productos))
	for _, p := range productos {
		codigos = append(codigos, p.ProductoCodigo)
	}

	specs, err := s.catalogo.ListEspecificacionesFormado(ctx, masa.TipoMasa, codigos)
	if err != nil {
		return nil, err
	}
	maquinas, err := s.catalogo.ListMaquinasFormado(ctx)
	if err != nil {
		return nil, err
	}
	ultimo, err := s.registros.LatestFormado(ctx, masaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.FormadoInfoResponse{
		MasaID:           masa.ID.String(),
		CodigoMasa:       masa.CodigoMasa,
		TipoMasa:         masa.TipoMasa,
		RequiereFormado:  tipo.RequiereFormado,
		EstadoFase:       row.Estado,
		Productos:        make([]dto.ProductoMasaResponse, 0, len(productos)),
		Especificaciones: make([]dto.EspecificacionFormadoResponse, 0, len(specs)),
		Maquinas:         make([]dto.MaquinaFormadoResponse, 0, len(maquinas)),
	}
	for i := range productos {
		resp.Productos = append(resp.Productos, productoToResponse(&productos[i]))
	}
	for _, sp := range specs {
		resp.Especificaciones = append(resp.Especificaciones, dto.EspecificacionFormadoResponse{
			ProductoCodigo: sp.ProductoCodigo,
			TipoMasa:       sp.TipoMasa,
			LargoCm:        sp.LargoCm,
			AnchoCm:        sp.AnchoCm,
			AltoCm:         sp.AltoCm,
			DiametroCm:     sp.DiametroCm,
			ToleranciaCm:   sp.ToleranciaCm,
		})
	}
	for _, m := range maquinas {
		resp.Maquinas = append(resp.Maquinas, dto.MaquinaFormadoResponse{
			ID:          m.ID.String(),
			Nombre:      m.Nombre,
			Codigo:      m.Codigo,
			Tipo:        m.Tipo,
			CapacidadKg: m.CapacidadKg,
		})
	}
	if ultimo != nil {
		r := formadoToResponse(ultimo)
		resp.UltimoRegistro = &r
	}
	return resp, nil
}

func (s *formadoService) Iniciar(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.IniciarFormadoRequest) (*dto.RegistroFormadoResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	tipo, err := s.catalogo.FindTipoMasa(ctx, masa.TipoMasa)
	if err != nil {
		return nil, &ConfiguracionInvalidaError{Detalle: "tipo de masa " + masa.TipoMasa + " no está en el catálogo"}
	}
	if !tipo.RequiereFormado {
		return nil, &ConfiguracionInvalidaError{Detalle: "el tipo de masa " + masa.TipoMasa + " no requiere formado"}
	}

	registro := &model.RegistroFormado{
		MasaID:        masa.ID,
		MaquinaNombre: req.MaquinaNombre,
		FechaInicio:   time.Now(),
		UsuarioID:     usuarioID,
		Observaciones: req.Observaciones,
	}
	if req.MaquinaFormadoID != nil {
		mid, err := uuid.Parse(*req.MaquinaFormadoID)
		if err == nil {
			registro.MaquinaFormadoID = &mid
		}
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		// IniciarEnTx applies the DIVISION-completed gate
		if err := s.motor.IniciarEnTx(ctx, tx, masa, model.FaseFormado, usuarioID); err != nil {
			return err
		}
		return s.registros.CreateFormadoTx(tx, registro)
	})
	if err != nil {
		return nil, err
	}

	resp := formadoToResponse(registro)
	return &resp, nil
}

func (s *formadoService) Completar(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.CompletarFormadoRequest) (*dto.RegistroFormadoResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	registro, err := s.registros.LatestFormado(ctx, masaID)
	if err != nil {
		return nil, err
	}
	if registro == nil {
		return nil, &PreconditionError{Detalle: "no hay formado iniciado"}
	}
	if registro.FechaFin != nil {
		return nil, &ConflictoError{Detalle: "el formado ya fue completado"}
	}

	now := time.Now()
	minutos := int(now.Sub(registro.FechaInicio).Minutes())
	registro.FechaFin = &now
	registro.DuracionMinutos = &minutos
	if req.Observaciones != nil {
		registro.Observaciones = req.Observaciones
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		if err := s.registros.UpdateFormadoTx(tx, registro); err != nil {
			return err
		}
		return s.motor.CompletarEnTx(ctx, tx, masa, model.FaseFormado)
	})
	if err != nil {
		return nil, err
	}

	resp := formadoToResponse(registro)
	return &resp, nil
}

func formadoToResponse(r *model.RegistroFormado) dto.RegistroFormadoResponse {
	return dto.RegistroFormadoResponse{
		ID:              r.ID.String(),
		MaquinaNombre:   r.MaquinaNombre,
		FechaInicio:     r.FechaInicio.UTC().Format(time.RFC3339),
		FechaFin:        formatTime(r.FechaFin),
		DuracionMinutos: r.DuracionMinutos,
		Observaciones:   r.Observaciones,
	}
}

func productoToResponse(p *model.ProductoMasa) dto.ProductoMasaResponse {
	return dto.ProductoMasaResponse{
		ID:                  p.ID.String(),
		ProductoCodigo:      p.ProductoCodigo,
		ProductoNombre:      p.ProductoNombre,
		Presentacion:        p.Presentacion,
		GramajeUnitario:     p.GramajeUnitario,
		UnidadesPedidas:     p.UnidadesPedidas,
		UnidadesProgramadas: p.UnidadesProgramadas,
		KilosProgramados:    p.KilosProgramados,
		UnidadesProducidas:  p.UnidadesProducidas,
		CantidadDivisiones:  p.CantidadDivisiones,
	}
}
