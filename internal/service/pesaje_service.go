package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PesajeService is the checklist engine gating the PESAJE phase.
type PesajeService interface {
	ObtenerChecklist(ctx context.Context, masaID uuid.UUID) (*dto.ChecklistResponse, error)
	ActualizarIngrediente(ctx context.Context, masaID, ingredienteID uuid.UUID, usuarioID *uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error)
	ConfirmarPesaje(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID) (*dto.ConfirmarPesajeResponse, error)
	EnviarCorreoEmpaque(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.EnviarCorreoEmpaqueRequest) (*dto.EnviarCorreoEmpaqueResponse, error)
}

type pesajeService struct {
	masas          repository.MasaRepository
	ingredientes   repository.IngredienteRepository
	fases          repository.FaseRepository
	productos      repository.ProductoMasaRepository
	notificaciones repository.NotificacionRepository
	motor          FasesService
	configuracion  ConfiguracionService
	notificador    Notificador
}

func NewPesajeService(
	masas repository.MasaRepository,
	ingredientes repository.IngredienteRepository,
	fases repository.FaseRepository,
	productos repository.ProductoMasaRepository,
	notificaciones repository.NotificacionRepository,
	motor FasesService,
	configuracion ConfiguracionService,
	notificador Notificador,
) PesajeService {
	return &pesajeService{
		masas:          masas,
		ingredientes:   ingredientes,
		fases:          fases,
		productos:      productos,
		notificaciones: notificaciones,
		motor:          motor,
		configuracion:  configuracion,
		notificador:    notificador,
	}
}

// resumenChecklist is the aggregate view over all checklist rows of a masa.
type resumenChecklist struct {
	total       int
	completados int
	faltantes   []string
	progreso    int
}

// resumir computes the aggregate gate. Progreso is partial-credit: every set
// flag counts, so an operator sees movement before any ingredient is fully
// weighed: round(100·(disponibles+verificados+pesados)/(3·total)).
func resumir(ings []model.IngredienteMasa) resumenChecklist {
	r := resumenChecklist{total: len(ings), faltantes: []string{}}
	if r.total == 0 {
		return r
	}
	flags := 0
	for i := range ings {
		ing := &ings[i]
		if ing.Disponible {
			flags++
		}
		if ing.Verificado {
			flags++
		}
		if ing.Pesado {
			flags++
		}
		if ing.ChecklistCompleto() {
			r.completados++
		} else {
			r.faltantes = append(r.faltantes, ing.IngredienteNombre)
		}
	}
	r.progreso = int(math.Round(100 * float64(flags) / float64(3*r.total)))
	return r
}

func (s *pesajeService) ObtenerChecklist(ctx context.Context, masaID uuid.UUID) (*dto.ChecklistResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	ings, err := s.ingredientes.ListByMasa(ctx, masaID)
	if err != nil {
		return nil, err
	}
	resumen := resumir(ings)

	resp := &dto.ChecklistResponse{
		MasaID:       masa.ID.String(),
		CodigoMasa:   masa.CodigoMasa,
		NombreMasa:   masa.NombreMasa,
		Ingredientes: make([]dto.IngredienteResponse, 0, len(ings)),
		Total:        resumen.total,
		Completados:  resumen.completados,
		Completo:     resumen.total > 0 && resumen.completados == resumen.total,
		Faltantes:    resumen.faltantes,
		Progreso:     resumen.progreso,
	}
	for i := range ings {
		resp.Ingredientes = append(resp.Ingredientes, ingredienteToResponse(&ings[i]))
	}
	return resp, nil
}

func (s *pesajeService) ActualizarIngrediente(ctx context.Context, masaID, ingredienteID uuid.UUID, usuarioID *uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, error) {
	ing, err := s.ingredientes.FindByID(ctx, ingredienteID)
	if err != nil || ing.MasaID != masaID {
		return nil, &NotFoundError{Recurso: "ingrediente"}
	}

	// Target flag state after applying the partial update
	disponible, verificado, pesado := ing.Disponible, ing.Verificado, ing.Pesado
	if req.Disponible != nil {
		disponible = *req.Disponible
	}
	if req.Verificado != nil {
		verificado = *req.Verificado
	}
	if req.Pesado != nil {
		pesado = *req.Pesado
	}

	// Flags advance strictly disponible → verificado → pesado. The resulting
	// state must keep the implication chain intact; clearing an earlier flag
	// while a later one stays set is equally invalid.
	if verificado && !disponible {
		return nil, &PreconditionError{Detalle: fmt.Sprintf("el ingrediente %s debe marcarse disponible antes de verificarse", ing.IngredienteNombre)}
	}
	if pesado && !verificado {
		return nil, &PreconditionError{Detalle: fmt.Sprintf("el ingrediente %s debe verificarse antes de pesarse", ing.IngredienteNombre)}
	}

	if pesado && !ing.Pesado {
		if req.PesoReal == nil && ing.PesoReal == nil {
			return nil, &PreconditionError{Detalle: fmt.Sprintf("peso_real es obligatorio para pesar %s", ing.IngredienteNombre)}
		}
		now := time.Now()
		ing.TimestampPeso = &now
		ing.UsuarioPeso = usuarioID
	}

	ing.Disponible = disponible
	ing.Verificado = verificado
	ing.Pesado = pesado

	if req.PesoReal != nil {
		peso := *req.PesoReal
		diferencia := peso.Sub(ing.CantidadGramos)
		ing.PesoReal = &peso
		ing.DiferenciaGramos = &diferencia
	}
	if req.Lote != nil {
		ing.Lote = req.Lote
	}
	if req.FechaVencimiento != nil {
		venc, err := time.Parse("2006-01-02", *req.FechaVencimiento)
		if err != nil {
			return nil, &PreconditionError{Detalle: "fecha_vencimiento invalida"}
		}
		ing.FechaVencimiento = &venc
	}
	if req.Observaciones != nil {
		ing.Observaciones = req.Observaciones
	}

	if err := s.ingredientes.Update(ctx, ing); err != nil {
		return nil, err
	}

	s.sincronizarPorcentajeFase(ctx, masaID)

	resp := ingredienteToResponse(ing)
	return &resp, nil
}

// sincronizarPorcentajeFase mirrors the checklist progress onto the PESAJE
// progress row so the phase board shows live movement. Best-effort: a failure
// here never fails the checklist update itself.
func (s *pesajeService) sincronizarPorcentajeFase(ctx context.Context, masaID uuid.UUID) {
	ings, err := s.ingredientes.ListByMasa(ctx, masaID)
	if err != nil {
		return
	}
	row, err := s.fases.FindByMasaYFase(ctx, masaID, model.FasePesaje)
	if err != nil || row.Estado != model.EstadoEnProgreso {
		return
	}
	resumen := resumir(ings)
	porcentaje := resumen.progreso
	if porcentaje > 99 {
		// 100 is reserved for COMPLETADA; confirmar pesaje sets it
		porcentaje = 99
	}
	row.PorcentajeCompletado = porcentaje
	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		return s.fases.UpdateTx(tx, row)
	})
	if err != nil {
		log.Warn().Err(err).Str("masa_id", masaID.String()).Msg("pesaje: no se pudo sincronizar porcentaje de fase")
	}
}

func (s *pesajeService) ConfirmarPesaje(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID) (*dto.ConfirmarPesajeResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	ings, err := s.ingredientes.ListByMasa(ctx, masaID)
	if err != nil {
		return nil, err
	}

	resumen := resumir(ings)
	if resumen.total == 0 || resumen.completados != resumen.total {
		return nil, &ChecklistIncompletoError{
			Total:       resumen.total,
			Completados: resumen.completados,
			Faltantes:   resumen.faltantes,
		}
	}

	err = runTx(ctx, s.fases.DB(), func(tx *gorm.DB) error {
		return s.motor.CompletarEnTx(ctx, tx, masa, model.FasePesaje)
	})
	if err != nil {
		return nil, err
	}

	return &dto.ConfirmarPesajeResponse{
		MasaID:          masa.ID.String(),
		FaseCompletada:  model.FasePesaje,
		FaseDesbloquada: model.FaseAmasado,
	}, nil
}

func (s *pesajeService) EnviarCorreoEmpaque(ctx context.Context, masaID uuid.UUID, usuarioID *uuid.UUID, req dto.EnviarCorreoEmpaqueRequest) (*dto.EnviarCorreoEmpaqueResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	row, err := s.fases.FindByMasaYFase(ctx, masaID, model.FasePesaje)
	if err != nil {
		return nil, &NotFoundError{Recurso: "fase PESAJE"}
	}
	if row.Estado != model.EstadoCompletada {
		return nil, &PreconditionError{Detalle: "el pesaje debe estar completado antes de notificar a empaque"}
	}

	destinatarios := req.Destinatarios
	if len(destinatarios) == 0 {
		destinatarios, err = s.configuracion.ObtenerCorreosEmpaque(ctx)
		if err != nil || len(destinatarios) == 0 {
			return nil, &ConfiguracionInvalidaError{Detalle: "no hay correos de empaque configurados"}
		}
	}

	asunto := fmt.Sprintf("Pesaje completado — %s (%s)", masa.NombreMasa, masa.CodigoMasa)
	cuerpo := s.construirCuerpoEmpaque(ctx, masa, req.Mensaje)

	notificacion := &model.NotificacionEmpaque{
		ID:            uuid.New(),
		MasaID:        masa.ID,
		Destinatarios: destinatarios,
		Asunto:        asunto,
		Cuerpo:        cuerpo,
		EstadoEnvio:   model.EnvioPendiente,
		EnviadoPor:    usuarioID,
	}
	if err := s.notificaciones.Create(ctx, notificacion); err != nil {
		return nil, err
	}

	// Delivery is async and decoupled: a dispatch failure leaves the row
	// PENDIENTE for the retry cron and never fails this request.
	if err := s.notificador.NotificarEmpaque(ctx, notificacion.ID, destinatarios, asunto, cuerpo); err != nil {
		log.Warn().Err(err).Str("masa_id", masaID.String()).Msg("pesaje: no se pudo encolar la notificacion de empaque")
	}

	return &dto.EnviarCorreoEmpaqueResponse{
		NotificacionID: notificacion.ID.String(),
		Destinatarios:  destinatarios,
		EstadoEnvio:    notificacion.EstadoEnvio,
	}, nil
}

func (s *pesajeService) construirCuerpoEmpaque(ctx context.Context, masa *model.MasaProduccion, mensaje *string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "La masa %s (%s) completó el pesaje el %s.\n\n",
		masa.NombreMasa, masa.CodigoMasa, time.Now().Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Kilos programados (con merma): %s kg\n", masa.TotalKilosConMerma.StringFixed(3))

	if productos, err := s.productos.ListByMasa(ctx, masa.ID); err == nil && len(productos) > 0 {
		b.WriteString("\nProductos a empacar:\n")
		for _, p := range productos {
			fmt.Fprintf(&b, "  - %s (%s): %d unidades programadas\n",
				p.ProductoNombre, p.ProductoCodigo, p.UnidadesProgramadas)
		}
	}
	if mensaje != nil && *mensaje != "" {
		b.WriteString("\n" + *mensaje + "\n")
	}
	return b.String()
}

func ingredienteToResponse(ing *model.IngredienteMasa) dto.IngredienteResponse {
	var venc *string
	if ing.FechaVencimiento != nil {
		v := ing.FechaVencimiento.Format("2006-01-02")
		venc = &v
	}
	return dto.IngredienteResponse{
		ID:                 ing.ID.String(),
		IngredienteNombre:  ing.IngredienteNombre,
		CodigoSAP:          ing.CodigoSAP,
		CantidadGramos:     ing.CantidadGramos,
		OrdenVisualizacion: ing.OrdenVisualizacion,
		Disponible:         ing.Disponible,
		Verificado:         ing.Verificado,
		Pesado:             ing.Pesado,
		PesoReal:           ing.PesoReal,
		DiferenciaGramos:   ing.DiferenciaGramos,
		Lote:               ing.Lote,
		FechaVencimiento:   venc,
		Observaciones:      ing.Observaciones,
		TimestampPeso:      formatTime(ing.TimestampPeso),
	}
}
