package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/infra"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// porcentajeMerma is the shrinkage applied over the base dough weight when a
// masa is created from SAP orders.
var porcentajeMerma = decimal.NewFromFloat(2.0)

var cien = decimal.NewFromInt(100)

// SAPGateway is the slice of the Service Layer client the ingestion needs.
type SAPGateway interface {
	ObtenerOrdenesProduccion(ctx context.Context, fecha string) ([]infra.OrdenProduccionSAP, error)
}

// SAPSyncService turns SAP production orders into masas: one masa per dough
// type per production date, with products, scaled ingredients and the seven
// phase rows seeded in a single transaction.
type SAPSyncService interface {
	Sincronizar(ctx context.Context, usuarioID *uuid.UUID, req dto.SincronizarOrdenesRequest) (*dto.SincronizarOrdenesResponse, error)
}

type sapSyncService struct {
	gateway      SAPGateway
	masas        repository.MasaRepository
	fases        repository.FaseRepository
	productos    repository.ProductoMasaRepository
	ingredientes repository.IngredienteRepository
	catalogo     repository.CatalogoRepository
	configs      ConfiguracionService
}

func NewSAPSyncService(
	gateway SAPGateway,
	masas repository.MasaRepository,
	fases repository.FaseRepository,
	productos repository.ProductoMasaRepository,
	ingredientes repository.IngredienteRepository,
	catalogo repository.CatalogoRepository,
	configs ConfiguracionService,
) SAPSyncService {
	return &sapSyncService{
		gateway:      gateway,
		masas:        masas,
		fases:        fases,
		productos:    productos,
		ingredientes: ingredientes,
		catalogo:     catalogo,
		configs:      configs,
	}
}

func (s *sapSyncService) Sincronizar(ctx context.Context, usuarioID *uuid.UUID, req dto.SincronizarOrdenesRequest) (*dto.SincronizarOrdenesResponse, error) {
	fechaProduccion, err := time.Parse("2006-01-02", req.FechaProduccion)
	if err != nil {
		return nil, &PreconditionError{Detalle: "fecha_produccion inválida: " + req.FechaProduccion}
	}

	factor, err := s.configs.ObtenerFactorAbsorcion(ctx)
	if err != nil {
		return nil, err
	}

	ordenes, err := s.gateway.ObtenerOrdenesProduccion(ctx, req.FechaProduccion)
	if err != nil {
		return nil, fmt.Errorf("consultar órdenes SAP: %w", err)
	}

	resp := &dto.SincronizarOrdenesResponse{
		FechaProduccion: req.FechaProduccion,
		OrdenesLeidas:   len(ordenes),
		FactorAbsorcion: factor,
		Detalle:         []dto.MasaCreadaDetalle{},
	}

	grupos := map[string][]infra.OrdenProduccionSAP{}
	for _, o := range ordenes {
		if o.TipoMasa == "" {
			log.Warn().Int("doc_entry", o.DocEntry).Str("item_code", o.ItemCode).
				Msg("orden SAP sin U_TipoMasa, omitida")
			resp.OrdenesOmitidas++
			continue
		}
		grupos[o.TipoMasa] = append(grupos[o.TipoMasa], o)
	}

	tipos := make([]string, 0, len(grupos))
	for tipo := range grupos {
		tipos = append(tipos, tipo)
	}
	sort.Strings(tipos)

	for _, tipo := range tipos {
		grupo := grupos[tipo]
		codigo := codigoMasa(req.FechaProduccion, tipo)

		if _, err := s.masas.FindByCodigo(ctx, codigo); err == nil {
			log.Info().Str("codigo_masa", codigo).Int("ordenes", len(grupo)).
				Msg("masa ya sincronizada, órdenes omitidas")
			resp.OrdenesOmitidas += len(grupo)
			continue
		}

		detalle, err := s.crearMasa(ctx, usuarioID, codigo, tipo, fechaProduccion, grupo, factor)
		if err != nil {
			return nil, fmt.Errorf("crear masa %s: %w", codigo, err)
		}
		resp.MasasCreadas++
		resp.Detalle = append(resp.Detalle, *detalle)
	}

	return resp, nil
}

// codigoMasa builds the stable code "MASA-20250901-INTEGRAL" that makes the
// sync idempotent per date and dough type.
func codigoMasa(fecha, tipo string) string {
	return fmt.Sprintf("MASA-%s-%s", strings.ReplaceAll(fecha, "-", ""), strings.ToUpper(tipo))
}

func (s *sapSyncService) crearMasa(
	ctx context.Context,
	usuarioID *uuid.UUID,
	codigo, tipo string,
	fechaProduccion time.Time,
	grupo []infra.OrdenProduccionSAP,
	factor decimal.Decimal,
) (*dto.MasaCreadaDetalle, error) {
	nombre := "Masa " + tipo
	if cat, err := s.catalogo.FindTipoMasa(ctx, tipo); err == nil {
		nombre = cat.Nombre
	} else {
		log.Warn().Str("tipo_masa", tipo).Msg("tipo de masa sin entrada en el catálogo")
	}

	masaID := uuid.New()
	productos := make([]model.ProductoMasa, 0, len(grupo))
	relaciones := make([]model.OrdenMasaRelacion, 0, len(grupo))
	totalBase := decimal.Zero

	// Ingredient lines aggregate across every order of the group, keyed by
	// SAP item code, preserving first-seen order.
	type acum struct {
		nombre string
		gramos decimal.Decimal
	}
	codigosIng := []string{}
	porIngrediente := map[string]*acum{}

	for _, o := range grupo {
		unidades := int(o.PlannedQuantity.IntPart())
		kilos := o.GramajeUnitario.Mul(o.PlannedQuantity).Div(mil)
		totalBase = totalBase.Add(kilos)

		productos = append(productos, model.ProductoMasa{
			MasaID:              masaID,
			ProductoCodigo:      o.ItemCode,
			ProductoNombre:      o.ProductDescription,
			Presentacion:        o.Presentacion,
			GramajeUnitario:     o.GramajeUnitario,
			UnidadesPedidas:     unidades,
			UnidadesProgramadas: unidades,
			KilosProgramados:    kilos,
			CantidadDivisiones:  unidades,
		})
		relaciones = append(relaciones, model.OrdenMasaRelacion{
			MasaID:           masaID,
			OrdenSAPDocEntry: o.DocEntry,
			OrdenSAPDocNum:   o.DocNum,
			ItemCode:         o.ItemCode,
			CantidadPlaneada: o.PlannedQuantity,
		})

		for _, linea := range o.Lineas {
			if a, ok := porIngrediente[linea.ItemCode]; ok {
				a.gramos = a.gramos.Add(linea.PlannedQuantity)
				continue
			}
			codigosIng = append(codigosIng, linea.ItemCode)
			porIngrediente[linea.ItemCode] = &acum{
				nombre: linea.ItemName,
				gramos: linea.PlannedQuantity,
			}
		}
	}

	totalConMerma := totalBase.Mul(cien.Add(porcentajeMerma)).Div(cien)

	ingredientes := make([]model.IngredienteMasa, 0, len(codigosIng))
	for i, code := range codigosIng {
		a := porIngrediente[code]
		codigoSAP := code
		ingredientes = append(ingredientes, model.IngredienteMasa{
			MasaID:             masaID,
			IngredienteNombre:  a.nombre,
			CodigoSAP:          &codigoSAP,
			CantidadGramos:     a.gramos.Mul(factor).Round(2),
			OrdenVisualizacion: i,
		})
	}

	masa := &model.MasaProduccion{
		ID:                   masaID,
		CodigoMasa:           codigo,
		TipoMasa:             tipo,
		NombreMasa:           nombre,
		FechaProduccion:      fechaProduccion,
		TotalKilosBase:       totalBase.Round(3),
		TotalKilosConMerma:   totalConMerma.Round(3),
		PorcentajeMerma:      porcentajeMerma,
		FactorAbsorcionUsado: factor,
		Estado:               model.MasaPlanificacion,
		FaseActual:           model.FasePesaje,
		CreatedBy:            usuarioID,
	}

	err := runTx(ctx, s.masas.DB(), func(tx *gorm.DB) error {
		if err := s.masas.Create(ctx, tx, masa); err != nil {
			return err
		}
		if err := s.productos.CreateBatchTx(tx, productos); err != nil {
			return err
		}
		if err := s.ingredientes.CreateBatchTx(tx, ingredientes); err != nil {
			return err
		}
		for i := range relaciones {
			if err := s.masas.CreateOrdenRelacionTx(tx, &relaciones[i]); err != nil {
				return err
			}
		}
		return s.crearFasesTx(tx, masaID)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("codigo_masa", codigo).
		Str("tipo_masa", tipo).
		Int("ordenes", len(grupo)).
		Str("total_kilos", masa.TotalKilosConMerma.String()).
		Msg("masa creada desde SAP")

	return &dto.MasaCreadaDetalle{
		MasaID:             masaID.String(),
		CodigoMasa:         codigo,
		TipoMasa:           tipo,
		Ordenes:            len(grupo),
		Productos:          len(productos),
		Ingredientes:       len(ingredientes),
		TotalKilosBase:     masa.TotalKilosBase,
		TotalKilosConMerma: masa.TotalKilosConMerma,
	}, nil
}

// crearFasesTx seeds the seven phase rows. Everything starts BLOQUEADA except
// PESAJE, which opens immediately so the scale station can work while
// planning reviews the masa.
func (s *sapSyncService) crearFasesTx(tx *gorm.DB, masaID uuid.UUID) error {
	now := time.Now()
	for _, fase := range model.FasesOrdenadas {
		row := &model.ProgresoFase{
			MasaID: masaID,
			Fase:   fase,
			Estado: model.EstadoBloqueada,
		}
		if fase == model.FasePesaje {
			row.Estado = model.EstadoEnProgreso
			row.FechaInicio = &now
		}
		if err := s.fases.CreateTx(tx, row); err != nil {
			return err
		}
	}
	return nil
}
