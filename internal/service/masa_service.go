package service

import (
	"context"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var mil = decimal.NewFromInt(1000)

type MasaService interface {
	Listar(ctx context.Context, filter dto.MasaFilter) (*dto.MasaListResponse, error)
	ObtenerDetalle(ctx context.Context, masaID uuid.UUID) (*dto.MasaDetailResponse, error)
	ActualizarProducto(ctx context.Context, masaID, productoID uuid.UUID, req dto.ActualizarProductoMasaRequest) (*dto.ProductoMasaResponse, error)
}

type masaService struct {
	masas     repository.MasaRepository
	fases     repository.FaseRepository
	productos repository.ProductoMasaRepository
}

func NewMasaService(
	masas repository.MasaRepository,
	fases repository.FaseRepository,
	productos repository.ProductoMasaRepository,
) MasaService {
	return &masaService{masas: masas, fases: fases, productos: productos}
}

func (s *masaService) Listar(ctx context.Context, filter dto.MasaFilter) (*dto.MasaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	masas, total, err := s.masas.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MasaListItem, 0, len(masas))
	for i := range masas {
		m := &masas[i]
		items = append(items, dto.MasaListItem{
			ID:                 m.ID.String(),
			CodigoMasa:         m.CodigoMasa,
			TipoMasa:           m.TipoMasa,
			NombreMasa:         m.NombreMasa,
			FechaProduccion:    m.FechaProduccion.Format("2006-01-02"),
			TotalKilosBase:     m.TotalKilosBase,
			TotalKilosConMerma: m.TotalKilosConMerma,
			Estado:             m.Estado,
			FaseActual:         m.FaseActual,
			Productos:          len(m.Productos),
		})
	}
	return &dto.MasaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *masaService) ObtenerDetalle(ctx context.Context, masaID uuid.UUID) (*dto.MasaDetailResponse, error) {
	masa, err := s.masas.FindByID(ctx, masaID)
	if err != nil {
		return nil, &NotFoundError{Recurso: "masa"}
	}
	fases, err := s.fases.ListByMasa(ctx, masaID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MasaDetailResponse{
		ID:                   masa.ID.String(),
		CodigoMasa:           masa.CodigoMasa,
		TipoMasa:             masa.TipoMasa,
		NombreMasa:           masa.NombreMasa,
		FechaProduccion:      masa.FechaProduccion.Format("2006-01-02"),
		TotalKilosBase:       masa.TotalKilosBase,
		TotalKilosConMerma:   masa.TotalKilosConMerma,
		PorcentajeMerma:      masa.PorcentajeMerma,
		FactorAbsorcionUsado: masa.FactorAbsorcionUsado,
		Estado:               masa.Estado,
		FaseActual:           masa.FaseActual,
		Productos:            make([]dto.ProductoMasaResponse, 0, len(masa.Productos)),
		Ingredientes:         make([]dto.IngredienteResponse, 0, len(masa.Ingredientes)),
		Fases:                make([]dto.ProgresoFaseResponse, 0, len(fases)),
	}
	for i := range masa.Productos {
		resp.Productos = append(resp.Productos, productoToResponse(&masa.Productos[i]))
	}
	for i := range masa.Ingredientes {
		resp.Ingredientes = append(resp.Ingredientes, ingredienteToResponse(&masa.Ingredientes[i]))
	}
	for i := range fases {
		resp.Fases = append(resp.Fases, progresoToResponse(&fases[i]))
	}
	return resp, nil
}

// ActualizarProducto reprograms the units of one product; kilos_programados
// is always derived from gramaje_unitario, never taken from the client.
func (s *masaService) ActualizarProducto(ctx context.Context, masaID, productoID uuid.UUID, req dto.ActualizarProductoMasaRequest) (*dto.ProductoMasaResponse, error) {
	producto, err := s.productos.FindByID(ctx, productoID)
	if err != nil || producto.MasaID != masaID {
		return nil, &NotFoundError{Recurso: "producto"}
	}

	producto.UnidadesProgramadas = req.UnidadesProgramadas
	producto.KilosProgramados = producto.GramajeUnitario.
		Mul(decimal.NewFromInt(int64(req.UnidadesProgramadas))).
		Div(mil)

	if err := s.productos.Update(ctx, producto); err != nil {
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}
