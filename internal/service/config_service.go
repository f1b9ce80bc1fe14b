package service

import (
	"context"
	"strings"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/config"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// factorAbsorcionDefecto applies when nobody configured the flour absorption
// factor yet: quantities pass through unscaled.
var factorAbsorcionDefecto = decimal.NewFromInt(1)

// ConfiguracionService exposes the global runtime settings stored in
// configuracion_sistema, with env-config fallbacks.
type ConfiguracionService interface {
	ObtenerFactorAbsorcion(ctx context.Context) (decimal.Decimal, error)
	ActualizarFactorAbsorcion(ctx context.Context, usuarioID *uuid.UUID, req dto.ActualizarFactorAbsorcionRequest) (*dto.FactorAbsorcionResponse, error)
	ObtenerCorreosEmpaque(ctx context.Context) ([]string, error)
	ActualizarCorreosEmpaque(ctx context.Context, usuarioID *uuid.UUID, req dto.ActualizarCorreosEmpaqueRequest) (*dto.CorreosEmpaqueResponse, error)
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
	cfg  *config.Config
}

func NewConfiguracionService(repo repository.ConfiguracionRepository, cfg *config.Config) ConfiguracionService {
	return &configuracionService{repo: repo, cfg: cfg}
}

func (s *configuracionService) ObtenerFactorAbsorcion(ctx context.Context) (decimal.Decimal, error) {
	row, err := s.repo.Get(ctx, model.ClaveFactorAbsorcion)
	if err != nil {
		return factorAbsorcionDefecto, nil
	}
	valor, err := decimal.NewFromString(row.Valor)
	if err != nil {
		return factorAbsorcionDefecto, nil
	}
	return valor, nil
}

func (s *configuracionService) ActualizarFactorAbsorcion(ctx context.Context, usuarioID *uuid.UUID, req dto.ActualizarFactorAbsorcionRequest) (*dto.FactorAbsorcionResponse, error) {
	if req.Valor.LessThanOrEqual(decimal.Zero) {
		return nil, &ConfiguracionInvalidaError{Detalle: "el factor de absorcion debe ser mayor que cero"}
	}
	if err := s.repo.Upsert(ctx, model.ClaveFactorAbsorcion, req.Valor.String(), usuarioID); err != nil {
		return nil, err
	}
	return &dto.FactorAbsorcionResponse{
		Valor:     req.Valor,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *configuracionService) ObtenerCorreosEmpaque(ctx context.Context) ([]string, error) {
	valor := s.cfg.CorreosEmpaque
	if row, err := s.repo.Get(ctx, model.ClaveCorreosEmpaque); err == nil && row.Valor != "" {
		valor = row.Valor
	}
	correos := []string{}
	for _, c := range strings.Split(valor, ",") {
		if c = strings.TrimSpace(c); c != "" {
			correos = append(correos, c)
		}
	}
	return correos, nil
}

func (s *configuracionService) ActualizarCorreosEmpaque(ctx context.Context, usuarioID *uuid.UUID, req dto.ActualizarCorreosEmpaqueRequest) (*dto.CorreosEmpaqueResponse, error) {
	valor := strings.Join(req.Correos, ",")
	if err := s.repo.Upsert(ctx, model.ClaveCorreosEmpaque, valor, usuarioID); err != nil {
		return nil, err
	}
	return &dto.CorreosEmpaqueResponse{
		Correos:   req.Correos,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
