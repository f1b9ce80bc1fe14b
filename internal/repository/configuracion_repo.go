package repository

import (
	"context"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfiguracionRepository interface {
	Get(ctx context.Context, clave string) (*model.ConfiguracionSistema, error)
	Upsert(ctx context.Context, clave, valor string, updatedBy *uuid.UUID) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Get(ctx context.Context, clave string) (*model.ConfiguracionSistema, error) {
	var c model.ConfiguracionSistema
	err := r.db.WithContext(ctx).First(&c, "clave = ?", clave).Error
	return &c, err
}

func (r *configuracionRepo) Upsert(ctx context.Context, clave, valor string, updatedBy *uuid.UUID) error {
	row := model.ConfiguracionSistema{Clave: clave, Valor: valor, UpdatedBy: updatedBy}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_by", "updated_at"}),
	}).Create(&row).Error
}
