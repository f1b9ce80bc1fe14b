package repository

import (
	"context"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IngredienteRepository interface {
	ListByMasa(ctx context.Context, masaID uuid.UUID) ([]model.IngredienteMasa, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.IngredienteMasa, error)
	Update(ctx context.Context, ing *model.IngredienteMasa) error
	CreateBatchTx(tx *gorm.DB, ings []model.IngredienteMasa) error
	DB() *gorm.DB
}

type ingredienteRepo struct{ db *gorm.DB }

func NewIngredienteRepository(db *gorm.DB) IngredienteRepository { return &ingredienteRepo{db: db} }

func (r *ingredienteRepo) DB() *gorm.DB { return r.db }

func (r *ingredienteRepo) ListByMasa(ctx context.Context, masaID uuid.UUID) ([]model.IngredienteMasa, error) {
	var ings []model.IngredienteMasa
	err := r.db.WithContext(ctx).
		Where("masa_id = ?", masaID).
		Order("orden_visualizacion ASC").
		Find(&ings).Error
	return ings, err
}

func (r *ingredienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.IngredienteMasa, error) {
	var ing model.IngredienteMasa
	err := r.db.WithContext(ctx).First(&ing, "id = ?", id).Error
	return &ing, err
}

func (r *ingredienteRepo) Update(ctx context.Context, ing *model.IngredienteMasa) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *ingredienteRepo) CreateBatchTx(tx *gorm.DB, ings []model.IngredienteMasa) error {
	if len(ings) == 0 {
		return nil
	}
	return tx.Create(&ings).Error
}
