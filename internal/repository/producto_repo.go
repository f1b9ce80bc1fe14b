package repository

import (
	"context"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoMasaRepository interface {
	ListByMasa(ctx context.Context, masaID uuid.UUID) ([]model.ProductoMasa, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoMasa, error)
	Update(ctx context.Context, p *model.ProductoMasa) error
	CreateBatchTx(tx *gorm.DB, productos []model.ProductoMasa) error
	DB() *gorm.DB
}

type productoMasaRepo struct{ db *gorm.DB }

func NewProductoMasaRepository(db *gorm.DB) ProductoMasaRepository { return &productoMasaRepo{db: db} }

func (r *productoMasaRepo) DB() *gorm.DB { return r.db }

func (r *productoMasaRepo) ListByMasa(ctx context.Context, masaID uuid.UUID) ([]model.ProductoMasa, error) {
	var productos []model.ProductoMasa
	err := r.db.WithContext(ctx).
		Where("masa_id = ?", masaID).
		Order("producto_codigo ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoMasaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoMasa, error) {
	var p model.ProductoMasa
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoMasaRepo) Update(ctx context.Context, p *model.ProductoMasa) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoMasaRepo) CreateBatchTx(tx *gorm.DB, productos []model.ProductoMasa) error {
	if len(productos) == 0 {
		return nil
	}
	return tx.Create(&productos).Error
}
