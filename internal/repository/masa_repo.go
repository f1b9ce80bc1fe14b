package repository

import (
	"context"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/dto"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MasaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *model.MasaProduccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MasaProduccion, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.MasaProduccion, error)
	List(ctx context.Context, filter dto.MasaFilter) ([]model.MasaProduccion, int64, error)
	UpdateFaseActualTx(tx *gorm.DB, id uuid.UUID, fase string) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	CreateOrdenRelacionTx(tx *gorm.DB, rel *model.OrdenMasaRelacion) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type masaRepo struct{ db *gorm.DB }

func NewMasaRepository(db *gorm.DB) MasaRepository { return &masaRepo{db: db} }

func (r *masaRepo) DB() *gorm.DB { return r.db }

func (r *masaRepo) Create(ctx context.Context, tx *gorm.DB, m *model.MasaProduccion) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *masaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MasaProduccion, error) {
	var m model.MasaProduccion
	err := r.db.WithContext(ctx).
		Preload("Productos").
		Preload("Ingredientes", func(db *gorm.DB) *gorm.DB {
			return db.Order("orden_visualizacion ASC")
		}).
		First(&m, "id = ?", id).Error
	return &m, err
}

func (r *masaRepo) FindByCodigo(ctx context.Context, codigo string) (*model.MasaProduccion, error) {
	var m model.MasaProduccion
	err := r.db.WithContext(ctx).Where("codigo_masa = ?", codigo).First(&m).Error
	return &m, err
}

func (r *masaRepo) List(ctx context.Context, filter dto.MasaFilter) ([]model.MasaProduccion, int64, error) {
	var masas []model.MasaProduccion
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.MasaProduccion{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("fecha_produccion = ?", filter.Fecha)
	} else {
		// Default: today's production
		q = q.Where("fecha_produccion = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Productos").
		Order("codigo_masa ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&masas).Error

	return masas, total, err
}

func (r *masaRepo) UpdateFaseActualTx(tx *gorm.DB, id uuid.UUID, fase string) error {
	return tx.Model(&model.MasaProduccion{}).Where("id = ?", id).
		Updates(map[string]interface{}{"fase_actual": fase, "estado": model.MasaEnProceso}).Error
}

func (r *masaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.MasaProduccion{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *masaRepo) CreateOrdenRelacionTx(tx *gorm.DB, rel *model.OrdenMasaRelacion) error {
	return tx.Create(rel).Error
}
