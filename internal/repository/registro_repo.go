package repository

import (
	"context"
	"errors"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistroRepository stores the per-phase run records. Multiple rows may
// exist for the same masa+phase (reattempts); readers always take the latest
// by created_at. Latest* return (nil, nil) when no record exists yet.
type RegistroRepository interface {
	CreateFormadoTx(tx *gorm.DB, reg *model.RegistroFormado) error
	UpdateFormadoTx(tx *gorm.DB, reg *model.RegistroFormado) error
	LatestFormado(ctx context.Context, masaID uuid.UUID) (*model.RegistroFormado, error)

	CreateFermentacionTx(tx *gorm.DB, reg *model.RegistroFermentacion) error
	UpdateFermentacionTx(tx *gorm.DB, reg *model.RegistroFermentacion) error
	LatestFermentacion(ctx context.Context, masaID uuid.UUID) (*model.RegistroFermentacion, error)

	CreateHorneadoTx(tx *gorm.DB, reg *model.RegistroHorneado) error
	UpdateHorneadoTx(tx *gorm.DB, reg *model.RegistroHorneado) error
	LatestHorneado(ctx context.Context, masaID uuid.UUID) (*model.RegistroHorneado, error)

	DB() *gorm.DB
}

type registroRepo struct{ db *gorm.DB }

func NewRegistroRepository(db *gorm.DB) RegistroRepository { return &registroRepo{db: db} }

func (r *registroRepo) DB() *gorm.DB { return r.db }

func (r *registroRepo) CreateFormadoTx(tx *gorm.DB, reg *model.RegistroFormado) error {
	return tx.Create(reg).Error
}

func (r *registroRepo) UpdateFormadoTx(tx *gorm.DB, reg *model.RegistroFormado) error {
	return tx.Save(reg).Error
}

func (r *registroRepo) LatestFormado(ctx context.Context, masaID uuid.UUID) (*model.RegistroFormado, error) {
	var reg model.RegistroFormado
	err := r.db.WithContext(ctx).
		Where("masa_id = ?", masaID).
		Order("created_at DESC").
		First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reg, err
}

func (r *registroRepo) CreateFermentacionTx(tx *gorm.DB, reg *model.RegistroFermentacion) error {
	return tx.Create(reg).Error
}

func (r *registroRepo) UpdateFermentacionTx(tx *gorm.DB, reg *model.RegistroFermentacion) error {
	return tx.Save(reg).Error
}

func (r *registroRepo) LatestFermentacion(ctx context.Context, masaID uuid.UUID) (*model.RegistroFermentacion, error) {
	var reg model.RegistroFermentacion
	err := r.db.WithContext(ctx).
		Where("masa_id = ?", masaID).
		Order("created_at DESC").
		First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reg, err
}

func (r *registroRepo) CreateHorneadoTx(tx *gorm.DB, reg *model.RegistroHorneado) error {
	return tx.Create(reg).Error
}

func (r *registroRepo) UpdateHorneadoTx(tx *gorm.DB, reg *model.RegistroHorneado) error {
	return tx.Save(reg).Error
}

func (r *registroRepo) LatestHorneado(ctx context.Context, masaID uuid.UUID) (*model.RegistroHorneado, error) {
	var reg model.RegistroHorneado
	err := r.db.WithContext(ctx).
		Where("masa_id = ?", masaID).
		Order("created_at DESC").
		First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reg, err
}
