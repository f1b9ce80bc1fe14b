package repository

import (
	"context"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FaseRepository interface {
	ListByMasa(ctx context.Context, masaID uuid.UUID) ([]model.ProgresoFase, error)
	FindByMasaYFase(ctx context.Context, masaID uuid.UUID, fase string) (*model.ProgresoFase, error)
	CreateTx(tx *gorm.DB, p *model.ProgresoFase) error
	UpdateTx(tx *gorm.DB, p *model.ProgresoFase) error
	// CompletarCondicionalTx flips EN_PROGRESO → COMPLETADA with a conditional
	// update and returns the number of affected rows. Zero rows means the
	// phase was not EN_PROGRESO (already completed by a concurrent call, or
	// still blocked) and the caller must reject with a conflict.
	CompletarCondicionalTx(tx *gorm.DB, masaID uuid.UUID, fase string, completadoEn time.Time) (int64, error)
	DB() *gorm.DB
}

type faseRepo struct{ db *gorm.DB }

func NewFaseRepository(db *gorm.DB) FaseRepository { return &faseRepo{db: db} }

func (r *faseRepo) DB() *gorm.DB { return r.db }

func (r *faseRepo) ListByMasa(ctx context.Context, masaID uuid.UUID) ([]model.ProgresoFase, error) {
	var fases []model.ProgresoFase
	err := r.db.WithContext(ctx).Where("masa_id = ?", masaID).Find(&fases).Error
	if err != nil {
		return nil, err
	}
	// Order by the fixed phase sequence, not alphabetically
	ordenadas := make([]model.ProgresoFase, 0, len(fases))
	for _, nombre := range model.FasesOrdenadas {
		for i := range fases {
			if fases[i].Fase == nombre {
				ordenadas = append(ordenadas, fases[i])
			}
		}
	}
	return ordenadas, nil
}

func (r *faseRepo) FindByMasaYFase(ctx context.Context, masaID uuid.UUID, fase string) (*model.ProgresoFase, error) {
	var p model.ProgresoFase
	err := r.db.WithContext(ctx).
		Where("masa_id = ? AND fase = ?", masaID, fase).
		First(&p).Error
	return &p, err
}

func (r *faseRepo) CreateTx(tx *gorm.DB, p *model.ProgresoFase) error {
	return tx.Create(p).Error
}

func (r *faseRepo) UpdateTx(tx *gorm.DB, p *model.ProgresoFase) error {
	return tx.Save(p).Error
}

func (r *faseRepo) CompletarCondicionalTx(tx *gorm.DB, masaID uuid.UUID, fase string, completadoEn time.Time) (int64, error) {
	result := tx.Model(&model.ProgresoFase{}).
		Where("masa_id = ? AND fase = ? AND estado = ?", masaID, fase, model.EstadoEnProgreso).
		Updates(map[string]interface{}{
			"estado":                model.EstadoCompletada,
			"porcentaje_completado": 100,
			"fecha_completado":      completadoEn,
		})
	return result.RowsAffected, result.Error
}
