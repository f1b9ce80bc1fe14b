package repository

import (
	"context"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificacionRepository interface {
	Create(ctx context.Context, n *model.NotificacionEmpaque) error
	Update(ctx context.Context, n *model.NotificacionEmpaque) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NotificacionEmpaque, error)
	// ListPendientes returns PENDIENTE notifications older than cutoff, for
	// the retry cron.
	ListPendientes(ctx context.Context, cutoff time.Time, limit int) ([]model.NotificacionEmpaque, error)
}

type notificacionRepo struct{ db *gorm.DB }

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository { return &notificacionRepo{db: db} }

func (r *notificacionRepo) Create(ctx context.Context, n *model.NotificacionEmpaque) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacionRepo) Update(ctx context.Context, n *model.NotificacionEmpaque) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.NotificacionEmpaque, error) {
	var n model.NotificacionEmpaque
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *notificacionRepo) ListPendientes(ctx context.Context, cutoff time.Time, limit int) ([]model.NotificacionEmpaque, error) {
	var pendientes []model.NotificacionEmpaque
	err := r.db.WithContext(ctx).
		Where("estado_envio = ? AND created_at < ?", model.EnvioPendiente, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&pendientes).Error
	return pendientes, err
}
