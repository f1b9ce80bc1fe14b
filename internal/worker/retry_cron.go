package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues packaging notifications
// stuck in estado_envio='PENDIENTE'. A notification stays pending when SMTP
// delivery failed, or when the original enqueue never reached Redis.

import (
	"context"
	"fmt"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10

	// retryMinAge keeps the cron from racing the worker pool on
	// notifications that were enqueued moments ago.
	retryMinAge = 2 * time.Minute
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	NotificacionRepo repository.NotificacionRepository
	Dispatcher       *Dispatcher
	RDB              *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries stale pending notifications and re-enqueues them.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	cutoff := time.Now().Add(-retryMinAge)
	pendientes, err := cfg.NotificacionRepo.ListPendientes(ctx, cutoff, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending notifications")
		return
	}

	if len(pendientes) == 0 {
		return
	}

	log.Info().Int("count", len(pendientes)).Msg("retry_cron: processing pending notifications")

	for i := range pendientes {
		notif := &pendientes[i]

		if notif.RetryCount >= MaxNotificacionRetries {
			notif.EstadoEnvio = model.EnvioError
			log.Error().
				Str("notificacion_id", notif.ID.String()).
				Int("retries", notif.RetryCount).
				Msg("retry_cron: max retries exceeded, moving to error/DLQ")

			payload := fmt.Sprintf(`{"notificacion_id":"%s","masa_id":"%s"}`, notif.ID, notif.MasaID)
			reason := "max retries exceeded"
			if notif.ErrorMensaje != nil {
				reason = fmt.Sprintf("max retries (%d) exceeded: %s", MaxNotificacionRetries, *notif.ErrorMensaje)
			}
			SendToDLQ(ctx, cfg.RDB, QueueNotificaciones, "notificacion_empaque", []byte(payload),
				reason, notif.RetryCount)

			_ = cfg.NotificacionRepo.Update(ctx, notif)
			continue
		}

		if err := cfg.Dispatcher.NotificarEmpaque(ctx, notif.ID, notif.Destinatarios, notif.Asunto, notif.Cuerpo); err != nil {
			log.Warn().
				Err(err).
				Str("notificacion_id", notif.ID.String()).
				Msg("retry_cron: failed to re-enqueue, will retry next tick")
			continue
		}

		log.Info().
			Str("notificacion_id", notif.ID.String()).
			Int("retry_count", notif.RetryCount).
			Msg("retry_cron: notification re-enqueued")
	}
}
