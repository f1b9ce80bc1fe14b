package worker

// email_worker.go
// Processes packaging notification jobs from QueueNotificaciones.
// Sends the weigh-in summary email via SMTP and records the delivery result
// on the notificaciones_empaque row.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/infra"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/model"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxNotificacionRetries caps delivery attempts before a notification is
// marked ERROR and moved to the DLQ.
const MaxNotificacionRetries = 5

// NotificacionJobPayload is the job envelope sent to QueueNotificaciones.
type NotificacionJobPayload struct {
	NotificacionID string   `json:"notificacion_id"`
	Destinatarios  []string `json:"destinatarios"`
	Asunto         string   `json:"asunto"`
	Cuerpo         string   `json:"cuerpo"`
}

// EmailWorker delivers packaging notifications over SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
	repo   repository.NotificacionRepository
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, repo repository.NotificacionRepository, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, repo: repo, rdb: rdb}
}

// Process sends one notification email and updates its delivery state.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if len(payload.Destinatarios) == 0 {
		log.Warn().Str("notificacion_id", payload.NotificacionID).Msg("email_worker: sin destinatarios — skipping")
		return
	}

	id, err := uuid.Parse(payload.NotificacionID)
	if err != nil {
		log.Error().Str("notificacion_id", payload.NotificacionID).Msg("email_worker: invalid notificacion_id")
		return
	}
	notif, err := w.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("notificacion_id", payload.NotificacionID).Msg("email_worker: notificacion not found")
		return
	}
	if notif.EstadoEnvio == model.EnvioEnviado {
		// Already delivered by a concurrent worker or a previous retry.
		return
	}

	sendErr := w.mailer.SendNotificacion(payload.Destinatarios, payload.Asunto, payload.Cuerpo)
	if sendErr == nil {
		now := time.Now()
		notif.EstadoEnvio = model.EnvioEnviado
		notif.FechaEnvio = &now
		notif.ErrorMensaje = nil
		if err := w.repo.Update(ctx, notif); err != nil {
			log.Error().Err(err).Str("notificacion_id", payload.NotificacionID).Msg("email_worker: failed to record delivery")
		}
		log.Info().
			Str("notificacion_id", payload.NotificacionID).
			Int("destinatarios", len(payload.Destinatarios)).
			Msg("email_worker: notificacion enviada")
		return
	}

	notif.RetryCount++
	msg := sendErr.Error()
	notif.ErrorMensaje = &msg

	if notif.RetryCount >= MaxNotificacionRetries {
		notif.EstadoEnvio = model.EnvioError
		log.Error().
			Err(sendErr).
			Str("notificacion_id", payload.NotificacionID).
			Int("retries", notif.RetryCount).
			Msg("email_worker: max retries exceeded, moving to error/DLQ")
		SendToDLQ(ctx, w.rdb, QueueNotificaciones, "notificacion_empaque", raw,
			"max retries exceeded: "+msg, notif.RetryCount)
	} else {
		// Stays PENDIENTE — the retry cron re-enqueues it.
		log.Warn().
			Err(sendErr).
			Str("notificacion_id", payload.NotificacionID).
			Int("retry_count", notif.RetryCount).
			Msg("email_worker: delivery failed, will retry")
	}

	if err := w.repo.Update(ctx, notif); err != nil {
		log.Error().Err(err).Str("notificacion_id", payload.NotificacionID).Msg("email_worker: failed to record failure")
	}
}
