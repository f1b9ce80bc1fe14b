package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/config"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/infra"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/repository"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/router"
	"github.com/Jaycoach/WebApp-LaArtesa-Produccion/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SAP Service Layer client behind a circuit breaker so a down SAP host
	// degrades the sync endpoint instead of hanging every request.
	sapCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	sapClient := infra.NewSAPClient(cfg, sapCB)
	defer sapClient.Logout(context.Background())

	// Worker pool for async packaging notifications, wired at the
	// composition root so workers get full infrastructure access.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	notificacionRepo := repository.NewNotificacionRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Notificaciones: worker.NewEmailWorker(mailer, notificacionRepo, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		NotificacionRepo: notificacionRepo,
		Dispatcher:       dispatcher,
		RDB:              rdb,
	})

	r := router.New(cfg, db, rdb, sapClient)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Artesa producción backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
