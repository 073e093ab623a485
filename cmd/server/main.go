// Package main is the entry point for the taxboard dashboard server.
//
// The server loads the tax ledger from its configured source, keeps a snapshot
// history in SQLite and serves the dashboard over HTTP, with one controller per
// browser session.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/taxboard/internal/config"
	"github.com/aristath/taxboard/internal/di"
	"github.com/aristath/taxboard/internal/server"
	"github.com/aristath/taxboard/pkg/logger"
)

const (
	statusMonitorSchedule = "@every 30s"
	initialLoadTimeout    = 2 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().Str("source", cfg.LedgerSource).Msg("Starting taxboard")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, jobs, err := di.Wire(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer container.Close()

	// A failed first fetch still starts the server; the dashboard reports the
	// missing ledger until a refresh succeeds.
	loadCtx, loadCancel := context.WithTimeout(ctx, initialLoadTimeout)
	if err := container.LedgerLoader.LoadInitial(loadCtx); err != nil {
		log.Error().Err(err).Msg("Initial ledger load failed")
	}
	loadCancel()

	statusMonitor := server.NewStatusMonitor(container.LedgerStore, container.SessionStore, container.EventManager, log)
	if err := container.Scheduler.AddJob(statusMonitorSchedule, statusMonitor); err != nil {
		log.Fatal().Err(err).Msg("Failed to register status monitor")
	}

	container.Scheduler.Start()
	log.Info().Strs("jobs", container.Scheduler.Jobs()).Msg("Scheduler started")

	srv := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Ledgers:   container.LedgerStore,
		Refresher: container.LedgerLoader,
		Sessions:  container.SessionStore,
		DB:        container.SnapshotsDB,
		Bus:       container.EventBus,
		Scheduler: container.Scheduler,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	container.Scheduler.Stop()
	log.Info().Msg("Scheduler stopped")

	// Run a final checkpoint so the snapshot database closes with an empty WAL.
	if err := jobs.WALCheckpoints.Run(); err != nil {
		log.Warn().Err(err).Msg("Final WAL checkpoint failed")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
