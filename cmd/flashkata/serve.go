package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/flashkata/internal/api"
	"github.com/vytor/flashkata/internal/db"
	"github.com/vytor/flashkata/internal/logger"
	"github.com/vytor/flashkata/internal/repository/sqlite"
	"github.com/vytor/flashkata/internal/services"
	"github.com/vytor/flashkata/internal/streak"
	"github.com/vytor/flashkata/internal/telemetry"
	"github.com/vytor/flashkata/internal/tracker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	log := logger.Default()

	log.Info("===========================================")
	log.Info("flashkata server starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("lookup_concurrency=%d", cfg.LookupConcurrency)
	log.Debug("lookup_timeout=%s", cfg.LookupTimeout)
	log.Debug("otel_endpoint=%q", cfg.OTELEndpoint)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	metrics, err := telemetry.Setup(ctx, telemetry.Config{Endpoint: cfg.OTELEndpoint, Insecure: cfg.OTELInsecure})
	if err != nil {
		return err
	}

	decks := sqlite.NewDeckRepository(database.DB)
	cards := sqlite.NewFlashcardRepository(database.DB)
	sessions := sqlite.NewSessionSummaryRepository(database.DB)

	aggregator := tracker.NewAggregator(sessions, cards, decks, streak.NewCalculator(sessions, loc), tracker.Options{
		Concurrency:   cfg.LookupConcurrency,
		LookupTimeout: cfg.LookupTimeout,
		Location:      loc,
		Recorder:      metrics,
	})

	srv := &api.Server{
		DeckService:      services.NewDeckService(decks),
		FlashcardService: services.NewFlashcardService(cards, decks),
		SessionService:   services.NewSessionService(sessions),
		TrackerService:   services.NewTrackerService(aggregator),
		DB:               database,
		Location:         loc,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serveErr:
		if err != nil {
			log.Error("HTTP server error: %v", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}
	log.Debug("flushing metrics")
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics shutdown error: %v", err)
	}

	log.Info("flashkata server stopped")
	return nil
}
