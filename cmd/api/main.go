// Command api is the Punctual alert server: the HTTP API plus the
// background scheduler that dispatches due notifications.
//
// Usage:
//
//	punctual-api
//	API_PORT=8080 punctual-api

// @title Punctual API
// @version 1.0.0
// @description Smart transit alert service: schedules wake-up, departure, and transit-warning SMS notifications derived from a computed commute route.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @contact.name Punctual
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/yoohyunk/punctualBE/internal/alert"
	"github.com/yoohyunk/punctualBE/internal/api"
	"github.com/yoohyunk/punctualBE/internal/api/handler"
	"github.com/yoohyunk/punctualBE/internal/config"
	"github.com/yoohyunk/punctualBE/internal/db"
	"github.com/yoohyunk/punctualBE/internal/directions"
	"github.com/yoohyunk/punctualBE/internal/maintenance"
	"github.com/yoohyunk/punctualBE/internal/notify"
	"github.com/yoohyunk/punctualBE/internal/scheduler"
	"github.com/yoohyunk/punctualBE/internal/sms"

	_ "github.com/yoohyunk/punctualBE/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	store := alert.NewPostgresStore(pool.Pool)

	// External providers. Both are nil-safe: missing credentials disable
	// the dependent features rather than failing startup.
	var provider directions.Provider
	if g := directions.NewGoogleClient(cfg.GoogleMapsAPIKey, logger); g != nil {
		provider = g
	} else {
		logger.Info("Route lookup disabled (no GOOGLE_MAPS_API_KEY)")
	}

	var sender notify.Sender
	if t := sms.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.SMSRequestsPerMin, logger); t != nil {
		sender = t
	} else {
		logger.Info("SMS delivery disabled (no Twilio credentials)")
	}

	dispatcher := notify.New(sender, logger)
	sched := scheduler.New(store, dispatcher, scheduler.Config{
		PollInterval: cfg.SchedulerPollInterval,
		MaxAttempts:  cfg.SchedulerMaxAttempts,
		BatchSize:    cfg.SchedulerBatchSize,
		Workers:      cfg.SchedulerWorkers,
	}, logger)

	// Start the dispatch loop only when messages can actually go out.
	if sender != nil {
		go sched.Run(ctx)
	} else {
		logger.Info("Alert scheduler disabled (SMS not configured)")
	}

	// Retention cleanup for terminal alerts
	go maintenance.Start(ctx, store, maintenance.Config{
		CleanupInterval: cfg.CleanupInterval,
		AlertRetention:  cfg.AlertRetention,
	}, logger)

	// Create router
	h := handler.New(pool, store, provider, sender, sched, cfg)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Punctual API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
