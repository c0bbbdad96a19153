// Package maintenance runs periodic background housekeeping as Go tickers.
// The core never deletes alerts; retention cleanup of terminal records is
// an administrative concern that lives here, outside the scheduler.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/yoohyunk/punctualBE/internal/alert"
)

// Config controls maintenance intervals. Zero duration disables a task.
type Config struct {
	CleanupInterval time.Duration // purge cadence for terminal alerts
	AlertRetention  time.Duration // how long COMPLETED/FAILED rows are kept
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CleanupInterval: 30 * time.Minute,
		AlertRetention:  30 * 24 * time.Hour,
	}
}

// Start launches the maintenance tickers. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, store *alert.PostgresStore, cfg Config, logger *slog.Logger) {
	if cfg.CleanupInterval <= 0 {
		logger.Info("Maintenance disabled")
		<-ctx.Done()
		return
	}

	logger.Info("Maintenance ticker started",
		"cleanup", cfg.CleanupInterval, "retention", cfg.AlertRetention)

	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleanup(ctx, store, cfg.AlertRetention, logger)
		case <-ctx.Done():
			logger.Info("Maintenance ticker stopped")
			return
		}
	}
}

// cleanup removes COMPLETED and FAILED alerts older than the retention
// window. Pending alerts are never touched.
func cleanup(ctx context.Context, store *alert.PostgresStore, retention time.Duration, logger *slog.Logger) {
	cutoff := time.Now().Add(-retention)
	purged, err := store.PurgeTerminal(ctx, cutoff)
	if err != nil {
		logger.Warn("Cleanup: failed to purge terminal alerts", "error", err)
		return
	}
	if purged > 0 {
		logger.Info("Cleanup: purged terminal alerts", "count", purged)
	}
}
