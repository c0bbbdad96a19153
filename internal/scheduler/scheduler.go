// Package scheduler runs the recurring control loop that evaluates pending
// alerts against the current time and dispatches the next due notification
// for each — at most once per (alert, stage), tolerant of restarts and
// polling jitter.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yoohyunk/punctualBE/internal/alert"
)

// Store is the slice of alert.Store the scheduler needs.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*alert.Alert, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]*alert.Alert, error)
	AdvanceStage(ctx context.Context, id uuid.UUID, from, to alert.Stage) error
	RecordFailure(ctx context.Context, id uuid.UUID, stage alert.Stage, reason string) (int, error)
	MarkFailed(ctx context.Context, id uuid.UUID, stage alert.Stage, reason string) error
}

// Dispatcher sends the notification for one stage of one alert.
type Dispatcher interface {
	Send(ctx context.Context, a *alert.Alert, stage alert.Stage) error
}

// Config controls the polling loop.
type Config struct {
	PollInterval time.Duration
	MaxAttempts  int // consecutive failures per stage before FAILED
	BatchSize    int // due alerts fetched per cycle
	Workers      int // concurrent dispatches per cycle

	// Clock supplies "now" for due checks. Defaults to time.Now; injected
	// so boundary timestamps are deterministic in tests.
	Clock func() time.Time
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval: 60 * time.Second,
		MaxAttempts:  3,
		BatchSize:    100,
		Workers:      4,
	}
}

// Scheduler polls the store and dispatches due notifications.
type Scheduler struct {
	store      Store
	dispatcher Dispatcher
	cfg        Config
	logger     *slog.Logger
}

// New creates a Scheduler. Zero config fields fall back to defaults.
func New(store Store, dispatcher Dispatcher, cfg Config, logger *slog.Logger) *Scheduler {
	def := DefaultConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{store: store, dispatcher: dispatcher, cfg: cfg, logger: logger}
}

// Run polls on a fixed interval until ctx is cancelled. Intended to be
// called with `go`.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Alert scheduler started",
		"interval", s.cfg.PollInterval,
		"max_attempts", s.cfg.MaxAttempts,
		"workers", s.cfg.Workers)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sent, failed, err := s.Sweep(ctx)
			if err != nil {
				s.logger.Error("sweep error", "error", err)
			} else if sent+failed > 0 {
				s.logger.Info("sweep complete", "sent", sent, "failed", failed)
			}
		case <-ctx.Done():
			s.logger.Info("Alert scheduler stopped")
			return
		}
	}
}

// Sweep runs one scheduler cycle: list due alerts, dispatch each through a
// bounded worker pool, record outcomes. Records are independent, so
// concurrent dispatch across them is safe; per-record at-most-once is
// enforced by the store's conditional advance.
func (s *Scheduler) Sweep(ctx context.Context) (sent, failed int, err error) {
	now := s.cfg.Clock()
	due, err := s.store.ListDue(ctx, now, s.cfg.BatchSize)
	if err != nil {
		return 0, 0, fmt.Errorf("list due alerts: %w", err)
	}
	if len(due) == 0 {
		return 0, 0, nil
	}

	workers := s.cfg.Workers
	if workers > len(due) {
		workers = len(due)
	}

	ch := make(chan *alert.Alert, len(due))
	for _, a := range due {
		ch <- a
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range ch {
				fireErr := s.fire(ctx, a, a.Stage)
				mu.Lock()
				if fireErr != nil {
					failed++
				} else {
					sent++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return sent, failed, nil
}

// ManualFire force-dispatches a named stage out of band, bypassing the
// due-time check. It advances the stage exactly as the polling path does,
// so the at-most-once invariant is preserved. Terminal alerts and stages
// other than the current one are rejected.
func (s *Scheduler) ManualFire(ctx context.Context, id uuid.UUID, stage alert.Stage) error {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Stage.Terminal() {
		return alert.ErrAlertTerminal
	}
	if stage != a.Stage {
		return alert.ErrStageNotCurrent
	}
	return s.fire(ctx, a, stage)
}

// fire dispatches one stage and records the outcome. On success the stage
// advances via conditional update; a lost race means another scheduler got
// there first and this outcome is discarded. On failure the attempt counter
// grows until MaxAttempts, then the alert moves to FAILED.
func (s *Scheduler) fire(ctx context.Context, a *alert.Alert, stage alert.Stage) error {
	if err := s.dispatcher.Send(ctx, a, stage); err != nil {
		attempts, recErr := s.store.RecordFailure(ctx, a.ID, stage, err.Error())
		if errors.Is(recErr, alert.ErrConcurrentUpdate) {
			s.logger.Warn("failure not recorded, alert advanced concurrently",
				"alert_id", a.ID, "stage", stage)
			return err
		}
		if recErr != nil {
			s.logger.Error("record failure", "alert_id", a.ID, "error", recErr)
			return err
		}
		s.logger.Warn("dispatch failed",
			"alert_id", a.ID, "stage", stage, "attempts", attempts, "error", err)

		if attempts >= s.cfg.MaxAttempts {
			if mfErr := s.store.MarkFailed(ctx, a.ID, stage, err.Error()); mfErr != nil && !errors.Is(mfErr, alert.ErrConcurrentUpdate) {
				s.logger.Error("mark failed", "alert_id", a.ID, "error", mfErr)
			} else {
				s.logger.Error("alert failed permanently",
					"alert_id", a.ID, "stage", stage, "attempts", attempts)
			}
		}
		return err
	}

	next, ok := stage.Next(a.HasTransit())
	if !ok {
		return fmt.Errorf("stage %s has no successor", stage)
	}
	if err := s.store.AdvanceStage(ctx, a.ID, stage, next); err != nil {
		if errors.Is(err, alert.ErrConcurrentUpdate) {
			s.logger.Warn("stage advanced concurrently, outcome discarded",
				"alert_id", a.ID, "stage", stage)
			return nil
		}
		return fmt.Errorf("advance stage: %w", err)
	}

	if next == alert.StageCompleted {
		s.logger.Info("alert completed", "alert_id", a.ID)
	}
	return nil
}
