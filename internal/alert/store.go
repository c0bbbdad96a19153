package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence surface for alerts. The Postgres implementation
// lives in postgres.go; tests use in-memory fakes.
type Store interface {
	// Create persists a new alert. All-or-nothing: on error nothing is stored.
	Create(ctx context.Context, a *Alert) error

	// GetByID returns one alert or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)

	// List returns all alerts, newest first.
	List(ctx context.Context) ([]*Alert, error)

	// ListPending returns non-terminal alerts. A non-empty stage filters to
	// that stage only.
	ListPending(ctx context.Context, stage Stage) ([]*Alert, error)

	// ListDue returns pending alerts whose current stage timestamp is at or
	// before now, oldest first, up to limit.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*Alert, error)

	// AdvanceStage moves the alert from one stage to the next, clearing
	// attempts and last_error. The update applies only if the persisted
	// stage still equals from; otherwise ErrConcurrentUpdate is returned
	// and the caller must discard its result.
	AdvanceStage(ctx context.Context, id uuid.UUID, from, to Stage) error

	// RecordFailure increments the consecutive-failure counter for the
	// given stage and stores the error text, returning the new count.
	// Returns ErrConcurrentUpdate if the alert is no longer at that stage.
	RecordFailure(ctx context.Context, id uuid.UUID, stage Stage, reason string) (int, error)

	// MarkFailed transitions the alert to FAILED if it is still at the
	// given stage.
	MarkFailed(ctx context.Context, id uuid.UUID, stage Stage, reason string) error

	// Delete removes an alert. Administrative only — the scheduler and the
	// HTTP API never delete.
	Delete(ctx context.Context, id uuid.UUID) error
}
