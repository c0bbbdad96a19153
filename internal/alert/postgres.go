package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// alertColumns is the canonical select list; scanAlert must match it.
const alertColumns = `id, phone_number, origin_text, destination_text,
	target_type, target_time, preparation_minutes, route_legs,
	total_duration_seconds, wake_up_at, departure_at, departure_raw_at,
	arrival_at, transit_arrival_at, transit_warning_at, stage, attempts,
	last_error, created_at, updated_at`

// PostgresStore implements Store on a pgx connection pool. Read paths use
// the prepared statements registered in internal/db.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a pool as an alert store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, a *Alert) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO alerts (
			id, phone_number, origin_text, destination_text, target_type,
			target_time, preparation_minutes, route_legs, total_duration_seconds,
			wake_up_at, departure_at, departure_raw_at, arrival_at,
			transit_arrival_at, transit_warning_at, stage
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING created_at, updated_at`,
		a.ID, a.PhoneNumber, a.OriginText, a.DestinationText, a.TargetType,
		a.TargetTime, a.PreparationMinutes, a.Legs, a.TotalDurationSeconds,
		a.WakeUpAt, a.DepartureAt, a.DepartureRawAt, a.ArrivalAt,
		a.TransitArrivalAt, a.TransitWarningAt, a.Stage,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*Alert, error) {
	row := s.pool.QueryRow(ctx, "alert_by_id", id)
	a, err := scanAlert(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get alert %s: %w", id, err)
	}
	return a, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Alert, error) {
	rows, err := s.pool.Query(ctx, "list_alerts")
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return collectAlerts(rows)
}

func (s *PostgresStore) ListPending(ctx context.Context, stage Stage) ([]*Alert, error) {
	var stageParam any
	if stage != "" {
		stageParam = string(stage)
	}
	rows, err := s.pool.Query(ctx, "list_pending_alerts", stageParam)
	if err != nil {
		return nil, fmt.Errorf("list pending alerts: %w", err)
	}
	return collectAlerts(rows)
}

func (s *PostgresStore) ListDue(ctx context.Context, now time.Time, limit int) ([]*Alert, error) {
	rows, err := s.pool.Query(ctx, "list_due_alerts", now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due alerts: %w", err)
	}
	return collectAlerts(rows)
}

// AdvanceStage is the at-most-once guard: the conditional WHERE means two
// racing schedulers can both dispatch, but only one advance lands; the
// loser gets ErrConcurrentUpdate and discards its outcome.
func (s *PostgresStore) AdvanceStage(ctx context.Context, id uuid.UUID, from, to Stage) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE alerts
		SET stage = $3, attempts = 0, last_error = NULL, updated_at = NOW()
		WHERE id = $1 AND stage = $2`,
		id, from, to)
	if err != nil {
		return fmt.Errorf("advance alert %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

func (s *PostgresStore) RecordFailure(ctx context.Context, id uuid.UUID, stage Stage, reason string) (int, error) {
	var attempts int
	err := s.pool.QueryRow(ctx, `
		UPDATE alerts
		SET attempts = attempts + 1, last_error = $3, updated_at = NOW()
		WHERE id = $1 AND stage = $2
		RETURNING attempts`,
		id, stage, reason).Scan(&attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrConcurrentUpdate
	}
	if err != nil {
		return 0, fmt.Errorf("record failure for alert %s: %w", id, err)
	}
	return attempts, nil
}

func (s *PostgresStore) MarkFailed(ctx context.Context, id uuid.UUID, stage Stage, reason string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE alerts
		SET stage = $3, last_error = $4, updated_at = NOW()
		WHERE id = $1 AND stage = $2`,
		id, stage, StageFailed, reason)
	if err != nil {
		return fmt.Errorf("mark alert %s failed: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete alert %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeTerminal removes COMPLETED/FAILED alerts last touched before the
// cutoff. Used by the maintenance ticker, not by the scheduler.
func (s *PostgresStore) PurgeTerminal(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM alerts
		WHERE stage IN ($1, $2) AND updated_at < $3`,
		StageCompleted, StageFailed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge terminal alerts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAlert(row pgx.Row) (*Alert, error) {
	var a Alert
	err := row.Scan(
		&a.ID, &a.PhoneNumber, &a.OriginText, &a.DestinationText,
		&a.TargetType, &a.TargetTime, &a.PreparationMinutes, &a.Legs,
		&a.TotalDurationSeconds, &a.WakeUpAt, &a.DepartureAt, &a.DepartureRawAt,
		&a.ArrivalAt, &a.TransitArrivalAt, &a.TransitWarningAt, &a.Stage,
		&a.Attempts, &a.LastError, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAlerts(rows pgx.Rows) ([]*Alert, error) {
	defer rows.Close()
	var alerts []*Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
