// Package db provides a pgxpool-based connection pool with prepared
// statement registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yoohyunk/punctualBE/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// alertColumns mirrors internal/alert's select list.
const alertColumns = `id, phone_number, origin_text, destination_text,
	target_type, target_time, preparation_minutes, route_legs,
	total_duration_seconds, wake_up_at, departure_at, departure_raw_at,
	arrival_at, transit_arrival_at, transit_warning_at, stage, attempts,
	last_error, created_at, updated_at`

// registerPreparedStatements registers the read-path statements used by the
// API and the scheduler poll. Writes (stage advances, failure bookkeeping)
// stay inline in the store since they are conditional updates.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Alerts: query surface
		"alert_by_id": "SELECT " + alertColumns + " FROM alerts WHERE id = $1",
		"list_alerts": "SELECT " + alertColumns + " FROM alerts ORDER BY created_at DESC",
		"list_pending_alerts": "SELECT " + alertColumns + ` FROM alerts
			WHERE stage NOT IN ('COMPLETED', 'FAILED')
			  AND ($1::text IS NULL OR stage = $1)
			ORDER BY created_at DESC`,

		// Scheduler: due scan. An alert is due when its current stage's
		// timestamp has passed — a monotonic check, safe to re-evaluate
		// after crashes or restarts.
		"list_due_alerts": "SELECT " + alertColumns + ` FROM alerts
			WHERE (stage = 'PENDING_WAKE_UP'   AND wake_up_at <= $1)
			   OR (stage = 'PENDING_DEPARTURE' AND departure_at <= $1)
			   OR (stage = 'PENDING_TRANSIT'   AND transit_warning_at <= $1)
			ORDER BY updated_at
			LIMIT $2`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
