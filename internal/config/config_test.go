package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/punctual")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.APIHost)
	assert.Equal(t, 8080, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())

	assert.Equal(t, 60*time.Second, cfg.SchedulerPollInterval)
	assert.Equal(t, 3, cfg.SchedulerMaxAttempts)
	assert.Equal(t, 100, cfg.SchedulerBatchSize)
	assert.Equal(t, 4, cfg.SchedulerWorkers)
	assert.Equal(t, 30, cfg.DefaultPreparationMinutes)
	assert.Equal(t, 30*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, 30*24*time.Hour, cfg.AlertRetention)

	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/punctual")
	t.Setenv("API_PORT", "9999")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SCHEDULER_POLL_INTERVAL", "15")
	t.Setenv("SCHEDULER_MAX_ATTEMPTS", "5")
	t.Setenv("DEFAULT_PREPARATION_MINUTES", "45")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://punctual.app, https://staging.punctual.app")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.APIPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 15*time.Second, cfg.SchedulerPollInterval)
	assert.Equal(t, 5, cfg.SchedulerMaxAttempts)
	assert.Equal(t, 45, cfg.DefaultPreparationMinutes)
	assert.Equal(t, []string{"https://punctual.app", "https://staging.punctual.app"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.RateLimitEnabled)
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/punctual")
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.APIPort, "PORT applies when API_PORT is unset")
}

func TestLoadIgnoresBadInts(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/punctual")
	t.Setenv("SCHEDULER_MAX_ATTEMPTS", "several")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.SchedulerMaxAttempts, "unparsable values fall back to the default")
}
