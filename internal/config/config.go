// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/alertctl.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is populated from environment variables.
type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// External providers
	GoogleMapsAPIKey  string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromNumber  string
	SMSRequestsPerMin int

	// Scheduler
	SchedulerPollInterval time.Duration
	SchedulerMaxAttempts  int
	SchedulerBatchSize    int
	SchedulerWorkers      int

	// Alert defaults
	DefaultPreparationMinutes int

	// Maintenance
	CleanupInterval time.Duration
	AlertRetention  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8080)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		GoogleMapsAPIKey:  envOr("GOOGLE_MAPS_API_KEY", ""),
		TwilioAccountSID:  envOr("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   envOr("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:  envOr("TWILIO_PHONE_NUMBER", ""),
		SMSRequestsPerMin: envInt("SMS_REQUESTS_PER_MINUTE", 60),

		SchedulerPollInterval: time.Duration(envInt("SCHEDULER_POLL_INTERVAL", 60)) * time.Second,
		SchedulerMaxAttempts:  envInt("SCHEDULER_MAX_ATTEMPTS", 3),
		SchedulerBatchSize:    envInt("SCHEDULER_BATCH_SIZE", 100),
		SchedulerWorkers:      envInt("SCHEDULER_WORKERS", 4),

		DefaultPreparationMinutes: envInt("DEFAULT_PREPARATION_MINUTES", 30),

		CleanupInterval: time.Duration(envInt("CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute,
		AlertRetention:  time.Duration(envInt("ALERT_RETENTION_DAYS", 30)) * 24 * time.Hour,
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
