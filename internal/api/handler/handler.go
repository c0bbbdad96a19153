// Package handler provides HTTP handlers for all API endpoints.
// Handlers validate input, call the domain packages, and map domain errors
// to the shared JSON error shape.
package handler

import (
	"net/http"
	"time"

	"github.com/yoohyunk/punctualBE/internal/alert"
	"github.com/yoohyunk/punctualBE/internal/api/respond"
	"github.com/yoohyunk/punctualBE/internal/config"
	"github.com/yoohyunk/punctualBE/internal/db"
	"github.com/yoohyunk/punctualBE/internal/directions"
	"github.com/yoohyunk/punctualBE/internal/notify"
	"github.com/yoohyunk/punctualBE/internal/scheduler"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool      *db.Pool
	store     alert.Store
	provider  directions.Provider
	sender    notify.Sender
	scheduler *scheduler.Scheduler
	cfg       *config.Config
}

// New creates a Handler with shared dependencies. provider and sender may
// be nil when the corresponding credentials are not configured; the
// affected endpoints then respond 503.
func New(pool *db.Pool, store alert.Store, provider directions.Provider, sender notify.Sender, sched *scheduler.Scheduler, cfg *config.Config) *Handler {
	return &Handler{
		pool:      pool,
		store:     store,
		provider:  provider,
		sender:    sender,
		scheduler: sched,
		cfg:       cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Punctual API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
