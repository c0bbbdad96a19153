package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yoohyunk/punctualBE/internal/alert"
	"github.com/yoohyunk/punctualBE/internal/api/respond"
	"github.com/yoohyunk/punctualBE/internal/directions"
)

// createAlertRequest is the alert creation payload.
type createAlertRequest struct {
	PhoneNumber        string `json:"phone_number"`
	OriginText         string `json:"origin_text"`
	DestinationText    string `json:"destination_text"`
	TargetType         string `json:"target_type"`
	TargetTime         string `json:"target_time"` // RFC 3339 with offset
	PreparationMinutes *int   `json:"preparation_minutes"`
}

// CreateAlert creates a commute alert: validates input, fetches the route
// once, computes the notification timestamps, and persists the record.
// Nothing is stored when any step fails.
// @Summary Create a commute alert
// @Description Computes wake-up/departure/transit timestamps from a fetched transit route and persists the alert.
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body handler.createAlertRequest true "Alert parameters"
// @Success 201 {object} alert.Alert
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/alerts [post]
func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON")
		return
	}

	if req.PhoneNumber == "" || req.OriginText == "" || req.DestinationText == "" ||
		req.TargetType == "" || req.TargetTime == "" {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"phone_number, origin_text, destination_text, target_type, and target_time are required")
		return
	}

	targetType := alert.TargetType(req.TargetType)
	if !targetType.Valid() {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"target_type must be ARRIVAL or DEPARTURE")
		return
	}

	targetTime, err := time.Parse(time.RFC3339, req.TargetTime)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"target_time must be an RFC 3339 timestamp with offset")
		return
	}

	prep := h.cfg.DefaultPreparationMinutes
	if req.PreparationMinutes != nil {
		prep = *req.PreparationMinutes
	}
	if prep < 0 {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"preparation_minutes must be >= 0")
		return
	}

	if h.provider == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "ROUTE_LOOKUP_UNAVAILABLE",
			"Directions provider is not configured")
		return
	}

	legs, err := h.provider.Route(r.Context(), req.OriginText, req.DestinationText, targetType, targetTime)
	if err != nil {
		if errors.Is(err, directions.ErrNoRoute) {
			respond.WriteError(w, http.StatusUnprocessableEntity, "NO_ROUTE",
				"No transit route found between origin and destination")
			return
		}
		respond.WriteErrorDetail(w, http.StatusBadGateway, "ROUTE_LOOKUP_FAILED",
			"Route lookup failed", err.Error())
		return
	}

	schedule, err := alert.ComputeSchedule(legs, targetType, targetTime, prep)
	if err != nil {
		if errors.Is(err, alert.ErrInfeasibleSchedule) {
			respond.WriteError(w, http.StatusUnprocessableEntity, "INFEASIBLE_SCHEDULE",
				"Wake-up time would not be before departure time")
			return
		}
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, "SCHEDULE_ERROR",
			"Could not compute a schedule for this route", err.Error())
		return
	}

	a := &alert.Alert{
		ID:                   uuid.New(),
		PhoneNumber:          req.PhoneNumber,
		OriginText:           req.OriginText,
		DestinationText:      req.DestinationText,
		TargetType:           targetType,
		TargetTime:           targetTime,
		PreparationMinutes:   prep,
		Legs:                 legs,
		TotalDurationSeconds: int(schedule.TotalDuration.Seconds()),
		WakeUpAt:             schedule.WakeUpAt,
		DepartureAt:          schedule.DepartureAt,
		DepartureRawAt:       schedule.DepartureRawAt,
		ArrivalAt:            schedule.ArrivalAt,
		TransitArrivalAt:     schedule.TransitArrivalAt,
		TransitWarningAt:     schedule.TransitWarningAt,
		Stage:                alert.StagePendingWakeUp,
	}

	if err := h.store.Create(r.Context(), a); err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to persist alert", err.Error())
		return
	}

	respond.WriteJSON(w, http.StatusCreated, a)
}

// ListAlerts returns all alerts.
// @Summary List alerts
// @Tags alerts
// @Produce json
// @Success 200 {array} alert.Alert
// @Router /api/v1/alerts [get]
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.store.List(r.Context())
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to list alerts", err.Error())
		return
	}
	if alerts == nil {
		alerts = []*alert.Alert{}
	}
	respond.WriteJSON(w, http.StatusOK, alerts)
}

// ListPendingAlerts returns non-terminal alerts, optionally filtered by stage.
// @Summary List pending alerts
// @Tags alerts
// @Produce json
// @Param stage query string false "Stage filter (PENDING_WAKE_UP, PENDING_DEPARTURE, PENDING_TRANSIT)"
// @Success 200 {array} alert.Alert
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/alerts/pending [get]
func (h *Handler) ListPendingAlerts(w http.ResponseWriter, r *http.Request) {
	stage := alert.Stage(r.URL.Query().Get("stage"))
	if stage != "" && !stage.Pending() {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"stage must be one of PENDING_WAKE_UP, PENDING_DEPARTURE, PENDING_TRANSIT")
		return
	}

	alerts, err := h.store.ListPending(r.Context(), stage)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to list pending alerts", err.Error())
		return
	}
	if alerts == nil {
		alerts = []*alert.Alert{}
	}
	respond.WriteJSON(w, http.StatusOK, alerts)
}

// GetAlert returns a single alert by id.
// @Summary Get an alert
// @Tags alerts
// @Produce json
// @Param alertID path string true "Alert UUID"
// @Success 200 {object} alert.Alert
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/alerts/{alertID} [get]
func (h *Handler) GetAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseAlertID(w, r)
	if !ok {
		return
	}

	a, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Alert not found")
			return
		}
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Failed to load alert", err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, a)
}

// notifyRequest names the stage to force-dispatch.
type notifyRequest struct {
	Stage string `json:"stage"`
}

// NotifyAlert force-dispatches a stage out of band, bypassing the due-time
// check but advancing the stage exactly as the scheduler would. Terminal
// alerts and stages other than the current one are rejected, so a stage can
// never be re-sent.
// @Summary Manually trigger a stage notification
// @Tags alerts
// @Accept json
// @Produce json
// @Param alertID path string true "Alert UUID"
// @Param request body handler.notifyRequest true "Stage to fire"
// @Success 200 {object} alert.Alert
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/alerts/{alertID}/notify [post]
func (h *Handler) NotifyAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseAlertID(w, r)
	if !ok {
		return
	}

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON")
		return
	}
	stage := alert.Stage(req.Stage)
	if !stage.Pending() {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"stage must be one of PENDING_WAKE_UP, PENDING_DEPARTURE, PENDING_TRANSIT")
		return
	}

	err := h.scheduler.ManualFire(r.Context(), id, stage)
	switch {
	case err == nil:
	case errors.Is(err, alert.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Alert not found")
		return
	case errors.Is(err, alert.ErrAlertTerminal):
		respond.WriteError(w, http.StatusConflict, "ALERT_TERMINAL",
			"Alert has already completed or failed")
		return
	case errors.Is(err, alert.ErrStageNotCurrent):
		respond.WriteError(w, http.StatusConflict, "STAGE_NOT_CURRENT",
			"Requested stage is not the alert's current stage")
		return
	default:
		respond.WriteErrorDetail(w, http.StatusBadGateway, "DISPATCH_FAILED",
			"Notification dispatch failed", err.Error())
		return
	}

	a, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "STORAGE_ERROR",
			"Notification sent but alert reload failed", err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) parseAlertID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "alertID"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "alert id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
