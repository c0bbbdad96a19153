// Package alert holds the commute alert domain: the persisted Alert entity,
// the route leg variant, the stage machine, and the timing calculator that
// derives the four notification timestamps from a route.
package alert

import (
	"time"

	"github.com/google/uuid"
)

// TargetType says whether TargetTime is a desired arrival or departure.
type TargetType string

const (
	TargetArrival   TargetType = "ARRIVAL"
	TargetDeparture TargetType = "DEPARTURE"
)

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	return t == TargetArrival || t == TargetDeparture
}

// LegMode is the travel mode of a route leg.
type LegMode string

const (
	ModeWalk    LegMode = "WALK"
	ModeTransit LegMode = "TRANSIT"
)

// RouteLeg is one ordered step of the computed route. Walk legs carry only a
// duration (plus display distance); transit legs additionally identify the
// line and the boarding stop.
type RouteLeg struct {
	Mode            LegMode `json:"mode"`
	DurationSeconds int     `json:"duration_seconds"`
	Distance        string  `json:"distance,omitempty"`       // walk legs, display only
	LineName        string  `json:"line_name,omitempty"`      // transit legs
	DepartureStop   string  `json:"departure_stop,omitempty"` // transit legs
}

// Duration returns the leg duration as a time.Duration.
func (l RouteLeg) Duration() time.Duration {
	return time.Duration(l.DurationSeconds) * time.Second
}

// Alert is the sole durable entity: one commute alert with its route
// snapshot, notification timestamps, and per-stage dispatch state.
// The four timestamps and the route legs are write-once; only stage,
// attempts, and last_error change after creation.
type Alert struct {
	ID                 uuid.UUID  `json:"id"`
	PhoneNumber        string     `json:"phone_number"`
	OriginText         string     `json:"origin_text"`
	DestinationText    string     `json:"destination_text"`
	TargetType         TargetType `json:"target_type"`
	TargetTime         time.Time  `json:"target_time"`
	PreparationMinutes int        `json:"preparation_minutes"`

	Legs                 []RouteLeg `json:"route_legs"`
	TotalDurationSeconds int        `json:"total_duration_seconds"`

	WakeUpAt         time.Time  `json:"wake_up_at"`
	DepartureAt      time.Time  `json:"departure_at"`
	DepartureRawAt   time.Time  `json:"departure_raw_at"` // unrounded, display only
	ArrivalAt        time.Time  `json:"arrival_at"`
	TransitArrivalAt *time.Time `json:"transit_arrival_at"` // nil for pure-walking routes
	TransitWarningAt *time.Time `json:"transit_warning_at"` // nil for pure-walking routes

	Stage     Stage   `json:"stage"`
	Attempts  int     `json:"attempts"`
	LastError *string `json:"last_error"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTransit reports whether the route includes a transit leg. Alerts
// without one skip PENDING_TRANSIT entirely.
func (a *Alert) HasTransit() bool {
	return a.TransitArrivalAt != nil
}

// FirstTransitLeg returns the first TRANSIT leg, or false if the route is
// pure walking.
func (a *Alert) FirstTransitLeg() (RouteLeg, bool) {
	for _, l := range a.Legs {
		if l.Mode == ModeTransit {
			return l, true
		}
	}
	return RouteLeg{}, false
}

// DueAt returns the timestamp at which the alert's current stage becomes
// due. Terminal stages are never due.
func (a *Alert) DueAt() (time.Time, bool) {
	switch a.Stage {
	case StagePendingWakeUp:
		return a.WakeUpAt, true
	case StagePendingDeparture:
		return a.DepartureAt, true
	case StagePendingTransit:
		if a.TransitWarningAt == nil {
			return time.Time{}, false
		}
		return *a.TransitWarningAt, true
	default:
		return time.Time{}, false
	}
}

// Due reports whether the current stage is due at the given evaluation time.
// Time is passed in rather than read from the clock so boundary cases are
// testable.
func (a *Alert) Due(now time.Time) bool {
	due, ok := a.DueAt()
	return ok && !due.After(now)
}
