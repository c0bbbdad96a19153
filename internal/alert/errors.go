package alert

import "errors"

var (
	// ErrNotFound means no alert exists with the given id.
	ErrNotFound = errors.New("alert not found")

	// ErrConcurrentUpdate means a conditional stage update matched no row:
	// another scheduler advanced the alert first. The persisted stage is
	// authoritative and the losing update is discarded.
	ErrConcurrentUpdate = errors.New("alert stage changed concurrently")

	// ErrInfeasibleSchedule means the computed wake-up time is not strictly
	// before the rounded departure time.
	ErrInfeasibleSchedule = errors.New("wake-up time is not before departure time")

	// ErrEmptyRoute means the route has no legs to schedule against.
	ErrEmptyRoute = errors.New("route has no legs")

	// ErrAlertTerminal means a dispatch was requested for an alert already
	// in COMPLETED or FAILED.
	ErrAlertTerminal = errors.New("alert is in a terminal stage")

	// ErrStageNotCurrent means a manual dispatch named a stage other than
	// the alert's current one.
	ErrStageNotCurrent = errors.New("stage is not the alert's current stage")
)
