package alert

// Stage is the alert's position in its notification lifecycle. Transitions
// are forward-only: PENDING_WAKE_UP → PENDING_DEPARTURE → PENDING_TRANSIT →
// COMPLETED, with FAILED reachable from any pending stage after retry
// exhaustion. COMPLETED and FAILED are terminal.
type Stage string

const (
	StagePendingWakeUp    Stage = "PENDING_WAKE_UP"
	StagePendingDeparture Stage = "PENDING_DEPARTURE"
	StagePendingTransit   Stage = "PENDING_TRANSIT"
	StageCompleted        Stage = "COMPLETED"
	StageFailed           Stage = "FAILED"
)

// Valid reports whether s is a known stage value.
func (s Stage) Valid() bool {
	switch s {
	case StagePendingWakeUp, StagePendingDeparture, StagePendingTransit,
		StageCompleted, StageFailed:
		return true
	}
	return false
}

// Pending reports whether s is a dispatchable (non-terminal) stage.
func (s Stage) Pending() bool {
	switch s {
	case StagePendingWakeUp, StagePendingDeparture, StagePendingTransit:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// Next returns the stage that follows s after a successful dispatch.
// PENDING_TRANSIT is skipped when the route has no transit leg. The second
// return is false for terminal stages, which have no successor.
func (s Stage) Next(hasTransit bool) (Stage, bool) {
	switch s {
	case StagePendingWakeUp:
		return StagePendingDeparture, true
	case StagePendingDeparture:
		if hasTransit {
			return StagePendingTransit, true
		}
		return StageCompleted, true
	case StagePendingTransit:
		return StageCompleted, true
	default:
		return s, false
	}
}
