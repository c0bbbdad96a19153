package alert

import (
	"fmt"
	"time"
)

const (
	// Departure times are floored to the quarter-hour grid. Flooring (never
	// rounding up) guarantees the displayed departure is no later than the
	// physically required one.
	gridStep = 15 * time.Minute

	// Riders get the transit warning this long before the first vehicle
	// arrives at the boarding stop.
	transitWarningLead = 3 * time.Minute
)

// Schedule holds the timestamps derived once at alert creation.
type Schedule struct {
	WakeUpAt       time.Time
	DepartureAt    time.Time // floored to the quarter-hour grid
	DepartureRawAt time.Time // true required departure, display only
	ArrivalAt      time.Time

	// Nil when the route has no transit leg.
	TransitArrivalAt *time.Time
	TransitWarningAt *time.Time

	TotalDuration time.Duration
}

// ComputeSchedule derives the notification timestamps from a route. Pure:
// no I/O, no clock access. ARRIVAL and DEPARTURE are dual framings of the
// same computation — only the anchor differs.
//
// Invariant on success: WakeUpAt < DepartureAt ≤ TransitWarningAt ≤
// TransitArrivalAt (the transit pair when present).
func ComputeSchedule(legs []RouteLeg, targetType TargetType, targetTime time.Time, preparationMinutes int) (Schedule, error) {
	if len(legs) == 0 {
		return Schedule{}, ErrEmptyRoute
	}

	var total time.Duration
	for _, l := range legs {
		total += l.Duration()
	}

	var departureRaw, arrival time.Time
	switch targetType {
	case TargetArrival:
		arrival = targetTime
		departureRaw = targetTime.Add(-total)
	case TargetDeparture:
		departureRaw = targetTime
		arrival = targetTime.Add(total)
	default:
		return Schedule{}, fmt.Errorf("unknown target type %q", targetType)
	}

	departure := floorToGrid(departureRaw)
	wakeUp := departure.Add(-time.Duration(preparationMinutes) * time.Minute)
	if !wakeUp.Before(departure) {
		return Schedule{}, ErrInfeasibleSchedule
	}

	s := Schedule{
		WakeUpAt:       wakeUp,
		DepartureAt:    departure,
		DepartureRawAt: departureRaw,
		ArrivalAt:      arrival,
		TotalDuration:  total,
	}

	// Walk forward from the raw departure (not the rounded one — the transit
	// vehicle follows the physical schedule) to the first transit boarding.
	var offset time.Duration
	for _, l := range legs {
		if l.Mode == ModeTransit {
			board := departureRaw.Add(offset)
			warn := board.Add(-transitWarningLead)
			if warn.Before(departure) {
				// Boarding is less than the warning lead after the rounded
				// departure; clamp so DepartureAt ≤ TransitWarningAt holds.
				warn = departure
			}
			s.TransitArrivalAt = &board
			s.TransitWarningAt = &warn
			break
		}
		offset += l.Duration()
	}

	return s, nil
}

// floorToGrid floors t to the preceding {00,15,30,45} minute boundary in
// its own location, dropping seconds.
func floorToGrid(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()-t.Minute()%15, 0, 0, t.Location())
}
