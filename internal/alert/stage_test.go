package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageNext(t *testing.T) {
	cases := []struct {
		name       string
		stage      Stage
		hasTransit bool
		want       Stage
		ok         bool
	}{
		{"wake up advances to departure", StagePendingWakeUp, true, StagePendingDeparture, true},
		{"wake up advances regardless of transit", StagePendingWakeUp, false, StagePendingDeparture, true},
		{"departure advances to transit", StagePendingDeparture, true, StagePendingTransit, true},
		{"departure skips transit on walking routes", StagePendingDeparture, false, StageCompleted, true},
		{"transit completes", StagePendingTransit, true, StageCompleted, true},
		{"completed is terminal", StageCompleted, true, StageCompleted, false},
		{"failed is terminal", StageFailed, true, StageFailed, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := tc.stage.Next(tc.hasTransit)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestStagePredicates(t *testing.T) {
	pending := []Stage{StagePendingWakeUp, StagePendingDeparture, StagePendingTransit}
	for _, s := range pending {
		assert.True(t, s.Valid(), "%s", s)
		assert.True(t, s.Pending(), "%s", s)
		assert.False(t, s.Terminal(), "%s", s)
	}

	for _, s := range []Stage{StageCompleted, StageFailed} {
		assert.True(t, s.Valid(), "%s", s)
		assert.False(t, s.Pending(), "%s", s)
		assert.True(t, s.Terminal(), "%s", s)
	}

	assert.False(t, Stage("SNOOZED").Valid())
	assert.False(t, Stage("").Valid())
}

func TestAlertDue(t *testing.T) {
	warn := at(8, 19)
	a := &Alert{
		WakeUpAt:         at(7, 30),
		DepartureAt:      at(8, 0),
		TransitWarningAt: &warn,
	}

	a.Stage = StagePendingWakeUp
	assert.False(t, a.Due(at(7, 29)))
	assert.True(t, a.Due(at(7, 30)), "due exactly at the boundary")
	assert.True(t, a.Due(at(7, 45)))

	a.Stage = StagePendingDeparture
	assert.False(t, a.Due(at(7, 59)))
	assert.True(t, a.Due(at(8, 0)))

	a.Stage = StagePendingTransit
	assert.False(t, a.Due(at(8, 18)))
	assert.True(t, a.Due(at(8, 19)))

	a.Stage = StageCompleted
	assert.False(t, a.Due(at(23, 59)), "terminal stages are never due")

	a.Stage = StageFailed
	assert.False(t, a.Due(at(23, 59)))
}

func TestAlertHasTransit(t *testing.T) {
	board := at(8, 22)
	withTransit := &Alert{TransitArrivalAt: &board}
	assert.True(t, withTransit.HasTransit())
	assert.False(t, (&Alert{}).HasTransit())
}

func TestAlertFirstTransitLeg(t *testing.T) {
	a := &Alert{Legs: []RouteLeg{
		{Mode: ModeWalk, DurationSeconds: mins(5)},
		{Mode: ModeTransit, DurationSeconds: mins(20), LineName: "Route 3"},
		{Mode: ModeTransit, DurationSeconds: mins(10), LineName: "Route 301"},
	}}

	leg, ok := a.FirstTransitLeg()
	assert.True(t, ok)
	assert.Equal(t, "Route 3", leg.LineName)

	_, ok = (&Alert{Legs: []RouteLeg{{Mode: ModeWalk, DurationSeconds: mins(5)}}}).FirstTransitLeg()
	assert.False(t, ok)
}
