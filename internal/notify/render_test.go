package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoohyunk/punctualBE/internal/alert"
)

func sampleAlert() *alert.Alert {
	board := time.Date(2026, time.March, 9, 8, 22, 0, 0, time.UTC)
	warn := board.Add(-3 * time.Minute)
	return &alert.Alert{
		ID:              uuid.New(),
		PhoneNumber:     "+14035551234",
		OriginText:      "Home",
		DestinationText: "University of Calgary",
		Legs: []alert.RouteLeg{
			{Mode: alert.ModeWalk, DurationSeconds: 12 * 60, Distance: "0.9 km"},
			{Mode: alert.ModeTransit, DurationSeconds: 38 * 60, LineName: "Route 9", DepartureStop: "7 Ave SW"},
		},
		WakeUpAt:         time.Date(2026, time.March, 9, 7, 30, 0, 0, time.UTC),
		DepartureAt:      time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC),
		ArrivalAt:        time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC),
		TransitArrivalAt: &board,
		TransitWarningAt: &warn,
		Stage:            alert.StagePendingWakeUp,
	}
}

func TestRenderWakeUp(t *testing.T) {
	body, err := Render(sampleAlert(), alert.StagePendingWakeUp)
	require.NoError(t, err)
	assert.Contains(t, body, "Good morning")
	assert.Contains(t, body, "8:00 AM", "shows the rounded departure time")
	assert.Contains(t, body, "University of Calgary")
}

func TestRenderDeparture(t *testing.T) {
	body, err := Render(sampleAlert(), alert.StagePendingDeparture)
	require.NoError(t, err)
	assert.Contains(t, body, "Time to leave")
	assert.Contains(t, body, "University of Calgary")
	assert.Contains(t, body, "9:00 AM")
	assert.Contains(t, body, "Walk 0.9 km (12 min)")
	assert.Contains(t, body, "Route 9 from 7 Ave SW")
}

func TestRenderDepartureCapsRouteSummary(t *testing.T) {
	a := sampleAlert()
	a.Legs = []alert.RouteLeg{
		{Mode: alert.ModeWalk, DurationSeconds: 5 * 60},
		{Mode: alert.ModeTransit, DurationSeconds: 20 * 60, LineName: "Route 3", DepartureStop: "Centre St"},
		{Mode: alert.ModeWalk, DurationSeconds: 2 * 60},
		{Mode: alert.ModeTransit, DurationSeconds: 15 * 60, LineName: "Route 301", DepartureStop: "City Hall"},
	}

	body, err := Render(a, alert.StagePendingDeparture)
	require.NoError(t, err)
	assert.Contains(t, body, "Route 3 from Centre St")
	assert.NotContains(t, body, "Route 301", "only the first three legs are listed")
}

func TestRenderTransitWarning(t *testing.T) {
	body, err := Render(sampleAlert(), alert.StagePendingTransit)
	require.NoError(t, err)
	assert.Contains(t, body, "Route 9")
	assert.Contains(t, body, "7 Ave SW")
	assert.Contains(t, body, "3 minutes")
}

func TestRenderTransitWarningFallbacks(t *testing.T) {
	a := sampleAlert()
	a.Legs[1].LineName = ""
	a.Legs[1].DepartureStop = ""

	body, err := Render(a, alert.StagePendingTransit)
	require.NoError(t, err)
	assert.Contains(t, body, "Your transit")
	assert.Contains(t, body, "the stop")
}

func TestRenderTransitWarningWithoutTransitLeg(t *testing.T) {
	a := sampleAlert()
	a.Legs = []alert.RouteLeg{{Mode: alert.ModeWalk, DurationSeconds: 25 * 60}}

	_, err := Render(a, alert.StagePendingTransit)
	assert.Error(t, err)
}

func TestRenderTerminalStage(t *testing.T) {
	_, err := Render(sampleAlert(), alert.StageCompleted)
	assert.Error(t, err)
}

// fakeSender records sent messages.
type fakeSender struct {
	to, body string
	err      error
	calls    int
}

func (f *fakeSender) Send(ctx context.Context, to, body string) error {
	f.calls++
	f.to, f.body = to, body
	return f.err
}

func TestDispatcherSend(t *testing.T) {
	sender := &fakeSender{}
	d := New(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a := sampleAlert()

	err := d.Send(context.Background(), a, alert.StagePendingWakeUp)
	require.NoError(t, err)
	assert.Equal(t, a.PhoneNumber, sender.to)
	assert.Contains(t, sender.body, "Good morning")
}

func TestDispatcherSendProviderError(t *testing.T) {
	sender := &fakeSender{err: errors.New("twilio: 500")}
	d := New(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := d.Send(context.Background(), sampleAlert(), alert.StagePendingWakeUp)
	assert.ErrorContains(t, err, "twilio: 500")
}

func TestDispatcherSendNilSender(t *testing.T) {
	d := New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := d.Send(context.Background(), sampleAlert(), alert.StagePendingWakeUp)
	assert.ErrorContains(t, err, "not configured")
}

func TestDispatcherRenderErrorSkipsProvider(t *testing.T) {
	sender := &fakeSender{}
	d := New(sender, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a := sampleAlert()
	a.Legs = []alert.RouteLeg{{Mode: alert.ModeWalk, DurationSeconds: 25 * 60}}

	err := d.Send(context.Background(), a, alert.StagePendingTransit)
	assert.Error(t, err)
	assert.Zero(t, sender.calls, "nothing goes out when rendering fails")
}
