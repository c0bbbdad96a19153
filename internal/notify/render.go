package notify

import (
	"fmt"
	"strings"

	"github.com/yoohyunk/punctualBE/internal/alert"
)

const clockFormat = "3:04 PM"

// maxRouteSummarySteps caps how many legs the departure message lists.
const maxRouteSummarySteps = 3

// Render builds the message body for a stage from the alert's stored
// timestamps and route snapshot.
func Render(a *alert.Alert, stage alert.Stage) (string, error) {
	switch stage {
	case alert.StagePendingWakeUp:
		return renderWakeUp(a), nil
	case alert.StagePendingDeparture:
		return renderDeparture(a), nil
	case alert.StagePendingTransit:
		return renderTransitWarning(a)
	default:
		return "", fmt.Errorf("no notification for stage %s", stage)
	}
}

func renderWakeUp(a *alert.Alert) string {
	return fmt.Sprintf(
		"⏰ Good morning! Time to wake up!\n\n"+
			"You need to leave at %s to reach %s on time.\n"+
			"Start getting ready!",
		a.DepartureAt.Format(clockFormat), a.DestinationText)
}

func renderDeparture(a *alert.Alert) string {
	var summary []string
	for _, leg := range a.Legs {
		if len(summary) == maxRouteSummarySteps {
			break
		}
		switch leg.Mode {
		case alert.ModeTransit:
			line := leg.LineName
			if line == "" {
				line = "Transit"
			}
			summary = append(summary, fmt.Sprintf("🚌 %s from %s", line, leg.DepartureStop))
		case alert.ModeWalk:
			step := "🚶 Walk"
			if leg.Distance != "" {
				step += " " + leg.Distance
			}
			step += fmt.Sprintf(" (%d min)", leg.DurationSeconds/60)
			summary = append(summary, step)
		}
	}

	return fmt.Sprintf(
		"🚪 Time to leave!\n\n"+
			"Destination: %s\n"+
			"Arrival: %s\n\n"+
			"Route:\n%s\n\n"+
			"Have a safe trip!",
		a.DestinationText, a.ArrivalAt.Format(clockFormat), strings.Join(summary, "\n"))
}

func renderTransitWarning(a *alert.Alert) (string, error) {
	leg, ok := a.FirstTransitLeg()
	if !ok {
		return "", fmt.Errorf("alert %s has no transit leg", a.ID)
	}
	line := leg.LineName
	if line == "" {
		line = "Your transit"
	}
	stop := leg.DepartureStop
	if stop == "" {
		stop = "the stop"
	}
	return fmt.Sprintf(
		"🚌 Transit Alert!\n\n"+
			"%s is arriving at %s in 3 minutes.\n"+
			"Head to the stop now!",
		line, stop), nil
}
