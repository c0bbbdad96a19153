// Package notify renders stage-specific notification text and hands it to
// the messaging provider. One outbound message per successful call; the
// dispatcher does not deduplicate — the scheduler's conditional stage
// advance guarantees at-most-one invocation per (alert, stage).
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yoohyunk/punctualBE/internal/alert"
)

// Sender delivers one message to one phone number. Satisfied by sms.Client.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Dispatcher renders and sends stage notifications.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
}

// New creates a Dispatcher.
func New(sender Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, logger: logger}
}

// Send renders the message for the given stage and delivers it. Any
// provider failure is returned as-is for the scheduler's retry bookkeeping.
func (d *Dispatcher) Send(ctx context.Context, a *alert.Alert, stage alert.Stage) error {
	if d.sender == nil {
		return fmt.Errorf("messaging provider not configured")
	}
	body, err := Render(a, stage)
	if err != nil {
		return err
	}
	if err := d.sender.Send(ctx, a.PhoneNumber, body); err != nil {
		return fmt.Errorf("send %s notification: %w", stage, err)
	}
	d.logger.Info("Notification sent", "alert_id", a.ID, "stage", stage)
	return nil
}
