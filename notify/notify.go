// Package notify posts best-effort desktop notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appTitle = "OpenMumble"

// Notifier posts desktop notifications. A disabled Notifier drops them.
type Notifier struct {
	enabled bool
}

func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// Info posts an informational notification. Failures are logged, never
// surfaced, so a broken notification daemon cannot break dictation.
func (n *Notifier) Info(message string) {
	if !n.enabled {
		return
	}
	if err := beeep.Notify(appTitle, message, ""); err != nil {
		slog.Debug("notification failed", "error", err)
	}
}

// Error posts an error notification with an alert sound where supported.
func (n *Notifier) Error(message string) {
	if !n.enabled {
		return
	}
	if err := beeep.Alert(appTitle, message, ""); err != nil {
		slog.Debug("notification failed", "error", err)
	}
}
