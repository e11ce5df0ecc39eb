// Package notification provides desktop notification utilities.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomotray/internal/config"
)

type sendFunc func(title, message string, icon any) error

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify sendFunc
	alert  sendFunc
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		notify: beeep.Notify,
		alert:  beeep.Alert,
	}
}

// Notify displays a desktop notification if enabled. With sound enabled
// the notification is raised as an alert.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if n.cfg.Sound {
		return n.alert(title, message, "")
	}
	return n.notify(title, message, "")
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n != nil && n.cfg != nil && n.cfg.Enabled
}
