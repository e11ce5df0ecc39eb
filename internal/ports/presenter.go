// Package ports defines the interfaces (driven and driving ports)
// between the timer core and the adapters that render it, drive it and
// store its settings.
package ports

import "time"

// Presenter renders timer state and surfaces notifications.
// This is a driven port (implemented by the presentation adapters).
type Presenter interface {
	// RenderTime displays the formatted remaining time.
	RenderTime(clock string)

	// RenderStatus displays the status line for the current phase.
	RenderStatus(status string)

	// NotifyUser shows a user-visible notification.
	NotifyUser(title, message string)
}

// Driver is the periodic tick source.
// This is a driven port (implemented by the presentation adapters).
type Driver interface {
	// Arm starts delivering ticks every interval.
	Arm(interval time.Duration)

	// Disarm stops tick delivery. Ticks already scheduled must be dropped.
	Disarm()
}

// Notifier delivers desktop notifications.
// This is a driven port (implemented by the notification adapter).
type Notifier interface {
	Notify(title, message string) error
}
