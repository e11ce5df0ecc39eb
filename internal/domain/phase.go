package domain

import (
	"fmt"
	"time"
)

// Phase is one of the two alternating countdown modes.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// AppTitle is the title used for notifications and the window title.
const AppTitle = "Pomodoro"

// Other returns the phase that follows p.
func (p Phase) Other() Phase {
	if p == PhaseBreak {
		return PhaseWork
	}
	return PhaseBreak
}

// Label returns a human-readable label.
func (p Phase) Label() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// Status maps a phase and pause flag to the status line shown under the clock.
func Status(phase Phase, paused bool) string {
	if phase == PhaseBreak {
		if paused {
			return "resting — click to start"
		}
		return "resting"
	}
	if paused {
		return "working — click to start"
	}
	return "working"
}

// TrayTip returns the short tooltip text for the given phase.
func TrayTip(phase Phase) string {
	if phase == PhaseBreak {
		return AppTitle + " - resting"
	}
	return AppTitle + " - working"
}

// SwitchMessage returns the notification body announcing entry into phase.
func SwitchMessage(to Phase) string {
	if to == PhaseWork {
		return "Break is over, start working!"
	}
	return "Start your break!"
}

// FormatClock renders a second count as MM:SS. Minutes are not capped at 99.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// PhaseSwitch describes a completed phase and the phase that replaced it.
type PhaseSwitch struct {
	From      Phase
	To        Phase
	Completed time.Duration
	At        time.Time
}
