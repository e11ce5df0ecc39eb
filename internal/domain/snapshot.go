package domain

// Snapshot is a read-only view of the timer used for rendering.
type Snapshot struct {
	Phase            Phase
	Running          bool
	Paused           bool
	RemainingSeconds int
	Durations        Durations
}

// Clock returns the remaining time formatted as MM:SS.
func (s Snapshot) Clock() string {
	return FormatClock(s.RemainingSeconds)
}

// Status returns the status line for the snapshot.
func (s Snapshot) Status() string {
	return Status(s.Phase, s.Paused)
}

// TrayTip returns the tooltip text for the snapshot.
func (s Snapshot) TrayTip() string {
	return TrayTip(s.Phase)
}

// Ticking reports whether the countdown is advancing.
func (s Snapshot) Ticking() bool {
	return s.Running && !s.Paused
}

// Progress returns the elapsed fraction of the current phase (0.0 to 1.0).
func (s Snapshot) Progress() float64 {
	total := s.Durations.Seconds(s.Phase)
	if total <= 0 {
		return 0
	}
	progress := float64(total-s.RemainingSeconds) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
