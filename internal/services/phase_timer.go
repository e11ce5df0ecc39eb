package services

import (
	"time"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// TickInterval is the period the driver is armed with.
const TickInterval = time.Second

// PhaseTimer is the work/break countdown state machine.
//
// Stopped is represented as running=false, paused=true. A PhaseTimer is not
// safe for concurrent use: ticks and user operations must arrive on the same
// goroutine.
type PhaseTimer struct {
	durations domain.Durations
	phase     domain.Phase
	remaining int
	elapsed   int
	running   bool
	paused    bool

	presenter ports.Presenter
	driver    ports.Driver
	onSwitch  func(domain.PhaseSwitch)
	now       func() time.Time
}

// NewPhaseTimer creates a stopped timer at the start of a work phase.
func NewPhaseTimer(d domain.Durations, presenter ports.Presenter, driver ports.Driver) *PhaseTimer {
	return &PhaseTimer{
		durations: d,
		phase:     domain.PhaseWork,
		remaining: d.Seconds(domain.PhaseWork),
		paused:    true,
		presenter: presenter,
		driver:    driver,
		now:       time.Now,
	}
}

// SetOnSwitch sets a callback fired after every phase switch.
func (t *PhaseTimer) SetOnSwitch(fn func(domain.PhaseSwitch)) {
	t.onSwitch = fn
}

// Reconfigure replaces the phase durations. A stopped timer restarts the
// current phase at its new length; a running one keeps its countdown,
// clamped to the new length.
func (t *PhaseTimer) Reconfigure(d domain.Durations) {
	t.durations = d
	limit := d.Seconds(t.phase)
	if !t.running {
		t.remaining = limit
		t.elapsed = 0
		return
	}
	if t.remaining > limit {
		t.remaining = limit
	}
}

// Start arms the countdown. Calling it while already counting is a no-op.
func (t *PhaseTimer) Start() {
	if t.running && !t.paused {
		return
	}
	t.running = true
	t.paused = false
	if t.driver != nil {
		t.driver.Arm(TickInterval)
	}
	t.Refresh()
}

// Pause suspends the countdown while keeping it armed.
func (t *PhaseTimer) Pause() {
	if t.paused {
		return
	}
	t.paused = true
	t.disarm()
	t.Refresh()
}

// Reset stops the timer and returns to the start of a work phase,
// discarding any break in progress.
func (t *PhaseTimer) Reset() {
	t.running = false
	t.paused = true
	t.phase = domain.PhaseWork
	t.remaining = t.durations.Seconds(domain.PhaseWork)
	t.elapsed = 0
	t.disarm()
	t.Refresh()
}

// Tick advances the countdown by one second, or switches phase when the
// countdown is already at zero. It does nothing unless the timer is running
// and unpaused.
func (t *PhaseTimer) Tick() {
	if !t.running || t.paused {
		return
	}
	if t.remaining > 0 {
		t.remaining--
		t.elapsed++
	} else {
		t.switchPhase()
	}
	t.Refresh()
}

// Refresh renders the current time and status without changing state.
func (t *PhaseTimer) Refresh() {
	if t.presenter == nil {
		return
	}
	snap := t.Snapshot()
	t.presenter.RenderTime(snap.Clock())
	t.presenter.RenderStatus(snap.Status())
}

// Snapshot returns a copy of the current state.
func (t *PhaseTimer) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Phase:            t.phase,
		Running:          t.running,
		Paused:           t.paused,
		RemainingSeconds: t.remaining,
		Durations:        t.durations,
	}
}

func (t *PhaseTimer) disarm() {
	if t.driver != nil {
		t.driver.Disarm()
	}
}

// switchPhase flips the phase. The completed time reported to the observer
// is the seconds actually counted down, which differs from the configured
// length when the durations changed mid-phase.
func (t *PhaseTimer) switchPhase() {
	from := t.phase
	completed := time.Duration(t.elapsed) * time.Second
	t.phase = from.Other()
	t.remaining = t.durations.Seconds(t.phase)
	t.elapsed = 0

	if t.presenter != nil {
		t.presenter.NotifyUser(domain.AppTitle, domain.SwitchMessage(t.phase))
	}
	if t.onSwitch != nil {
		t.onSwitch(domain.PhaseSwitch{
			From:      from,
			To:        t.phase,
			Completed: completed,
			At:        t.now(),
		})
	}
}
