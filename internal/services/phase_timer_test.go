package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomotray/internal/domain"
)

func newTestTimer(t *testing.T, work, brk int) (*PhaseTimer, *fakePresenter, *fakeDriver) {
	t.Helper()
	d, err := domain.NewDurations(work, brk)
	require.NoError(t, err)
	presenter := &fakePresenter{}
	driver := &fakeDriver{}
	return NewPhaseTimer(d, presenter, driver), presenter, driver
}

func TestNewPhaseTimer_InitialState(t *testing.T) {
	timer, _, _ := newTestTimer(t, 27, 3)

	snap := timer.Snapshot()
	assert.Equal(t, domain.PhaseWork, snap.Phase)
	assert.False(t, snap.Running)
	assert.True(t, snap.Paused)
	assert.Equal(t, 1620, snap.RemainingSeconds)
}

func TestPhaseTimer_Start(t *testing.T) {
	timer, presenter, driver := newTestTimer(t, 27, 3)

	timer.Start()

	snap := timer.Snapshot()
	assert.True(t, snap.Running)
	assert.False(t, snap.Paused)
	assert.True(t, driver.armed)
	assert.Equal(t, time.Second, driver.interval)
	assert.Equal(t, "27:00", presenter.clock)
	assert.Equal(t, "working", presenter.status)

	t.Run("idempotent while counting", func(t *testing.T) {
		before := timer.Snapshot()
		renders := presenter.renders

		timer.Start()

		assert.Equal(t, before, timer.Snapshot())
		assert.Equal(t, 1, driver.arms)
		assert.Equal(t, renders, presenter.renders)
	})
}

func TestPhaseTimer_PauseIsIdempotent(t *testing.T) {
	timer, presenter, driver := newTestTimer(t, 27, 3)
	timer.Start()
	timer.Tick()

	timer.Pause()
	once := timer.Snapshot()
	assert.True(t, once.Running)
	assert.True(t, once.Paused)
	assert.False(t, driver.armed)
	assert.Equal(t, "working — click to start", presenter.status)

	timer.Pause()
	assert.Equal(t, once, timer.Snapshot())
	assert.Equal(t, 1, driver.disarms)
}

func TestPhaseTimer_ResumeAfterPause(t *testing.T) {
	timer, _, driver := newTestTimer(t, 27, 3)
	timer.Start()
	timer.Tick()
	timer.Pause()

	timer.Start()

	snap := timer.Snapshot()
	assert.True(t, snap.Ticking())
	assert.Equal(t, 1619, snap.RemainingSeconds)
	assert.Equal(t, 2, driver.arms)
}

func TestPhaseTimer_TickIgnoredUnlessCounting(t *testing.T) {
	timer, presenter, _ := newTestTimer(t, 27, 3)

	timer.Tick()
	assert.Equal(t, 1620, timer.Snapshot().RemainingSeconds)

	timer.Start()
	timer.Pause()
	renders := presenter.renders
	timer.Tick()
	assert.Equal(t, 1620, timer.Snapshot().RemainingSeconds)
	assert.Equal(t, renders, presenter.renders)
}

func TestPhaseTimer_TickCountsDownWithinPhase(t *testing.T) {
	timer, presenter, _ := newTestTimer(t, 1, 1)
	timer.Start()

	for i := 0; i < 60; i++ {
		timer.Tick()
	}

	snap := timer.Snapshot()
	assert.Equal(t, 0, snap.RemainingSeconds)
	assert.Equal(t, domain.PhaseWork, snap.Phase)
	assert.Empty(t, presenter.notifications)
	assert.Equal(t, "00:00", presenter.clock)

	timer.Tick()

	snap = timer.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Phase)
	assert.Equal(t, 60, snap.RemainingSeconds)
	require.Len(t, presenter.notifications, 1)
}

func TestPhaseTimer_SwitchToBreak(t *testing.T) {
	timer, presenter, _ := newTestTimer(t, 1, 2)
	timer.Start()
	for i := 0; i < 60; i++ {
		timer.Tick()
	}
	require.Equal(t, 0, timer.Snapshot().RemainingSeconds)

	var switches []domain.PhaseSwitch
	timer.SetOnSwitch(func(sw domain.PhaseSwitch) {
		switches = append(switches, sw)
	})

	timer.Tick()

	snap := timer.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Phase)
	assert.Equal(t, 120, snap.RemainingSeconds)
	assert.True(t, snap.Ticking())

	require.Len(t, presenter.notifications, 1)
	assert.Equal(t, "Pomodoro", presenter.notifications[0].title)
	assert.Equal(t, "Start your break!", presenter.notifications[0].message)
	assert.Equal(t, "02:00", presenter.clock)
	assert.Equal(t, "resting", presenter.status)

	require.Len(t, switches, 1)
	assert.Equal(t, domain.PhaseWork, switches[0].From)
	assert.Equal(t, domain.PhaseBreak, switches[0].To)
	assert.Equal(t, time.Minute, switches[0].Completed)
}

func TestPhaseTimer_SwitchBackToWork(t *testing.T) {
	timer, presenter, _ := newTestTimer(t, 1, 1)
	timer.Start()
	for i := 0; i < 61+60+1; i++ {
		timer.Tick()
	}

	snap := timer.Snapshot()
	assert.Equal(t, domain.PhaseWork, snap.Phase)
	assert.Equal(t, 60, snap.RemainingSeconds)
	require.Len(t, presenter.notifications, 2)
	assert.Equal(t, "Break is over, start working!", presenter.notifications[1].message)
}

func TestPhaseTimer_ResetFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*PhaseTimer)
	}{
		{"stopped", func(*PhaseTimer) {}},
		{"counting", func(p *PhaseTimer) {
			p.Start()
			p.Tick()
		}},
		{"paused", func(p *PhaseTimer) {
			p.Start()
			p.Tick()
			p.Pause()
		}},
		{"in break", func(p *PhaseTimer) {
			p.Start()
			for i := 0; i < 65; i++ {
				p.Tick()
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer, presenter, driver := newTestTimer(t, 1, 3)
			tt.setup(timer)

			timer.Reset()

			snap := timer.Snapshot()
			assert.Equal(t, domain.PhaseWork, snap.Phase)
			assert.Equal(t, 60, snap.RemainingSeconds)
			assert.False(t, snap.Running)
			assert.True(t, snap.Paused)
			assert.False(t, driver.armed)
			assert.Equal(t, "01:00", presenter.clock)
			assert.Equal(t, "working — click to start", presenter.status)
		})
	}
}

func TestPhaseTimer_Reconfigure(t *testing.T) {
	t.Run("stopped resets remaining", func(t *testing.T) {
		timer, _, _ := newTestTimer(t, 27, 3)
		d, _ := domain.NewDurations(50, 10)

		timer.Reconfigure(d)

		snap := timer.Snapshot()
		assert.Equal(t, 3000, snap.RemainingSeconds)
		assert.False(t, snap.Running)
		assert.True(t, snap.Paused)
	})

	t.Run("running keeps countdown", func(t *testing.T) {
		timer, _, _ := newTestTimer(t, 27, 3)
		timer.Start()
		timer.Tick()
		d, _ := domain.NewDurations(50, 10)

		timer.Reconfigure(d)

		snap := timer.Snapshot()
		assert.Equal(t, 1619, snap.RemainingSeconds)
		assert.True(t, snap.Ticking())
		assert.Equal(t, 600, snap.Durations.Seconds(domain.PhaseBreak))
	})

	t.Run("running clamps to shorter phase", func(t *testing.T) {
		timer, _, _ := newTestTimer(t, 27, 3)
		timer.Start()
		d, _ := domain.NewDurations(5, 3)

		timer.Reconfigure(d)

		assert.Equal(t, 300, timer.Snapshot().RemainingSeconds)
	})

	t.Run("paused but armed keeps countdown", func(t *testing.T) {
		timer, _, _ := newTestTimer(t, 27, 3)
		timer.Start()
		timer.Tick()
		timer.Pause()
		d, _ := domain.NewDurations(30, 3)

		timer.Reconfigure(d)

		snap := timer.Snapshot()
		assert.Equal(t, 1619, snap.RemainingSeconds)
		assert.True(t, snap.Running)
		assert.True(t, snap.Paused)
	})

	t.Run("paused in break keeps break countdown", func(t *testing.T) {
		timer, _, _ := newTestTimer(t, 1, 3)
		timer.Start()
		for i := 0; i < 61; i++ {
			timer.Tick()
		}
		timer.Pause()
		require.Equal(t, domain.PhaseBreak, timer.Snapshot().Phase)
		d, _ := domain.NewDurations(1, 7)

		timer.Reconfigure(d)

		assert.Equal(t, 180, timer.Snapshot().RemainingSeconds)
	})
}

func TestPhaseTimer_SwitchReportsCountedTime(t *testing.T) {
	tests := []struct {
		name       string
		work       int
		reconfig   [2]int
		ticksFirst int
		want       time.Duration
	}{
		{"shortened mid-phase", 10, [2]int{2, 1}, 30, 150 * time.Second},
		{"lengthened mid-phase", 1, [2]int{5, 1}, 30, time.Minute},
		{"shortened below elapsed", 10, [2]int{1, 1}, 300, 6 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer, _, _ := newTestTimer(t, tt.work, 1)
			var switches []domain.PhaseSwitch
			timer.SetOnSwitch(func(sw domain.PhaseSwitch) {
				switches = append(switches, sw)
			})

			timer.Start()
			for i := 0; i < tt.ticksFirst; i++ {
				timer.Tick()
			}
			d, err := domain.NewDurations(tt.reconfig[0], tt.reconfig[1])
			require.NoError(t, err)
			timer.Reconfigure(d)

			for i := 0; len(switches) == 0 && i < 10000; i++ {
				timer.Tick()
			}

			require.Len(t, switches, 1)
			assert.Equal(t, domain.PhaseWork, switches[0].From)
			assert.Equal(t, tt.want, switches[0].Completed)
		})
	}
}

func TestPhaseTimer_ResetDiscardsCountedTime(t *testing.T) {
	timer, _, _ := newTestTimer(t, 1, 1)
	var completed time.Duration
	timer.SetOnSwitch(func(sw domain.PhaseSwitch) {
		completed = sw.Completed
	})

	timer.Start()
	for i := 0; i < 30; i++ {
		timer.Tick()
	}
	timer.Reset()
	timer.Start()
	for i := 0; i < 61; i++ {
		timer.Tick()
	}

	assert.Equal(t, time.Minute, completed)
}

func TestPhaseTimer_DefaultScenario(t *testing.T) {
	timer, presenter, _ := newTestTimer(t, domain.DefaultWorkMinutes, domain.DefaultBreakMinutes)

	timer.Start()
	for i := 0; i < 1620; i++ {
		timer.Tick()
	}
	require.Equal(t, domain.PhaseWork, timer.Snapshot().Phase)
	require.Empty(t, presenter.notifications)

	timer.Tick()
	snap := timer.Snapshot()
	assert.Equal(t, domain.PhaseBreak, snap.Phase)
	assert.Equal(t, 180, snap.RemainingSeconds)

	timer.Reset()
	snap = timer.Snapshot()
	assert.Equal(t, domain.PhaseWork, snap.Phase)
	assert.False(t, snap.Running)
	assert.True(t, snap.Paused)
	assert.Equal(t, 1620, snap.RemainingSeconds)
}

func TestPhaseTimer_NilCollaborators(t *testing.T) {
	timer := NewPhaseTimer(domain.DefaultDurations(), nil, nil)

	assert.NotPanics(t, func() {
		timer.Start()
		timer.Tick()
		timer.Pause()
		timer.Reset()
	})
}
