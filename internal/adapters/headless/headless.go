// Package headless runs the timer without a UI: phase switches raise
// desktop notifications and status changes are written as log lines.
package headless

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
	"github.com/xvierd/pomotray/internal/services"
)

// Command is an external request delivered to the running loop.
type Command int

const (
	// CmdToggle starts a stopped or paused timer and pauses a counting one.
	CmdToggle Command = iota
	// CmdReset stops the timer and returns to the start of a work phase.
	CmdReset
)

// Options configures a Runner.
type Options struct {
	Settings  *services.SettingsStore
	History   *services.HistoryService
	Notifier  ports.Notifier
	Out       io.Writer
	Logger    *slog.Logger
	AutoStart bool
}

// Runner is the presenter and driver of a headless timer. All timer calls
// happen on the goroutine executing Run.
type Runner struct {
	opts   Options
	logger *slog.Logger
	out    io.Writer

	clock      string
	lastStatus string

	armed    bool
	interval time.Duration

	// newTicker is replaced in tests.
	newTicker func(time.Duration) (<-chan time.Time, func())

	wg sync.WaitGroup
}

var (
	_ ports.Presenter = (*Runner)(nil)
	_ ports.Driver    = (*Runner)(nil)
)

// New creates a headless runner.
func New(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		opts:   opts,
		logger: logger,
		out:    out,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Run loads the settings, builds the timer and serves ticks and commands
// until ctx is canceled. Pending notifications and history writes are
// waited for before it returns.
func (r *Runner) Run(ctx context.Context, commands <-chan Command) error {
	defer r.wg.Wait()

	app := services.NewApp(ctx, r.opts.Settings, r, r, r.logger)
	if r.opts.History != nil {
		history := r.opts.History
		app.Timer.SetOnSwitch(func(sw domain.PhaseSwitch) {
			r.goAsync(func() {
				if _, err := history.Record(ctx, sw); err != nil {
					r.logger.Warn("failed to record phase", "error", err)
				}
			})
		})
	}
	if r.opts.AutoStart {
		app.Timer.Start()
	}

	var (
		ticks <-chan time.Time
		stop  func()
	)
	defer func() {
		if stop != nil {
			stop()
		}
	}()

	for {
		switch {
		case r.armed && ticks == nil:
			ticks, stop = r.newTicker(r.interval)
		case !r.armed && ticks != nil:
			stop()
			ticks, stop = nil, nil
		}

		select {
		case <-ctx.Done():
			r.logger.Info("headless timer stopped")
			return nil
		case <-ticks:
			app.Timer.Tick()
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			switch cmd {
			case CmdToggle:
				app.Toggle()
			case CmdReset:
				app.Timer.Reset()
			}
		}
	}
}

// RenderTime records the clock; it is written out with the next status
// change rather than every second.
func (r *Runner) RenderTime(clock string) {
	r.clock = clock
}

// RenderStatus writes a line when the status text changes.
func (r *Runner) RenderStatus(status string) {
	if status == r.lastStatus {
		return
	}
	r.lastStatus = status
	fmt.Fprintf(r.out, "%s %s  %s\n", time.Now().Format("15:04:05"), r.clock, status)
}

// NotifyUser writes the message and raises the desktop notification on
// its own goroutine.
func (r *Runner) NotifyUser(title, message string) {
	fmt.Fprintf(r.out, "%s %s: %s\n", time.Now().Format("15:04:05"), title, message)
	if r.opts.Notifier == nil {
		return
	}
	notifier := r.opts.Notifier
	r.goAsync(func() {
		if err := notifier.Notify(title, message); err != nil {
			r.logger.Warn("desktop notification failed", "error", err)
		}
	})
}

// Arm requests ticks every interval. The loop picks the change up before
// its next select.
func (r *Runner) Arm(interval time.Duration) {
	r.armed = true
	r.interval = interval
}

// Disarm stops tick delivery. The ticker is stopped before the loop selects
// again, so no tick from the old arming is served.
func (r *Runner) Disarm() {
	r.armed = false
}

func (r *Runner) goAsync(fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn()
	}()
}
