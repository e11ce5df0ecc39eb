package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomotray/internal/ports"
)

// tickMsg is delivered by the driver. gen identifies the arming it belongs
// to; ticks from an earlier arming are stale.
type tickMsg struct {
	gen uint64
	at  time.Time
}

// notifiedMsg reports the outcome of a desktop notification.
type notifiedMsg struct {
	err error
}

// bridge is the timer's presenter and driver inside the Bubble Tea program.
// The timer calls it synchronously from Update; everything that must leave
// the event loop is queued as a tea.Cmd and drained by the model.
type bridge struct {
	clock    string
	status   string
	title    string
	notice   string
	notifier ports.Notifier

	armed    bool
	gen      uint64
	interval time.Duration
	outbox   []tea.Cmd
}

var (
	_ ports.Presenter = (*bridge)(nil)
	_ ports.Driver    = (*bridge)(nil)
)

func newBridge(notifier ports.Notifier) *bridge {
	return &bridge{notifier: notifier}
}

func (b *bridge) RenderTime(clock string) {
	b.clock = clock
}

func (b *bridge) RenderStatus(status string) {
	b.status = status
}

// NotifyUser shows the message in the UI and hands the desktop
// notification off the event loop.
func (b *bridge) NotifyUser(title, message string) {
	b.notice = message
	if b.notifier == nil {
		return
	}
	notifier := b.notifier
	b.push(func() tea.Msg {
		return notifiedMsg{err: notifier.Notify(title, message)}
	})
}

func (b *bridge) Arm(interval time.Duration) {
	b.gen++
	b.armed = true
	b.interval = interval
	b.schedule()
}

func (b *bridge) Disarm() {
	b.armed = false
	b.gen++
}

// accept reports whether msg belongs to the current arming.
func (b *bridge) accept(msg tickMsg) bool {
	return b.armed && msg.gen == b.gen
}

// rearm schedules the tick after msg if the arming it belongs to is still
// current.
func (b *bridge) rearm(msg tickMsg) {
	if b.accept(msg) {
		b.schedule()
	}
}

func (b *bridge) schedule() {
	gen := b.gen
	b.push(tea.Tick(b.interval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	}))
}

func (b *bridge) push(cmd tea.Cmd) {
	b.outbox = append(b.outbox, cmd)
}

// drain returns and clears the queued commands.
func (b *bridge) drain() []tea.Cmd {
	cmds := b.outbox
	b.outbox = nil
	return cmds
}
