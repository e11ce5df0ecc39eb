package headless

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomotray/internal/adapters/storage"
	"github.com/xvierd/pomotray/internal/services"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, title+": "+message)
	return nil
}

type fakeTicker struct {
	ch      chan time.Time
	created int
	stopped int
}

func (f *fakeTicker) install(r *Runner) {
	r.newTicker = func(time.Duration) (<-chan time.Time, func()) {
		f.created++
		return f.ch, func() { f.stopped++ }
	}
}

func newTestStore(t *testing.T, work, brk int) *services.SettingsStore {
	t.Helper()
	repo := storage.NewSettingsFile(filepath.Join(t.TempDir(), storage.SettingsFileName))
	store := services.NewSettingsStore(repo, nil)
	_, err := store.Save(context.Background(), work, brk)
	require.NoError(t, err)
	return store
}

func start(t *testing.T, r *Runner, commands chan Command) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, commands) }()
	return cancel, done
}

func wait(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunner_SwitchesPhaseAndNotifies(t *testing.T) {
	var out bytes.Buffer
	notifier := &recordingNotifier{}
	r := New(Options{Settings: newTestStore(t, 1, 1), Notifier: notifier, Out: &out, AutoStart: true})
	ticker := &fakeTicker{ch: make(chan time.Time)}
	ticker.install(r)

	cancel, done := start(t, r, nil)
	for i := 0; i < 61; i++ {
		ticker.ch <- time.Now()
	}
	cancel()
	wait(t, done)

	text := out.String()
	assert.Contains(t, text, "01:00  working")
	assert.Contains(t, text, "Pomodoro: Start your break!")
	assert.Contains(t, text, "01:00  resting")
	assert.Equal(t, []string{"Pomodoro: Start your break!"}, notifier.calls)
	assert.Equal(t, 1, ticker.created)
}

func TestRunner_Commands(t *testing.T) {
	var out bytes.Buffer
	r := New(Options{Settings: newTestStore(t, 25, 5), Out: &out})
	ticker := &fakeTicker{ch: make(chan time.Time)}
	ticker.install(r)
	commands := make(chan Command)

	cancel, done := start(t, r, commands)
	commands <- CmdToggle
	ticker.ch <- time.Now()
	commands <- CmdToggle
	commands <- CmdToggle
	ticker.ch <- time.Now()
	commands <- CmdReset
	cancel()
	wait(t, done)

	assert.Equal(t, 2, ticker.created)
	assert.Equal(t, 2, ticker.stopped)
	text := out.String()
	assert.Contains(t, text, "25:00  working — click to start")
	assert.Contains(t, text, "24:59  working — click to start")
	assert.Contains(t, text, "24:59  working")
}

func TestRunner_ClosedCommandsKeepRunning(t *testing.T) {
	r := New(Options{Settings: newTestStore(t, 25, 5), AutoStart: true})
	ticker := &fakeTicker{ch: make(chan time.Time)}
	ticker.install(r)
	commands := make(chan Command)
	close(commands)

	cancel, done := start(t, r, commands)
	ticker.ch <- time.Now()
	cancel()
	wait(t, done)
}
