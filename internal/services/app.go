package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// App is the application state shared by the driver and the presentation
// adapters: one timer and the settings that configure it.
type App struct {
	Timer    *PhaseTimer
	Settings *SettingsStore
	logger   *slog.Logger
}

// NewApp loads the stored settings, builds the timer from them and renders
// the initial state. A failed load is logged and the defaults are used.
func NewApp(ctx context.Context, store *SettingsStore, presenter ports.Presenter, driver ports.Driver, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	durations, err := store.Load(ctx)
	if err != nil {
		logger.Warn("falling back to default durations", "error", err)
	}

	app := &App{
		Timer:    NewPhaseTimer(durations, presenter, driver),
		Settings: store,
		logger:   logger,
	}
	app.Timer.Refresh()
	return app
}

// Toggle starts a stopped or paused timer and pauses a counting one.
func (a *App) Toggle() {
	if a.Timer.Snapshot().Ticking() {
		a.Timer.Pause()
		return
	}
	a.Timer.Start()
}

// OpenSettings seeds the edit buffer from the committed settings.
func (a *App) OpenSettings() (work, brk int) {
	return a.Settings.BeginEdit()
}

// SaveSettings commits a new pair and applies it to the timer.
// Validation failures leave the settings, the edit buffer and the timer
// untouched. A persistence failure still applies the new pair and is
// returned.
func (a *App) SaveSettings(ctx context.Context, work, brk int) error {
	d, err := a.Settings.Save(ctx, work, brk)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return err
	}
	a.Timer.Reconfigure(d)
	a.Timer.Refresh()
	return err
}

// ApplyPreset saves the preset that best matches query.
func (a *App) ApplyPreset(ctx context.Context, query string) (domain.Preset, error) {
	preset, err := FindPreset(query)
	if err != nil {
		return domain.Preset{}, err
	}
	return preset, a.SaveSettings(ctx, preset.WorkMinutes, preset.BreakMinutes)
}
