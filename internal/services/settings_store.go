package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// SettingsStore holds the committed phase durations and the pending edit
// buffer behind the settings view.
type SettingsStore struct {
	repo      ports.SettingsRepository
	logger    *slog.Logger
	committed domain.Durations

	pendingWork  int
	pendingBreak int
}

// NewSettingsStore creates a store holding the default durations.
func NewSettingsStore(repo ports.SettingsRepository, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &SettingsStore{
		repo:      repo,
		logger:    logger,
		committed: domain.DefaultDurations(),
	}
	s.BeginEdit()
	return s
}

// Load reads the stored durations. The pair is accepted or rejected as a
// whole: if either value is out of range, or storage cannot be read, the
// defaults are kept for both and the reason is returned. The returned
// durations are always usable.
func (s *SettingsStore) Load(ctx context.Context) (domain.Durations, error) {
	raw, err := s.repo.Load(ctx)
	if err != nil {
		var perr *domain.PersistenceError
		if !errors.As(err, &perr) {
			err = &domain.PersistenceError{Op: "read", Path: s.repo.Path(), Err: err}
		}
		s.logger.Warn("settings unreadable, using defaults", "path", s.repo.Path(), "error", err)
		return s.committed, err
	}

	d, err := domain.NewDurations(raw.WorkMinutes, raw.BreakMinutes)
	if err != nil {
		s.logger.Warn("stored settings out of range, using defaults",
			"work_minutes", raw.WorkMinutes, "break_minutes", raw.BreakMinutes)
		return s.committed, err
	}

	s.committed = d
	s.BeginEdit()
	s.logger.Info("settings loaded", "work_minutes", d.WorkMinutes(), "break_minutes", d.BreakMinutes())
	return d, nil
}

// BeginEdit discards any pending edits and seeds the buffer from the
// committed values. It returns the seeded pair.
func (s *SettingsStore) BeginEdit() (work, brk int) {
	s.pendingWork = s.committed.WorkMinutes()
	s.pendingBreak = s.committed.BreakMinutes()
	return s.pendingWork, s.pendingBreak
}

// SetPending records unvalidated values typed into the settings view.
func (s *SettingsStore) SetPending(work, brk int) {
	s.pendingWork = work
	s.pendingBreak = brk
}

// Pending returns the edit buffer.
func (s *SettingsStore) Pending() (work, brk int) {
	return s.pendingWork, s.pendingBreak
}

// Committed returns the durations currently in effect.
func (s *SettingsStore) Committed() domain.Durations {
	return s.committed
}

// Save validates and commits a new pair, then persists it.
//
// An invalid pair returns a *domain.ValidationError and changes nothing.
// A valid pair is always committed; if writing it fails, the new durations
// are returned together with a *domain.PersistenceError.
func (s *SettingsStore) Save(ctx context.Context, work, brk int) (domain.Durations, error) {
	d, err := domain.NewDurations(work, brk)
	if err != nil {
		return s.committed, err
	}

	s.committed = d
	s.BeginEdit()

	if err := s.repo.Save(ctx, d); err != nil {
		var perr *domain.PersistenceError
		if !errors.As(err, &perr) {
			err = &domain.PersistenceError{Op: "write", Path: s.repo.Path(), Err: err}
		}
		s.logger.Error("failed to persist settings", "path", s.repo.Path(), "error", err)
		return d, fmt.Errorf("settings applied but not saved: %w", err)
	}

	s.logger.Info("settings saved", "work_minutes", work, "break_minutes", brk)
	return d, nil
}
