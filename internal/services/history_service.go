package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// HistoryService records completed phases and summarizes them.
type HistoryService struct {
	repo       ports.HistoryRepository
	git        ports.GitDetector
	workingDir string
	logger     *slog.Logger
	now        func() time.Time
}

// NewHistoryService creates a history service. git may be nil to skip
// repository context.
func NewHistoryService(repo ports.HistoryRepository, git ports.GitDetector, workingDir string, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HistoryService{
		repo:       repo,
		git:        git,
		workingDir: workingDir,
		logger:     logger,
		now:        time.Now,
	}
}

// Record stores the phase that sw completed. Work phases are tagged with the
// branch and commit of the working directory when a detector is configured.
func (s *HistoryService) Record(ctx context.Context, sw domain.PhaseSwitch) (*domain.PhaseRecord, error) {
	record := domain.NewPhaseRecord(sw)

	if s.git != nil && record.Phase == domain.PhaseWork {
		info, err := s.git.Detect(ctx, s.workingDir)
		if err == nil && info != nil {
			record.SetGitContext(info.Branch, info.Commit)
		} else if err != nil {
			s.logger.Debug("no git context for phase record", "error", err)
		}
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save phase record: %w", err)
	}
	s.logger.Info("phase recorded", "phase", record.Phase, "duration", record.Duration)
	return record, nil
}

// Today returns the statistics for the current day.
func (s *HistoryService) Today(ctx context.Context) (*domain.DailyStats, error) {
	stats, err := s.repo.GetDailyStats(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}
	return stats, nil
}

// Recent returns the records of the last days days, newest first.
func (s *HistoryService) Recent(ctx context.Context, days int) ([]*domain.PhaseRecord, error) {
	since := s.now().AddDate(0, 0, -days)
	records, err := s.repo.FindRecent(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list phase records: %w", err)
	}
	return records, nil
}
