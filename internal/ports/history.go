package ports

import (
	"context"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
)

// HistoryRepository persists completed phases.
// This is a driven port (implemented by adapters).
type HistoryRepository interface {
	// Save persists a phase record.
	Save(ctx context.Context, record *domain.PhaseRecord) error

	// FindRecent retrieves records completed at or after since, newest first.
	FindRecent(ctx context.Context, since time.Time) ([]*domain.PhaseRecord, error)

	// GetDailyStats returns aggregated statistics for a specific date.
	GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error)

	// Close releases the underlying storage.
	Close() error
}
