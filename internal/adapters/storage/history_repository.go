package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/pomotray/internal/domain"
)

// Save persists a phase record.
func (s *sqliteHistory) Save(ctx context.Context, record *domain.PhaseRecord) error {
	query := `
		INSERT INTO phases (id, phase, duration_ms, completed_at, git_branch, git_commit)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		string(record.Phase),
		record.Duration.Milliseconds(),
		record.CompletedAt.UnixMilli(),
		nullableString(record.GitBranch),
		nullableString(record.GitCommit),
	)
	if err != nil {
		return fmt.Errorf("failed to save phase record: %w", err)
	}
	return nil
}

// FindRecent retrieves records completed at or after since, newest first.
func (s *sqliteHistory) FindRecent(ctx context.Context, since time.Time) ([]*domain.PhaseRecord, error) {
	query := `
		SELECT id, phase, duration_ms, completed_at, git_branch, git_commit
		FROM phases
		WHERE completed_at >= ?
		ORDER BY completed_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query phase records: %w", err)
	}
	defer rows.Close()

	var records []*domain.PhaseRecord
	for rows.Next() {
		var (
			record      domain.PhaseRecord
			phase       string
			durationMs  int64
			completedMs int64
			branch      sql.NullString
			commit      sql.NullString
		)
		if err := rows.Scan(&record.ID, &phase, &durationMs, &completedMs, &branch, &commit); err != nil {
			return nil, fmt.Errorf("failed to scan phase record: %w", err)
		}
		record.Phase = domain.Phase(phase)
		record.Duration = time.Duration(durationMs) * time.Millisecond
		record.CompletedAt = time.UnixMilli(completedMs)
		record.GitBranch = branch.String
		record.GitCommit = commit.String
		records = append(records, &record)
	}

	return records, rows.Err()
}

// GetDailyStats returns aggregated statistics for a specific date.
func (s *sqliteHistory) GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT
			COUNT(CASE WHEN phase = 'work' THEN 1 END) AS work_phases,
			COUNT(CASE WHEN phase = 'break' THEN 1 END) AS breaks,
			COALESCE(SUM(CASE WHEN phase = 'work' THEN duration_ms END), 0) AS total_work_ms
		FROM phases
		WHERE completed_at >= ? AND completed_at < ?
	`

	stats := &domain.DailyStats{Date: startOfDay}

	var totalWorkMs int64
	err := s.db.QueryRowContext(ctx, query, startOfDay.UnixMilli(), endOfDay.UnixMilli()).Scan(
		&stats.WorkPhases,
		&stats.Breaks,
		&totalWorkMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	stats.TotalWorkTime = time.Duration(totalWorkMs) * time.Millisecond
	return stats, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
