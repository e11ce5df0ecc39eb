package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

func setupTestHistory(t *testing.T) ports.HistoryRepository {
	t.Helper()
	store, err := NewMemoryHistory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRecord(t *testing.T, store ports.HistoryRepository, phase domain.Phase, d time.Duration, at time.Time) *domain.PhaseRecord {
	t.Helper()
	rec := domain.NewPhaseRecord(domain.PhaseSwitch{From: phase, To: phase.Other(), Completed: d, At: at})
	require.NoError(t, store.Save(context.Background(), rec))
	return rec
}

func TestHistory_SaveAndFindRecent(t *testing.T) {
	store := setupTestHistory(t)
	ctx := context.Background()
	now := time.Now()

	older := saveRecord(t, store, domain.PhaseWork, 27*time.Minute, now.Add(-2*time.Hour))
	newer := domain.NewPhaseRecord(domain.PhaseSwitch{From: domain.PhaseBreak, Completed: 3 * time.Minute, At: now.Add(-time.Hour)})
	newer.SetGitContext("feature/x", "cafebabe")
	require.NoError(t, store.Save(ctx, newer))

	records, err := store.FindRecent(ctx, now.Add(-3*time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, newer.ID, records[0].ID)
	assert.Equal(t, domain.PhaseBreak, records[0].Phase)
	assert.Equal(t, 3*time.Minute, records[0].Duration)
	assert.Equal(t, "feature/x", records[0].GitBranch)
	assert.Equal(t, "cafebabe", records[0].GitCommit)
	assert.Equal(t, newer.CompletedAt.UnixMilli(), records[0].CompletedAt.UnixMilli())

	assert.Equal(t, older.ID, records[1].ID)
	assert.Empty(t, records[1].GitBranch)

	records, err = store.FindRecent(ctx, now.Add(-90*time.Minute))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHistory_GetDailyStats(t *testing.T) {
	store := setupTestHistory(t)
	ctx := context.Background()

	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local)
	saveRecord(t, store, domain.PhaseWork, 27*time.Minute, day.Add(9*time.Hour))
	saveRecord(t, store, domain.PhaseBreak, 3*time.Minute, day.Add(9*time.Hour+30*time.Minute))
	saveRecord(t, store, domain.PhaseWork, 27*time.Minute, day.Add(10*time.Hour))
	saveRecord(t, store, domain.PhaseWork, 25*time.Minute, day.Add(-time.Hour))

	stats, err := store.GetDailyStats(ctx, day.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, day, stats.Date)
	assert.Equal(t, 2, stats.WorkPhases)
	assert.Equal(t, 1, stats.Breaks)
	assert.Equal(t, 54*time.Minute, stats.TotalWorkTime)
}

func TestHistory_GetDailyStatsEmpty(t *testing.T) {
	store := setupTestHistory(t)

	stats, err := store.GetDailyStats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.WorkPhases)
	assert.Zero(t, stats.Breaks)
	assert.Zero(t, stats.TotalWorkTime)
}
