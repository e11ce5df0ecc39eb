// Package storage provides the settings file and SQLite implementations of
// the storage ports.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/xvierd/pomotray/internal/ports"
	_ "modernc.org/sqlite"
)

// sqliteHistory implements the ports.HistoryRepository interface using SQLite.
type sqliteHistory struct {
	db *sql.DB
}

// Ensure sqliteHistory implements ports.HistoryRepository.
var _ ports.HistoryRepository = (*sqliteHistory)(nil)

// NewHistory opens (and migrates) the history database at dbPath.
func NewHistory(dbPath string) (ports.HistoryRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	store := &sqliteHistory{db: db}
	if err := store.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// NewMemoryHistory creates an in-memory history store for testing.
func NewMemoryHistory() (ports.HistoryRepository, error) {
	return NewHistory(":memory:")
}

// Close closes the database connection.
func (s *sqliteHistory) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteHistory) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS phases (
		id TEXT PRIMARY KEY,
		phase TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		completed_at INTEGER NOT NULL,
		git_branch TEXT,
		git_commit TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_phases_completed ON phases(completed_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
