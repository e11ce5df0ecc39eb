package ports

import (
	"context"

	"github.com/xvierd/pomotray/internal/domain"
)

// RawSettings holds minute values as read from storage, before validation.
type RawSettings struct {
	WorkMinutes  int
	BreakMinutes int
}

// SettingsRepository reads and writes the durable settings file.
// This is a driven port (implemented by adapters).
type SettingsRepository interface {
	// Load reads the stored values. Missing storage or missing keys yield
	// the defaults for those keys and no error.
	Load(ctx context.Context) (RawSettings, error)

	// Save persists a validated pair.
	Save(ctx context.Context, d domain.Durations) error

	// Path returns the location of the settings file.
	Path() string
}
