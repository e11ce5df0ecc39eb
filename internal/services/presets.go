package services

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomotray/internal/domain"
)

// FindPreset returns the built-in preset whose name best matches query.
func FindPreset(query string) (domain.Preset, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return domain.Preset{}, fmt.Errorf("%w: empty name", domain.ErrPresetNotFound)
	}

	names := make([]string, len(domain.Presets))
	for i, p := range domain.Presets {
		names[i] = p.Name
	}

	// Matches are sorted best first.
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return domain.Preset{}, fmt.Errorf("%w: %q", domain.ErrPresetNotFound, query)
	}
	return domain.Presets[matches[0].Index], nil
}

// NextPreset returns the preset after the one matching the given pair,
// wrapping around. Unknown pairs start from the first preset.
func NextPreset(work, brk int) domain.Preset {
	for i, p := range domain.Presets {
		if p.WorkMinutes == work && p.BreakMinutes == brk {
			return domain.Presets[(i+1)%len(domain.Presets)]
		}
	}
	return domain.Presets[0]
}
