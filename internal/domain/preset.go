package domain

// Preset is a named work/break pair offered as a shortcut in settings.
type Preset struct {
	Name         string
	WorkMinutes  int
	BreakMinutes int
}

// Durations validates the preset's minute values.
func (p Preset) Durations() (Durations, error) {
	return NewDurations(p.WorkMinutes, p.BreakMinutes)
}

// Presets lists the built-in duration presets.
var Presets = []Preset{
	{Name: "original", WorkMinutes: DefaultWorkMinutes, BreakMinutes: DefaultBreakMinutes},
	{Name: "classic", WorkMinutes: 25, BreakMinutes: 5},
	{Name: "long", WorkMinutes: 50, BreakMinutes: 10},
	{Name: "sprint", WorkMinutes: 15, BreakMinutes: 3},
	{Name: "deep", WorkMinutes: 90, BreakMinutes: 20},
}
