package domain

import "time"

// Range is an inclusive bound on a minute value.
type Range struct {
	Min int
	Max int
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

const (
	DefaultWorkMinutes  = 27
	DefaultBreakMinutes = 3
)

var (
	// WorkRange bounds the configurable work phase length in minutes.
	WorkRange = Range{Min: 1, Max: 120}

	// BreakRange bounds the configurable break phase length in minutes.
	BreakRange = Range{Min: 1, Max: 60}
)

// Durations is a validated pair of phase lengths.
// Values can only be built through NewDurations; the zero value is the
// default 27/3 pair, so an out-of-range pair cannot be represented.
type Durations struct {
	work int
	rest int
}

// NewDurations validates both minute values as a unit.
// It returns a *ValidationError if either falls outside its range.
func NewDurations(workMinutes, breakMinutes int) (Durations, error) {
	if !WorkRange.Contains(workMinutes) || !BreakRange.Contains(breakMinutes) {
		return Durations{}, &ValidationError{
			Work:       workMinutes,
			Break:      breakMinutes,
			WorkRange:  WorkRange,
			BreakRange: BreakRange,
		}
	}
	return Durations{work: workMinutes, rest: breakMinutes}, nil
}

// DefaultDurations returns the 27 minute work / 3 minute break pair.
func DefaultDurations() Durations {
	return Durations{work: DefaultWorkMinutes, rest: DefaultBreakMinutes}
}

// WorkMinutes returns the work phase length in minutes.
func (d Durations) WorkMinutes() int {
	if d.work == 0 {
		return DefaultWorkMinutes
	}
	return d.work
}

// BreakMinutes returns the break phase length in minutes.
func (d Durations) BreakMinutes() int {
	if d.rest == 0 {
		return DefaultBreakMinutes
	}
	return d.rest
}

// Seconds returns the length of phase in seconds.
func (d Durations) Seconds(phase Phase) int {
	if phase == PhaseBreak {
		return d.BreakMinutes() * 60
	}
	return d.WorkMinutes() * 60
}

// Duration returns the length of phase as a time.Duration.
func (d Durations) Duration(phase Phase) time.Duration {
	return time.Duration(d.Seconds(phase)) * time.Second
}

// Equal reports whether both pairs describe the same lengths.
func (d Durations) Equal(other Durations) bool {
	return d.WorkMinutes() == other.WorkMinutes() && d.BreakMinutes() == other.BreakMinutes()
}
