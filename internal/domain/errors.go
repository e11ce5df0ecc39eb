package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDurations = errors.New("invalid durations")
	ErrPersistence      = errors.New("settings persistence failed")
	ErrPresetNotFound   = errors.New("preset not found")
)

// ValidationError reports a work/break pair outside the allowed ranges.
// Both ranges are carried so callers can show them to the user.
type ValidationError struct {
	Work       int
	Break      int
	WorkRange  Range
	BreakRange Range
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid durations (work %d, break %d): %s", e.Work, e.Break, e.Hint())
}

// Hint returns the user-facing description of the valid ranges.
func (e *ValidationError) Hint() string {
	return fmt.Sprintf("work: %d-%d minutes, break: %d-%d minutes",
		e.WorkRange.Min, e.WorkRange.Max, e.BreakRange.Min, e.BreakRange.Max)
}

// Is lets errors.Is match ErrInvalidDurations.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDurations
}

// PersistenceError reports a failed read or write of the settings file.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s settings: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s settings %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
