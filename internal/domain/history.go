package domain

import "time"

// PhaseRecord is a completed phase kept in the history log.
type PhaseRecord struct {
	ID          string
	Phase       Phase
	Duration    time.Duration
	CompletedAt time.Time
	GitBranch   string
	GitCommit   string
}

// NewPhaseRecord builds a history record for the phase that sw completed.
func NewPhaseRecord(sw PhaseSwitch) *PhaseRecord {
	at := sw.At
	if at.IsZero() {
		at = time.Now()
	}
	return &PhaseRecord{
		ID:          generateID(),
		Phase:       sw.From,
		Duration:    sw.Completed,
		CompletedAt: at,
	}
}

// SetGitContext stores git information for the record.
func (r *PhaseRecord) SetGitContext(branch, commit string) {
	r.GitBranch = branch
	r.GitCommit = commit
}

// DailyStats aggregates completed phases for a day.
type DailyStats struct {
	Date          time.Time
	WorkPhases    int
	Breaks        int
	TotalWorkTime time.Duration
}
