package runner

import (
	"time"

	"posturebench/internal/score"
)

// Results describes a completed run.
type Results struct {
	RunID      string
	Provider   string
	Model      string
	StartedAt  time.Time
	FinishedAt time.Time
	Attempts   []Attempt
	Record     *score.Record
}

// Attempt is one request of a run and what was extracted from its response.
type Attempt struct {
	RequestID string
	Input     string
	Category  score.Category
	Run       int
	Runs      int
	Response  string
	Scores    score.Scores
	Missing   []score.Metric
	Retries   int
	WallTime  time.Duration
}

// MissCount returns how many attempts lacked at least one metric.
func (r Results) MissCount() int {
	count := 0
	for _, attempt := range r.Attempts {
		if len(attempt.Missing) > 0 {
			count++
		}
	}
	return count
}
