package live

import (
	"time"

	"posturebench/internal/score"
)

// AttemptRow holds UI state for a single finished request.
type AttemptRow struct {
	RequestID string
	Image     string
	Category  score.Category
	Run       int
	Runs      int
	Scores    score.Scores
	Missing   int
	Retries   int
	WallTime  time.Duration
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	Model     string
	Metrics   []score.Metric
	Total     int
	Done      int
	Misses    int
	Retries   int
	StartedAt time.Time

	Current        string
	CurrentID      int
	CurrentStarted time.Time

	LastEvent string
	Rows      []AttemptRow
}
