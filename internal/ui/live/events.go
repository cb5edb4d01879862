package live

import (
	"time"

	"posturebench/internal/runner"
	"posturebench/internal/score"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventTaskStart signals a request was sent.
	EventTaskStart
	// EventTaskComplete signals a request finished.
	EventTaskComplete
	// EventAttempt delivers the scores extracted for a request.
	EventAttempt
)

// Event carries a UI update payload.
type Event struct {
	Kind    EventKind
	RunID   string
	Model   string
	Total   int
	Metrics []score.Metric
	Task    runner.Task
	Attempt runner.Attempt
	At      time.Time
}
