package runner

import "fmt"

// Task identifies one in-flight progress entry.
type Task struct {
	ID          int
	Description string
}

// Progress receives one Start and one Complete per request.
type Progress interface {
	Start(description string) Task
	Complete(task Task)
}

// AttemptObserver is implemented by progress sinks that also show attempt outcomes.
type AttemptObserver interface {
	OnAttempt(attempt Attempt)
}

// NoopProgress discards progress updates.
type NoopProgress struct{}

func (NoopProgress) Start(description string) Task { return Task{Description: description} }

func (NoopProgress) Complete(Task) {}

// TaskDescription formats the progress line for one request.
func TaskDescription(category string, run, runs int) string {
	return fmt.Sprintf("Processing %s image (run %d/%d)...", category, run, runs)
}
