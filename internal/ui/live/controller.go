package live

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"posturebench/internal/runner"
	"posturebench/internal/score"
)

// Controller feeds runner progress into a running Bubble Tea program.
// It implements runner.Progress and runner.AttemptObserver.
type Controller struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex
	nextID int
	now    func() time.Time
	err    error
}

// Start launches the live UI on out and returns its controller.
func Start(out io.Writer, opts Options) *Controller {
	events := make(chan Event, 256)
	controller := &Controller{
		events: events,
		done:   make(chan struct{}),
		now:    time.Now,
	}
	program := tea.NewProgram(
		NewModel(events, opts),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	go func() {
		defer close(controller.done)
		_, err := program.Run()
		controller.mu.Lock()
		controller.err = err
		controller.mu.Unlock()
	}()
	return controller
}

// newController builds a controller without a program, for tests.
func newController(buffer int) *Controller {
	return &Controller{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
		now:    time.Now,
	}
}

// Begin announces the run header.
func (c *Controller) Begin(runID, model string, metrics []score.Metric, total int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Model: model, Metrics: metrics, Total: total})
}

// Start marks a request as in flight.
func (c *Controller) Start(description string) runner.Task {
	c.mu.Lock()
	c.nextID++
	task := runner.Task{ID: c.nextID, Description: description}
	c.mu.Unlock()
	c.send(Event{Kind: EventTaskStart, Task: task})
	return task
}

// Complete marks a request as finished.
func (c *Controller) Complete(task runner.Task) {
	c.send(Event{Kind: EventTaskComplete, Task: task})
}

// OnAttempt adds a finished request to the table.
func (c *Controller) OnAttempt(attempt runner.Attempt) {
	c.send(Event{Kind: EventAttempt, Attempt: attempt})
}

// Close ends the event stream; the program clears its view and exits.
func (c *Controller) Close() {
	c.once.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the program exits and returns its error.
func (c *Controller) Wait() error {
	<-c.done
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// send drops the event when the buffer is full rather than blocking the run.
func (c *Controller) send(event Event) {
	if event.At.IsZero() {
		event.At = c.now()
	}
	defer func() {
		// send after Close
		_ = recover()
	}()
	select {
	case c.events <- event:
	default:
	}
}
