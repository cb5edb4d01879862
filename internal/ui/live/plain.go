package live

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"posturebench/internal/runner"
	"posturebench/internal/score"
)

// Plain writes one progress line per request for non-interactive output.
type Plain struct {
	Out     io.Writer
	Metrics []score.Metric
	NoColor bool

	mu     sync.Mutex
	nextID int
}

// Start prints the request description.
func (p *Plain) Start(description string) runner.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	if p.Out != nil {
		fmt.Fprintln(p.Out, stylize(description, p.NoColor, lipgloss.Color("252")))
	}
	return runner.Task{ID: p.nextID, Description: description}
}

// Complete is a no-op; OnAttempt reports the outcome.
func (p *Plain) Complete(runner.Task) {}

// OnAttempt prints the extracted scores for a finished request.
func (p *Plain) OnAttempt(attempt runner.Attempt) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Out == nil {
		return
	}
	line := fmt.Sprintf("  %s (%s)", formatScores(p.Metrics, attempt.Scores), formatDuration(attempt.WallTime))
	if len(attempt.Missing) > 0 {
		line += fmt.Sprintf(" missing=%d", len(attempt.Missing))
	}
	if attempt.Retries > 0 {
		line += fmt.Sprintf(" retries=%d", attempt.Retries)
	}
	color := lipgloss.Color("42")
	if len(attempt.Missing) > 0 {
		color = lipgloss.Color("220")
	}
	fmt.Fprintln(p.Out, stylize(line, p.NoColor, color))
}
