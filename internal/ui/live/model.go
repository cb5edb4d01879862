package live

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model renders a live console UI using Bubble Tea.
type Model struct {
	state        State
	spinner      spinner.Model
	table        table.Model
	events       <-chan Event
	tickInterval time.Duration
	now          time.Time
	width        int
	noColor      bool
	closed       bool
}

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
}

// NewModel constructs a live UI model for an event stream.
func NewModel(events <-chan Event, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 200 * time.Millisecond
	}
	t := table.New(
		table.WithColumns(columnsFor(nil, 0)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(8),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !opts.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	}
	return Model{
		state:        State{},
		spinner:      s,
		table:        t,
		events:       events,
		tickInterval: tickInterval,
		now:          time.Now(),
		noColor:      opts.NoColor,
	}
}

// Init starts ticking and waits for the first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), m.spinner.Tick, tick(m.tickInterval))
}

// Update consumes UI events, spinner frames, and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(min(typed.Height-6, 12), 1))
		m.table.SetColumns(columnsFor(m.state.Metrics, typed.Width))
		return m, nil
	case EventMsg:
		m = applyEvent(m, typed.Event)
		return m, waitForEvent(m.events)
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case tickMsg:
		m.now = time.Time(typed)
		return m, tick(m.tickInterval)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	}
	return m, nil
}

// View renders the live UI. Once the event stream closes the view is empty,
// so nothing of the progress display is left on screen.
func (m Model) View() string {
	if m.closed {
		return ""
	}
	header := renderHeader(m.state, m.now, m.noColor)
	summary := renderSummary(m.state, m.noColor)
	current := renderCurrent(m.state, m.spinner.View(), m.now, m.noColor)
	tableView := m.table.View()
	footer := renderFooter(m.state, m.noColor)
	return lipgloss.JoinVertical(lipgloss.Left, header, summary, current, tableView, footer)
}

// EventMsg wraps a UI event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// closedMsg reports that the event stream ended.
type closedMsg struct{}

// tickMsg carries a clock tick for updates.
type tickMsg time.Time

// waitForEvent blocks until a UI event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return EventMsg{Event: event}
	}
}

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// applyEvent updates model state and the table for a UI event.
func applyEvent(model Model, event Event) Model {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	model.state = Reduce(model.state, event)
	if event.Kind == EventRunStart {
		model.table.SetColumns(columnsFor(model.state.Metrics, model.width))
	}
	model.table.SetRows(rowsForState(model.state, model.noColor))
	if n := len(model.state.Rows); n > 0 {
		model.table.SetCursor(n - 1)
	}
	return model
}
