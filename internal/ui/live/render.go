package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Model != "" {
		line += " | Model: " + state.Model
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the request counts line.
func renderSummary(state State, noColor bool) string {
	line := "Requests: " + fmtInt(state.Done) + "/" + fmtInt(state.Total) +
		" Misses: " + fmtInt(state.Misses) +
		" Retries: " + fmtInt(state.Retries)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderCurrent renders the spinner line for the in-flight request.
func renderCurrent(state State, spinnerView string, now time.Time, noColor bool) string {
	if state.Current == "" {
		return ""
	}
	line := state.Current
	if !state.CurrentStarted.IsZero() {
		line += " " + formatDuration(now.Sub(state.CurrentStarted))
	}
	return spinnerView + " " + stylize(line, noColor, lipgloss.Color("252"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}
