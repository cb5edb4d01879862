package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"posturebench/internal/score"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatRun renders a run position such as "2/4".
func formatRun(run, runs int) string {
	return fmtInt(run) + "/" + fmtInt(runs)
}

// formatScore renders one metric's value, or "-" when it was not reported.
func formatScore(scores score.Scores, metric score.Metric) string {
	value, ok := scores.Get(metric)
	if !ok {
		return "-"
	}
	return fmtInt(value)
}

// formatScores renders all metrics in order, e.g. "shoulder=80 spine=-".
func formatScores(metrics []score.Metric, scores score.Scores) string {
	parts := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		parts = append(parts, string(metric)+"="+formatScore(scores, metric))
	}
	return strings.Join(parts, " ")
}

// formatRetries formats retry counts for display.
func formatRetries(retries int) string {
	if retries <= 0 {
		return ""
	}
	return fmtInt(retries)
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// stylizeScore colors a score by band: red below 40, yellow below 70, green otherwise.
func stylizeScore(text string, scores score.Scores, metric score.Metric, noColor bool) string {
	if noColor {
		return text
	}
	value, ok := scores.Get(metric)
	if !ok {
		return stylize(text, false, lipgloss.Color("244"))
	}
	switch {
	case value < 40:
		return stylize(text, false, lipgloss.Color("196"))
	case value < 70:
		return stylize(text, false, lipgloss.Color("220"))
	default:
		return stylize(text, false, lipgloss.Color("42"))
	}
}
