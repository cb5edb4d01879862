package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"posturebench/internal/report"
	"posturebench/internal/score"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// columnsFor builds the attempt table columns, one per metric.
func columnsFor(metrics []score.Metric, width int) []table.Column {
	columns := []table.Column{
		{Title: "Image", Width: 24},
		{Title: "Type", Width: 6},
		{Title: "Run", Width: 5},
	}
	for _, metric := range metrics {
		title := report.DisplayLabel(string(metric))
		columnWidth := len(title)
		if columnWidth < 5 {
			columnWidth = 5
		}
		columns = append(columns, table.Column{Title: title, Width: columnWidth})
	}
	columns = append(columns,
		table.Column{Title: "Retries", Width: 7},
		table.Column{Title: "Time", Width: 8},
	)
	if width <= 0 {
		return columns
	}
	used := 0
	for _, column := range columns {
		used += column.Width + 2
	}
	if extra := width - used; extra > 0 {
		columns[0].Width += extra
	}
	return columns
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		cells := table.Row{
			row.Image,
			report.DisplayLabel(string(row.Category)),
			formatRun(row.Run, row.Runs),
		}
		for _, metric := range state.Metrics {
			cells = append(cells, stylizeScore(formatScore(row.Scores, metric), row.Scores, metric, noColor))
		}
		cells = append(cells, formatRetries(row.Retries), formatDuration(row.WallTime))
		rows = append(rows, cells)
	}
	return rows
}
