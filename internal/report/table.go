package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Sink renders the aggregated rows somewhere.
type Sink interface {
	Render(rows []Row) error
}

// TableSink writes rows as a bordered terminal table.
type TableSink struct {
	Out     io.Writer
	NoColor bool
}

// Column colors: cyan image type, magenta metric, green average, yellow std dev.
var columnColors = []lipgloss.Color{"6", "5", "2", "3"}

func (s TableSink) Render(rows []Row) error {
	if s.Out == nil {
		return fmt.Errorf("table output is required")
	}
	_, err := fmt.Fprintln(s.Out, RenderTable(rows, s.NoColor, lipgloss.NewRenderer(s.Out)))
	return err
}

// RenderTable returns the titled results table.
func RenderTable(rows []Row, noColor bool, renderer *lipgloss.Renderer) string {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, row.Cells())
	}
	base := renderer.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := base
			if col >= 2 {
				style = style.Align(lipgloss.Right)
			}
			if noColor {
				return style
			}
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style.Foreground(columnColors[col%len(columnColors)])
		})
	if !noColor {
		t = t.BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("240")))
	}
	title := renderer.NewStyle().Italic(!noColor).Render(Title)
	return lipgloss.JoinVertical(lipgloss.Center, title, t.Render())
}
