package report

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"posturebench/internal/stats"
)

// Title and column headers of the results table.
const Title = "Posture Assessment Results"

var Headers = []string{"Image Type", "Metric", "Average", "Std Dev"}

// Row is one display line: category, metric, mean, and standard deviation.
type Row struct {
	Category string
	Metric   string
	Mean     string
	StdDev   string
}

// Cells returns the row in column order.
func (r Row) Cells() []string {
	return []string{r.Category, r.Metric, r.Mean, r.StdDev}
}

// Rows formats summaries for display, keeping their order.
func Rows(summaries []stats.Summary) []Row {
	rows := make([]Row, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, Row{
			Category: DisplayLabel(string(summary.Category)),
			Metric:   DisplayLabel(string(summary.Metric)),
			Mean:     fmt.Sprintf("%.2f", summary.Mean),
			StdDev:   fmt.Sprintf("%.2f", summary.StdDev),
		})
	}
	return rows
}

// DisplayLabel title-cases an identifier such as "good" or "shoulder".
func DisplayLabel(id string) string {
	return cases.Title(language.English).String(id)
}
