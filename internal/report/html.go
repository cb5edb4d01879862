package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"posturebench/internal/runner"
	"posturebench/internal/score"
)

// Page is the data behind the HTML report of one run.
type Page struct {
	Results runner.Results
	Rows    []Row
	Metrics []score.Metric
}

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;margin-bottom:2rem}
th,td{border:1px solid #ccc;padding:.3rem .7rem}
th{background:#f3f3f3}
td.num{text-align:right}
td.miss{color:#b00}
pre{margin:0;white-space:pre-wrap;font-size:.85em}`

// ReportPage renders the summary table followed by the per-request log.
func ReportPage(page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := &pageWriter{w: w}
		pw.raw("<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>")
		pw.text(Title)
		pw.raw("</title><style>" + pageStyle + "</style></head><body>\n<h1>")
		pw.text(Title)
		pw.raw("</h1>\n<p>Run ")
		pw.text(page.Results.RunID)
		pw.raw(" | ")
		pw.text(page.Results.Provider + " / " + page.Results.Model)
		if !page.Results.StartedAt.IsZero() {
			pw.raw(" | ")
			pw.text(page.Results.StartedAt.UTC().Format(time.RFC3339))
			pw.raw(" | ")
			pw.text(page.Results.FinishedAt.Sub(page.Results.StartedAt).Round(time.Millisecond).String())
		}
		pw.raw("</p>\n")

		pw.raw("<table id=\"summary\"><thead><tr>")
		for _, header := range Headers {
			pw.raw("<th>")
			pw.text(header)
			pw.raw("</th>")
		}
		pw.raw("</tr></thead><tbody>\n")
		for _, row := range page.Rows {
			pw.raw("<tr><td>")
			pw.text(row.Category)
			pw.raw("</td><td>")
			pw.text(row.Metric)
			pw.raw("</td><td class=\"num\">")
			pw.text(row.Mean)
			pw.raw("</td><td class=\"num\">")
			pw.text(row.StdDev)
			pw.raw("</td></tr>\n")
		}
		pw.raw("</tbody></table>\n")

		pw.raw("<h2>Requests</h2>\n<table id=\"attempts\"><thead><tr><th>Request</th><th>Image</th><th>Type</th><th>Run</th>")
		for _, metric := range page.Metrics {
			pw.raw("<th>")
			pw.text(DisplayLabel(string(metric)))
			pw.raw("</th>")
		}
		pw.raw("<th>Retries</th><th>Time</th><th>Response</th></tr></thead><tbody>\n")
		for _, attempt := range page.Results.Attempts {
			pw.raw("<tr><td>")
			pw.text(attempt.RequestID)
			pw.raw("</td><td>")
			pw.text(attempt.Input)
			pw.raw("</td><td>")
			pw.text(DisplayLabel(string(attempt.Category)))
			pw.raw("</td><td class=\"num\">")
			pw.text(strconv.Itoa(attempt.Run) + "/" + strconv.Itoa(attempt.Runs))
			pw.raw("</td>")
			for _, metric := range page.Metrics {
				if value, ok := attempt.Scores.Get(metric); ok {
					pw.raw("<td class=\"num\">")
					pw.text(strconv.Itoa(value))
				} else {
					pw.raw("<td class=\"num miss\">")
					pw.text("missing")
				}
				pw.raw("</td>")
			}
			pw.raw("<td class=\"num\">")
			pw.text(strconv.Itoa(attempt.Retries))
			pw.raw("</td><td class=\"num\">")
			pw.text(attempt.WallTime.Round(time.Millisecond).String())
			pw.raw("</td><td><pre>")
			pw.text(attempt.Response)
			pw.raw("</pre></td></tr>\n")
		}
		pw.raw("</tbody></table>\n</body></html>\n")
		return pw.err
	})
}

// pageWriter keeps the first write error so rendering code stays linear.
type pageWriter struct {
	w   io.Writer
	err error
}

func (p *pageWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *pageWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

// RenderReportHTML renders the report page into a string.
func RenderReportHTML(ctx context.Context, page Page) (string, error) {
	var builder strings.Builder
	if err := ReportPage(page).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteHTML renders the report page to path, creating parent directories.
func WriteHTML(ctx context.Context, path string, page Page) error {
	html, err := RenderReportHTML(ctx, page)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// NewPage assembles page data from run results and formatted rows.
func NewPage(results runner.Results, rows []Row) Page {
	var metrics []score.Metric
	if results.Record != nil {
		metrics = results.Record.Metrics()
	}
	return Page{Results: results, Rows: rows, Metrics: metrics}
}
