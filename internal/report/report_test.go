package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"posturebench/internal/runner"
	"posturebench/internal/score"
	"posturebench/internal/stats"
)

func sampleSummaries() []stats.Summary {
	return []stats.Summary{
		{Category: "good", Metric: "shoulder", Count: 4, Mean: 80, StdDev: 0},
		{Category: "bad", Metric: "spine", Count: 4, Mean: 25, StdDev: 12.909944},
	}
}

// TestRowsFormatsLabelsAndNumbers verifies title-cased labels and two-decimal values.
func TestRowsFormatsLabelsAndNumbers(t *testing.T) {
	got := Rows(sampleSummaries())
	want := []Row{
		{Category: "Good", Metric: "Shoulder", Mean: "80.00", StdDev: "0.00"},
		{Category: "Bad", Metric: "Spine", Mean: "25.00", StdDev: "12.91"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if len(Rows(nil)) != 0 {
		t.Fatalf("expected no rows for no summaries")
	}
}

func TestDisplayLabel(t *testing.T) {
	cases := map[string]string{"good": "Good", "bad": "Bad", "slight slouch": "Slight Slouch"}
	for in, want := range cases {
		if got := DisplayLabel(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestTableSinkRendersTitleAndColumns(t *testing.T) {
	var out bytes.Buffer
	sink := TableSink{Out: &out, NoColor: true}
	if err := sink.Render(Rows(sampleSummaries())); err != nil {
		t.Fatalf("render: %v", err)
	}
	text := out.String()
	for _, want := range []string{Title, "Image Type", "Metric", "Average", "Std Dev", "Good", "Shoulder", "80.00", "12.91"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in table:\n%s", want, text)
		}
	}
	if strings.Contains(text, "\x1b[") {
		t.Fatalf("expected no ANSI codes with NoColor")
	}
	if strings.Index(text, "Good") > strings.Index(text, "Bad") {
		t.Fatalf("expected row order preserved:\n%s", text)
	}
}

func TestRenderTableWithoutRows(t *testing.T) {
	text := RenderTable(nil, true, lipgloss.NewRenderer(&bytes.Buffer{}))
	if !strings.Contains(text, Title) || !strings.Contains(text, "Std Dev") {
		t.Fatalf("expected title and headers even without rows:\n%s", text)
	}
}

func TestTableSinkRequiresOutput(t *testing.T) {
	if err := (TableSink{}).Render(nil); err == nil {
		t.Fatalf("expected error without output")
	}
}

func samplePage() Page {
	record := score.NewRecord([]score.Category{"good"}, []score.Metric{"shoulder", "spine"})
	_ = record.Append("good", "shoulder", 80)
	started := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	results := runner.Results{
		RunID:      "20250304T050607Z-abc",
		Provider:   "ollama",
		Model:      "gemma3:27b-it-qat",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Record:     record,
		Attempts: []runner.Attempt{{
			RequestID: "req-1",
			Input:     "test_imgs/good.jpg",
			Category:  "good",
			Run:       1,
			Runs:      1,
			Response:  "Shoulder Position: 80\n<b>Spine</b> unclear",
			Scores:    score.Scores{"shoulder": 80},
			Missing:   []score.Metric{"spine"},
			WallTime:  1500 * time.Millisecond,
		}},
	}
	return NewPage(results, Rows(stats.Aggregate(record)))
}

// TestReportPageEscapesAndListsAttempts verifies the HTML holds both tables and escapes model text.
func TestReportPageEscapesAndListsAttempts(t *testing.T) {
	html, err := RenderReportHTML(context.Background(), samplePage())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"<title>Posture Assessment Results</title>",
		"<th>Image Type</th>",
		"<td>Good</td><td>Shoulder</td><td class=\"num\">80.00</td>",
		"20250304T050607Z-abc",
		"req-1",
		"<td class=\"num miss\">missing</td>",
		"&lt;b&gt;Spine&lt;/b&gt;",
		"1.5s",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in html:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<b>Spine</b>") {
		t.Fatalf("expected model output to be escaped")
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.html")
	if err := WriteHTML(context.Background(), path, samplePage()); err != nil {
		t.Fatalf("write html: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!doctype html>") {
		t.Fatalf("unexpected html prefix: %q", string(data[:20]))
	}
}
