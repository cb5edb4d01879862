package runner_test

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"posturebench/internal/agent"
	"posturebench/internal/config"
	"posturebench/internal/report"
	"posturebench/internal/runner"
	"posturebench/internal/score"
	"posturebench/internal/stats"
)

func TestRunFeatures(t *testing.T) {
	options := godog.Options{
		Format:    "progress",
		Paths:     []string{filepath.Join("testdata", "features")},
		Output:    io.Discard,
		TestingT:  t,
		Randomize: 0,
	}
	suite := godog.TestSuite{
		Name:                "runner-features",
		ScenarioInitializer: initializeRunScenario,
		Options:             &options,
	}
	if suite.Run() != 0 {
		t.Fatalf("runner features failed")
	}
}

// featureProvider replays scripted responses, then fails with failStatus when set.
type featureProvider struct {
	responses  []string
	failStatus int
	calls      int
}

func (p *featureProvider) Generate(_ context.Context, req agent.Request) (agent.Response, error) {
	index := p.calls
	p.calls++
	if index < len(p.responses) {
		return agent.Response{Text: p.responses[index], Model: req.Model}, nil
	}
	if p.failStatus != 0 {
		return agent.Response{}, &agent.StatusError{Provider: "fake", StatusCode: p.failStatus}
	}
	return agent.Response{}, fmt.Errorf("no scripted response for call %d", index+1)
}

// runFeatureState holds scenario state for runner features.
type runFeatureState struct {
	cfg      config.Config
	provider *featureProvider
	results  runner.Results
	err      error
}

func initializeRunScenario(ctx *godog.ScenarioContext) {
	state := &runFeatureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*state = runFeatureState{provider: &featureProvider{}}
		return ctx, nil
	})

	ctx.Step(`^an? "([^"]+)" input scored (\d+) times$`, state.anInputScoredTimes)
	ctx.Step(`^the model responds with:$`, state.theModelRespondsWith)
	ctx.Step(`^the model then fails with status (\d+)$`, state.theModelThenFails)
	ctx.Step(`^the run completes$`, state.theRunCompletes)
	ctx.Step(`^the run is attempted$`, state.theRunIsAttempted)
	ctx.Step(`^the report contains these rows:$`, state.theReportContainsRows)
	ctx.Step(`^the "([^"]+)" "([^"]+)" scores are (.+)$`, state.theScoresAre)
	ctx.Step(`^the run fails mentioning "([^"]+)"$`, state.theRunFailsMentioning)
	ctx.Step(`^no results are returned$`, state.noResultsAreReturned)
}

func (s *runFeatureState) anInputScoredTimes(category string, repeats int) error {
	s.cfg = config.Config{
		Version: 1,
		Repeats: repeats,
		Inputs:  []config.InputConfig{{Path: "imgs/" + category + ".jpg", Category: category}},
	}
	config.Normalize(&s.cfg)
	return nil
}

// theModelRespondsWith builds one response per row; a blank cell omits that line.
func (s *runFeatureState) theModelRespondsWith(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header and at least one row")
	}
	labels := map[string]string{}
	for _, metric := range s.cfg.Metrics {
		labels[metric.ID] = metric.Label
	}
	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		lines := make([]string, 0, len(row.Cells))
		for i, cell := range row.Cells {
			value := strings.TrimSpace(cell.Value)
			if value == "" {
				continue
			}
			label, ok := labels[header[i].Value]
			if !ok {
				return fmt.Errorf("unknown metric column %q", header[i].Value)
			}
			lines = append(lines, fmt.Sprintf("%s: %s", label, value))
		}
		s.provider.responses = append(s.provider.responses, strings.Join(lines, "\n"))
	}
	return nil
}

func (s *runFeatureState) theModelThenFails(status int) error {
	s.provider.failStatus = status
	return nil
}

func (s *runFeatureState) run() {
	s.results, s.err = runner.Run(context.Background(), s.cfg, runner.RunParams{
		Deps: runner.RunDependencies{
			Provider: s.provider,
			RunID:    func() (string, error) { return "feature-run", nil },
			ReadFile: func(path string) ([]byte, error) { return []byte(path), nil },
		},
	})
}

func (s *runFeatureState) theRunCompletes() error {
	s.run()
	return s.err
}

func (s *runFeatureState) theRunIsAttempted() error {
	s.run()
	return nil
}

func (s *runFeatureState) theReportContainsRows(table *godog.Table) error {
	rows := report.Rows(stats.Aggregate(s.results.Record))
	var want []report.Row
	for _, row := range table.Rows[1:] {
		want = append(want, report.Row{
			Category: row.Cells[0].Value,
			Metric:   row.Cells[1].Value,
			Mean:     row.Cells[2].Value,
			StdDev:   row.Cells[3].Value,
		})
	}
	if !reflect.DeepEqual(rows, want) {
		return fmt.Errorf("expected rows %+v, got %+v", want, rows)
	}
	return nil
}

func (s *runFeatureState) theScoresAre(category, metric, list string) error {
	var want []int
	for _, part := range strings.Split(list, ",") {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("parse score %q: %w", part, err)
		}
		want = append(want, value)
	}
	got := s.results.Record.Scores(score.Category(category), score.Metric(metric))
	if !reflect.DeepEqual(got, want) {
		return fmt.Errorf("expected %v, got %v", want, got)
	}
	return nil
}

func (s *runFeatureState) theRunFailsMentioning(text string) error {
	if s.err == nil {
		return fmt.Errorf("expected run to fail")
	}
	if !strings.Contains(s.err.Error(), text) {
		return fmt.Errorf("expected error to mention %q, got %q", text, s.err.Error())
	}
	return nil
}

func (s *runFeatureState) noResultsAreReturned() error {
	if s.results.Record != nil || len(s.results.Attempts) != 0 {
		return fmt.Errorf("expected no results, got %+v", s.results)
	}
	return nil
}
