package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"posturebench/internal/agent"
	"posturebench/internal/config"
	"posturebench/internal/score"
)

// RunDependencies allows injecting the provider, clocks, and file access for a run.
type RunDependencies struct {
	Provider     agent.Provider
	RunID        func() (string, error)
	Now          func() time.Time
	Sleep        func(ctx context.Context, d time.Duration) error
	Jitter       func(int) int
	NewRequestID func() string
	ReadFile     func(path string) ([]byte, error)
}

// RunParams configures a run invocation.
type RunParams struct {
	BaseDir          string
	Progress         Progress
	Verbose          bool
	VerboseWriter    io.Writer
	VerboseLogWriter io.Writer
	NoColor          bool
	Deps             RunDependencies
}

// Run queries the provider cfg.Repeats times for every input, strictly in
// order, and returns the filled score record. Any provider error that
// survives the retry policy ends the run without results.
func Run(ctx context.Context, cfg config.Config, params RunParams) (Results, error) {
	deps := params.Deps
	if deps.Provider == nil {
		return Results{}, fmt.Errorf("provider is required")
	}
	if cfg.Repeats < 1 {
		return Results{}, fmt.Errorf("repeats must be >= 1")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	sleep := deps.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	requestID := deps.NewRequestID
	if requestID == nil {
		requestID = newRequestID
	}
	readFile := deps.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	progress := params.Progress
	if progress == nil {
		progress = NoopProgress{}
	}
	observer, _ := progress.(AttemptObserver)

	runID, err := ensureRunID(deps.RunID)
	if err != nil {
		return Results{}, err
	}

	fields := make([]score.Field, 0, len(cfg.Metrics))
	for _, metric := range cfg.Metrics {
		fields = append(fields, score.Field{Metric: score.Metric(metric.ID), Label: metric.Label})
	}
	extractor, err := score.NewExtractor(fields)
	if err != nil {
		return Results{}, fmt.Errorf("build extractor: %w", err)
	}
	metrics := extractor.Metrics()
	categories := make([]score.Category, 0, len(cfg.Categories))
	for _, category := range cfg.Categories {
		categories = append(categories, score.Category(category))
	}
	record := score.NewRecord(categories, metrics)

	images, err := newImageCache(len(cfg.Inputs), readFile)
	if err != nil {
		return Results{}, err
	}
	policy := backoffFromConfig(cfg.Retry)
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	logger := verboseLogger{
		enabled: params.Verbose,
		console: params.VerboseWriter,
		logFile: params.VerboseLogWriter,
		noColor: params.NoColor,
	}

	startedAt := now()
	logger.log(styleTask, "run=%s provider=%s model=%s inputs=%d repeats=%d", runID, cfg.Model.Provider, cfg.Model.Name, len(cfg.Inputs), cfg.Repeats)

	attempts := make([]Attempt, 0, len(cfg.Inputs)*cfg.Repeats)
	for _, input := range cfg.Inputs {
		category := score.Category(input.Category)
		path := config.ResolveInputPath(params.BaseDir, input.Path)
		for run := 1; run <= cfg.Repeats; run++ {
			if err := ctx.Err(); err != nil {
				return Results{}, fmt.Errorf("run canceled: %w", err)
			}
			task := progress.Start(TaskDescription(string(category), run, cfg.Repeats))
			data, err := images.Load(path)
			if err != nil {
				logger.log(styleError, "input=%s error=%v", input.Path, err)
				return Results{}, err
			}

			id := requestID()
			req := agent.Request{
				Model:       cfg.Model.Name,
				Messages:    []agent.Message{agent.UserMessage(cfg.Prompt, agent.Image{Path: input.Path, Data: data})},
				Temperature: cfg.Model.Temperature,
			}
			logger.log(styleDefault, "request=%s category=%s input=%s run=%d/%d", id, category, input.Path, run, cfg.Repeats)
			started := now()
			result, err := generateWithRetry(ctx, deps.Provider, req, policy, timeout, retryHooks{
				Sleep:  sleep,
				Jitter: deps.Jitter,
				OnRetry: func(attempt int, delay time.Duration, err error) {
					logger.log(styleWarn, "request=%s attempt=%d/%d retry_in=%s error=%v", id, attempt, policy.MaxAttempts, delay, err)
				},
			})
			if err != nil {
				logger.log(styleError, "request=%s error=%v", id, err)
				return Results{}, fmt.Errorf("query %s (run %d/%d, %d attempt(s)): %w", input.Path, run, cfg.Repeats, result.Retries+1, err)
			}

			scores := extractor.Extract(result.Response.Text)
			if err := record.AppendScores(category, scores); err != nil {
				return Results{}, fmt.Errorf("record scores for %s: %w", input.Path, err)
			}
			attempt := Attempt{
				RequestID: id,
				Input:     input.Path,
				Category:  category,
				Run:       run,
				Runs:      cfg.Repeats,
				Response:  result.Response.Text,
				Scores:    scores,
				Missing:   scores.Missing(metrics),
				Retries:   result.Retries,
				WallTime:  now().Sub(started),
			}
			attempts = append(attempts, attempt)
			progress.Complete(task)
			if observer != nil {
				observer.OnAttempt(attempt)
			}
			logger.log(styleMetrics, "request=%s scores=%s wall_time=%s", id, formatScores(metrics, scores), attempt.WallTime)
			if len(attempt.Missing) > 0 {
				logger.log(styleWarn, "request=%s missing=%s response=%q", id, formatMetrics(attempt.Missing), result.Response.Text)
			}
		}
	}

	finishedAt := now()
	logger.log(styleTask, "run=%s done requests=%d scores=%d duration=%s", runID, len(attempts), record.Total(), finishedAt.Sub(startedAt))
	return Results{
		RunID:      runID,
		Provider:   cfg.Model.Provider,
		Model:      cfg.Model.Name,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Attempts:   attempts,
		Record:     record,
	}, nil
}

func ensureRunID(runID func() (string, error)) (string, error) {
	if runID == nil {
		runID = NewRunID
	}
	id, err := runID()
	if err != nil {
		return "", fmt.Errorf("create run id: %w", err)
	}
	return id, nil
}
