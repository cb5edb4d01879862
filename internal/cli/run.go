package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"posturebench/internal/agent"
	"posturebench/internal/config"
	"posturebench/internal/report"
	"posturebench/internal/runner"
	"posturebench/internal/score"
	"posturebench/internal/stats"
	"posturebench/internal/ui/live"
)

var (
	newProvider = agent.ProviderFromConfig
	runQueries  = runner.Run
	newRunID    = runner.NewRunID
	startLiveUI = func(out io.Writer, opts live.Options) liveUI { return live.Start(out, opts) }
)

// liveUI is the progress surface of the live console program.
type liveUI interface {
	runner.Progress
	runner.AttemptObserver
	Begin(runID, model string, metrics []score.Metric, total int)
	Close()
	Wait() error
}

// runOverrides are the command-line values that replace config fields.
type runOverrides struct {
	provider string
	model    string
	repeats  int
}

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .posturebench/config.yml)")
		providerName := fs.String("provider", "", "Provider override (ollama|openrouter)")
		modelName := fs.String("model", "", "Model override")
		repeats := fs.Int("repeats", 0, "Queries per image override")
		uiMode := fs.String("ui", "auto", "Progress display (auto|live|plain)")
		verbose := fs.Bool("verbose", false, "Log every request to stdout")
		logPath := fs.String("log", "", "Also write verbose logs to a rotated file")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		htmlPath := fs.String("html", "", "Write an HTML report to this path")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *repeats < 0 {
			fmt.Fprintln(stderr, "--repeats must be >= 1")
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		loaded, err := readConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		cfg := applyOverrides(loaded.cfg, runOverrides{provider: *providerName, model: *modelName, repeats: *repeats})
		if err := config.Validate(&cfg, loaded.baseDir); err != nil {
			fmt.Fprintf(stderr, "Invalid config:\n%v\n", err)
			return ExitError
		}

		provider, err := newProvider(cfg.Model.Provider, cfg.Model.BaseURL, nil)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to create provider: %v\n", err)
			return ExitError
		}

		var logWriter io.Writer
		if strings.TrimSpace(*logPath) != "" {
			logFile, err := openLogFile(*logPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
				return ExitError
			}
			defer logFile.Close()
			logWriter = logFile
		}

		runID, err := newRunID()
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		metrics := make([]score.Metric, 0, len(cfg.Metrics))
		for _, metric := range cfg.Metrics {
			metrics = append(metrics, score.Metric(metric.ID))
		}

		var progress runner.Progress
		var ui liveUI
		if decision.useLive {
			ui = startLiveUI(stdout, live.Options{NoColor: *noColor})
			ui.Begin(runID, cfg.Model.Name, metrics, len(cfg.Inputs)*cfg.Repeats)
			progress = ui
		} else if !*verbose {
			progress = &live.Plain{Out: stderr, Metrics: metrics, NoColor: *noColor || !runner.ShouldUseStyling(stderr)}
		}

		results, runErr := runQueries(ctx, cfg, runner.RunParams{
			BaseDir:          loaded.baseDir,
			Progress:         progress,
			Verbose:          *verbose,
			VerboseWriter:    stdout,
			VerboseLogWriter: logWriter,
			NoColor:          *noColor,
			Deps: runner.RunDependencies{
				Provider: provider,
				RunID:    func() (string, error) { return runID, nil },
			},
		})
		if ui != nil {
			ui.Close()
			if err := ui.Wait(); err != nil {
				fmt.Fprintf(stderr, "Live UI error: %v\n", err)
			}
		}
		if runErr != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
			return ExitError
		}

		rows := report.Rows(stats.Aggregate(results.Record))
		sink := report.TableSink{Out: stdout, NoColor: *noColor}
		if err := sink.Render(rows); err != nil {
			fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
			return ExitError
		}
		if strings.TrimSpace(*htmlPath) != "" {
			if err := report.WriteHTML(ctx, *htmlPath, report.NewPage(results, rows)); err != nil {
				fmt.Fprintf(stderr, "Failed to write HTML report: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "HTML report: %s\n", *htmlPath)
		}
		if misses := results.MissCount(); misses > 0 {
			fmt.Fprintf(stderr, "Run %s: %d of %d responses lacked at least one metric\n", results.RunID, misses, len(results.Attempts))
		}
		return ExitOK
	}
}

// applyOverrides replaces config fields with non-empty command-line values.
func applyOverrides(cfg config.Config, overrides runOverrides) config.Config {
	if value := strings.TrimSpace(overrides.provider); value != "" {
		cfg.Model.Provider = value
	}
	if value := strings.TrimSpace(overrides.model); value != "" {
		cfg.Model.Name = value
	}
	if overrides.repeats > 0 {
		cfg.Repeats = overrides.repeats
	}
	return cfg
}
