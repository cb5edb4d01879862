package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"posturebench/internal/score"
)

// extractInput allows tests to override stdin for the extract command.
var extractInput io.Reader = os.Stdin

// runExtract builds the handler for the extract command. It applies the
// configured metric labels to a saved response and prints one line per metric.
func runExtract(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .posturebench/config.yml)")
		if err := flags.Parse(args); err != nil {
			return ExitUsage
		}
		if flags.NArg() > 1 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args()[1:], " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		loaded, err := readConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		fields := make([]score.Field, 0, len(loaded.cfg.Metrics))
		for _, metric := range loaded.cfg.Metrics {
			fields = append(fields, score.Field{Metric: score.Metric(metric.ID), Label: metric.Label})
		}
		extractor, err := score.NewExtractor(fields)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid metrics: %v\n", err)
			return ExitError
		}

		var text []byte
		if flags.NArg() == 1 && flags.Arg(0) != "-" {
			text, err = os.ReadFile(flags.Arg(0))
		} else {
			text, err = io.ReadAll(extractInput)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read response: %v\n", err)
			return ExitError
		}

		scores := extractor.Extract(string(text))
		for _, metric := range extractor.Metrics() {
			value, ok := scores.Get(metric)
			if !ok {
				fmt.Fprintf(stdout, "%s: -\n", metric)
				continue
			}
			fmt.Fprintf(stdout, "%s: %d\n", metric, value)
		}
		return ExitOK
	}
}
