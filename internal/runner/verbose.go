package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"posturebench/internal/score"
)

const verbosePrefix = "[verbose]"

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiGray   = "\x1b[90m"
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiBlue   = "\x1b[34m"
	ansiYellow = "\x1b[33m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleTask
	styleMetrics
	styleWarn
	styleError
)

// verboseLogger writes run events to the console when verbose is on, and
// always to the log file when one is set. Log file lines are never styled.
type verboseLogger struct {
	enabled bool
	console io.Writer
	logFile io.Writer
	noColor bool
}

func (l verboseLogger) log(style verboseStyle, format string, args ...any) {
	logVerbose(l.enabled, l.console, l.noColor, style, format, args...)
	logVerbose(l.logFile != nil, l.logFile, true, style, format, args...)
}

func logVerbose(enabled bool, writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

// formatScores renders scores in metric order, e.g. "shoulder=72 spine=-".
func formatScores(metrics []score.Metric, scores score.Scores) string {
	if len(metrics) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		value, ok := scores.Get(metric)
		if !ok {
			parts = append(parts, fmt.Sprintf("%s=-", metric))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", metric, value))
	}
	return strings.Join(parts, " ")
}

func formatMetrics(metrics []score.Metric) string {
	parts := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		parts = append(parts, string(metric))
	}
	return strings.Join(parts, ",")
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: ShouldUseStyling(writer)}
}

// ShouldUseStyling reports whether ANSI styling suits writer: it must be a
// terminal and NO_COLOR, TERM=dumb, and CLICOLOR=0 must all be unset.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleTask:
		return ansiBold + ansiBlue + text + ansiReset
	case styleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case styleWarn:
		return ansiYellow + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
