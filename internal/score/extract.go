package score

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Score bounds accepted by the extractor and the record.
const (
	MinScore = 0
	MaxScore = 100
)

// Metric names a scored dimension such as "shoulder".
type Metric string

// Category names the group an input belongs to, such as "good".
type Category string

// Field ties a metric to the literal label that precedes its value in a response.
type Field struct {
	Metric Metric
	Label  string
}

// Scores holds the values found in one response, keyed by metric.
type Scores map[Metric]int

// Get returns the score for metric and whether it was present.
func (s Scores) Get(metric Metric) (int, bool) {
	value, ok := s[metric]
	return value, ok
}

// Missing returns the metrics, in the given order, that have no value.
func (s Scores) Missing(metrics []Metric) []Metric {
	var missing []Metric
	for _, metric := range metrics {
		if _, ok := s[metric]; !ok {
			missing = append(missing, metric)
		}
	}
	return missing
}

type fieldPattern struct {
	metric Metric
	re     *regexp.Regexp
}

// Extractor pulls labeled integer scores out of free-form model output.
type Extractor struct {
	fields []fieldPattern
}

// NewExtractor compiles one "<Label>: <digits>" pattern per field.
func NewExtractor(fields []Field) (*Extractor, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one field is required")
	}
	seen := make(map[Metric]struct{}, len(fields))
	patterns := make([]fieldPattern, 0, len(fields))
	for i, field := range fields {
		if strings.TrimSpace(string(field.Metric)) == "" {
			return nil, fmt.Errorf("field %d: metric is required", i)
		}
		if _, ok := seen[field.Metric]; ok {
			return nil, fmt.Errorf("field %d: duplicate metric %q", i, field.Metric)
		}
		if strings.TrimSpace(field.Label) == "" {
			return nil, fmt.Errorf("field %d: label is required", i)
		}
		seen[field.Metric] = struct{}{}
		re, err := regexp.Compile(regexp.QuoteMeta(field.Label) + `: (\d+)`)
		if err != nil {
			return nil, fmt.Errorf("field %d: compile pattern: %w", i, err)
		}
		patterns = append(patterns, fieldPattern{metric: field.Metric, re: re})
	}
	return &Extractor{fields: patterns}, nil
}

// Metrics returns the extractor's metrics in field order.
func (e *Extractor) Metrics() []Metric {
	metrics := make([]Metric, 0, len(e.fields))
	for _, field := range e.fields {
		metrics = append(metrics, field.metric)
	}
	return metrics
}

// Extract searches text for every field independently. The leftmost match of
// each label wins; values outside [MinScore, MaxScore] count as absent.
func (e *Extractor) Extract(text string) Scores {
	scores := make(Scores, len(e.fields))
	for _, field := range e.fields {
		match := field.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value, err := strconv.Atoi(match[1])
		if err != nil || value < MinScore || value > MaxScore {
			continue
		}
		scores[field.metric] = value
	}
	return scores
}
