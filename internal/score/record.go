package score

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrOutOfRange      = errors.New("score out of range")
)

// Record accumulates scores per category and metric in a fixed order.
// It is filled by a single goroutine and read after the run completes.
type Record struct {
	categories []Category
	metrics    []Metric
	values     map[Category]map[Metric][]int
}

// NewRecord returns an empty record for the given categories and metrics.
func NewRecord(categories []Category, metrics []Metric) *Record {
	values := make(map[Category]map[Metric][]int, len(categories))
	for _, category := range categories {
		perMetric := make(map[Metric][]int, len(metrics))
		for _, metric := range metrics {
			perMetric[metric] = nil
		}
		values[category] = perMetric
	}
	return &Record{
		categories: append([]Category(nil), categories...),
		metrics:    append([]Metric(nil), metrics...),
		values:     values,
	}
}

// Append records one score.
func (r *Record) Append(category Category, metric Metric, value int) error {
	perMetric, ok := r.values[category]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCategory, category)
	}
	if _, ok := perMetric[metric]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownMetric, metric)
	}
	if value < MinScore || value > MaxScore {
		return fmt.Errorf("%w: %d", ErrOutOfRange, value)
	}
	perMetric[metric] = append(perMetric[metric], value)
	return nil
}

// AppendScores records every present score of one response, in metric order.
func (r *Record) AppendScores(category Category, scores Scores) error {
	if _, ok := r.values[category]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownCategory, category)
	}
	for _, metric := range r.metrics {
		value, ok := scores.Get(metric)
		if !ok {
			continue
		}
		if err := r.Append(category, metric, value); err != nil {
			return err
		}
	}
	return nil
}

// Scores returns a copy of the values recorded for category and metric.
func (r *Record) Scores(category Category, metric Metric) []int {
	values := r.values[category][metric]
	if len(values) == 0 {
		return nil
	}
	return append([]int(nil), values...)
}

func (r *Record) Categories() []Category {
	return append([]Category(nil), r.categories...)
}

func (r *Record) Metrics() []Metric {
	return append([]Metric(nil), r.metrics...)
}

// Total counts every recorded score.
func (r *Record) Total() int {
	total := 0
	for _, perMetric := range r.values {
		for _, values := range perMetric {
			total += len(values)
		}
	}
	return total
}
