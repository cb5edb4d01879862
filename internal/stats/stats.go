package stats

import (
	"math"

	"posturebench/internal/score"
)

// Summary describes the scores recorded for one category and metric.
type Summary struct {
	Category score.Category
	Metric   score.Metric
	Count    int
	Mean     float64
	StdDev   float64
}

// Aggregate summarizes a completed record in category then metric order.
// Pairs with no scores produce no summary.
func Aggregate(record *score.Record) []Summary {
	var summaries []Summary
	for _, category := range record.Categories() {
		for _, metric := range record.Metrics() {
			values := record.Scores(category, metric)
			if len(values) == 0 {
				continue
			}
			summaries = append(summaries, Summary{
				Category: category,
				Metric:   metric,
				Count:    len(values),
				Mean:     Mean(values),
				StdDev:   SampleStdDev(values),
			})
		}
	}
	return summaries
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, value := range values {
		sum += float64(value)
	}
	return sum / float64(len(values))
}

// SampleStdDev returns the n-1 standard deviation, or 0 with fewer than two values.
func SampleStdDev(values []int) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	sumSquares := 0.0
	for _, value := range values {
		diff := float64(value) - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}
