package stats

import (
	"math"
	"testing"

	"posturebench/internal/score"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestMeanAndSampleStdDev(t *testing.T) {
	cases := []struct {
		values []int
		mean   float64
		stddev float64
	}{
		{values: []int{10, 20, 30, 40}, mean: 25, stddev: 12.91},
		{values: []int{42}, mean: 42, stddev: 0},
		{values: []int{50, 50, 50}, mean: 50, stddev: 0},
		{values: nil, mean: 0, stddev: 0},
	}
	for _, tc := range cases {
		if got := Mean(tc.values); !approxEqual(got, tc.mean) {
			t.Fatalf("mean %v: expected %.2f, got %.4f", tc.values, tc.mean, got)
		}
		if got := SampleStdDev(tc.values); !approxEqual(got, tc.stddev) {
			t.Fatalf("stddev %v: expected %.2f, got %.4f", tc.values, tc.stddev, got)
		}
	}
}

// TestAggregateSkipsEmptyAndKeepsOrder verifies empty metrics produce no summary.
func TestAggregateSkipsEmptyAndKeepsOrder(t *testing.T) {
	record := score.NewRecord([]score.Category{"good", "bad"}, []score.Metric{"shoulder", "spine"})
	for _, value := range []int{10, 20, 30, 40} {
		if err := record.Append("good", "spine", value); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := record.Append("good", "shoulder", 90); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := record.Append("bad", "spine", 5); err != nil {
		t.Fatalf("append: %v", err)
	}

	summaries := Aggregate(record)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d: %+v", len(summaries), summaries)
	}
	want := []struct {
		category score.Category
		metric   score.Metric
		count    int
		mean     float64
		stddev   float64
	}{
		{category: "good", metric: "shoulder", count: 1, mean: 90, stddev: 0},
		{category: "good", metric: "spine", count: 4, mean: 25, stddev: 12.91},
		{category: "bad", metric: "spine", count: 1, mean: 5, stddev: 0},
	}
	for i, w := range want {
		got := summaries[i]
		if got.Category != w.category || got.Metric != w.metric || got.Count != w.count {
			t.Fatalf("summary %d: unexpected %+v", i, got)
		}
		if !approxEqual(got.Mean, w.mean) || !approxEqual(got.StdDev, w.stddev) {
			t.Fatalf("summary %d: expected %.2f/%.2f, got %.4f/%.4f", i, w.mean, w.stddev, got.Mean, got.StdDev)
		}
	}
}

func TestAggregateEmptyRecord(t *testing.T) {
	record := score.NewRecord([]score.Category{"good"}, []score.Metric{"shoulder"})
	if summaries := Aggregate(record); len(summaries) != 0 {
		t.Fatalf("expected no summaries, got %+v", summaries)
	}
}
