package live

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"posturebench/internal/runner"
	"posturebench/internal/score"
	"posturebench/internal/testutil"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestControllerDrivesProgram verifies the program renders events and exits on Close.
func TestControllerDrivesProgram(t *testing.T) {
	out := &syncBuffer{}
	controller := Start(out, Options{NoColor: true, TickInterval: 10 * time.Millisecond})
	controller.Begin("run42", "gemma3", testMetrics, 1)
	task := controller.Start("Processing good image (run 1/1)...")

	testutil.Eventually(t, 2*time.Second, 10*time.Millisecond, func() bool {
		return strings.Contains(out.String(), "Run run42")
	}, "expected run header to render")

	controller.Complete(task)
	controller.OnAttempt(runner.Attempt{
		Input:    "good.jpg",
		Category: "good",
		Run:      1,
		Runs:     1,
		Scores:   score.Scores{"shoulder": 90, "spine": 85},
	})
	controller.Close()
	runWithTimeout(t, 2*time.Second, func() {
		if err := controller.Wait(); err != nil {
			t.Errorf("unexpected program error: %v", err)
		}
	})
}
