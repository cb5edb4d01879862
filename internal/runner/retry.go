package runner

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"posturebench/internal/agent"
	"posturebench/internal/config"
)

// backoffPolicy applies exponential backoff between retries of transient failures.
type backoffPolicy struct {
	MaxAttempts int
	BaseMs      int
	MaxMs       int
	Factor      float64
	JitterMs    int
}

func backoffFromConfig(cfg config.RetryConfig) backoffPolicy {
	policy := backoffPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseMs:      cfg.BaseMs,
		MaxMs:       cfg.MaxMs,
		Factor:      cfg.Factor,
		JitterMs:    cfg.JitterMs,
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Factor < 1 {
		policy.Factor = 1
	}
	if policy.MaxMs < policy.BaseMs {
		policy.MaxMs = policy.BaseMs
	}
	return policy
}

// delay returns the wait before retry number streak (1 for the first retry).
func (p backoffPolicy) delay(streak int, jitterFn func(int) int) time.Duration {
	if streak < 1 {
		streak = 1
	}
	raw := int(float64(p.BaseMs) * math.Pow(p.Factor, float64(streak-1)))
	ms := clampInt(raw, p.BaseMs, p.MaxMs)
	ms = applyJitter(ms, p.JitterMs, jitterFn)
	return time.Duration(ms) * time.Millisecond
}

// callResult is the outcome of a request including retries.
type callResult struct {
	Response agent.Response
	Retries  int
}

type retryHooks struct {
	Sleep   func(ctx context.Context, d time.Duration) error
	Jitter  func(int) int
	OnRetry func(attempt int, delay time.Duration, err error)
}

// generateWithRetry sends req, retrying transient failures within the policy.
// A timeout > 0 bounds each individual call.
func generateWithRetry(ctx context.Context, provider agent.Provider, req agent.Request, policy backoffPolicy, timeout time.Duration, hooks retryHooks) (callResult, error) {
	for attempt := 1; ; attempt++ {
		callCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		resp, err := provider.Generate(callCtx, req)
		cancel()
		if err == nil {
			return callResult{Response: resp, Retries: attempt - 1}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return callResult{Retries: attempt - 1}, ctxErr
		}
		if attempt >= policy.MaxAttempts || !agent.IsTransient(err) {
			return callResult{Retries: attempt - 1}, err
		}
		wait := policy.delay(attempt, hooks.Jitter)
		if hooks.OnRetry != nil {
			hooks.OnRetry(attempt, wait, err)
		}
		if err := hooks.Sleep(ctx, wait); err != nil {
			return callResult{Retries: attempt - 1}, err
		}
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryRand provides jitter for retry delays.
type retryRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newRetryRand(seed int64) *retryRand {
	return &retryRand{r: rand.New(rand.NewSource(seed))}
}

// Jitter returns a random integer in [0, max].
func (r *retryRand) Jitter(max int) int {
	if max <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Intn(max + 1)
}

func applyJitter(value, jitter int, jitterFn func(int) int) int {
	if jitter <= 0 {
		return value
	}
	if jitterFn == nil {
		jitterFn = newRetryRand(time.Now().UnixNano()).Jitter
	}
	return value + jitterFn(jitter)
}

func clampInt(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
