package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// RetryPolicy bounds how a Retrier re-attempts failed generation calls.
// Delay is injectable so tests can use a zero-delay policy.
type RetryPolicy struct {
	MaxRetries int
	Delay      func(attempt int) time.Duration
}

// DefaultPolicy retries twice with a fixed one-second pause.
func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		Delay:      FixedDelay(time.Second),
	}
}

// FixedDelay returns a delay function that ignores the attempt number.
func FixedDelay(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// GenerationError is returned once all attempts are exhausted. It wraps the
// error from the final attempt.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// TextGenerator is the narrow contract the pipeline consumes.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Retrier wraps a Client with bounded retry. It holds no per-call state and
// is safe to share across concurrent pipeline runs.
type Retrier struct {
	gen    TextGenerator
	policy RetryPolicy
	log    *slog.Logger
}

func NewRetrier(gen TextGenerator, policy RetryPolicy, log *slog.Logger) *Retrier {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.Delay == nil {
		policy.Delay = FixedDelay(time.Second)
	}
	return &Retrier{gen: gen, policy: policy, log: log}
}

// Generate attempts the call up to MaxRetries+1 times, sleeping between
// attempts. Context cancellation is never retried. On exhaustion the last
// error is surfaced wrapped in a *GenerationError.
func (r *Retrier) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	attempts := r.policy.MaxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		text, err := r.gen.Generate(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if attempt == attempts-1 {
			break
		}
		r.log.Warn("generation attempt failed", "attempt", attempt+1, "error", err)
		select {
		case <-time.After(r.policy.Delay(attempt)):
		case <-ctx.Done():
			return "", &GenerationError{Attempts: attempt + 1, Err: ctx.Err()}
		}
	}
	return "", &GenerationError{Attempts: attempts, Err: lastErr}
}
