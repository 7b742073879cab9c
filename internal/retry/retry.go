// Package retry wraps external service calls with transient-error
// classification and capped exponential backoff. The transcription call, the
// bulk translate call, and the single-line fallback call all share this one
// policy; each call site supplies its own classifier.
package retry

import (
	"context"
	"log"
	"time"
)

// IsTransientFunc reports whether an error is worth retrying.
type IsTransientFunc func(error) bool

// Policy controls retry behavior. The delay before attempt n is
// BaseDelay << n, so with a one-second base the sequence is 2s, 4s, 8s, 16s.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Sleep is replaceable for tests; nil means a context-aware time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Default matches the service rate-limit guidance: five attempts, 2^n seconds.
var Default = Policy{MaxAttempts: 5, BaseDelay: time.Second}

// Do runs fn, retrying transient failures under the policy. Terminal errors
// propagate immediately; once the attempt ceiling is reached the last
// transient error is returned as-is.
func (p Policy) Do(ctx context.Context, label string, isTransient IsTransientFunc, fn func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	attempt := 0
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if isTransient == nil || !isTransient(err) {
			return err
		}

		attempt++
		if attempt >= p.MaxAttempts {
			return err
		}

		delay := p.BaseDelay << attempt
		log.Printf("[retry] %s failed (attempt %d/%d), retrying in %s: %v",
			label, attempt, p.MaxAttempts, delay, err)
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
	}
}

// Do runs fn under the default policy.
func Do(ctx context.Context, label string, isTransient IsTransientFunc, fn func() error) error {
	return Default.Do(ctx, label, isTransient, fn)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
