// Package retry runs an operation a bounded number of times with
// randomized backoff between attempts.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// Policy bounds attempts and the delay between them. Sleep and Jitter are
// injectable so tests can observe delays without waiting.
type Policy struct {
	MaxAttempts int
	MinBackoff  time.Duration
	MaxBackoff  time.Duration

	// Sleep waits for d or until ctx is done. Defaults to a timer wait.
	Sleep func(ctx context.Context, d time.Duration) error
	// Jitter returns a value in [0, n). Defaults to math/rand/v2.
	Jitter func(n int64) int64
}

// DefaultPolicy is 3 attempts with 50-200ms between them.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		MinBackoff:  50 * time.Millisecond,
		MaxBackoff:  200 * time.Millisecond,
	}
}

// Backoff returns a delay uniformly drawn from [MinBackoff, MaxBackoff].
func (p Policy) Backoff() time.Duration {
	span := int64(p.MaxBackoff - p.MinBackoff)
	if span <= 0 {
		return p.MinBackoff
	}
	jitter := p.Jitter
	if jitter == nil {
		jitter = rand.Int64N
	}
	return p.MinBackoff + time.Duration(jitter(span+1))
}

// Do calls fn until it succeeds, returns an error that retryable rejects,
// or MaxAttempts is reached. The last error is returned along with the
// number of attempts made.
func (p Policy) Do(ctx context.Context, retryable func(error) bool, fn func(attempt int) error) (int, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(attempt); err == nil {
			return attempt, nil
		}
		if !retryable(err) || attempt == attempts {
			return attempt, err
		}
		if serr := sleep(ctx, p.Backoff()); serr != nil {
			return attempt, serr
		}
	}
	return attempts, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
