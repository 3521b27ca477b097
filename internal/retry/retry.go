// Package retry bounds outbound calls with a per-attempt deadline and a
// fixed-delay retry policy. Do is the call-with-deadline combinator;
// Runner adds observable state and supersedes prior in-flight sequences.
package retry

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrTimeout is returned when a single attempt exceeds its deadline
	ErrTimeout = errors.New("request timeout")

	// ErrCancelled is returned when the caller's context is cancelled or a
	// newer execution supersedes this one. Callers drop it silently.
	ErrCancelled = errors.New("request cancelled")
)

// Config controls the deadline and retry policy for a call
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the standard policy: 10s per attempt, 2 retries,
// 1s between attempts.
func DefaultConfig() Config {
	return Config{
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Second,
	}
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	return c
}

type attemptResult[T any] struct {
	value T
	err   error
}

// Do runs fn with at most cfg.MaxRetries+1 attempts. Each attempt races
// fn against cfg.Timeout; a producer that overruns its deadline is
// abandoned and the attempt fails with ErrTimeout. Cancellation of ctx
// fails the call immediately with ErrCancelled regardless of remaining
// retries; otherwise Do sleeps cfg.RetryDelay between attempts and
// returns the last error once retries are exhausted.
func Do[T any](ctx context.Context, cfg Config, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ErrCancelled
		}

		value, err := runAttempt(ctx, cfg.Timeout, fn)
		if err == nil {
			return value, nil
		}
		if errors.Is(err, ErrCancelled) {
			return zero, ErrCancelled
		}
		lastErr = err

		if attempt == cfg.MaxRetries {
			break
		}

		select {
		case <-time.After(cfg.RetryDelay):
		case <-ctx.Done():
			return zero, ErrCancelled
		}
	}

	return zero, lastErr
}

func runAttempt[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan attemptResult[T], 1)
	go func() {
		value, err := fn(attemptCtx)
		done <- attemptResult[T]{value: value, err: err}
	}()

	select {
	case result := <-done:
		if result.err != nil && ctx.Err() != nil {
			return zero, ErrCancelled
		}
		return result.value, result.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return zero, ErrCancelled
		}
		return zero, ErrTimeout
	}
}

// State is the observable result of a Runner execution. Data is set only
// after a successful attempt; Loading and Err never overlap with it.
type State[T any] struct {
	Data    *T
	Loading bool
	Err     error
}

// Runner executes at most one attempt sequence at a time. Starting a new
// execution cancels any prior in-flight sequence on the same runner.
type Runner[T any] struct {
	cfg Config

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    int
	state  State[T]
}

// NewRunner creates a runner with the given retry policy
func NewRunner[T any](cfg Config) *Runner[T] {
	return &Runner[T]{cfg: cfg}
}

// Execute runs fn under the runner's policy, cancelling any prior
// in-flight sequence first. The runner's state transitions to loading,
// then atomically to either data or error for this execution; a
// superseded execution leaves the newer state untouched.
func (r *Runner[T]) Execute(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.seq++
	seq := r.seq
	r.state = State[T]{Loading: true}
	r.mu.Unlock()

	value, err := Do(runCtx, r.cfg, fn)
	cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq == r.seq {
		if err != nil {
			r.state = State[T]{Err: err}
		} else {
			v := value
			r.state = State[T]{Data: &v}
		}
	}
	return value, err
}

// State returns a snapshot of the runner's observable state
func (r *Runner[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Reset cancels any in-flight sequence and clears the state
func (r *Runner[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq++
	r.state = State[T]{}
}
