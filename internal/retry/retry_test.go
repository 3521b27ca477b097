package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		Timeout:    100 * time.Millisecond,
		MaxRetries: 2,
		RetryDelay: 10 * time.Millisecond,
	}
}

func TestDoReturnsFirstSuccess(t *testing.T) {
	var calls int32
	result, err := Do(context.Background(), fastConfig(), func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if result != "ok" {
		t.Errorf("Do() = %v, want ok", result)
	}
	if calls != 1 {
		t.Errorf("producer called %d times, want 1", calls)
	}
}

func TestDoExhaustsRetriesWithLastError(t *testing.T) {
	var calls int32
	wantErr := errors.New("upstream unavailable")

	_, err := Do(context.Background(), fastConfig(), func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Do() error = %v, want %v", err, wantErr)
	}
	// 1 initial attempt + 2 retries
	if calls != 3 {
		t.Errorf("producer called %d times, want 3", calls)
	}
}

func TestDoStopsRetryingAfterSuccess(t *testing.T) {
	var calls int32

	result, err := Do(context.Background(), fastConfig(), func(ctx context.Context) (int, error) {
		n := atomic.AddInt32(&calls, 1)
		if n < 2 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if result != 42 {
		t.Errorf("Do() = %v, want 42", result)
	}
	if calls != 2 {
		t.Errorf("producer called %d times, want 2 (no third attempt)", calls)
	}
}

func TestDoTimesOutSlowProducer(t *testing.T) {
	cfg := Config{
		Timeout:    20 * time.Millisecond,
		MaxRetries: 1,
		RetryDelay: 5 * time.Millisecond,
	}

	var calls int32
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-time.After(time.Second):
			return "too late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Do() error = %v, want ErrTimeout", err)
	}
	if calls != 2 {
		t.Errorf("producer called %d times, want 2", calls)
	}
}

func TestDoCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	_, err := Do(ctx, fastConfig(), func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", errors.New("should not run")
	})

	if !errors.Is(err, ErrCancelled) {
		t.Errorf("Do() error = %v, want ErrCancelled", err)
	}
	if calls != 0 {
		t.Errorf("producer called %d times, want 0", calls)
	}
}

func TestDoCancellationSkipsRemainingRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls int32
	_, err := Do(ctx, Config{Timeout: 100 * time.Millisecond, MaxRetries: 5, RetryDelay: 50 * time.Millisecond},
		func(ctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			cancel()
			return "", errors.New("failed attempt")
		})

	if !errors.Is(err, ErrCancelled) {
		t.Errorf("Do() error = %v, want ErrCancelled", err)
	}
	if calls != 1 {
		t.Errorf("producer called %d times, want 1", calls)
	}
}

func TestRunnerStateTransitions(t *testing.T) {
	r := NewRunner[string](fastConfig())

	if s := r.State(); s.Loading || s.Err != nil || s.Data != nil {
		t.Errorf("initial state = %+v, want zero state", s)
	}

	result, err := r.Execute(context.Background(), func(ctx context.Context) (string, error) {
		return "calm", nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result != "calm" {
		t.Errorf("Execute() = %v, want calm", result)
	}

	s := r.State()
	if s.Loading {
		t.Error("state still loading after completion")
	}
	if s.Data == nil || *s.Data != "calm" {
		t.Errorf("state data = %v, want calm", s.Data)
	}
	if s.Err != nil {
		t.Errorf("state err = %v, want nil", s.Err)
	}
}

func TestRunnerFailureState(t *testing.T) {
	r := NewRunner[string](Config{Timeout: 50 * time.Millisecond, MaxRetries: 0, RetryDelay: time.Millisecond})

	wantErr := errors.New("boom")
	_, err := r.Execute(context.Background(), func(ctx context.Context) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Execute() error = %v, want %v", err, wantErr)
	}

	s := r.State()
	if s.Data != nil {
		t.Errorf("state data = %v, want nil after failure", s.Data)
	}
	if !errors.Is(s.Err, wantErr) {
		t.Errorf("state err = %v, want %v", s.Err, wantErr)
	}
}

func TestRunnerSupersedesInFlightExecution(t *testing.T) {
	r := NewRunner[string](Config{Timeout: time.Second, MaxRetries: 0, RetryDelay: time.Millisecond})

	firstDone := make(chan error, 1)
	started := make(chan struct{})

	go func() {
		_, err := r.Execute(context.Background(), func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		})
		firstDone <- err
	}()

	<-started

	result, err := r.Execute(context.Background(), func(ctx context.Context) (string, error) {
		return "second", nil
	})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if result != "second" {
		t.Errorf("second Execute() = %v, want second", result)
	}

	select {
	case err := <-firstDone:
		if !errors.Is(err, ErrCancelled) {
			t.Errorf("first Execute() error = %v, want ErrCancelled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first execution never finished")
	}

	// The superseded execution must not clobber the newer result
	s := r.State()
	if s.Data == nil || *s.Data != "second" {
		t.Errorf("state data = %v, want second", s.Data)
	}
}

func TestRunnerReset(t *testing.T) {
	r := NewRunner[int](fastConfig())

	if _, err := r.Execute(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	r.Reset()

	if s := r.State(); s.Data != nil || s.Err != nil || s.Loading {
		t.Errorf("state after Reset() = %+v, want zero state", s)
	}
}
