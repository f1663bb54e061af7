package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	err := Do(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestDo_RetrySuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, WithMaxAttempts(3), WithBackoff(Fixed(time.Millisecond)))
	if err != nil {
		t.Errorf("expected no error after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_MaxAttempts(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("persistent error")
	}, WithMaxAttempts(4), WithBackoff(Fixed(time.Millisecond)))
	if err == nil {
		t.Error("expected error after max attempts")
	}
	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}
}

func TestDo_RetryIfStopsEarly(t *testing.T) {
	attempts := 0
	fatal := errors.New("fatal")
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return fatal
	}, WithMaxAttempts(5), WithRetryIf(func(err error) bool {
		return !errors.Is(err, fatal)
	}))
	if !errors.Is(err, fatal) {
		t.Errorf("expected fatal error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, func(ctx context.Context) error {
		return errors.New("should not matter")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExponentialBackoffCapped(t *testing.T) {
	b := Exponential(10*time.Millisecond, 40*time.Millisecond)
	if got := b.Next(0); got != 10*time.Millisecond {
		t.Errorf("attempt 0 = %v", got)
	}
	if got := b.Next(1); got != 20*time.Millisecond {
		t.Errorf("attempt 1 = %v", got)
	}
	if got := b.Next(5); got != 40*time.Millisecond {
		t.Errorf("attempt 5 should be capped, got %v", got)
	}
}

func TestDo_UnrecoverableStopsImmediately(t *testing.T) {
	attempts := 0
	permanent := errors.New("permanent")
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return Unrecoverable(permanent)
	}, WithMaxAttempts(5))
	if !errors.Is(err, permanent) {
		t.Errorf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}
