package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	if l := NewLimiter(10, 5); l.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", l.defaultBurst)
	}
	if l := NewLimiter(10, -1); l.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l.defaultBurst)
	}
}

func TestLimiter_PerEngine(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if err := limiter.Wait(context.Background(), "remote"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}
	if limiter.Allow("remote") {
		t.Error("expected remote to be throttled after its token was used")
	}
	if !limiter.Allow("heuristic") {
		t.Error("expected a separate bucket for heuristic")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("heuristic") {
			t.Fatalf("expected unlimited limiter to allow call %d", i)
		}
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetRate("remote", 0.1, 1)

	if !limiter.Allow("remote") {
		t.Error("first request should pass")
	}
	if limiter.Allow("remote") {
		t.Error("second request should fail")
	}
	if !limiter.Allow("heuristic") {
		t.Error("other key should pass")
	}
}

func TestLimiter_WaitHost(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()

	if err := limiter.WaitHost(ctx, "https://example.com/a"); err != nil {
		t.Fatalf("WaitHost failed: %v", err)
	}
	if limiter.Allow("example.com") {
		t.Error("expected host bucket to be shared across paths")
	}
	if err := limiter.WaitHost(ctx, "not a url"); err == nil {
		t.Error("expected error for URL without host")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)

	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "example.com", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if d := time.Since(start); d < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", d)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	limiter.Allow("remote")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "remote"); err == nil {
		t.Error("expected error when the context expires before a token is available")
	}
}
