package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 2 {
		t.Errorf("expected default burst 2 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://archive.example.org/koi/cumulative.csv"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different host gets its own limiter
	if err := limiter.Wait(ctx, "https://mirror.example.net/koi.csv"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_LocalSourcesPassThrough(t *testing.T) {
	limiter := NewLimiter(0.0001, 1) // would block for hours if throttled

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "./dataset/cumulative_koi.csv"); err != nil {
		t.Errorf("local path must never throttle, got %v", err)
	}
}

func TestLimiter_ThrottlesSameHost(t *testing.T) {
	limiter := NewLimiter(20, 1) // 50ms between requests after the burst
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, "https://archive.example.org/file.csv"); err != nil {
			t.Fatalf("wait failed: %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("expected ~100ms of pacing for 3 requests at 20 rps, got %v", elapsed)
	}
}
