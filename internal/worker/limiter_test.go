package worker

import (
	"context"
	"testing"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 3 {
		t.Errorf("expected default burst 3 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different domain should also work
	if err := limiter.Wait(ctx, "http://source.example.org"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	limiter := NewLimiter(0.001, 2) // Effectively no refill within the test

	url := "http://example.com/page"
	if !limiter.Allow(url) {
		t.Error("expected first request within burst to be allowed")
	}
	if !limiter.Allow(url) {
		t.Error("expected second request within burst to be allowed")
	}
	if limiter.Allow(url) {
		t.Error("expected third request to exceed the burst")
	}

	// Other domains have their own budget.
	if !limiter.Allow("http://other.example.org") {
		t.Error("expected a fresh domain to be allowed")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.SetDomainRate("slow.example.org", 0.001, 2)

	url := "http://slow.example.org/x"
	if !limiter.Allow(url) || !limiter.Allow(url) {
		t.Error("expected custom burst of 2 for the configured domain")
	}
	if limiter.Allow(url) {
		t.Error("expected third request to be denied")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(10, 1)
	if limiter.Allow("://not a url") {
		t.Error("expected unparseable URL to be denied")
	}
}
