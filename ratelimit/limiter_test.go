package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// fakeClock returns a limiter whose time only moves when advance is called.
func fakeClock(l *Limiter) (advance func(time.Duration)) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestAllow_Unlimited(t *testing.T) {
	l := New(0)
	for i := 0; i < 100; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatal("unlimited limiter should always allow")
		}
	}
	if l.Len() != 0 {
		t.Fatalf("unlimited limiter tracked %d clients", l.Len())
	}
}

func TestAllow_NilLimiter(t *testing.T) {
	var l *Limiter
	if !l.Allow("10.0.0.1") {
		t.Fatal("nil limiter should allow")
	}
}

func TestAllow_RateLimited(t *testing.T) {
	l := New(2)
	fakeClock(l)

	// First two should be allowed (bucket starts full).
	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two calls should be allowed")
	}
	// Third should be denied (bucket exhausted).
	if l.Allow("a") {
		t.Fatal("third call should be denied")
	}
	// Other clients have their own bucket.
	if !l.Allow("b") {
		t.Fatal("second client should be allowed")
	}
}

func TestAllow_Refills(t *testing.T) {
	l := New(10)
	advance := fakeClock(l)

	for i := 0; i < 10; i++ {
		l.Allow("a")
	}
	if l.Allow("a") {
		t.Fatal("should be denied after exhausting bucket")
	}

	advance(200 * time.Millisecond)

	if !l.Allow("a") {
		t.Fatal("should be allowed after refill")
	}
}

func TestRetryAfter(t *testing.T) {
	if got := New(4).RetryAfter(); got != 250*time.Millisecond {
		t.Errorf("RetryAfter = %v, want 250ms", got)
	}
	if got := New(0).RetryAfter(); got != 0 {
		t.Errorf("RetryAfter = %v, want 0", got)
	}
}

func TestSweep(t *testing.T) {
	l := New(5)
	advance := fakeClock(l)

	l.Allow("old")
	advance(time.Minute)
	l.Allow("new")

	if n := l.Sweep(30 * time.Second); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	l := New(100)
	fakeClock(l)

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("shared")
		}()
	}

	wg.Wait()
	close(allowed)

	trueCount := 0
	for v := range allowed {
		if v {
			trueCount++
		}
	}

	// The clock is frozen, so exactly the initial burst is allowed.
	if trueCount != 100 {
		t.Fatalf("expected 100 allowed, got %d", trueCount)
	}
}
