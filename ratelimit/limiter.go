// Package ratelimit throttles API clients with per-client token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter implements token bucket rate limiting per client key.
type Limiter struct {
	mu      sync.Mutex
	rate    float64 // tokens per second, also the burst size
	buckets map[string]*bucket
	now     func() time.Time
}

// sweepThreshold is the client count above which Allow drops refilled
// buckets.
const sweepThreshold = 10000

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// New creates a limiter allowing perSecond requests per client.
// A perSecond of 0 or less means unlimited.
func New(perSecond int) *Limiter {
	return &Limiter{
		rate:    float64(perSecond),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Enabled reports whether the limiter restricts anything.
func (l *Limiter) Enabled() bool {
	return l != nil && l.rate > 0
}

// Allow checks whether the client identified by key may proceed and takes a
// token if so.
func (l *Limiter) Allow(key string) bool {
	if !l.Enabled() {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok && len(l.buckets) >= sweepThreshold {
		// A bucket idle for a full second has refilled, so dropping it
		// changes nothing.
		l.sweepLocked(now.Add(-time.Second))
	}
	if !ok {
		b = &bucket{tokens: l.rate, lastFill: now} // start full
		l.buckets[key] = b
	}
	b.tokens += now.Sub(b.lastFill).Seconds() * l.rate
	if b.tokens > l.rate {
		b.tokens = l.rate
	}
	b.lastFill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// RetryAfter is how long a denied client should wait for the next token.
func (l *Limiter) RetryAfter() time.Duration {
	if !l.Enabled() {
		return 0
	}
	return time.Duration(float64(time.Second) / l.rate)
}

// Sweep drops buckets idle for longer than idle, returning how many were
// removed. Full buckets and missing buckets behave the same, so this only
// bounds memory.
func (l *Limiter) Sweep(idle time.Duration) int {
	if !l.Enabled() {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(l.now().Add(-idle))
}

func (l *Limiter) sweepLocked(cutoff time.Time) int {
	removed := 0
	for key, b := range l.buckets {
		if b.lastFill.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
