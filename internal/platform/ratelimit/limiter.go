package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a fixed-window request throttle. Windows start on first
// observation of a key and expire lazily on the next access; there is no
// background sweep. State is process-local and not shared across
// horizontally scaled instances.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]bucket
	now     func() time.Time
}

type bucket struct {
	remaining int
	resetAt   time.Time
}

// Result reports the outcome of a single Check call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

func New(now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		buckets: make(map[string]bucket),
		now:     now,
	}
}

// Check consumes one permit for key if the current window has any left.
// The read-modify-write runs under a single lock so concurrent bursts on
// the same key never lose decrements.
func (l *Limiter) Check(key string, limit int, window time.Duration) Result {
	if limit <= 0 {
		return Result{Allowed: false, Remaining: 0, ResetAt: l.now()}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = bucket{remaining: limit - 1, resetAt: now.Add(window)}
		l.buckets[key] = b
		return Result{Allowed: true, Remaining: b.remaining, ResetAt: b.resetAt}
	}

	if b.remaining <= 0 {
		return Result{Allowed: false, Remaining: 0, ResetAt: b.resetAt}
	}

	b.remaining--
	l.buckets[key] = b
	return Result{Allowed: true, Remaining: b.remaining, ResetAt: b.resetAt}
}
