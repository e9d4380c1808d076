package ratelimit

import (
	"context"
	"sync"
	"time"
)

// bucket is the window state of one key. dead is set under mu when the
// sweeper unlinks the bucket so that in-flight callers look it up again.
type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
	dead    bool
}

// MemoryLimiter is an in-process [Limiter].
//
// Each key has its own mutex; the map lock only guards bucket lookup and
// creation, so requests for different keys never wait on each other's
// counting.
type MemoryLimiter struct {
	mu      sync.RWMutex
	buckets map[Key]*bucket
	now     func() time.Time
}

// MemoryOption customizes a [MemoryLimiter].
type MemoryOption func(*MemoryLimiter)

// WithMemoryClock replaces the limiter's time source.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// NewMemoryLimiter returns an empty in-process limiter.
func NewMemoryLimiter(opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{
		buckets: make(map[Key]*bucket),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow implements [Limiter].
func (l *MemoryLimiter) Allow(_ context.Context, key Key, rule Rule) (Decision, error) {
	if err := rule.Validate(); err != nil {
		return Decision{}, err
	}

	for {
		b := l.bucket(key)

		b.mu.Lock()
		if b.dead {
			b.mu.Unlock()
			continue
		}
		decision := b.take(l.now(), rule)
		b.mu.Unlock()

		return decision, nil
	}
}

// take applies one request to the bucket. Callers hold b.mu.
func (b *bucket) take(now time.Time, rule Rule) Decision {
	if !now.Before(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(rule.Window)
	}

	if b.count >= rule.Requests {
		return Decision{Allowed: false, Limit: rule.Requests, Remaining: 0, ResetAt: b.resetAt}
	}

	b.count++
	return Decision{
		Allowed:   true,
		Limit:     rule.Requests,
		Remaining: rule.Requests - b.count,
		ResetAt:   b.resetAt,
	}
}

func (l *MemoryLimiter) bucket(key Key) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok = l.buckets[key]; ok {
		return b
	}
	b = &bucket{}
	l.buckets[key] = b
	return b
}

// Sweep drops every bucket whose window has expired at now and returns how
// many were removed.
func (l *MemoryLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		b.mu.Lock()
		if !now.Before(b.resetAt) {
			b.dead = true
			delete(l.buckets, key)
			removed++
		}
		b.mu.Unlock()
	}

	return removed
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}
