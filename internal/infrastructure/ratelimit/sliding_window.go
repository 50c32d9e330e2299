package ratelimit

import (
	"context"
	"log"
	"sync"
	"time"

	"storefront/internal/usecase/interfaces"
)

const (
	defaultSweepInterval = 60 * time.Second
	defaultRetention     = 120 * time.Second
)

// SlidingWindowLimiter is a process-local sliding window limiter.
//
// For each key it keeps the timestamps of accepted attempts. Rejected
// attempts are not recorded. A background sweep started with Start drops
// keys whose newest attempt is older than the retention period.
type SlidingWindowLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time

	now           func() time.Time
	sweepInterval time.Duration
	retention     time.Duration

	lifecycle sync.Mutex
	stop      chan struct{}
	done      chan struct{}
}

var _ interfaces.IRateLimiter = (*SlidingWindowLimiter)(nil)

type Option func(*SlidingWindowLimiter)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *SlidingWindowLimiter) { l.now = now }
}

func WithSweep(interval, retention time.Duration) Option {
	return func(l *SlidingWindowLimiter) {
		l.sweepInterval = interval
		l.retention = retention
	}
}

func NewSlidingWindowLimiter(opts ...Option) *SlidingWindowLimiter {
	l := &SlidingWindowLimiter{
		requests:      make(map[string][]time.Time),
		now:           time.Now,
		sweepInterval: defaultSweepInterval,
		retention:     defaultRetention,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *SlidingWindowLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-window)

	requests := l.requests[key]
	valid := requests[:0]
	for _, t := range requests {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= limit {
		l.requests[key] = valid
		return false
	}

	l.requests[key] = append(valid, now)
	return true
}

// Sweep removes keys whose newest attempt is older than the retention
// period and returns how many were removed.
func (l *SlidingWindowLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.retention)
	removed := 0
	for key, requests := range l.requests {
		if len(requests) == 0 || requests[len(requests)-1].Before(cutoff) {
			delete(l.requests, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *SlidingWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

// Start launches the periodic sweep. Calling it twice is a no-op.
func (l *SlidingWindowLimiter) Start() {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()
	if l.stop != nil {
		return
	}
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.sweepLoop(l.stop, l.done)
}

// Stop ends the sweep and waits for it to exit. Safe to call repeatedly.
func (l *SlidingWindowLimiter) Stop() {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()
	if l.stop == nil {
		return
	}
	close(l.stop)
	<-l.done
	l.stop = nil
	l.done = nil
}

func (l *SlidingWindowLimiter) sweepLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				log.Printf("[ratelimit][memory] swept idle keys removed=%d", n)
			}
		case <-stop:
			return
		}
	}
}
