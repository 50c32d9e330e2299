package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestSlidingWindowLimiter_Allow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewSlidingWindowLimiter(WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(ctx, "contact:1.2.3.4", 5, time.Minute), "attempt %d", i+1)
		clock.Advance(time.Second)
	}
	assert.False(t, l.Allow(ctx, "contact:1.2.3.4", 5, time.Minute), "6th attempt must be rejected")

	// other keys are independent
	assert.True(t, l.Allow(ctx, "contact:5.6.7.8", 5, time.Minute))

	clock.Advance(time.Minute)
	assert.True(t, l.Allow(ctx, "contact:1.2.3.4", 5, time.Minute), "window elapsed")
}

func TestSlidingWindowLimiter_RejectedAttemptsAreNotRecorded(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewSlidingWindowLimiter(WithClock(clock.Now))
	ctx := context.Background()

	require.True(t, l.Allow(ctx, "k", 1, 10*time.Second))
	for i := 0; i < 3; i++ {
		clock.Advance(3 * time.Second)
		require.False(t, l.Allow(ctx, "k", 1, 10*time.Second))
	}
	clock.Advance(3 * time.Second)
	// 12s after the only accepted attempt; rejected ones must not extend the window.
	assert.True(t, l.Allow(ctx, "k", 1, 10*time.Second))
}

func TestSlidingWindowLimiter_Sweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewSlidingWindowLimiter(WithClock(clock.Now))
	ctx := context.Background()

	l.Allow(ctx, "old", 5, time.Minute)
	clock.Advance(100 * time.Second)
	l.Allow(ctx, "fresh", 5, time.Minute)
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
	assert.False(t, l.Allow(ctx, "fresh", 1, time.Hour), "fresh key keeps its history")
}

func TestSlidingWindowLimiter_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewSlidingWindowLimiter(WithClock(clock.Now), WithSweep(5*time.Millisecond, time.Second))

	l.Allow(context.Background(), "idle", 1, time.Second)
	clock.Advance(time.Hour)

	l.Start()
	l.Start()
	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)
	l.Stop()
	l.Stop()
}

func TestSlidingWindowLimiter_Concurrent(t *testing.T) {
	l := NewSlidingWindowLimiter()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow(ctx, "checkout:9.9.9.9", 10, time.Minute) {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, allowed)
}
