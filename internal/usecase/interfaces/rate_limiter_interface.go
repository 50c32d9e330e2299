package interfaces

import (
	"context"
	"time"
)

// IRateLimiter decides whether one more attempt for key fits in the window.
type IRateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}
