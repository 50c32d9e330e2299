package ratelimit

import (
	"context"
	"log"
	"time"

	"storefront/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript trims, counts and conditionally records one attempt
// atomically. KEYS[1]=key, ARGV[1]=now ms, ARGV[2]=window start ms,
// ARGV[3]=window ms, ARGV[4]=member, ARGV[5]=limit.
// Returns the new count, or -1 when the attempt is rejected.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local windowStart = tonumber(ARGV[2])
local windowMs = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '0', windowStart)

local count = redis.call('ZCARD', key)

if count < tonumber(ARGV[5]) then
  redis.call('ZADD', key, now, member)
  redis.call('PEXPIRE', key, windowMs)
  return count + 1
else
  return -1
end
`

// RedisLimiter shares sliding windows between instances through Redis
// sorted sets. Redis errors let the request through.
type RedisLimiter struct {
	rdb    *redis.Client
	script *redis.Script
	prefix string
	now    func() time.Time
}

var _ interfaces.IRateLimiter = (*RedisLimiter)(nil)

func NewRedisLimiter(rdb *redis.Client, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "rate_limit:storefront"
	}
	return &RedisLimiter{
		rdb:    rdb,
		script: redis.NewScript(slidingWindowScript),
		prefix: prefix,
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	now := l.now().UnixMilli()
	windowMs := window.Milliseconds()
	res, err := l.script.Run(ctx, l.rdb, []string{l.prefix + ":" + key},
		now, now-windowMs, windowMs, uuid.NewString(), limit).Int()
	if err != nil {
		log.Printf("[ratelimit][redis] eval failed, allowing key=%s err=%v", key, err)
		return true
	}
	return res >= 0
}
