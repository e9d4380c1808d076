package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// fixedWindowScript checks and increments a window counter in one step.
// KEYS[1] counter key, ARGV[1] quota, ARGV[2] window in milliseconds.
// Reply: {allowed (0|1), count, ttl in milliseconds}.
var fixedWindowScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local current = tonumber(redis.call('GET', KEYS[1]) or '0')

if current >= limit then
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], window)
		ttl = window
	end
	return {0, current, ttl}
end

current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], window)
end

local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], window)
	ttl = window
end
return {1, current, ttl}
`)

// RedisLimiter is a [Limiter] whose counters live in redis, so every
// instance sharing the redis database shares the quota.
type RedisLimiter struct {
	client redis.Scripter
	now    func() time.Time
}

// RedisOption customizes a [RedisLimiter].
type RedisOption func(*RedisLimiter)

// WithRedisClock replaces the time source used to compute Decision.ResetAt.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(l *RedisLimiter) {
		l.now = now
	}
}

// NewRedisLimiter returns a limiter that runs its counting script on client.
func NewRedisLimiter(client redis.Scripter, opts ...RedisOption) *RedisLimiter {
	l := &RedisLimiter{
		client: client,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewRedisClient connects to the redis database described by url
// (e.g. "redis://localhost:6379/0") and checks it with PING.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return client, nil
}

// Allow implements [Limiter].
func (l *RedisLimiter) Allow(ctx context.Context, key Key, rule Rule) (Decision, error) {
	if err := rule.Validate(); err != nil {
		return Decision{}, err
	}

	windowMs := max(rule.Window.Milliseconds(), 1)
	reply, err := fixedWindowScript.Run(ctx, l.client,
		[]string{redisKeyPrefix + key.String()},
		rule.Requests, windowMs,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	if len(reply) != 3 {
		return Decision{}, fmt.Errorf("%w: %v", ErrUnexpectedReply, reply)
	}

	allowed, count, ttl := reply[0] == 1, int(reply[1]), time.Duration(reply[2])*time.Millisecond

	remaining := rule.Requests - count
	if remaining < 0 || !allowed {
		remaining = 0
	}

	return Decision{
		Allowed:   allowed,
		Limit:     rule.Requests,
		Remaining: remaining,
		ResetAt:   l.now().Add(ttl),
	}, nil
}
