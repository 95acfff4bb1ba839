package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a distributed token bucket. State lives in a Redis hash
// per key; the Lua script refills and consumes atomically so concurrent
// sign-in attempts across instances share one budget.
type RedisLimiter struct {
	client    *redis.Client
	keyPrefix string
	capacity  float64
	window    time.Duration
}

// NewRedisLimiter creates a limiter allowing capacity attempts per window.
// keyPrefix defaults to "rate_limit:" when empty.
func NewRedisLimiter(client *redis.Client, keyPrefix string, capacity int, window time.Duration) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "rate_limit:"
	}
	return &RedisLimiter{
		client:    client,
		keyPrefix: keyPrefix,
		capacity:  float64(capacity),
		window:    window,
	}
}

// The script atomically:
// 1. Gets or initializes bucket state
// 2. Refills tokens based on elapsed time
// 3. Consumes a token if available
// 4. Updates bucket state and expiration
const bucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local refillRate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local tokensToConsume = tonumber(ARGV[4])
	local windowSeconds = tonumber(ARGV[5])

	local bucketData = redis.call('HMGET', key, 'tokens', 'lastRefill')
	local tokensStr = bucketData[1]
	local lastRefillStr = bucketData[2]

	local tokens
	local lastRefill
	if tokensStr == false or tokensStr == nil then
		tokens = capacity
		lastRefill = now
	else
		tokens = tonumber(tokensStr)
		if tokens == nil then
			tokens = capacity
		end
		lastRefill = tonumber(lastRefillStr)
		if lastRefill == nil then
			lastRefill = now
		end
	end

	local elapsed = (now - lastRefill) / 1000000000

	if elapsed > 0 then
		local tokensToAdd = elapsed * refillRate
		tokens = math.min(capacity, tokens + tokensToAdd)
	end

	if tokens >= tokensToConsume then
		tokens = tokens - tokensToConsume
		redis.call('HSET', key, 'tokens', tostring(tokens), 'lastRefill', tostring(now))
		redis.call('EXPIRE', key, math.ceil(windowSeconds * 1.1))
		return 1
	else
		redis.call('HSET', key, 'tokens', tostring(tokens), 'lastRefill', tostring(now))
		redis.call('EXPIRE', key, math.ceil(windowSeconds * 1.1))
		return 0
	end
`

// Allow consumes one token for the key if the bucket has one.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	refillRate := r.capacity / r.window.Seconds()
	now := time.Now().UnixNano()

	result, err := r.client.Eval(ctx, bucketScript, []string{r.keyPrefix + key},
		r.capacity,
		refillRate,
		now,
		1.0,
		r.window.Seconds(),
	).Result()
	if err != nil {
		return false, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	return result.(int64) == 1, nil
}

func (r *RedisLimiter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisLimiter) Close() error {
	return r.client.Close()
}
