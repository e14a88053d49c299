package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every gateway instance.
type RedisLimiter struct {
	client   *redis.Client
	prefix   string
	requests int64
	window   time.Duration
}

// NewRedisLimiter allows requests per window for each key.
func NewRedisLimiter(client *redis.Client, prefix string, requests int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		client:   client,
		prefix:   prefix,
		requests: int64(requests),
		window:   window,
	}
}

// BuildKey returns the redis key counting requests of key.
func (r *RedisLimiter) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := r.BuildKey(key)

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, k, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set rate window: %w", err)
		}
	}
	if count <= r.requests {
		return true, 0, nil
	}

	ttl, err := r.client.PTTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read rate window: %w", err)
	}
	if ttl <= 0 {
		// A counter without expiry would block the key forever.
		if err := r.client.PExpire(ctx, k, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set rate window: %w", err)
		}
		ttl = r.window
	}
	return false, ttl, nil
}
