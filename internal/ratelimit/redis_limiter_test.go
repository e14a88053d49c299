package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	l := NewRedisLimiter(client, "search", 10, time.Minute)

	for i := 0; i < 10; i++ {
		allowed, _, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, allowed, "request %d", i+1)
	}

	allowed, retryAfter, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)

	assert.True(t, mr.Exists("search:1.2.3.4"))

	mr.FastForward(61 * time.Second)

	allowed, _, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_Unavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedisLimiter(client, "", 10, time.Minute)
	mr.Close()

	_, _, err := l.Allow(context.Background(), "1.2.3.4")
	assert.Error(t, err)
}
