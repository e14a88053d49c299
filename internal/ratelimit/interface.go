package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weiawesome/wes-storefront-gateway/pkg/clock"
)

// Limiter decides whether a client may issue one more request.
type Limiter interface {
	// Allow consumes one request for key. When denied, retryAfter tells the
	// client how long to wait.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// Config configures the search rate limiter.
type Config struct {
	Driver   string        `mapstructure:"driver"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Prefix   string        `mapstructure:"prefix"`
}

// New creates the limiter selected by cfg.Driver. client is only used by the
// redis driver.
func New(cfg Config, client *redis.Client, clk clock.Clock) (Limiter, error) {
	if cfg.Requests <= 0 || cfg.Window <= 0 {
		return nil, fmt.Errorf("ratelimit: requests and window must be positive")
	}

	switch cfg.Driver {
	case "", "memory":
		return NewMemoryLimiter(cfg.Requests, cfg.Window, clk), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("ratelimit: redis driver requires a redis client")
		}
		return NewRedisLimiter(client, cfg.Prefix, cfg.Requests, cfg.Window), nil
	default:
		return nil, fmt.Errorf("ratelimit: unsupported driver %q", cfg.Driver)
	}
}
