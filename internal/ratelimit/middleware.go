package ratelimit

import (
	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
	"github.com/weiawesome/wes-storefront-gateway/pkg/response"
)

// KeyFunc extracts the rate-limit key of a request.
type KeyFunc func(c *gin.Context) string

// ClientIP keys requests by client address.
func ClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// Middleware rejects requests over the limit with 429. Limiter failures let
// the request through.
func Middleware(limiter Limiter, keyFunc KeyFunc) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = ClientIP
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := keyFunc(c)

		allowed, retryAfter, err := limiter.Allow(ctx, key)
		if err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldClientIP, key).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !allowed {
			l := log.Ctx(ctx)
			l.Info().Str(log.FieldClientIP, key).Dur("retry_after", retryAfter).Msg("search rate limit exceeded")
			response.TooManyRequests(c, retryAfter, "too many search requests, please retry later")
			return
		}

		c.Next()
	}
}
