package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/wasa-portal/auth-service/internal/apperrors"
	"github.com/wasa-portal/auth-service/internal/metrics"
	"github.com/wasa-portal/auth-service/internal/respond"
)

// RateLimit returns middleware enforcing a fixed-window request limit per
// client IP and path, counted in Redis. A Redis outage fails open: login
// availability outweighs best-effort throttling.
func RateLimit(redisClient *redis.Client, max int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())

		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := redisClient.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("rate limiter expire failed", "error", err)
			}
		}

		if count > int64(max) {
			metrics.RateLimited.WithLabelValues(c.FullPath()).Inc()
			respond.AbortError(c, apperrors.TooManyRequests("Too many requests"))
			return
		}

		c.Next()
	}
}
