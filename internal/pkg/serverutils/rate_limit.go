// FILE: internal/pkg/serverutils/rate_limit.go
package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware is a fixed-window limiter backed by Redis, so the count
// is shared across every instance of the service. Keyed by client IP: the
// middleware runs before any auth, so no user identity exists here yet. When
// Redis is unreachable the request is allowed through; rate limiting is
// protective, not load-bearing.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		redisKey := fmt.Sprintf("ratelimit:%s", ctx.IP())

		count, err := rdb.Incr(ctx.Context(), redisKey).Result()
		if err != nil {
			return ctx.Next()
		}
		if count == 1 {
			rdb.Expire(ctx.Context(), redisKey, window)
		}
		if count > int64(limit) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(
				ErrorResponse(fiber.StatusTooManyRequests, "rate limit exceeded, try again later"))
		}

		return ctx.Next()
	}
}
