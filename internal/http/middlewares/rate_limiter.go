package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpify.com/helpify/internal/ratelimit"
)

// RateLimiter rejects clients that exceed the limiter's quota, keyed by the
// caller's IP address.
func RateLimiter(limiter *ratelimit.Limiter, logger *zap.Logger) echo.MiddlewareFunc {
	limit := strconv.Itoa(limiter.Limit())
	// Retry-After is an upper bound: a full window always clears the quota.
	retryAfter := strconv.Itoa(int(math.Ceil(limiter.Window().Seconds())))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			ok, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				logger.Error("rate limit store failed", zap.String("ip", key), zap.Error(err))
			}

			c.Response().Header().Set("X-RateLimit-Limit", limit)
			if !ok {
				c.Response().Header().Set("Retry-After", retryAfter)
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
