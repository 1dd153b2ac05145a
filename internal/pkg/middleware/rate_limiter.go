package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/database"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *database.RedisClient
	Key         string        // scope, e.g. "otp"
	Limit       int           // Maximum number of requests
	Period      time.Duration // Time period for the limit
}

// RateLimiterMiddleware counts requests per caller in a fixed Redis window.
// Callers are identified by user id when authenticated, otherwise by IP.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Limit <= 0 {
				return next(c)
			}

			identifier := c.RealIP()
			if userID := c.Get(ContextUserID); userID != nil {
				identifier = fmt.Sprintf("%v", userID)
			}
			key := fmt.Sprintf(constants.KeyRateLimit, config.Key, identifier+":"+c.Request().URL.Path)

			ctx := c.Request().Context()
			count, err := config.RedisClient.Incr(ctx, key)
			if err != nil {
				logger.WarnCtx(ctx, "Rate limiter unavailable, letting request through",
					logger.String("key", key), logger.Err(err))
				return next(c)
			}
			if count == 1 {
				if err := config.RedisClient.Expire(ctx, key, config.Period); err != nil {
					logger.WarnCtx(ctx, "Failed to set rate limit window", logger.String("key", key), logger.Err(err))
				}
			}

			remaining := config.Limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if int(count) > config.Limit {
				ttl, err := config.RedisClient.Client.TTL(ctx, key).Result()
				if err == nil && ttl > 0 {
					c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
					c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				}
				return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, "Rate limit exceeded")
			}

			return next(c)
		}
	}
}

// OTPRateLimiter bounds code submissions per user
func OTPRateLimiter(limit int, period time.Duration, redisClient *database.RedisClient) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Key:         "otp",
		Limit:       limit,
		Period:      period,
	})
}
