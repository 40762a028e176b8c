package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ta7wila/internal/infrastructure/ratelimit"
	"ta7wila/internal/shared/utils"
)

// RateLimit limits requests per client IP using the shared Redis limiter. It
// fronts the public checkout endpoints, where callers are anonymous.
func RateLimit(limiter ratelimit.RateLimiter, config ratelimit.RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow("ip:"+c.ClientIP(), config)
		if err != nil {
			// Redis being down should not take the public page with it
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
