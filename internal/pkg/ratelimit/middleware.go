package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	"github.com/xyz-asif/tradehub/internal/pkg/response"
)

// Middleware limits requests per authenticated user, falling back to the
// client IP. Limiter failures let the request through.
func Middleware(limiter Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString("userID")
		if key == "" {
			key = c.ClientIP()
		}
		if scope != "" {
			key = scope + ":" + key
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request: %v", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", "60")
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.", "RATE_LIMITED")
			c.Abort()
			return
		}

		c.Next()
	}
}
