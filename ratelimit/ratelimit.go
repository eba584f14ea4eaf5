package ratelimit

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Limiter answers whether the caller identified by key may proceed within
// the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

// Middleware throttles by client IP. A limiter failure fails open: dropping
// traffic because Redis hiccuped is worse than serving it unthrottled.
func Middleware(limiter Limiter, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnf("rate limiter failed, letting request through: %v", err)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}
