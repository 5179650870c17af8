package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skyfence/pkg/cache"
)

// RateLimitMiddleware caps requests per client IP over a one minute window.
// A cache failure lets the request through rather than taking the API down
// with it.
func RateLimitMiddleware(redis *cache.RedisCache, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + c.ClientIP()
		count, err := redis.Hit(c.Request.Context(), key, time.Minute)
		if err == nil && count > int64(perMinute) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
