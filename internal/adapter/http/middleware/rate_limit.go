package middleware

import (
	"log"
	"net/http"
	"time"

	"storefront/internal/usecase/interfaces"
	"storefront/pkg"

	"github.com/gin-gonic/gin"
)

var errRateLimited = pkg.NewDomainErrorSimple("RATE_LIMITED", "Too many requests. Please try again later.", http.StatusTooManyRequests)

// RateLimit admits at most limit requests per client IP for action within
// window. Each action has its own budget.
func RateLimit(limiter interfaces.IRateLimiter, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := action + ":" + c.ClientIP()
		if !limiter.Allow(c.Request.Context(), key, limit, window) {
			log.Printf("[ratelimit][middleware] rejected key=%s limit=%d window=%s", key, limit, window)
			c.AbortWithStatusJSON(errRateLimited.HTTPStatus, errRateLimited.ToHTTPError())
			return
		}
		c.Next()
	}
}
