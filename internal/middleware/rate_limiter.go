package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/clinichq/clinic-api/pkg/httputil"
)

type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter builds a global limiter. Single-site deployment, so one
// bucket for the whole process is enough.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.Response{
				Success: false,
				Error: &httputil.Error{
					Code:    http.StatusTooManyRequests,
					Message: "rate limit exceeded",
				},
			})
			return
		}
		c.Next()
	}
}
