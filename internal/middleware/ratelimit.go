package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
)

// RateLimitMiddleware throttles by client IP. Limiter failures let the
// request through.
func RateLimitMiddleware(l ratelimit.Limiter, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + "|" + c.ClientIP()

		ok, retry, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.WarnContext(c.Request.Context(), "rate limiter unavailable", slog.Any("error", err))
			c.Next()
			return
		}
		if !ok {
			secs := int(math.Ceil(retry.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
			log.WarnContext(c.Request.Context(), "rate limit exceeded",
				slog.String("client_ip", c.ClientIP()),
				slog.String("route", c.FullPath()),
			)
			return
		}

		c.Next()
	}
}
