package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"YSFinancials/pkg/errs"
	"YSFinancials/pkg/metrics"
	"YSFinancials/pkg/ratelimit"
)

// RateLimitMessage is the plain-text body of a 429.
const RateLimitMessage = "Too many requests from this IP, please try again later."

func clientIP(c *gin.Context) string {
	ip := strings.TrimSpace(c.ClientIP())
	if ip == "" {
		host, _, _ := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
		ip = host
	}
	return ip
}

// RateLimit admits at most the limiter's quota per client IP per window.
// A failing limiter store admits the request and logs a warning.
func RateLimit(l ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientIP(c)
		d, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("rate limiter unavailable, admitting request", zap.String("ip", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt((d.ResetAt.UnixMilli()+999)/1000, 10))

		if !d.Allowed {
			retry := d.RetryAfter(time.Now())
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			metrics.RecordRejection(metrics.ReasonRateLimit)
			_ = c.Error(errs.New(errs.KindQuota, RateLimitMessage))
			log.Info("rate limit exceeded", zap.String("ip", key), zap.String("path", c.Request.URL.Path))
			c.Abort()
			c.String(http.StatusTooManyRequests, RateLimitMessage)
			return
		}
		c.Next()
	}
}
