package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"YSFinancials/pkg/errs"
	"YSFinancials/pkg/metrics"
)

// CORSRejectedMessage is the body message for requests from origins outside the allow-list.
const CORSRejectedMessage = "Not allowed by CORS"

// OriginGate refuses requests whose Origin header is set and is not exactly one
// of allowed. Requests without an Origin (same-origin or non-browser) pass.
// It must run before anything that counts or reads the request.
func OriginGate(allowed []string, log *zap.Logger) gin.HandlerFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if _, ok := set[origin]; ok {
			c.Next()
			return
		}
		metrics.RecordRejection(metrics.ReasonCORS)
		_ = c.Error(errs.New(errs.KindOrigin, CORSRejectedMessage))
		log.Warn("origin rejected", zap.String("origin", origin), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": CORSRejectedMessage})
	}
}

// CORS emits the CORS response headers for allowed origins and answers preflights.
func CORS(allowed []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  allowed,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	})
}
