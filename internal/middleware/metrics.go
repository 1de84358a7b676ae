package middleware

import (
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latencies per route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
