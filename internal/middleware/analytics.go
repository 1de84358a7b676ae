package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/produce_settlement_app/internal/platform/analytics"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are never sent to analytics.
var untrackedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// AnalyticsMiddleware records one usage event per successful authenticated request.
// The event name is the route template, e.g. "api_v1_producers_:producerID_settlements".
func AnalyticsMiddleware(tracker *analytics.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tracker.Enabled() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}
		tracker.Track(userID, eventName, props)
	}
}
