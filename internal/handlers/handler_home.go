package handlers

import (
	"net/http"

	"github.com/SscSPs/produce_settlement_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Liveness check
// @Description Reports that the server is up.
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// registerRootRoutes registers the public health and metrics routes
func registerRootRoutes(r *gin.Engine) {
	r.GET("/health", getHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
