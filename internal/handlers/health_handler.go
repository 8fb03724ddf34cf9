package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports service readiness
type HealthHandler struct {
	pingStore      func(ctx context.Context) error
	directoryReady func() bool
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(pingStore func(ctx context.Context) error, directoryReady func() bool) *HealthHandler {
	return &HealthHandler{
		pingStore:      pingStore,
		directoryReady: directoryReady,
	}
}

// Healthcheck handles GET /api/healthcheck
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := h.pingStore(ctx); err != nil {
		attachError(c, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}

	if !h.directoryReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "directory cache not initialized",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
