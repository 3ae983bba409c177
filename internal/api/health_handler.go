package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/newsvalidator-core/pkg/cache"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// HealthHandler reports service liveness and readiness. Readiness depends
// only on the results cache being reachable; the durable insight store and
// ingestion boundary are external collaborators this service doesn't own
// (spec.md §1) and so aren't probed here.
type HealthHandler struct {
	cache  cache.ResultCache // may be nil in single-process/test deployments
	logger logger.Logger
}

// NewHealthHandler constructs a HealthHandler. cache may be nil.
func NewHealthHandler(c cache.ResultCache, log logger.Logger) *HealthHandler {
	return &HealthHandler{cache: c, logger: log}
}

// HealthCheck handles GET /health — a liveness probe, independent of any
// dependency.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "newsvalidator-core",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ReadinessCheck handles GET /ready.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "cache": "unconfigured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.cache.HealthCheck(ctx); err != nil {
		h.logger.Warn("readiness check: cache unhealthy", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "cache": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "cache": "ok"})
}
