// Package api is the thin, read-only HTTP query surface spec.md §1
// describes as the service's outer edge: list active insights, acknowledge
// or resolve one, health/readiness, and the Prometheus scrape endpoint.
// There is deliberately no routing beyond this surface, and no auth
// middleware — identity, tenancy, and JWT/LDAP/OTP verification are an
// external gateway's job (spec.md §1, §6).
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/newsvalidator-core/internal/api/stream"
	"github.com/platformbuilds/newsvalidator-core/internal/monitoring"
	"github.com/platformbuilds/newsvalidator-core/internal/store"
	"github.com/platformbuilds/newsvalidator-core/pkg/cache"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// NewRouter builds the gin engine serving the insight query surface,
// health/readiness probes, Prometheus metrics, and the websocket insight
// stream. resultsCache may be nil (falls back to uncached store reads);
// hub may be nil (disables the /ws endpoint).
func NewRouter(insightStore store.InsightStore, resultsCache *store.ResultsCache, resultCache cache.ResultCache, hub *stream.Hub, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	health := NewHealthHandler(resultCache, log)
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)

	monitoring.SetupPrometheusMetrics(router)

	insights := NewInsightHandler(insightStore, resultsCache, log)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/companies/:companyId/insights", insights.ListActive)
		v1.POST("/insights/:id/ack", insights.Acknowledge)
		v1.POST("/insights/:id/resolve", insights.Resolve)
	}

	if hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			hub.ServeWS(c.Writer, c.Request)
		})
	}

	return router
}

// requestLogger logs each request's method, path, status, and latency.
// Mirrors the structured-logging idiom used across the rest of the
// service instead of gin's default text logger.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("http request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
