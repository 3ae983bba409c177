package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/monitoring"
	"github.com/platformbuilds/newsvalidator-core/internal/store"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// InsightHandler serves the thin read-only query surface over the insight
// store (spec.md §1, §6): list active insights and acknowledge/resolve them.
// There is no authentication middleware here by design — this service runs
// behind an external gateway that owns identity and tenancy (spec.md §1
// treats JWT/LDAP/OTP as an external collaborator concern).
type InsightHandler struct {
	store  store.InsightStore
	cache  *store.ResultsCache
	logger logger.Logger
}

// NewInsightHandler constructs an InsightHandler. cache may be nil, in
// which case ListActive reads straight through to store.
func NewInsightHandler(s store.InsightStore, cache *store.ResultsCache, log logger.Logger) *InsightHandler {
	return &InsightHandler{store: s, cache: cache, logger: log}
}

// ListActive handles GET /api/v1/companies/:companyId/insights.
//
// Query params:
//   - filter: a Lucene-style expression over company_id/kind/category/
//     severity/status (e.g. "kind:risk AND severity:high")
func (h *InsightHandler) ListActive(c *gin.Context) {
	companyID := c.Param("companyId")
	filterExpr := c.Query("filter")

	results, err := h.listActive(c.Request.Context(), companyID, filterExpr)
	if err != nil {
		h.logger.Error("list active insights failed", "company_id", companyID, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	monitoring.RecordCacheOperation("insight_list", "served")
	c.JSON(http.StatusOK, gin.H{"company_id": companyID, "count": len(results), "insights": results})
}

func (h *InsightHandler) listActive(ctx context.Context, companyID, filterExpr string) ([]models.Insight, error) {
	if h.cache != nil {
		return h.cache.ListActive(ctx, companyID, filterExpr)
	}
	return h.store.ListActive(ctx, companyID, filterExpr)
}

// Acknowledge handles POST /api/v1/insights/:id/ack.
func (h *InsightHandler) Acknowledge(c *gin.Context) {
	h.transition(c, h.store.MarkAcknowledged)
}

// Resolve handles POST /api/v1/insights/:id/resolve.
func (h *InsightHandler) Resolve(c *gin.Context) {
	h.transition(c, h.store.MarkResolved)
}

func (h *InsightHandler) transition(c *gin.Context, apply func(ctx context.Context, insightID string) error) {
	insightID := c.Param("id")
	if err := apply(c.Request.Context(), insightID); err != nil {
		h.logger.Warn("insight transition rejected", "insight_id", insightID, "error", err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if h.cache != nil {
		if companyID := c.Query("companyId"); companyID != "" {
			_ = h.cache.InvalidateInsightLists(c.Request.Context(), companyID)
		}
	}
	c.JSON(http.StatusOK, gin.H{"insight_id": insightID, "status": "updated"})
}
