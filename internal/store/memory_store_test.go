package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

func TestMemoryStore_UpsertAndListActive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.UpsertInsight(ctx, models.Insight{
		ID: "i1", CompanyID: "acme", Kind: models.InsightRisk,
		Status: models.StatusActive,
		Scores: models.InsightScores{FinalScore: 90, Severity: models.SeverityCritical},
	}))
	require.NoError(t, s.UpsertInsight(ctx, models.Insight{
		ID: "i2", CompanyID: "acme", Kind: models.InsightOpportunity,
		Status: models.StatusActive,
		Scores: models.InsightScores{FinalScore: 40, Severity: models.SeverityMedium},
	}))
	require.NoError(t, s.UpsertInsight(ctx, models.Insight{
		ID: "i3", CompanyID: "other", Kind: models.InsightRisk,
		Status: models.StatusActive,
		Scores: models.InsightScores{FinalScore: 99, Severity: models.SeverityCritical},
	}))

	active, err := s.ListActive(ctx, "acme", "")
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "i1", active[0].ID, "highest final score ranks first")

	filtered, err := s.ListActive(ctx, "acme", "kind:risk")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "i1", filtered[0].ID)
}

func TestMemoryStore_TerminalInsightsExcludedFromListActive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.UpsertInsight(ctx, models.Insight{ID: "i1", CompanyID: "acme", Status: models.StatusActive}))

	require.NoError(t, s.MarkResolved(ctx, "i1"))
	active, err := s.ListActive(ctx, "acme", "")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestMemoryStore_MarkResolvedIsTerminalAndRejectsFurtherTransitions(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.UpsertInsight(ctx, models.Insight{ID: "i1", CompanyID: "acme", Status: models.StatusActive}))

	require.NoError(t, s.MarkResolved(ctx, "i1"))
	err := s.MarkAcknowledged(ctx, "i1")
	assert.Error(t, err)
}

func TestMemoryStore_StoreRecommendationsRequiresExistingInsight(t *testing.T) {
	s := NewMemoryStore()
	err := s.StoreRecommendations(context.Background(), "missing", []models.Recommendation{{Action: "investigate"}})
	assert.Error(t, err)
}

func TestMemoryStore_RecordScoreHistoryAndDailyTracking(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.RecordScoreHistory(ctx, "acme", "OPS_SUPPLY_CHAIN", now, 0.7))
	require.NoError(t, s.RecordDailyTracking(ctx, "acme", now, map[string]any{"insights_detected": 3}))

	assert.Len(t, s.scoreHistory["acme/OPS_SUPPLY_CHAIN"], 1)
	assert.NotEmpty(t, s.dailyTracking)
}
