package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/correlation"
	"github.com/platformbuilds/newsvalidator-core/internal/indicators"
	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/store"
)

func testProfile() models.CompanyProfile {
	return models.CompanyProfile{
		ID:       "acme",
		Industry: models.Industry("manufacturing"),
		Scale:    "large",
		Region:   "apac",
	}
}

func testSnapshot() map[string]indicators.Snapshot {
	return map[string]indicators.Snapshot{
		"PORT_CONGESTION": {Value: 20, Sentiment: -0.6, Confidence: 0.8, Trend: models.TrendFalling},
		"LABOR_STRIKES":   {Value: 15, Sentiment: -0.5, Confidence: 0.7, Trend: models.TrendStable},
	}
}

func TestInsightPipeline_RunProjectsDetectsAndPersists(t *testing.T) {
	projector := indicators.NewProjector(nil)
	analyzer := correlation.NewAnalyzer()
	insightStore := store.NewMemoryStore()

	p := NewInsightPipeline(projector, analyzer, insightStore)
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	result, err := p.Run(context.Background(), testProfile(), testSnapshot(), now)
	require.NoError(t, err)

	assert.Equal(t, "acme", result.Indicators.CompanyID)

	active, err := insightStore.ListActive(context.Background(), "acme", "")
	require.NoError(t, err)
	assert.Len(t, active, len(result.Insights))

	for _, in := range result.Insights {
		_, ok := result.Recommendations[in.ID]
		assert.True(t, ok, "every detected insight should have generated recommendations entry")
	}
}

func TestInsightPipeline_FeedsCorrelationAnalyzer(t *testing.T) {
	projector := indicators.NewProjector(nil)
	analyzer := correlation.NewAnalyzer()
	insightStore := store.NewMemoryStore()

	p := NewInsightPipeline(projector, analyzer, insightStore)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := p.Run(context.Background(), testProfile(), testSnapshot(), base.AddDate(0, 0, i))
		require.NoError(t, err)
	}

	summary := analyzer.GetDataSummary("acme")
	assert.GreaterOrEqual(t, summary.DataPoints, 5)
}

func TestInsightPipeline_RecordsDailyTrackingEveryRun(t *testing.T) {
	projector := indicators.NewProjector(nil)
	analyzer := correlation.NewAnalyzer()
	insightStore := store.NewMemoryStore()

	p := NewInsightPipeline(projector, analyzer, insightStore)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := p.Run(context.Background(), testProfile(), testSnapshot(), now)
	require.NoError(t, err)

	require.NoError(t, insightStore.RecordDailyTracking(context.Background(), "acme", now, map[string]any{"check": true}))
}
