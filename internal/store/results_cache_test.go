package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/pkg/cache"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

type fakeInsightStore struct {
	InsightStore
	listActiveCalls int
	insights        []models.Insight
}

func (f *fakeInsightStore) ListActive(ctx context.Context, companyID, filterExpr string) ([]models.Insight, error) {
	f.listActiveCalls++
	return f.insights, nil
}

func TestResultsCache_TrustScoreRoundTrip(t *testing.T) {
	rc := NewResultsCache(cache.NewNoopValkeyCache(logger.New("error")), nil)
	ctx := context.Background()

	_, ok := rc.GetTrustScore(ctx, "acme", "reuters")
	assert.False(t, ok)

	require.NoError(t, rc.CacheTrustScore(ctx, "acme", "reuters", models.TrustScore{Total: 80}))
	score, ok := rc.GetTrustScore(ctx, "acme", "reuters")
	require.True(t, ok)
	assert.Equal(t, 80.0, score.Total)
}

func TestResultsCache_ListActiveFillsOnMiss(t *testing.T) {
	fake := &fakeInsightStore{insights: []models.Insight{{ID: "i1", CompanyID: "acme"}}}
	rc := NewResultsCache(cache.NewNoopValkeyCache(logger.New("error")), fake)
	ctx := context.Background()

	first, err := rc.ListActive(ctx, "acme", "severity:high")
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, fake.listActiveCalls)

	second, err := rc.ListActive(ctx, "acme", "severity:high")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fake.listActiveCalls, "second call should be served from cache")
}

func TestResultsCache_NarrativeRoundTrip(t *testing.T) {
	rc := NewResultsCache(cache.NewNoopValkeyCache(logger.New("error")), nil)
	ctx := context.Background()

	require.NoError(t, rc.CacheNarrative(ctx, "i1", models.Narrative{Headline: "Supply risk rising", UrgencyTag: "TODAY"}))
	narrative, ok := rc.GetNarrative(ctx, "i1")
	require.True(t, ok)
	assert.Equal(t, "TODAY", narrative.UrgencyTag)
}
