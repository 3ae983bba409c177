package validator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/claims"
	"github.com/platformbuilds/newsvalidator-core/internal/corroboration"
	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/reputation"
	"github.com/platformbuilds/newsvalidator-core/internal/trust"
	"github.com/platformbuilds/newsvalidator-core/pkg/cache"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	log := logger.New("error")
	tracker := reputation.NewTracker(log)
	corrEngine, err := corroboration.NewEngine(nil, tracker, log)
	require.NoError(t, err)
	return New(tracker, claims.NewExtractor(), corrEngine, trust.NewCalculator(tracker), cache.NewNoopValkeyCache(log), log)
}

func TestValidate_SingleArticleProducesTrustScore(t *testing.T) {
	v := newTestValidator(t)
	article := models.Article{
		ID:          "art-1",
		Source:      "daily_mirror",
		Title:       "Inflation report",
		Body:        "The central bank said inflation rose by 6 percent this month.",
		PublishedAt: time.Now(),
	}

	result, err := v.Validate(context.Background(), article)
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.NotEmpty(t, result.Claims)
	assert.NotNil(t, result.Corroboration)
	assert.Greater(t, result.Trust.Total, 0.0)
}

func TestValidate_SecondArticleFromDifferentSourceCorroboratesFirst(t *testing.T) {
	v := newTestValidator(t)
	body := "Floods displaced hundreds of residents in Colombo overnight according to officials."

	first := models.Article{ID: "a1", Source: "daily_mirror", Title: "Floods hit Colombo", Body: body, PublishedAt: time.Now()}
	_, err := v.Validate(context.Background(), first)
	require.NoError(t, err)

	second := models.Article{ID: "a2", Source: "daily_news", Title: "Floods hit Colombo", Body: body, PublishedAt: time.Now().Add(time.Minute)}
	result, err := v.Validate(context.Background(), second)
	require.NoError(t, err)

	assert.NotEqual(t, models.LevelNone, result.Corroboration.Level)
	assert.Greater(t, result.Trust.Total, 30.0)
}

func TestValidate_CachedResultReturnedOnSecondCall(t *testing.T) {
	v := newTestValidator(t)
	article := models.Article{ID: "cached-1", Source: "daily_mirror", Title: "Budget", Body: "The government unveiled the annual budget today.", PublishedAt: time.Now()}

	first, err := v.Validate(context.Background(), article)
	require.NoError(t, err)

	second, err := v.Validate(context.Background(), article)
	require.NoError(t, err)
	assert.Equal(t, first.Trust.Total, second.Trust.Total)
}

func TestValidate_CancelledContextDegrades(t *testing.T) {
	v := newTestValidator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	article := models.Article{ID: "cancelled-1", Source: "daily_mirror", Title: "X", Body: "Y", PublishedAt: time.Now()}
	result, err := v.Validate(ctx, article)
	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Equal(t, models.TrustUnverified, result.Trust.Level)
}
