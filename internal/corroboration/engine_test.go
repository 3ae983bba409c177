package corroboration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/reputation"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	tracker := reputation.NewTracker(logger.New("error"))
	e, err := NewEngine(nil, tracker, logger.New("error"))
	require.NoError(t, err)
	return e
}

func TestFind_NoCorroboration(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	article := models.Article{ID: "a1", Source: "daily_mirror", Title: "Budget unveiled", Body: "The finance ministry announced a new budget today.", PublishedAt: time.Now()}
	result, err := e.Find(ctx, article, nil)
	require.NoError(t, err)
	assert.Equal(t, models.LevelNone, result.Level)
	assert.Equal(t, baseScore, result.Score)
}

func TestFind_StrongCorroborationFromOfficialSource(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	now := time.Now()

	body := "The central bank announced inflation rose to 8 percent this quarter amid rising food prices nationwide."

	officials := []string{"government", "reuters", "daily_mirror"}
	for i, src := range officials {
		article := models.Article{
			ID:          src + "-art",
			Source:      src,
			Title:       "Inflation rises to 8 percent",
			Body:        body,
			PublishedAt: now.Add(time.Duration(i) * time.Minute),
		}
		e.AddToCache(article, nil)
	}

	target := models.Article{ID: "target", Source: "economynext", Title: "Inflation rises to 8 percent", Body: body, PublishedAt: now.Add(10 * time.Minute)}
	result, err := e.Find(ctx, target, nil)
	require.NoError(t, err)
	assert.Equal(t, models.LevelStrong, result.Level)
	assert.GreaterOrEqual(t, result.UniqueSourceCount, 2)
}

func TestFind_ConflictingNumericClaimsDetected(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	now := time.Now()

	v1, v2 := 100.0, 50.0
	claimsA := []models.ExtractedClaim{{SourceArticleID: "a1", Kind: models.ClaimNumeric, NumericValue: &v1, Unit: "money"}}
	claimsB := []models.ExtractedClaim{{SourceArticleID: "b1", Kind: models.ClaimNumeric, NumericValue: &v2, Unit: "money"}}

	other := models.Article{ID: "b1", Source: "daily_news", Title: "Flood damage estimated", Body: "Flood damage estimated at significant cost to infrastructure nationwide today.", PublishedAt: now}
	e.AddToCache(other, claimsB)

	target := models.Article{ID: "a1", Source: "daily_mirror", Title: "Flood damage estimated", Body: "Flood damage estimated at significant cost to infrastructure nationwide today.", PublishedAt: now.Add(time.Minute)}
	result, err := e.Find(ctx, target, claimsA)
	require.NoError(t, err)
	assert.Equal(t, models.LevelConflicting, result.Level)
	require.Len(t, result.Conflicts, 1)
	assert.InDelta(t, 0.5, result.Conflicts[0].RelativeDiff, 0.001)
}

func TestFind_SameSourceNeverCorroboratesItself(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	now := time.Now()

	body := "Parliament passed the new tax bill after a lengthy debate this afternoon."
	e.AddToCache(models.Article{ID: "p1", Source: "daily_mirror", Title: "Tax bill passed", Body: body, PublishedAt: now}, nil)

	target := models.Article{ID: "p2", Source: "daily_mirror", Title: "Tax bill passed", Body: body, PublishedAt: now.Add(time.Minute)}
	result, err := e.Find(ctx, target, nil)
	require.NoError(t, err)
	assert.Equal(t, models.LevelNone, result.Level)
}

func TestFind_RecordsPairStatsWhenAttached(t *testing.T) {
	e := newTestEngine(t)
	pairStats := reputation.NewPairStats()
	e.SetPairStats(pairStats)
	ctx := context.Background()
	now := time.Now()

	body := "The central bank announced inflation rose to 8 percent this quarter amid rising food prices nationwide."
	e.AddToCache(models.Article{ID: "reuters-art", Source: "reuters", Title: "Inflation rises to 8 percent", Body: body, PublishedAt: now}, nil)

	target := models.Article{ID: "target", Source: "economynext", Title: "Inflation rises to 8 percent", Body: body, PublishedAt: now.Add(time.Minute)}
	_, err := e.Find(ctx, target, nil)
	require.NoError(t, err)

	affinity := pairStats.SourceAffinity("economynext")
	require.Len(t, affinity, 1)
	assert.Equal(t, 1, affinity[0].Corroborations)
}

func TestFind_CachesResultForOneHour(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	article := models.Article{ID: "c1", Source: "daily_mirror", Title: "Road closed", Body: "A major road was closed for repairs this week.", PublishedAt: time.Now()}
	first, err := e.Find(ctx, article, nil)
	require.NoError(t, err)

	second, err := e.Find(ctx, article, nil)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
