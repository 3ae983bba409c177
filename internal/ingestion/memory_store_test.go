package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawArticle(id string, quality float64, clean bool, published time.Time) RawArticle {
	r := RawArticle{ArticleID: id, SourceName: "Reuters"}
	r.Quality.CredibilityScore = quality
	r.Quality.IsClean = clean
	r.Extraction.PublishTimestamp = published
	r.Content.TitleOriginal = "title-" + id
	return r
}

func TestMemoryStore_FetchUnprocessedFiltersQualityAndProcessedState(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	s.Seed(
		rawArticle("a1", 0.9, true, now.Add(-2*time.Hour)),
		rawArticle("a2", 0.2, true, now.Add(-1*time.Hour)),
		rawArticle("a3", 0.9, false, now),
	)

	articles, err := s.FetchUnprocessed(ctx, 10, 0, 0.5)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "a1", articles[0].ID)
}

func TestMemoryStore_MarkProcessedExcludesFromFutureFetch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Seed(rawArticle("a1", 0.9, true, time.Now()))

	require.NoError(t, s.MarkProcessed(ctx, "a1", map[string]any{"trust_score": 80}))

	count, err := s.CountUnprocessed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryStore_FetchByIdsReturnsOnlyRequested(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Seed(rawArticle("a1", 0.9, true, time.Now()), rawArticle("a2", 0.9, true, time.Now()))

	articles, err := s.FetchByIds(ctx, []string{"a2", "missing"})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "a2", articles[0].ID)
}

func TestMemoryStore_FetchSinceExcludesOlderArticles(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	cutoff := time.Now()
	s.Seed(
		rawArticle("old", 0.9, true, cutoff.Add(-24*time.Hour)),
		rawArticle("new", 0.9, true, cutoff.Add(time.Hour)),
	)

	articles, err := s.FetchSince(ctx, cutoff, 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "new", articles[0].ID)
}
