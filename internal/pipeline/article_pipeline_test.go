package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/newsvalidator-core/internal/claims"
	"github.com/platformbuilds/newsvalidator-core/internal/corroboration"
	"github.com/platformbuilds/newsvalidator-core/internal/ingestion"
	"github.com/platformbuilds/newsvalidator-core/internal/reputation"
	"github.com/platformbuilds/newsvalidator-core/internal/trust"
	"github.com/platformbuilds/newsvalidator-core/internal/validator"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

func newTestValidator(t *testing.T) *validator.Validator {
	log := logger.New("error")
	tracker := reputation.NewTracker(log)
	extractor := claims.NewExtractor()
	corr, err := corroboration.NewEngine(nil, tracker, log)
	require.NoError(t, err)
	trustCalc := trust.NewCalculator(tracker)
	return validator.New(tracker, extractor, corr, trustCalc, nil, log)
}

func rawArticleFixture(id string) ingestion.RawArticle {
	r := ingestion.RawArticle{ArticleID: id, SourceName: "Reuters"}
	r.Quality.IsClean = true
	r.Quality.CredibilityScore = 0.8
	r.Extraction.PublishTimestamp = time.Now()
	r.Content.TitleOriginal = "Port congestion worsens in " + id
	r.Content.BodyOriginal = "Officials report significant delays at the main port."
	return r
}

func TestArticlePipeline_ProcessesBatchAndMarksProcessed(t *testing.T) {
	store := ingestion.NewMemoryStore()
	store.Seed(rawArticleFixture("a1"), rawArticleFixture("a2"), rawArticleFixture("a3"))

	p := NewArticlePipeline(store, newTestValidator(t), 2, logger.New("error"))
	results, err := p.Run(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	count, err := store.CountUnprocessed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestArticlePipeline_EmptyBatchReturnsNoResults(t *testing.T) {
	store := ingestion.NewMemoryStore()
	p := NewArticlePipeline(store, newTestValidator(t), 2, logger.New("error"))

	results, err := p.Run(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestArticlePipeline_CancelledContextStopsFetching(t *testing.T) {
	store := ingestion.NewMemoryStore()
	store.Seed(rawArticleFixture("a1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewArticlePipeline(store, newTestValidator(t), 2, logger.New("error"))
	results, err := p.Run(ctx, 10, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 1, "cancelled context must not process more than the single queued article")
}
