// Package pipeline is the worker pool that drives articles from the
// ingestion boundary through validation and into the insight store
// (spec.md §5): parallel workers, bounded per-stage queues, a per-article
// deadline, and cooperative cancellation at every suspension point.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/ingestion"
	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/validator"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// articleDeadline is the hard per-article validation deadline (spec.md §5);
// exceeding it still emits the degraded TrustScore from §4.5, it just means
// the worker stops waiting and moves on.
const articleDeadline = 30 * time.Second

// ArticleResult pairs a validated article with the outcome the caller's
// persistence stage is expected to record.
type ArticleResult struct {
	Article models.Article
	Result  *models.ValidationResult
	Err     error
}

// ArticlePipeline fans a batch of unprocessed articles out across a fixed
// worker pool, each worker running the full validate sequence under its own
// per-article deadline, and fans results back in through a bounded channel
// (capacity 2× worker count, per spec.md §5's suggested stage sizing).
type ArticlePipeline struct {
	store     ingestion.Store
	validator *validator.Validator
	workers   int
	logger    logger.Logger
}

// NewArticlePipeline constructs a pipeline with the given worker count. A
// non-positive count defaults to 4.
func NewArticlePipeline(store ingestion.Store, v *validator.Validator, workers int, log logger.Logger) *ArticlePipeline {
	if workers <= 0 {
		workers = 4
	}
	return &ArticlePipeline{store: store, validator: v, workers: workers, logger: log}
}

// Run pulls up to batchSize unprocessed articles above minQuality, validates
// them concurrently, marks each processed in the ingestion store, and
// returns every result (success or degraded) once the batch drains or ctx
// is cancelled. Cancellation abandons in-flight work at its next suspension
// point; results already produced are still returned.
func (p *ArticlePipeline) Run(ctx context.Context, batchSize int, minQuality float64) ([]ArticleResult, error) {
	articles, err := p.store.FetchUnprocessed(ctx, batchSize, 0, minQuality)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}

	queueCap := p.workers * 2
	work := make(chan models.Article, queueCap)
	results := make(chan ArticleResult, queueCap)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(ctx, work, results, &wg)
	}

	go func() {
		defer close(work)
		for _, a := range articles {
			select {
			case work <- a:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]ArticleResult, 0, len(articles))
	for r := range results {
		out = append(out, r)
		if r.Err == nil {
			blob := map[string]any{
				"trust_score": r.Result.Trust.Total,
				"trust_level": string(r.Result.Trust.Level),
				"degraded":    r.Result.Degraded,
			}
			if err := p.store.MarkProcessed(ctx, r.Article.ID, blob); err != nil && p.logger != nil {
				p.logger.Warn("mark processed failed", "article_id", r.Article.ID, "error", err)
			}
		}
	}
	return out, nil
}

func (p *ArticlePipeline) worker(ctx context.Context, work <-chan models.Article, results chan<- ArticleResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for article := range work {
		select {
		case <-ctx.Done():
			return
		default:
		}

		articleCtx, cancel := context.WithTimeout(ctx, articleDeadline)
		result, err := p.validator.Validate(articleCtx, article)
		cancel()

		results <- ArticleResult{Article: article, Result: result, Err: err}
	}
}
