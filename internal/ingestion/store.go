// Package ingestion is the pull boundary onto the cleaned-articles store
// owned by the upstream collaborator: this service only reads from it
// (spec.md §6).
package ingestion

import (
	"context"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// Store is the pull interface the pipeline's ingestion stage consumes.
// FetchUnprocessed returns only articles that passed cleaning and have not
// yet been processed by this layer; FetchSince and FetchByIds do not filter
// on processed state, and FetchByIds does not filter on cleaning either.
type Store interface {
	FetchUnprocessed(ctx context.Context, limit, skip int, minQuality float64) ([]models.Article, error)
	FetchSince(ctx context.Context, since time.Time, limit int) ([]models.Article, error)
	FetchByIds(ctx context.Context, ids []string) ([]models.Article, error)
	MarkProcessed(ctx context.Context, articleID string, resultBlob map[string]any) error
	CountUnprocessed(ctx context.Context) (int, error)
}
