package similarity

import (
	"context"
	"fmt"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/monitoring"
	"github.com/platformbuilds/newsvalidator-core/internal/storage/weaviate"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// WeaviateProvider implements Provider by running a nearText search against
// the Article class (internal/storage/weaviate.ArticleClass) and indexing
// every article it is asked to remember. It never computes or caches a
// vector itself — that's Weaviate's job.
type WeaviateProvider struct {
	transport weaviate.Transport
	logger    logger.Logger
}

// NewWeaviateProvider wraps an already-constructed weaviate.Transport.
func NewWeaviateProvider(transport weaviate.Transport, log logger.Logger) *WeaviateProvider {
	return &WeaviateProvider{transport: transport, logger: log}
}

// Index upserts the article into the Article class so future FindDuplicates
// calls can match against it.
func (p *WeaviateProvider) Index(ctx context.Context, articleID, title, content, sourceID string) error {
	start := time.Now()
	err := p.transport.PutObject(ctx, "Article", articleID, map[string]any{
		"articleId":   articleID,
		"title":       title,
		"content":     content,
		"sourceId":    sourceID,
		"publishedAt": time.Now().UTC().Format(time.RFC3339),
	})
	monitoring.RecordSimilarityProviderCall("index", time.Since(start), err == nil)
	return err
}

// FindDuplicates runs a nearText search seeded with the query article's
// title+content and returns candidates at or above threshold.
func (p *WeaviateProvider) FindDuplicates(ctx context.Context, articleID, title, content string, threshold float64) ([]Duplicate, error) {
	start := time.Now()

	query := fmt.Sprintf(`{
  Get {
    Article(
      nearText: { concepts: [%q, %q] }
      limit: 10
    ) {
      articleId
      _additional { certainty id }
    }
  }
}`, title, content)

	var resp struct {
		Data struct {
			Get struct {
				Article []struct {
					ArticleID  string `json:"articleId"`
					Additional struct {
						Certainty float64 `json:"certainty"`
						ID        string  `json:"id"`
					} `json:"_additional"`
				} `json:"Article"`
			} `json:"Get"`
		} `json:"data"`
	}

	if err := p.transport.GraphQL(ctx, query, nil, &resp); err != nil {
		monitoring.RecordSimilarityProviderCall("find_duplicates", time.Since(start), false)
		return nil, fmt.Errorf("weaviate nearText search: %w", err)
	}
	monitoring.RecordSimilarityProviderCall("find_duplicates", time.Since(start), true)

	var out []Duplicate
	for _, a := range resp.Data.Get.Article {
		if a.ArticleID == "" || a.ArticleID == articleID {
			continue
		}
		if a.Additional.Certainty < threshold {
			continue
		}
		out = append(out, Duplicate{DuplicateID: a.ArticleID, SimilarityScore: a.Additional.Certainty})
	}
	return out, nil
}
