package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/pkg/cache"
)

// Cache TTLs for derived read paths that sit in front of the InsightStore
// (spec.md §6): trust scores change slowly, insight lists churn with every
// pipeline run, and narratives are regenerated only when an insight's score
// meaningfully moves.
const (
	trustScoreTTL = time.Hour
	insightListTTL = 15 * time.Minute
	narrativeTTL   = time.Hour
)

// ResultsCache is a read-through cache in front of an InsightStore for the
// three hot read paths the API surface serves most: trust scores, active
// insight lists, and rendered narratives.
type ResultsCache struct {
	cache cache.ResultCache
	store InsightStore
}

// NewResultsCache wraps store with a read-through cache backed by c.
func NewResultsCache(c cache.ResultCache, store InsightStore) *ResultsCache {
	return &ResultsCache{cache: c, store: store}
}

func trustScoreKey(companyID, sourceID string) string {
	return fmt.Sprintf("trust:%s:%s", companyID, sourceID)
}

func insightListKey(companyID, filterExpr string) string {
	return fmt.Sprintf("insights:%s:%s", companyID, filterExpr)
}

func narrativeKey(insightID string) string {
	return fmt.Sprintf("narrative:%s", insightID)
}

// CacheTrustScore stores a computed trust score under its 1h TTL.
func (r *ResultsCache) CacheTrustScore(ctx context.Context, companyID, sourceID string, score models.TrustScore) error {
	return r.setJSON(ctx, trustScoreKey(companyID, sourceID), score, trustScoreTTL)
}

// GetTrustScore returns a cached trust score, or false if absent/expired.
func (r *ResultsCache) GetTrustScore(ctx context.Context, companyID, sourceID string) (models.TrustScore, bool) {
	var score models.TrustScore
	ok := r.getJSON(ctx, trustScoreKey(companyID, sourceID), &score)
	return score, ok
}

// ListActive serves the active-insight list from cache when present,
// falling back to the durable store and populating the cache on miss.
func (r *ResultsCache) ListActive(ctx context.Context, companyID, filterExpr string) ([]models.Insight, error) {
	key := insightListKey(companyID, filterExpr)
	var cached []models.Insight
	if r.getJSON(ctx, key, &cached) {
		return cached, nil
	}

	insights, err := r.store.ListActive(ctx, companyID, filterExpr)
	if err != nil {
		return nil, err
	}
	_ = r.setJSON(ctx, key, insights, insightListTTL)
	return insights, nil
}

// InvalidateInsightLists drops a company's cached unfiltered list (the one
// stored under an empty filter expression). Called whenever an insight
// transitions state; lists cached under a non-empty filter expression are
// not dropped and expire with insightListTTL.
func (r *ResultsCache) InvalidateInsightLists(ctx context.Context, companyID string) error {
	return r.cache.Delete(ctx, insightListKey(companyID, ""))
}

// CacheNarrative stores a rendered narrative under its 1h TTL.
func (r *ResultsCache) CacheNarrative(ctx context.Context, insightID string, narrative models.Narrative) error {
	return r.setJSON(ctx, narrativeKey(insightID), narrative, narrativeTTL)
}

// GetNarrative returns a cached narrative, or false if absent/expired.
func (r *ResultsCache) GetNarrative(ctx context.Context, insightID string) (models.Narrative, bool) {
	var narrative models.Narrative
	ok := r.getJSON(ctx, narrativeKey(insightID), &narrative)
	return narrative, ok
}

func (r *ResultsCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	return r.cache.Set(ctx, key, b, ttl)
}

func (r *ResultsCache) getJSON(ctx context.Context, key string, dest any) bool {
	b, err := r.cache.Get(ctx, key)
	if err != nil || len(b) == 0 {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}
