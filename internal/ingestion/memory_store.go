package ingestion

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// MemoryStore is a process-local reference implementation of Store, used in
// place of the real Mongo-backed article store the upstream cleaning
// pipeline owns (spec.md §1 descopes that schema and driver as an external
// system this service only pulls from).
type MemoryStore struct {
	mu         sync.RWMutex
	raw        map[string]RawArticle
	processed  map[string]map[string]any
}

// NewMemoryStore constructs an empty in-memory article store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		raw:       make(map[string]RawArticle),
		processed: make(map[string]map[string]any),
	}
}

// Seed loads articles into the store, as a stand-in for the upstream
// cleaning pipeline's writes.
func (s *MemoryStore) Seed(articles ...RawArticle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range articles {
		s.raw[a.ArticleID] = a
	}
}

func (s *MemoryStore) FetchUnprocessed(ctx context.Context, limit, skip int, minQuality float64) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []RawArticle
	for _, a := range s.raw {
		if _, done := s.processed[a.ArticleID]; done {
			continue
		}
		if !a.Quality.IsClean || a.Quality.CredibilityScore < minQuality {
			continue
		}
		candidates = append(candidates, a)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Extraction.PublishTimestamp.Before(candidates[j].Extraction.PublishTimestamp)
	})

	if skip > len(candidates) {
		skip = len(candidates)
	}
	candidates = candidates[skip:]
	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	return toArticles(candidates), nil
}

func (s *MemoryStore) FetchSince(ctx context.Context, since time.Time, limit int) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []RawArticle
	for _, a := range s.raw {
		if a.Quality.IsClean && !a.Extraction.PublishTimestamp.Before(since) {
			candidates = append(candidates, a)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Extraction.PublishTimestamp.Before(candidates[j].Extraction.PublishTimestamp)
	})
	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	return toArticles(candidates), nil
}

func (s *MemoryStore) FetchByIds(ctx context.Context, ids []string) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []RawArticle
	for _, id := range ids {
		if a, ok := s.raw[id]; ok {
			out = append(out, a)
		}
	}
	return toArticles(out), nil
}

func (s *MemoryStore) MarkProcessed(ctx context.Context, articleID string, resultBlob map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.raw[articleID]; !ok {
		return fmt.Errorf("mark processed: article %s not found", articleID)
	}
	s.processed[articleID] = resultBlob
	return nil
}

func (s *MemoryStore) CountUnprocessed(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for id, a := range s.raw {
		if _, done := s.processed[id]; !done && a.Quality.IsClean {
			count++
		}
	}
	return count, nil
}

func toArticles(raw []RawArticle) []models.Article {
	articles := make([]models.Article, 0, len(raw))
	for _, r := range raw {
		articles = append(articles, r.ToArticle())
	}
	return articles
}

var _ Store = (*MemoryStore)(nil)
