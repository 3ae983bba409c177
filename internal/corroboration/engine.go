// Package corroboration finds, for a given article, the other-source
// coverage that confirms or conflicts with it (spec.md §4.3). It asks an
// injected similarity.Provider for candidates first; when there is no
// provider, the provider fails, or it finds nothing, it scans its own
// article cache after narrowing candidates with an in-memory bleve index.
package corroboration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/monitoring"
	"github.com/platformbuilds/newsvalidator-core/internal/reputation"
	"github.com/platformbuilds/newsvalidator-core/internal/similarity"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// Similarity thresholds (spec.md §4.3).
const (
	strongSimilarity   = 0.85
	moderateSimilarity = 0.70
	weakSimilarity     = 0.55
)

// Scoring constants (spec.md §4.3 step 6).
const (
	baseScore           = 30.0
	perSourceBonus      = 15.0
	tier1Bonus          = 10.0
	officialBonus       = 20.0
	firstToReportBonus  = 5.0
	conflictPenalty     = 25.0
	maxValueRelativeDiff = 0.2
)

type bleveDoc struct {
	Text string
}

// Engine finds corroborating and conflicting coverage for articles across
// sources. It is safe for concurrent use: Find and AddToCache both hold
// the engine's lock only for the duration of their cache/index mutation,
// matching the pipeline's suspension points around similarity-provider
// calls (spec.md §5).
type Engine struct {
	mu sync.RWMutex

	articles map[string]*cachedArticle
	results  map[string]*models.CorroborationResult
	index    bleve.Index

	provider  similarity.Provider
	tracker   *reputation.Tracker
	pairStats *reputation.PairStats
	logger    logger.Logger
}

// NewEngine constructs a corroboration engine. provider may be nil, in
// which case every lookup falls back to the in-process cache scan.
func NewEngine(provider similarity.Provider, tracker *reputation.Tracker, log logger.Logger) (*Engine, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("build candidate index: %w", err)
	}
	return &Engine{
		articles: make(map[string]*cachedArticle),
		results:  make(map[string]*models.CorroborationResult),
		index:    idx,
		provider: provider,
		tracker:  tracker,
		logger:   log,
	}, nil
}

// SetPairStats attaches an informational per-source-pair corroboration/
// conflict tracker (spec.md §5's supplemented validation-network stats).
// It is consulted only by reputation.PairStats.SourceAffinity and never
// feeds trust scoring; leaving it unset (the default) simply skips that
// bookkeeping.
func (e *Engine) SetPairStats(p *reputation.PairStats) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pairStats = p
}

// AddToCache records an article (and its extracted claims) so later
// lookups for other articles can consider it a candidate corroborator.
// Idempotent: re-adding an already-cached article id is a no-op.
func (e *Engine) AddToCache(article models.Article, claims []models.ExtractedClaim) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addToCacheLocked(article, claims)
	e.cleanupLocked()
}

func (e *Engine) addToCacheLocked(article models.Article, claims []models.ExtractedClaim) {
	if _, ok := e.articles[article.ID]; ok {
		return
	}
	cached := &cachedArticle{
		ArticleID:   article.ID,
		SourceID:    article.Source,
		Title:       article.Title,
		Content:     article.Body,
		PublishedAt: article.PublishedAt,
		Claims:      claims,
		CachedAt:    time.Now(),
	}
	e.articles[article.ID] = cached

	if err := e.index.Index(article.ID, bleveDoc{Text: article.Title + " " + article.Body}); err != nil && e.logger != nil {
		e.logger.Warn("corroboration candidate index failed", "article_id", article.ID, "error", err)
	}
}

// cleanupLocked drops cache entries older than twice the corroboration
// window (spec.md §4.3), along with their index entries and any stale
// result cached for them.
func (e *Engine) cleanupLocked() {
	cutoff := time.Now().Add(-2 * corroborationWindow)
	for id, a := range e.articles {
		if a.CachedAt.Before(cutoff) {
			delete(e.articles, id)
			delete(e.results, id)
			_ = e.index.Delete(id)
		}
	}
}

// Find runs the full corroboration analysis for an article: steps 1-7 of
// spec.md §4.3. It never returns an error from data-quality gaps — a
// similarity-provider failure just degrades to the cache-scan fallback —
// but does propagate ctx cancellation.
func (e *Engine) Find(ctx context.Context, article models.Article, claims []models.ExtractedClaim) (*models.CorroborationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.addToCacheLocked(article, claims)
	if cached, ok := e.results[article.ID]; ok && time.Since(cached.AnalyzedAt) < resultFreshness {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	similar := e.findSimilarArticles(ctx, article)

	var corroborators []models.SimilarArticle
	var conflicts []models.Conflict
	sourcesSeen := make(map[string]struct{})
	tiersSeen := make(map[models.SourceTier]struct{})
	earliest := article.PublishedAt

	for _, sim := range similar {
		e.mu.RLock()
		other, ok := e.articles[sim.ArticleID]
		e.mu.RUnlock()
		if !ok {
			continue
		}
		if models.NormalizeSourceID(other.SourceID) == models.NormalizeSourceID(article.Source) {
			continue
		}
		if gap := other.PublishedAt.Sub(article.PublishedAt); gap > corroborationWindow || gap < -corroborationWindow {
			continue
		}

		tier := models.TierUnknown
		if e.tracker != nil {
			tier = e.tracker.Tier(other.SourceID)
		}

		if conflict := checkConflict(claims, other.Claims); conflict != nil {
			conflict.ArticleID = sim.ArticleID
			conflict.SourceID = other.SourceID
			conflict.Tier = tier
			conflicts = append(conflicts, *conflict)
			if e.pairStats != nil {
				e.pairStats.RecordConflict(article.Source, other.SourceID)
			}
			continue
		}

		corroborators = append(corroborators, models.SimilarArticle{
			ArticleID:   sim.ArticleID,
			SourceID:    other.SourceID,
			Tier:        tier,
			PublishedAt: other.PublishedAt,
			Similarity:  sim.Similarity,
		})
		if e.pairStats != nil {
			e.pairStats.RecordCorroboration(article.Source, other.SourceID)
		}
		sourcesSeen[other.SourceID] = struct{}{}
		tiersSeen[tier] = struct{}{}
		if other.PublishedAt.Before(earliest) {
			earliest = other.PublishedAt
		}
	}

	level := determineLevel(len(corroborators), len(conflicts), tiersSeen)
	isFirst := !article.PublishedAt.After(earliest)
	score := calculateScore(corroborators, conflicts, isFirst)

	tiers := make([]models.SourceTier, 0, len(tiersSeen))
	for t := range tiersSeen {
		tiers = append(tiers, t)
	}

	result := &models.CorroborationResult{
		Level:             level,
		Score:             score,
		Corroborators:     corroborators,
		Conflicts:         conflicts,
		UniqueSourceCount: len(sourcesSeen),
		TiersRepresented:  tiers,
		EarliestReportAt:  earliest,
		IsFirstToReport:   isFirst,
		AnalyzedAt:        time.Now(),
	}

	e.mu.Lock()
	e.results[article.ID] = result
	e.mu.Unlock()

	monitoring.RecordCorroborationLevel(string(level))
	return result, nil
}

type similarArticleCandidate struct {
	ArticleID  string
	Similarity float64
}

// findSimilarArticles tries the injected provider first; any error
// (including "no provider configured") falls back to the cache scan
// (spec.md §4.3 step 3).
func (e *Engine) findSimilarArticles(ctx context.Context, article models.Article) []similarArticleCandidate {
	if e.provider != nil {
		dups, err := e.provider.FindDuplicates(ctx, article.ID, article.Title, article.Body, weakSimilarity)
		if err == nil {
			candidates := make([]similarArticleCandidate, 0, len(dups))
			for _, d := range dups {
				candidates = append(candidates, similarArticleCandidate{ArticleID: d.DuplicateID, Similarity: d.SimilarityScore})
			}
			if len(candidates) > 0 {
				return candidates
			}
		} else if e.logger != nil {
			e.logger.Warn("similarity provider failed, falling back to cache scan", "error", err)
		}
	}
	return e.findSimilarFromCache(article)
}

// findSimilarFromCache narrows candidates with the bleve index, then
// scores each narrowed candidate with the spec's exact weighted Jaccard
// formula, keeping the top 10 at or above the weak threshold.
func (e *Engine) findSimilarFromCache(article models.Article) []similarArticleCandidate {
	e.mu.RLock()
	defer e.mu.RUnlock()

	candidateIDs := e.narrowCandidatesLocked(article)

	titleWords := wordSet(article.Title)
	contentWords := wordSet(firstNWords(article.Body, 100))

	var scored []similarArticleCandidate
	for _, id := range candidateIDs {
		if id == article.ID {
			continue
		}
		cached, ok := e.articles[id]
		if !ok {
			continue
		}
		titleSim := jaccard(titleWords, wordSet(cached.Title))
		contentSim := jaccard(contentWords, wordSet(firstNWords(cached.Content, 100)))
		score := 0.4*titleSim + 0.6*contentSim
		if score >= weakSimilarity {
			scored = append(scored, similarArticleCandidate{ArticleID: id, Similarity: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Similarity > scored[j].Similarity })
	if len(scored) > 10 {
		scored = scored[:10]
	}
	return scored
}

// narrowCandidatesLocked asks the bleve index for the articles most
// textually similar to this one, to avoid an O(n) exact-Jaccard scan over
// every cached article. Falls back to scanning the whole cache if the
// index query fails.
func (e *Engine) narrowCandidatesLocked(article models.Article) []string {
	q := bleve.NewMatchQuery(article.Title + " " + article.Body)
	req := bleve.NewSearchRequest(q)
	req.Size = 30

	result, err := e.index.Search(req)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("candidate index search failed, scanning full cache", "error", err)
		}
		ids := make([]string, 0, len(e.articles))
		for id := range e.articles {
			ids = append(ids, id)
		}
		return ids
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids
}

// checkConflict looks for a numeric claim pair sharing a unit whose values
// differ by more than 20% (spec.md §4.3 step 4).
func checkConflict(a, b []models.ExtractedClaim) *models.Conflict {
	for _, c1 := range a {
		if c1.Kind != models.ClaimNumeric || c1.NumericValue == nil {
			continue
		}
		for _, c2 := range b {
			if c2.Kind != models.ClaimNumeric || c2.NumericValue == nil {
				continue
			}
			if c1.Unit != c2.Unit {
				continue
			}
			v1, v2 := *c1.NumericValue, *c2.NumericValue
			maxAbs := absFloat(v1)
			if o := absFloat(v2); o > maxAbs {
				maxAbs = o
			}
			if maxAbs == 0 {
				continue
			}
			diff := absFloat(v1-v2) / maxAbs
			if diff > maxValueRelativeDiff {
				return &models.Conflict{
					Unit:         c1.Unit,
					ValueA:       v1,
					ValueB:       v2,
					RelativeDiff: diff,
				}
			}
		}
	}
	return nil
}

func determineLevel(corroboratingCount, conflictingCount int, tiers map[models.SourceTier]struct{}) models.CorroborationLevel {
	if conflictingCount > corroboratingCount {
		return models.LevelConflicting
	}
	_, hasOfficial := tiers[models.TierOfficial]
	_, hasTier1 := tiers[models.Tier1]

	switch {
	case corroboratingCount >= 3 || hasOfficial:
		return models.LevelStrong
	case corroboratingCount >= 2 || hasTier1:
		return models.LevelModerate
	case corroboratingCount >= 1:
		return models.LevelWeak
	default:
		return models.LevelNone
	}
}

func calculateScore(corroborators []models.SimilarArticle, conflicts []models.Conflict, isFirstToReport bool) float64 {
	score := baseScore
	for _, a := range corroborators {
		score += perSourceBonus
		switch a.Tier {
		case models.TierOfficial:
			score += officialBonus
		case models.Tier1:
			score += tier1Bonus
		}
	}
	if isFirstToReport && len(corroborators) > 0 {
		score += firstToReportBonus
	}
	score -= conflictPenalty * float64(len(conflicts))

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
