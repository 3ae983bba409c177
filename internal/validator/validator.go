// Package validator orchestrates the per-article cross-source validation
// sequence (spec.md §4.5): reputation bookkeeping, claim extraction,
// corroboration lookup, trust scoring, and the confirmation/contradiction
// feedback loop back into source reputation.
package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/claims"
	"github.com/platformbuilds/newsvalidator-core/internal/corroboration"
	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/reputation"
	"github.com/platformbuilds/newsvalidator-core/internal/trust"
	"github.com/platformbuilds/newsvalidator-core/pkg/cache"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

const resultCacheTTL = time.Hour

// degradedReputationWeight is the fraction of raw reputation kept as the
// entire trust score when a step 2-5 failure forces a degraded result
// (spec.md §4.5).
const degradedReputationWeight = 0.3

// Validator ties together the reputation tracker, claim extractor,
// corroboration engine and trust calculator into the single per-article
// entry point the pipeline calls.
type Validator struct {
	tracker       *reputation.Tracker
	extractor     *claims.Extractor
	corroboration *corroboration.Engine
	trustCalc     *trust.Calculator
	resultCache   cache.ResultCache
	logger        logger.Logger
}

// New constructs a Validator. resultCache may be nil, in which case
// results are computed fresh on every call.
func New(tracker *reputation.Tracker, extractor *claims.Extractor, corr *corroboration.Engine, trustCalc *trust.Calculator, resultCache cache.ResultCache, log logger.Logger) *Validator {
	return &Validator{
		tracker:       tracker,
		extractor:     extractor,
		corroboration: corr,
		trustCalc:     trustCalc,
		resultCache:   resultCache,
		logger:        log,
	}
}

func resultCacheKey(articleID string) string {
	return "validation:" + articleID
}

// Validate runs the full sequence of spec.md §4.5 for one article. A
// failure in claim extraction, corroboration, or trust scoring (steps 2-5)
// never surfaces as an error: it degrades to a reputation-only result
// instead, since the pipeline's per-article deadline (spec.md §5) must
// always produce *some* trust verdict.
func (v *Validator) Validate(ctx context.Context, article models.Article) (*models.ValidationResult, error) {
	if cached := v.cachedResult(ctx, article.ID); cached != nil {
		return cached, nil
	}

	v.tracker.RecordArticle(article.Source)

	result, err := v.validateSteps(ctx, article)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("validation degraded", "article_id", article.ID, "error", err)
		}
		result = v.degradedResult(article, err)
	} else {
		v.applyFeedback(article, result)
	}

	v.cacheResult(ctx, article.ID, result)
	return result, nil
}

func (v *Validator) validateSteps(ctx context.Context, article models.Article) (*models.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled before validation: %w", err)
	}

	extracted := v.extractor.Extract(article)

	v.corroboration.AddToCache(article, extracted)
	cr, err := v.corroboration.Find(ctx, article, extracted)
	if err != nil {
		return nil, fmt.Errorf("corroboration lookup: %w", err)
	}

	ts := v.trustCalc.Calculate(article.Source, cr, article.PublishedAt)

	return &models.ValidationResult{
		Article:            article,
		Claims:             extracted,
		Corroboration:      cr,
		Trust:              ts,
		ReputationSnapshot: *v.tracker.Get(article.Source),
	}, nil
}

// applyFeedback closes the loop from corroboration back into reputation
// (spec.md §4.5 step 6). It is best-effort: any panic-worthy state here
// would only affect future scoring, never this article's own result, so
// it never returns an error.
func (v *Validator) applyFeedback(article models.Article, result *models.ValidationResult) {
	cr := result.Corroboration
	if cr == nil {
		return
	}

	if len(cr.Corroborators) > 0 {
		sources := make([]string, 0, len(cr.Corroborators))
		for _, c := range cr.Corroborators {
			sources = append(sources, c.SourceID)
		}
		v.tracker.RecordConfirmation(article.Source, sources, cr.IsFirstToReport)
	}

	if len(cr.Conflicts) > 0 {
		sources := make([]string, 0, len(cr.Conflicts))
		for _, c := range cr.Conflicts {
			sources = append(sources, c.SourceID)
		}
		v.tracker.RecordContradiction(article.Source, sources)
	}
}

// degradedResult produces the spec.md §4.5 fallback: trust derived only
// from reputation, scaled down, Unverified level, low confidence.
func (v *Validator) degradedResult(article models.Article, cause error) *models.ValidationResult {
	reputationScore := v.tracker.Score(article.Source)
	total := reputationScore * degradedReputationWeight

	reason := "validation failed"
	if cause != nil {
		reason = cause.Error()
	}

	return &models.ValidationResult{
		Article: article,
		Trust: models.TrustScore{
			Total:      total,
			Level:      models.TrustUnverified,
			Confidence: 0.3,
			Factors: []models.TrustFactor{
				{Name: models.FactorSourceReputation, Raw: reputationScore, Weight: degradedReputationWeight, Weighted: total},
			},
			Degraded:        true,
			DegradedFactors: []string{reason},
		},
		ReputationSnapshot: *v.tracker.Get(article.Source),
		Degraded:           true,
		DegradedReason:     reason,
	}
}

func (v *Validator) cachedResult(ctx context.Context, articleID string) *models.ValidationResult {
	if v.resultCache == nil {
		return nil
	}
	raw, err := v.resultCache.Get(ctx, resultCacheKey(articleID))
	if err != nil || raw == nil {
		return nil
	}
	var result models.ValidationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

func (v *Validator) cacheResult(ctx context.Context, articleID string, result *models.ValidationResult) {
	if v.resultCache == nil {
		return
	}
	if err := v.resultCache.Set(ctx, resultCacheKey(articleID), result, resultCacheTTL); err != nil && v.logger != nil {
		v.logger.Warn("failed to cache validation result", "article_id", articleID, "error", err)
	}
}
