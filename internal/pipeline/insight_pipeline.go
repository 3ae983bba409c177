package pipeline

import (
	"context"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/correlation"
	"github.com/platformbuilds/newsvalidator-core/internal/indicators"
	"github.com/platformbuilds/newsvalidator-core/internal/insight"
	"github.com/platformbuilds/newsvalidator-core/internal/models"
	"github.com/platformbuilds/newsvalidator-core/internal/store"
)

// InsightPipeline runs the indicator-projection → detection →
// recommendation → correlation sequence for one company's snapshot of
// Layer-2 national indicators (spec.md §4.6-§4.8). Unlike ArticlePipeline,
// this runs on the projector's own cadence (typically daily), not
// per-article, so it has no worker pool of its own.
type InsightPipeline struct {
	projector  *indicators.Projector
	analyzer   *correlation.Analyzer
	store      store.InsightStore
}

// NewInsightPipeline constructs an InsightPipeline from its component
// stages.
func NewInsightPipeline(projector *indicators.Projector, analyzer *correlation.Analyzer, insightStore store.InsightStore) *InsightPipeline {
	return &InsightPipeline{projector: projector, analyzer: analyzer, store: insightStore}
}

// RunResult is what one company's snapshot produced.
type RunResult struct {
	Indicators      models.OperationalIndicators
	Insights        []models.Insight
	Recommendations map[string][]models.Recommendation
}

// Run projects a company's indicator snapshot, detects risks/opportunities,
// generates recommendations, persists everything, and feeds the resulting
// category-health values into the correlation analyzer's time series for
// future correlation/lead-lag queries.
func (p *InsightPipeline) Run(ctx context.Context, profile models.CompanyProfile, snapshot map[string]indicators.Snapshot, now time.Time) (RunResult, error) {
	ops := p.projector.Project(profile, snapshot)

	values := make(map[string]float64, len(ops.CategoryHealth))
	for category, health := range ops.CategoryHealth {
		values[string(category)] = health
	}
	p.analyzer.AddDataPoint(profile.ID, now, values)

	detected := insight.Detect(ops, now)
	recs := make(map[string][]models.Recommendation, len(detected))

	for i := range detected {
		in := &detected[i]

		if err := p.store.UpsertInsight(ctx, *in); err != nil {
			return RunResult{}, err
		}

		generated := insight.GenerateRecommendations(*in)
		if err := p.store.StoreRecommendations(ctx, in.ID, generated); err != nil {
			return RunResult{}, err
		}
		recs[in.ID] = generated

		if err := p.store.RecordScoreHistory(ctx, profile.ID, in.Code, now, in.Scores.FinalScore); err != nil {
			return RunResult{}, err
		}
	}

	summary := map[string]any{
		"overall_health":    ops.OverallHealth,
		"insights_detected": len(detected),
		"critical_issues":   ops.CriticalIssues,
	}
	if err := p.store.RecordDailyTracking(ctx, profile.ID, now, summary); err != nil {
		return RunResult{}, err
	}

	return RunResult{Indicators: ops, Insights: detected, Recommendations: recs}, nil
}
