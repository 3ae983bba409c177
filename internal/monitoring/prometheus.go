// Package monitoring exposes the Prometheus metrics the validation pipeline
// emits: per-stage duration, reputation mutations, cache hit/miss, the
// external similarity provider's latency, and insights emitted by severity.
//
// Usage:
//
//	router := gin.New()
//	monitoring.SetupPrometheusMetrics(router)
//
//	start := time.Now()
//	// ... run a pipeline stage ...
//	monitoring.RecordStageDuration("corroboration", time.Since(start), true)
package monitoring

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsvalidator_pipeline_stage_duration_seconds",
			Help:    "Duration of a single validation pipeline stage for one article",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage", "outcome"},
	)

	articlesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsvalidator_articles_processed_total",
			Help: "Total number of articles that completed the validation pipeline",
		},
		[]string{"outcome"},
	)

	reputationMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsvalidator_reputation_mutations_total",
			Help: "Total number of source reputation adjustments",
		},
		[]string{"kind"}, // confirmation | contradiction | correction
	)

	cacheOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsvalidator_cache_operations_total",
			Help: "Total number of results-cache operations",
		},
		[]string{"operation", "result"},
	)

	similarityProviderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsvalidator_similarity_provider_duration_seconds",
			Help:    "Duration of calls to the external similarity provider",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "outcome"},
	)

	corroborationLevelTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsvalidator_corroboration_level_total",
			Help: "Total number of claims resolved to each corroboration level",
		},
		[]string{"level"}, // strong | moderate | weak | none
	)

	insightsEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsvalidator_insights_emitted_total",
			Help: "Total number of risk/opportunity insights emitted",
		},
		[]string{"severity", "kind"}, // kind: risk | opportunity
	)

	degradedRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsvalidator_degraded_runs_total",
			Help: "Total number of pipeline runs that fell back to degraded mode",
		},
		[]string{"reason"},
	)
)

// SetupPrometheusMetrics registers all collectors on the default registry
// and mounts /metrics on router.
func SetupPrometheusMetrics(router gin.IRoutes) {
	_ = prometheus.Register(stageDuration)
	_ = prometheus.Register(articlesProcessedTotal)
	_ = prometheus.Register(reputationMutationsTotal)
	_ = prometheus.Register(cacheOperationsTotal)
	_ = prometheus.Register(similarityProviderDuration)
	_ = prometheus.Register(corroborationLevelTotal)
	_ = prometheus.Register(insightsEmittedTotal)
	_ = prometheus.Register(degradedRunsTotal)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RecordStageDuration records how long a named pipeline stage took for one article.
func RecordStageDuration(stage string, duration time.Duration, success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	stageDuration.WithLabelValues(stage, outcome).Observe(duration.Seconds())
}

// RecordArticleProcessed increments the processed-article counter.
func RecordArticleProcessed(outcome string) {
	articlesProcessedTotal.WithLabelValues(outcome).Inc()
}

// RecordReputationMutation records a source reputation adjustment.
func RecordReputationMutation(kind string) {
	reputationMutationsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheOperation records a results-cache operation outcome.
func RecordCacheOperation(operation, result string) {
	cacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordSimilarityProviderCall records latency of a call to the external
// similarity provider (Weaviate), per spec.md §6.
func RecordSimilarityProviderCall(operation string, duration time.Duration, success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	similarityProviderDuration.WithLabelValues(operation, outcome).Observe(duration.Seconds())
}

// RecordCorroborationLevel records the corroboration level a claim resolved to.
func RecordCorroborationLevel(level string) {
	corroborationLevelTotal.WithLabelValues(level).Inc()
}

// RecordInsightEmitted records an emitted risk/opportunity insight.
func RecordInsightEmitted(severity, kind string) {
	insightsEmittedTotal.WithLabelValues(severity, kind).Inc()
}

// RecordDegradedRun records a pipeline run that fell back to degraded mode
// (spec.md §7's Degraded kind), tagged with the reason it degraded.
func RecordDegradedRun(reason string) {
	degradedRunsTotal.WithLabelValues(reason).Inc()
}
