package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerProvider manages the lifecycle of the OpenTelemetry tracer.
type TracerProvider struct {
	tp *sdktrace.TracerProvider
}

// PipelineTracer instruments the per-article validation pipeline span tree
// (extract -> corroborate -> trust -> reputation), per spec.md §5's 30s hard
// deadline and §2.5 of SPEC_FULL.md.
type PipelineTracer struct {
	tracer trace.Tracer
}

// NewTracerProvider creates a new OpenTelemetry tracer provider.
func NewTracerProvider(serviceName, serviceVersion, otlpEndpoint string) (*TracerProvider, error) {
	exporter, err := otlptracegrpc.New(
		context.Background(),
		otlptracegrpc.WithEndpoint(otlpEndpoint),
		otlptracegrpc.WithInsecure(), // TODO: Add TLS configuration
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(serviceVersion),
			semconv.ServiceNamespaceKey.String("newsvalidator"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()), // TODO: Configure sampling
	)

	otel.SetTracerProvider(tp)

	return &TracerProvider{tp: tp}, nil
}

// Shutdown gracefully shuts down the tracer provider.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	return tp.tp.Shutdown(ctx)
}

// NewPipelineTracer creates a new pipeline tracer.
func NewPipelineTracer(serviceName string) *PipelineTracer {
	tracer := otel.Tracer(serviceName)
	return &PipelineTracer{tracer: tracer}
}

// StartArticleSpan starts the root span for one article's trip through the
// validation pipeline.
func (pt *PipelineTracer) StartArticleSpan(ctx context.Context, articleID string) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "article_validation",
		trace.WithAttributes(
			attribute.String("article.id", articleID),
			attribute.String("component", "validator"),
		),
	)
	return ctx, span
}

// StartExtractionSpan starts a span for claim extraction.
func (pt *PipelineTracer) StartExtractionSpan(ctx context.Context, articleID string) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "claim_extraction",
		trace.WithAttributes(
			attribute.String("article.id", articleID),
			attribute.String("component", "claims"),
		),
	)
	return ctx, span
}

// StartCorroborationSpan starts a span for corroboration search against the
// 72h article window.
func (pt *PipelineTracer) StartCorroborationSpan(ctx context.Context, claimFingerprint string, windowHours int) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "corroboration_search",
		trace.WithAttributes(
			attribute.String("claim.fingerprint", claimFingerprint),
			attribute.Int("corroboration.window_hours", windowHours),
			attribute.String("component", "corroboration"),
		),
	)
	return ctx, span
}

// StartTrustCalculationSpan starts a span for trust score computation.
func (pt *PipelineTracer) StartTrustCalculationSpan(ctx context.Context, articleID string) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "trust_calculation",
		trace.WithAttributes(
			attribute.String("article.id", articleID),
			attribute.String("component", "trust"),
		),
	)
	return ctx, span
}

// StartReputationUpdateSpan starts a span for a source reputation mutation.
func (pt *PipelineTracer) StartReputationUpdateSpan(ctx context.Context, sourceID, kind string) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "reputation_update",
		trace.WithAttributes(
			attribute.String("source.id", sourceID),
			attribute.String("reputation.kind", kind),
			attribute.String("component", "reputation"),
		),
	)
	return ctx, span
}

// StartCacheOperationSpan starts a span for results-cache operations.
func (pt *PipelineTracer) StartCacheOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	ctx, span := pt.tracer.Start(ctx, "cache_operation",
		trace.WithAttributes(
			attribute.String("cache.operation", operation),
			attribute.String("cache.key", key),
			attribute.String("component", "cache"),
		),
	)
	return ctx, span
}

// RecordStageMetrics records duration and outcome on a stage span.
func (pt *PipelineTracer) RecordStageMetrics(span trace.Span, duration time.Duration, success bool) {
	span.SetAttributes(
		attribute.Int64("stage.duration_ms", duration.Milliseconds()),
		attribute.Bool("stage.success", success),
	)
	if !success {
		span.SetStatus(codes.Error, "pipeline stage failed")
	}
}

// RecordDegraded marks a span as having completed in degraded mode
// (spec.md §7's Degraded kind) rather than as a hard failure.
func (pt *PipelineTracer) RecordDegraded(span trace.Span, reason string) {
	span.SetAttributes(attribute.String("stage.degraded_reason", reason))
	span.SetStatus(codes.Ok, "degraded")
}

// RecordError records an error on a span.
func (pt *PipelineTracer) RecordError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attrs...)
	span.RecordError(err)
}
