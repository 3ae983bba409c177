package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/api"
	"github.com/platformbuilds/newsvalidator-core/internal/api/stream"
	"github.com/platformbuilds/newsvalidator-core/internal/claims"
	"github.com/platformbuilds/newsvalidator-core/internal/config"
	"github.com/platformbuilds/newsvalidator-core/internal/correlation"
	"github.com/platformbuilds/newsvalidator-core/internal/corroboration"
	"github.com/platformbuilds/newsvalidator-core/internal/indicators"
	"github.com/platformbuilds/newsvalidator-core/internal/ingestion"
	"github.com/platformbuilds/newsvalidator-core/internal/pipeline"
	"github.com/platformbuilds/newsvalidator-core/internal/reputation"
	"github.com/platformbuilds/newsvalidator-core/internal/similarity"
	"github.com/platformbuilds/newsvalidator-core/internal/storage/weaviate"
	"github.com/platformbuilds/newsvalidator-core/internal/store"
	"github.com/platformbuilds/newsvalidator-core/internal/tracing"
	"github.com/platformbuilds/newsvalidator-core/internal/trust"
	"github.com/platformbuilds/newsvalidator-core/internal/validator"
	"github.com/platformbuilds/newsvalidator-core/pkg/cache"
	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Error("failed to load configuration", "error", err)
		os.Exit(int(config.ExitConfigurationError))
	}

	log := logger.New(cfg.LogLevel)
	log.Info("starting newsvalidator-core", "environment", cfg.Environment, "port", cfg.Port)

	if cfg.Monitoring.TracingEnabled {
		tp, err := tracing.NewTracerProvider("newsvalidator-core", "v1", cfg.Monitoring.OTLPEndpoint)
		if err != nil {
			log.Warn("tracing disabled: failed to start tracer provider", "error", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tp.Shutdown(ctx)
			}()
		}
	}

	resultCache, err := cache.NewValkeySingle(cfg.Cache.Addr, cfg.Cache.DB, cfg.Cache.Password, time.Duration(cfg.Cache.TTLSec)*time.Second)
	if err != nil {
		log.Warn("results cache unavailable; starting with in-memory noop cache", "error", err)
		resultCache = cache.NewNoopValkeyCache(log)
	} else {
		log.Info("results cache initialized", "addr", cfg.Cache.Addr)
	}

	// Reputation tracker is the hub every scoring component reads from;
	// PairStats is an informational companion, not wired into scoring
	// (spec.md §5's supplemented validation-network stats).
	tracker := reputation.NewTracker(log)
	pairStats := reputation.NewPairStats()

	var similarityProvider similarity.Provider
	if cfg.Weaviate.Enabled {
		transport, err := weaviate.NewTransportFromConfig(cfg.Weaviate, log)
		if err != nil {
			log.Warn("similarity provider disabled: failed to build weaviate transport", "error", err)
		} else {
			similarityProvider = similarity.NewWeaviateProvider(transport, log)
			log.Info("similarity provider initialized", "host", cfg.Weaviate.Host)
		}
	}

	extractor := claims.NewExtractor()
	corroborationEngine, err := corroboration.NewEngine(similarityProvider, tracker, log)
	if err != nil {
		log.Fatal("failed to initialize corroboration engine", "error", err)
	}
	corroborationEngine.SetPairStats(pairStats)
	trustCalc := trust.NewCalculator(tracker)
	articleValidator := validator.New(tracker, extractor, corroborationEngine, trustCalc, resultCache, log)

	ingestionStore := ingestion.NewMemoryStore()
	insightStore := store.NewMemoryStore()
	resultsCache := store.NewResultsCache(resultCache, insightStore)

	projector := indicators.NewProjector(indicators.DefaultCatalogue())
	analyzer := correlation.NewAnalyzer()

	articlePipeline := pipeline.NewArticlePipeline(ingestionStore, articleValidator, cfg.Pipeline.MaxWorkers, log)

	// InsightPipeline (projector, analyzer, insightStore above) runs per
	// company against the external Layer-2 national-indicator feed
	// (spec.md §1 treats that feed as an external collaborator); it has no
	// fixed cadence here and is constructed and invoked directly by
	// whichever process receives that feed's snapshots.

	hub := stream.NewHub(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	go runArticlePipelineLoop(ctx, articlePipeline, log)

	router := api.NewRouter(insightStore, resultsCache, resultCache, hub, log)
	httpServer := &http.Server{
		Addr:    portAddr(cfg.Port),
		Handler: router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("shutdown signal received")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("http server listening", "addr", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", "error", err)
	}

	log.Info("newsvalidator-core shutdown complete")
}

// runArticlePipelineLoop drains the ingestion boundary on a fixed interval.
// A production deployment would trigger this from the upstream cleaning
// stage's own cadence; absent that signal here, polling is the simplest
// correct stand-in (spec.md §1 treats the upstream stage as external).
func runArticlePipelineLoop(ctx context.Context, p *pipeline.ArticlePipeline, log logger.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			results, err := p.Run(ctx, 100, 0.5)
			if err != nil {
				log.Error("article pipeline run failed", "error", err)
				continue
			}
			if len(results) > 0 {
				log.Info("article pipeline batch processed", "count", len(results))
			}
		}
	}
}

func portAddr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return fmt.Sprintf(":%d", port)
}
