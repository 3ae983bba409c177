package config

import "time"

// Config is the single typed configuration record for the service. Every
// recognized input is enumerated here; there is no runtime-typed
// configuration surface beyond these fields.
type Config struct {
	Environment string `mapstructure:"environment" yaml:"environment"`
	Port        int    `mapstructure:"port" yaml:"port"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`

	Ingestion   IngestionConfig   `mapstructure:"ingestion" yaml:"ingestion"`
	InsightStore InsightStoreConfig `mapstructure:"insight_store" yaml:"insight_store"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Weaviate    WeaviateConfig    `mapstructure:"weaviate" yaml:"weaviate"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline" yaml:"pipeline"`
	Monitoring  MonitoringConfig  `mapstructure:"monitoring" yaml:"monitoring"`
	Rules       RulesConfig       `mapstructure:"rules" yaml:"rules"`
}

// IngestionConfig points at the Mongo-backed article/claim store owned by
// the upstream collaborator; this service only reads from it.
type IngestionConfig struct {
	MongoURL    string `mapstructure:"mongo_url" yaml:"mongo_url"`
	MongoDBName string `mapstructure:"mongo_db_name" yaml:"mongo_db_name"`
}

// InsightStoreConfig points at the Postgres-backed insight/recommendation
// store this service writes to.
type InsightStoreConfig struct {
	PostgresURL string `mapstructure:"postgres_url" yaml:"postgres_url"`
}

// CacheConfig configures the Redis-backed result cache (pkg/cache).
type CacheConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Nodes    []string `mapstructure:"nodes" yaml:"nodes"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	TTLSec   int    `mapstructure:"ttl_sec" yaml:"ttl_sec"` // default trust-score cache TTL
}

// WeaviateConfig holds connection details for the optional vector-similarity
// provider used for near-duplicate article detection.
type WeaviateConfig struct {
	Enabled     bool     `mapstructure:"enabled" yaml:"enabled"`
	Scheme      string   `mapstructure:"scheme" yaml:"scheme"`
	Host        string   `mapstructure:"host" yaml:"host"`
	Port        int      `mapstructure:"port" yaml:"port"`
	APIKey      string   `mapstructure:"api_key" yaml:"api_key"`
	Consistency string   `mapstructure:"consistency" yaml:"consistency"`
	UseOfficial bool     `mapstructure:"use_official" yaml:"use_official"`
	NestedKeys  []string `mapstructure:"nested_keys" yaml:"nested_keys"`
	ProviderURL string   `mapstructure:"provider_url" yaml:"provider_url"`
}

// PipelineConfig tunes the worker pool and per-article deadline.
type PipelineConfig struct {
	MaxWorkers             int           `mapstructure:"max_workers" yaml:"max_workers"`
	ArticleDeadline        time.Duration `mapstructure:"article_deadline" yaml:"article_deadline"`
	StageQueueCapacity     int           `mapstructure:"stage_queue_capacity" yaml:"stage_queue_capacity"`
	CorroborationWindow    time.Duration `mapstructure:"corroboration_window" yaml:"corroboration_window"`
	ReputationHalfLifeDays float64       `mapstructure:"reputation_half_life_days" yaml:"reputation_half_life_days"`
}

// MonitoringConfig mirrors the teacher's self-monitoring block.
type MonitoringConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	MetricsPath       string `mapstructure:"metrics_path" yaml:"metrics_path"`
	PrometheusEnabled bool   `mapstructure:"prometheus_enabled" yaml:"prometheus_enabled"`
	TracingEnabled    bool   `mapstructure:"tracing_enabled" yaml:"tracing_enabled"`
	OTLPEndpoint      string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
}

// RulesConfig holds the hot-reloadable detector thresholds. A separate
// overlay file (not the main config.yaml) is watched for changes so
// operators can retune detection sensitivity without a restart.
type RulesConfig struct {
	OverlayPath           string  `mapstructure:"overlay_path" yaml:"overlay_path"`
	TrustCacheTTLSec      int     `mapstructure:"trust_cache_ttl_sec" yaml:"trust_cache_ttl_sec"`
	CorroborationStrong   float64 `mapstructure:"corroboration_strong" yaml:"corroboration_strong"`
	CorroborationModerate float64 `mapstructure:"corroboration_moderate" yaml:"corroboration_moderate"`
	CorroborationWeak     float64 `mapstructure:"corroboration_weak" yaml:"corroboration_weak"`
}
