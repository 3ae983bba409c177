package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration with priority order:
// 1. Environment variables
// 2. Configuration file (config.yaml)
// 3. Default values
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/newsvalidator/")
	v.AddConfigPath("./configs/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	overrideWithEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")

	v.SetDefault("ingestion.mongo_url", "mongodb://localhost:27017")
	v.SetDefault("ingestion.mongo_db_name", "newsvalidator")

	v.SetDefault("insight_store.postgres_url", "postgres://localhost:5432/newsvalidator?sslmode=disable")

	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.nodes", []string{"localhost:6379"})
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl_sec", 3600)

	v.SetDefault("weaviate.enabled", false)
	v.SetDefault("weaviate.scheme", "http")
	v.SetDefault("weaviate.host", "localhost")
	v.SetDefault("weaviate.port", 8080)
	v.SetDefault("weaviate.use_official", true)

	v.SetDefault("pipeline.max_workers", runtime.NumCPU())
	v.SetDefault("pipeline.article_deadline", "30s")
	v.SetDefault("pipeline.stage_queue_capacity", 256)
	v.SetDefault("pipeline.corroboration_window", "72h")
	v.SetDefault("pipeline.reputation_half_life_days", 90.0)

	v.SetDefault("monitoring.enabled", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.prometheus_enabled", true)
	v.SetDefault("monitoring.tracing_enabled", false)

	v.SetDefault("rules.overlay_path", "./configs/rules.yaml")
	v.SetDefault("rules.trust_cache_ttl_sec", 3600)
	v.SetDefault("rules.corroboration_strong", 0.85)
	v.SetDefault("rules.corroboration_moderate", 0.70)
	v.SetDefault("rules.corroboration_weak", 0.55)
}

// overrideWithEnvVars wires the exact environment variable names from
// spec.md §6, which do not follow the dotted-path convention (for example
// INGESTION_MONGO_URL) viper's AutomaticEnv would otherwise expect.
func overrideWithEnvVars(v *viper.Viper) {
	if s := os.Getenv("MONGODB_URL"); s != "" {
		v.Set("ingestion.mongo_url", s)
	}
	if s := os.Getenv("MONGODB_DB_NAME"); s != "" {
		v.Set("ingestion.mongo_db_name", s)
	}
	if s := os.Getenv("POSTGRES_URL"); s != "" {
		v.Set("insight_store.postgres_url", s)
	}
	if s := os.Getenv("SIMILARITY_PROVIDER_URL"); s != "" {
		v.Set("weaviate.provider_url", s)
		v.Set("weaviate.enabled", true)
	}
	if s := os.Getenv("CORROBORATION_WINDOW_HOURS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			v.Set("pipeline.corroboration_window", fmt.Sprintf("%dh", n))
		}
	}
	if s := os.Getenv("TRUST_CACHE_TTL_SEC"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			v.Set("rules.trust_cache_ttl_sec", n)
			v.Set("cache.ttl_sec", n)
		}
	}
	if s := os.Getenv("REPUTATION_HALF_LIFE_DAYS"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			v.Set("pipeline.reputation_half_life_days", f)
		}
	}
	if s := os.Getenv("MAX_PIPELINE_WORKERS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			v.Set("pipeline.max_workers", n)
		}
	}
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		v.Set("log_level", s)
	}
	if s := os.Getenv("WEAVIATE_HOST"); s != "" {
		v.Set("weaviate.host", s)
		v.Set("weaviate.enabled", true)
	}
	if s := os.Getenv("WEAVIATE_PORT"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			v.Set("weaviate.port", n)
		}
	}
	if s := os.Getenv("WEAVIATE_SCHEME"); s != "" {
		v.Set("weaviate.scheme", s)
	}
	if s := os.Getenv("WEAVIATE_API_KEY"); s != "" {
		v.Set("weaviate.api_key", s)
	}
	if s := os.Getenv("REDIS_ADDR"); s != "" {
		v.Set("cache.addr", s)
		v.Set("cache.nodes", strings.Split(s, ","))
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", cfg.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !contains(validLogLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validEnvironments := []string{"development", "staging", "production", "test"}
	if !contains(validEnvironments, cfg.Environment) {
		return fmt.Errorf("invalid environment: %s", cfg.Environment)
	}

	if cfg.Ingestion.MongoURL == "" {
		return fmt.Errorf("MONGODB_URL is required")
	}
	if cfg.InsightStore.PostgresURL == "" {
		return fmt.Errorf("POSTGRES_URL is required")
	}
	if cfg.Pipeline.MaxWorkers < 1 {
		return fmt.Errorf("pipeline.max_workers must be at least 1")
	}
	if cfg.Pipeline.ArticleDeadline <= 0 {
		return fmt.Errorf("pipeline.article_deadline must be positive")
	}
	if cfg.Pipeline.ReputationHalfLifeDays <= 0 {
		return fmt.Errorf("pipeline.reputation_half_life_days must be positive")
	}
	if cfg.Rules.CorroborationStrong <= cfg.Rules.CorroborationModerate ||
		cfg.Rules.CorroborationModerate <= cfg.Rules.CorroborationWeak {
		return fmt.Errorf("corroboration thresholds must be strictly descending: strong > moderate > weak")
	}

	return nil
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
