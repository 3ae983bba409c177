package config

// FeatureFlags gates optional pipeline stages by environment. Unlike the
// core Config, these are derived rather than independently configured, so
// environment-specific safety defaults can't be overridden by a stray env
// var.
type FeatureFlags struct {
	VectorSimilarity   bool // corroboration engine consults the weaviate-backed provider
	ScenarioSimulation bool // scenario simulator endpoint is exposed
	TrendForecasting   bool
	InsightStreaming   bool // websocket push of newly emitted insights
}

// GetFeatureFlags derives the active feature set for the process.
func (c *Config) GetFeatureFlags() *FeatureFlags {
	flags := &FeatureFlags{
		VectorSimilarity:   c.Weaviate.Enabled,
		ScenarioSimulation: true,
		TrendForecasting:   true,
		InsightStreaming:   true,
	}

	switch c.Environment {
	case "production":
		// unchanged: full feature set once weaviate is configured
	case "test":
		flags.VectorSimilarity = false
		flags.InsightStreaming = false
	}

	return flags
}
