package metavis

import "github.com/kaw393939/metavis/internal/app/config"

// Config re-exports the root configuration struct so embedders can construct
// or modify it programmatically.
type Config = config.Config

type (
	// LogConfig locates the event log and the repository root.
	LogConfig = config.LogConfig
	// IndexConfig locates the cumulative run index.
	IndexConfig = config.IndexConfig
	// HistoryConfig configures the optional relational run mirror.
	HistoryConfig = config.HistoryConfig
	// MetricsConfig configures metrics exposure.
	MetricsConfig = config.MetricsConfig
	// WatchConfig tunes how long the log must stay quiet before a re-run.
	WatchConfig = config.WatchConfig
	// LoggingConfig tunes log level and encoding.
	LoggingConfig = config.LoggingConfig
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return config.Default()
}
