package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Index   IndexConfig   `yaml:"index"`
	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

type LogConfig struct {
	Path     string `yaml:"path"`
	RepoRoot string `yaml:"repo_root"`
}

type IndexConfig struct {
	Dir string `yaml:"dir"`
}

// HistoryConfig points at the optional relational mirror of run records.
// An empty conn_string disables history entirely.
type HistoryConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

// MetricsConfig controls how Prometheus metrics leave the process: addr
// serves them over HTTP while watching, textfile snapshots them after a
// one-shot pass. Both are off when empty.
type MetricsConfig struct {
	Addr     string `yaml:"addr"`
	Textfile string `yaml:"textfile"`
}

type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Path == "" {
		c.Log.Path = "test_outputs/perf/perf.jsonl"
	}
	if c.Log.RepoRoot == "" {
		c.Log.RepoRoot = "."
	}
	if c.Index.Dir == "" {
		c.Index.Dir = "test_outputs/metrics"
	}
	if c.History.Table == "" {
		c.History.Table = "run_history"
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = "500ms"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of console, json", c.Logging.Format)
	}
	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("watch.debounce must be positive, got %s", c.Watch.Debounce)
	}
	return nil
}

// WatchDebounce returns the watch debounce window as a duration.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// HistoryEnabled reports whether run records should be mirrored to a database.
func (c *Config) HistoryEnabled() bool {
	return c.History.ConnString != ""
}
