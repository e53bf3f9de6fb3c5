// Package config holds the settings of the timeparser command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the timeparser configuration.
type Config struct {
	// Rule and facet tables. Empty paths select the tables built into the
	// binary.
	Rules        string `yaml:"rules"`
	Facets       string `yaml:"facets"`
	StrictFacets bool   `yaml:"strict_facets"`

	// Parse failures logged before the parser falls silent.
	WarningLimit int `yaml:"warning_limit"`

	// Inputs parsed concurrently by parse and enrich-db.
	Workers int `yaml:"workers"`

	Logging LoggingConfig `yaml:"logging"`
	Store   StoreConfig   `yaml:"store"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// StoreConfig names the SQLite database and the tables enrich-db reads from
// and writes to.
type StoreConfig struct {
	Path        string `yaml:"path"`
	Table       string `yaml:"table"`
	IDColumn    string `yaml:"id_column"`
	InputColumn string `yaml:"input_column"`
	OutputTable string `yaml:"output_table"`
	BatchSize   int    `yaml:"batch_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		WarningLimit: 100,
		Workers:      4,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Store: StoreConfig{
			Table:       "records",
			IDColumn:    "id",
			InputColumn: "date",
			OutputTable: "record_time",
			BatchSize:   500,
		},
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TIMEPARSER_RULES"); v != "" {
		c.Rules = v
	}
	if v := os.Getenv("TIMEPARSER_FACETS"); v != "" {
		c.Facets = v
	}
	if v := os.Getenv("TIMEPARSER_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("TIMEPARSER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TIMEPARSER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
}

// Validate checks the configuration for values the command cannot run with.
func (c *Config) Validate() error {
	if c.WarningLimit < 0 {
		return fmt.Errorf("warning_limit must be non-negative, got %d", c.WarningLimit)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format %q (want json or console)", c.Logging.Format)
	}
	if c.Store.BatchSize < 1 {
		return fmt.Errorf("store.batch_size must be at least 1, got %d", c.Store.BatchSize)
	}
	for name, v := range map[string]string{
		"store.table":        c.Store.Table,
		"store.id_column":    c.Store.IDColumn,
		"store.input_column": c.Store.InputColumn,
		"store.output_table": c.Store.OutputTable,
	} {
		if v == "" {
			return fmt.Errorf("%s must be set", name)
		}
	}
	if strings.EqualFold(c.Store.Table, c.Store.OutputTable) {
		return fmt.Errorf("store.output_table must differ from store.table")
	}
	return nil
}

// NewLogger builds a logger from the logging settings. verbose forces the
// debug level.
func (l LoggingConfig) NewLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if l.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
