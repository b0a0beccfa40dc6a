package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the glossolalia configuration file
// (~/.config/glossolalia/config.yaml). Numeric fields are pointers so we
// can distinguish "not set" from zero values.
type Config struct {
	DataDir string `yaml:"data_dir"`
	DBPath  string `yaml:"db_path"`

	// Model defaults used when creating a new model
	Order     *int64   `yaml:"order"`
	Smoothing *float64 `yaml:"smoothing"`

	// Sampling defaults
	Sampling    string   `yaml:"sampling"`
	Temperature *float64 `yaml:"temperature"`
	TopK        *int64   `yaml:"top_k"`

	// Generation defaults
	MaxNew *int64 `yaml:"max_new"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "glossolalia", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or cannot be parsed.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyStoreConfig applies config file defaults to the store and logging
// flags when the corresponding CLI flag was not explicitly set.
func applyStoreConfig(c *cli.Command, cfg Config) {
	if cfg.DataDir != "" && !c.IsSet("data-dir") {
		dataDir = cfg.DataDir
	}
	if cfg.DBPath != "" && !c.IsSet("db") {
		dbPath = cfg.DBPath
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applySamplingConfig applies config file sampling defaults to command
// variables when the corresponding CLI flag was not explicitly set.
func applySamplingConfig(c *cli.Command, cfg Config,
	sampling *string, temperature *float64, topK *int64,
) {
	if cfg.Sampling != "" && !c.IsSet("sampling") {
		*sampling = cfg.Sampling
	}
	if cfg.Temperature != nil && !c.IsSet("temperature") && !c.IsSet("t") {
		*temperature = *cfg.Temperature
	}
	if cfg.TopK != nil && !c.IsSet("top-k") {
		*topK = *cfg.TopK
	}
}
