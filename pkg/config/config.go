// Package config provides configuration management for the WHR
// pipeline.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use WHR_ prefix with underscores for nesting:
//
//	WHR_CATALOG_PATH=/data/country_region_lookup.csv
//	WHR_MATCH_THRESHOLD=90
//	WHR_IMPUTE_STRATEGY=median
//	WHR_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete WHR configuration.
type Config struct {
	// Catalog contains reference catalog settings.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Match contains fuzzy matching settings.
	Match MatchConfig `mapstructure:"match" yaml:"match"`

	// Impute contains the default imputation settings.
	Impute ImputeConfig `mapstructure:"impute" yaml:"impute"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for the catalog
	// builder. The reconciliation pipeline itself is synchronous.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string
}

// CatalogConfig contains reference catalog settings.
type CatalogConfig struct {
	// Path overrides the catalog file location. Empty means the
	// default location inside the config directory.
	Path string `mapstructure:"path" yaml:"path"`

	// SourcePriority lists the yearly report files the catalog builder
	// consults for region data, most reliable first.
	SourcePriority []string `mapstructure:"source_priority" yaml:"source_priority"`
}

// MatchConfig contains fuzzy matching parameters.
type MatchConfig struct {
	// Threshold is the minimal similarity score (0..100) for an
	// automatic country match. Below it a human reviews the match.
	// High by intent: a false merge of two countries is worse than a
	// manual review.
	Threshold int `mapstructure:"threshold" yaml:"threshold"`

	// Suggestions is how many candidates are offered per unmatched
	// country during review.
	Suggestions int `mapstructure:"suggestions" yaml:"suggestions"`
}

// ImputeConfig contains imputation defaults.
type ImputeConfig struct {
	// Strategy applied to missing numeric values when none is chosen
	// on the command line: 'median', 'mean' or 'drop'.
	Strategy string `mapstructure:"strategy" yaml:"strategy"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Catalog: CatalogConfig{
			SourcePriority: []string{
				"WHR2024.csv", "WHR2023.csv", "WHR2022.csv",
			},
		},
		Match: MatchConfig{
			Threshold:   90,
			Suggestions: 3,
		},
		Impute: ImputeConfig{
			Strategy: "median",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
