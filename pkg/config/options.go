package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptCatalogPath sets the location of the reference catalog file.
func OptCatalogPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Catalog Path", s) {
			c.Catalog.Path = s
		}
	}
}

// OptCatalogSourcePriority sets the yearly report files consulted for
// region data during catalog builds, most reliable first.
func OptCatalogSourcePriority(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Catalog.SourcePriority = ss
		}
	}
}

// OptMatchThreshold sets the minimal similarity score (0..100) for an
// automatic country match.
func OptMatchThreshold(i int) Option {
	return func(c *Config) {
		if isValidInt("Match Threshold", i) && i <= 100 {
			c.Match.Threshold = i
		}
	}
}

// OptMatchSuggestions sets how many candidates are offered per
// unmatched country during review.
func OptMatchSuggestions(i int) Option {
	return func(c *Config) {
		if isValidInt("Match Suggestions", i) {
			c.Match.Suggestions = i
		}
	}
}

// OptImputeStrategy sets the default imputation strategy.
// Valid values: "median", "mean", "drop".
func OptImputeStrategy(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Impute.Strategy", s) {
			c.Impute.Strategy = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for the catalog
// builder. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
