package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/happidata/whr/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "whr"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "whr"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "whr", "logs"),
		},
		{
			msg: "catalog file",
			fn:  config.CatalogFilePath,
			res: filepath.Join(
				tempHome, ".config", "whr", "country_region_lookup.csv",
			),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, 90, cfg.Match.Threshold)
		assert.Equal(t, 3, cfg.Match.Suggestions)
		assert.Equal(t, "median", cfg.Impute.Strategy)
		assert.Equal(
			t,
			[]string{"WHR2024.csv", "WHR2023.csv", "WHR2022.csv"},
			cfg.Catalog.SourcePriority,
		)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "sets catalog path",
			opt:  config.OptCatalogPath("/data/lookup.csv"),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "/data/lookup.csv", cfg.Catalog.Path)
			},
		},
		{
			name: "sets match threshold",
			opt:  config.OptMatchThreshold(85),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 85, cfg.Match.Threshold)
			},
		},
		{
			name: "rejects threshold above 100",
			opt:  config.OptMatchThreshold(101),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 90, cfg.Match.Threshold)
			},
		},
		{
			name: "rejects negative threshold",
			opt:  config.OptMatchThreshold(-1),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 90, cfg.Match.Threshold)
			},
		},
		{
			name: "sets impute strategy",
			opt:  config.OptImputeStrategy("drop"),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "drop", cfg.Impute.Strategy)
			},
		},
		{
			name: "rejects unknown strategy",
			opt:  config.OptImputeStrategy("mode"),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "median", cfg.Impute.Strategy)
			},
		},
		{
			name: "normalizes log level case",
			opt:  config.OptLogLevel("DEBUG"),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "debug", cfg.Log.Level)
			},
		},
		{
			name: "rejects invalid log format",
			opt:  config.OptLogFormat("xml"),
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "json", cfg.Log.Format)
			},
		},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{v.opt})
			v.check(t, cfg)
		})
	}
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptCatalogPath("/data/lookup.csv"),
		config.OptMatchThreshold(80),
		config.OptImputeStrategy("mean"),
		config.OptLogFormat("text"),
	})

	clone := config.New()
	clone.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Catalog, clone.Catalog)
	assert.Equal(t, cfg.Match, clone.Match)
	assert.Equal(t, cfg.Impute, clone.Impute)
	assert.Equal(t, cfg.Log, clone.Log)
	assert.Equal(t, cfg.JobsNumber, clone.JobsNumber)
}

func TestHomeDirRuntimeOnly(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t, "/home/user", cfg.HomeDir)

	// HomeDir never round-trips through config.yaml
	clone := config.New()
	clone.Update(cfg.ToOptions())
	assert.Empty(t, clone.HomeDir)
}
