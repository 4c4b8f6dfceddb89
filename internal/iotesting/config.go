// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/happidata/whr/pkg/config"
)

// GetTestConfig returns a configuration rooted in a temporary home
// directory, so tests never touch the user's real config, cache or
// catalog files.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    cfg := iotesting.GetTestConfig(t)
//	    ...
//	}
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	home := t.TempDir()
	for _, dir := range []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("cannot create test dir %s: %v", dir, err)
		}
	}

	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})
	return cfg
}

// WriteCatalog writes a catalog CSV into the test config's default
// catalog location and returns its path.
func WriteCatalog(t *testing.T, cfg *config.Config, rows string) string {
	t.Helper()

	path := config.CatalogFilePath(cfg.HomeDir)
	data := "canonical_name,region\n" + rows
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("cannot write test catalog: %v", err)
	}
	return path
}

// WriteFile writes content into the test's temp space and returns the
// full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write %s: %v", name, err)
	}
	return path
}
