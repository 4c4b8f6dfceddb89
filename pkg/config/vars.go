package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "whr"
	// CatalogFileName is the default name of the reference catalog.
	CatalogFileName = "country_region_lookup.csv"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/whr by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/whr by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/whr/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/whr/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CatalogFilePath returns the default location of the reference
// catalog file inside the config directory.
func CatalogFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), CatalogFileName)
}

// CatalogPath resolves the effective catalog location: the configured
// path when set, the default location otherwise.
func (c *Config) CatalogPath() string {
	if c.Catalog.Path != "" {
		return c.Catalog.Path
	}
	return CatalogFilePath(c.HomeDir)
}
