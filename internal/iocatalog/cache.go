package iocatalog

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnfmt"

	"github.com/happidata/whr/pkg/catalog"
	"github.com/happidata/whr/pkg/config"
)

// cachedCatalog is the on-disk form of a parsed catalog. ModTime
// invalidates the cache when the catalog file changes.
type cachedCatalog struct {
	ModTime int64
	Entries []catalog.Entry
}

func cachePath(cfg *config.Config) string {
	return filepath.Join(config.CacheDir(cfg.HomeDir), "catalog.gob")
}

// readCache returns the cached entries when the cache matches the
// current catalog file. Cache problems are never fatal; the catalog is
// simply re-read.
func readCache(cfg *config.Config, path string) ([]catalog.Entry, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	valBytes, err := os.ReadFile(cachePath(cfg))
	if err != nil {
		return nil, false
	}

	enc := gnfmt.GNgob{}
	var data cachedCatalog
	if err = enc.Decode(valBytes, &data); err != nil {
		slog.Warn("Cannot decode catalog cache, re-reading",
			"error", err)
		return nil, false
	}
	if data.ModTime != info.ModTime().Unix() {
		return nil, false
	}
	return data.Entries, true
}

func writeCache(cfg *config.Config, path string, entries []catalog.Entry) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	data := cachedCatalog{
		ModTime: info.ModTime().Unix(),
		Entries: entries,
	}

	enc := gnfmt.GNgob{}
	valBytes, err := enc.Encode(data)
	if err != nil {
		slog.Warn("Cannot encode catalog cache", "error", err)
		return
	}
	if err = os.WriteFile(cachePath(cfg), valBytes, 0644); err != nil {
		slog.Warn("Cannot write catalog cache", "error", err)
	}
}
