// Package iocatalog loads and builds the reference catalog. The
// catalog file is read once per process; the parsed form is cached on
// disk and in memory.
package iocatalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/happidata/whr/pkg/catalog"
	"github.com/happidata/whr/pkg/config"
)

type iocatalog struct {
	cfg    *config.Config
	cached *catalog.Catalog
}

// New creates a catalog loader for the configured catalog location.
func New(cfg *config.Config) catalog.Loader {
	res := iocatalog{cfg: cfg}
	return &res
}

// Load reads the catalog file, dropping entries without a region. A
// missing file is fatal for the session: no matching or enrichment can
// proceed without the catalog.
func (c *iocatalog) Load() (*catalog.Catalog, error) {
	if c.cached != nil {
		return c.cached, nil
	}
	path := c.cfg.CatalogPath()

	if entries, ok := readCache(c.cfg, path); ok {
		c.cached = catalog.New(entries)
		return c.cached, nil
	}

	entries, err := readCatalogFile(path)
	if err != nil {
		return nil, LoadError(path, err)
	}
	writeCache(c.cfg, path, entries)

	c.cached = catalog.New(entries)
	slog.Info("Loaded reference catalog",
		"path", path,
		"entries", humanize.Comma(int64(c.cached.Len())),
		"dropped", c.cached.Dropped(),
	)
	return c.cached, nil
}

func readCatalogFile(path string) ([]catalog.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog header: %w", err)
	}
	nameIdx, regionIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF")) {
		case "canonical_name":
			nameIdx = i
		case "region":
			regionIdx = i
		}
	}
	if nameIdx < 0 || regionIdx < 0 {
		return nil, fmt.Errorf(
			"catalog requires columns canonical_name and region, got %v",
			header,
		)
	}

	var res []catalog.Entry
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		entry := catalog.Entry{}
		if nameIdx < len(rec) {
			entry.CanonicalName = strings.TrimSpace(rec[nameIdx])
		}
		if regionIdx < len(rec) {
			entry.Region = strings.TrimSpace(rec[regionIdx])
		}
		res = append(res, entry)
	}
	return res, nil
}
