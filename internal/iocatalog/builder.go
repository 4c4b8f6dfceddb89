package iocatalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"

	"github.com/happidata/whr/pkg/catalog"
	"github.com/happidata/whr/pkg/config"
	"github.com/happidata/whr/pkg/match"
	"github.com/happidata/whr/pkg/whr"
)

// Header candidates across yearly report schemas.
var (
	countryHeaders = []string{"Country", "Country name"}
	regionHeaders  = []string{"Regional indicator", "Region"}
)

type builder struct {
	cfg *config.Config
}

// NewBuilder creates a catalog builder. The builder scans WHR*.csv
// files in a data directory, aggregates unique cleaned country names,
// and fills regions from the configured priority sources.
func NewBuilder(cfg *config.Config) whr.CatalogBuilder {
	res := builder{cfg: cfg}
	return &res
}

func (b *builder) Build(
	ctx context.Context,
	dataDir string,
) (*whr.BuildReport, error) {
	startTime := time.Now()

	files, err := reportFiles(dataDir)
	if err != nil {
		return nil, BuildError(dataDir, err)
	}
	if len(files) == 0 {
		return nil, BuildError(dataDir,
			fmt.Errorf("no WHR*.csv files in %s", dataDir))
	}
	slog.Info("Building reference catalog",
		"dir", dataDir, "files", len(files))

	names, err := b.collectNames(ctx, files)
	if err != nil {
		return nil, err
	}

	regions, err := b.collectRegions(dataDir)
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	entries := make([]catalog.Entry, len(names))
	var filled int
	var missing []string
	for i, name := range names {
		entries[i] = catalog.Entry{
			CanonicalName: name,
			Region:        regions[name],
		}
		if regions[name] == "" {
			missing = append(missing, name)
		} else {
			filled++
		}
	}

	path := b.cfg.CatalogPath()
	if err = writeCatalogFile(path, entries); err != nil {
		return nil, WriteError(path, err)
	}

	slog.Info("Catalog build finished",
		"path", path,
		"countries", humanize.Comma(int64(len(entries))),
		"filled", filled,
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)

	res := &whr.BuildReport{
		Path:          path,
		Total:         len(entries),
		Filled:        filled,
		MissingRegion: missing,
	}
	return res, nil
}

// collectNames aggregates unique cleaned country names from all report
// files. Files are scanned concurrently; the pipeline proper stays
// synchronous, this is a pre-processing step.
func (b *builder) collectNames(
	ctx context.Context,
	files []string,
) ([]string, error) {
	bar := pb.Full.Start(len(files))
	bar.Set("prefix", "Scanning reports ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var mu sync.Mutex
	seen := make(map[string]bool)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.JobsNumber)
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			names, err := countryNames(file)
			if err != nil {
				return BuildError(file, err)
			}
			mu.Lock()
			for _, name := range names {
				seen[name] = true
			}
			mu.Unlock()
			bar.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]string, 0, len(seen))
	for name := range seen {
		res = append(res, name)
	}
	return res, nil
}

// collectRegions extracts country → region pairs from the priority
// sources in order; the first region seen for a country wins, so the
// most reliable file decides.
func (b *builder) collectRegions(dataDir string) (map[string]string, error) {
	res := make(map[string]string)
	for _, name := range b.cfg.Catalog.SourcePriority {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := regionPairs(path, res); err != nil {
			return nil, BuildError(path, err)
		}
	}
	return res, nil
}

func reportFiles(dataDir string) ([]string, error) {
	items, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, item := range items {
		name := item.Name()
		if item.IsDir() {
			continue
		}
		if strings.HasPrefix(name, "WHR") &&
			strings.HasSuffix(name, ".csv") {
			res = append(res, filepath.Join(dataDir, name))
		}
	}
	sort.Strings(res)
	return res, nil
}

func countryNames(path string) ([]string, error) {
	records, header, err := readAll(path)
	if err != nil {
		return nil, err
	}
	idx := headerIndex(header, countryHeaders)
	if idx < 0 {
		slog.Warn("Country column not found, skipping file", "path", path)
		return nil, nil
	}
	var res []string
	for _, rec := range records {
		if idx >= len(rec) {
			continue
		}
		name := match.Normalize(rec[idx])
		if name != "" {
			res = append(res, name)
		}
	}
	return res, nil
}

func regionPairs(path string, into map[string]string) error {
	records, header, err := readAll(path)
	if err != nil {
		return err
	}
	countryIdx := headerIndex(header, countryHeaders)
	regionIdx := headerIndex(header, regionHeaders)
	if countryIdx < 0 || regionIdx < 0 {
		return nil
	}
	for _, rec := range records {
		if countryIdx >= len(rec) || regionIdx >= len(rec) {
			continue
		}
		name := match.Normalize(rec[countryIdx])
		region := strings.TrimSpace(rec[regionIdx])
		if name == "" || region == "" {
			continue
		}
		if _, ok := into[name]; !ok {
			into[name] = region
		}
	}
	return nil
}

func readAll(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s has no header row", path)
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	return records[1:], header, nil
}

func headerIndex(header, candidates []string) int {
	for _, cand := range candidates {
		for i, col := range header {
			if strings.TrimSpace(col) == cand {
				return i
			}
		}
	}
	return -1
}

func writeCatalogFile(path string, entries []catalog.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write([]string{"canonical_name", "region"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err = w.Write([]string{e.CanonicalName, e.Region}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
