// Package whr defines the lifecycle interfaces of the pipeline and the
// payload delivered to presentation consumers. Implementations live in
// internal/io* packages.
package whr

import (
	"context"

	"github.com/happidata/whr/pkg/insight"
	"github.com/happidata/whr/pkg/table"
)

// Insights bundles the three analysis payloads. Each is nullable: an
// insight skipped for lack of data is simply absent.
type Insights struct {
	Correlation *insight.Correlation `json:"correlation,omitempty"`
	Outliers    *insight.Outliers    `json:"outliers,omitempty"`
	Factors     []insight.Factor     `json:"factors,omitempty"`
}

// Result is what the presentation collaborator receives: the fully
// resolved, enriched, imputed and filtered table plus the insights.
type Result struct {
	Table    *table.Table `json:"-"`
	Rows     int          `json:"rows"`
	Columns  []string     `json:"columns"`
	Regions  []string     `json:"regions"`
	Insights Insights     `json:"insights"`
}

// Pipeline runs the full reconciliation pass over one uploaded file:
// standardize, match, resolve, enrich, impute, filter, analyze.
type Pipeline interface {
	Run(ctx context.Context, path string) (*Result, error)
}

// BuildReport summarizes a catalog build.
type BuildReport struct {
	// Path of the written catalog file.
	Path string
	// Total number of unique countries found.
	Total int
	// Filled is how many received a region automatically.
	Filled int
	// MissingRegion lists countries whose region must be filled in by
	// hand before they become usable catalog entries.
	MissingRegion []string
}

// CatalogBuilder regenerates the reference catalog from a directory of
// yearly report files.
type CatalogBuilder interface {
	Build(ctx context.Context, dataDir string) (*BuildReport, error)
}

// Exporter writes a cleaned table for downstream consumers.
type Exporter interface {
	Export(ctx context.Context, t *table.Table, path string) error
}
