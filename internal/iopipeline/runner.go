// Package iopipeline orchestrates the reconciliation pipeline for one
// uploaded file: standardize, match, resolve, enrich, impute, filter,
// analyze. Data flows strictly forward; all mutable state lives on the
// session and is discarded when a new file is processed.
package iopipeline

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"

	"github.com/happidata/whr/internal/ioupload"
	"github.com/happidata/whr/pkg/catalog"
	"github.com/happidata/whr/pkg/config"
	"github.com/happidata/whr/pkg/enrich"
	"github.com/happidata/whr/pkg/impute"
	"github.com/happidata/whr/pkg/insight"
	"github.com/happidata/whr/pkg/match"
	"github.com/happidata/whr/pkg/session"
	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
	"github.com/happidata/whr/pkg/whr"
)

// Option configures a pipeline run.
type Option func(*pipeline)

// OptStrategy overrides the configured imputation strategy.
func OptStrategy(s impute.Strategy) Option {
	return func(p *pipeline) { p.strategy = s }
}

// OptRegions restricts the final table to the given regions.
func OptRegions(regions []string) Option {
	return func(p *pipeline) { p.regions = regions }
}

// OptChoices supplies resolution choices up front, raw country name to
// canonical name or resolve.KeepOriginal. Used for non-interactive
// runs.
func OptChoices(choices map[string]string) Option {
	return func(p *pipeline) { p.choices = choices }
}

// OptInteractive enables terminal prompts for unmatched countries.
func OptInteractive(b bool) Option {
	return func(p *pipeline) { p.interactive = b }
}

type pipeline struct {
	cfg         *config.Config
	loader      catalog.Loader
	strategy    impute.Strategy
	regions     []string
	choices     map[string]string
	interactive bool
}

// New creates a Pipeline. The catalog loader is injected so tests can
// run against a temporary catalog.
func New(cfg *config.Config, loader catalog.Loader, opts ...Option) whr.Pipeline {
	res := &pipeline{
		cfg:      cfg,
		loader:   loader,
		strategy: impute.Strategy(cfg.Impute.Strategy),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (p *pipeline) Run(
	ctx context.Context,
	path string,
) (*whr.Result, error) {
	startTime := time.Now()

	raw, err := ioupload.Read(path)
	if err != nil {
		return nil, err
	}
	sess := session.New(path, raw)
	slog.Info("Session started",
		"session", sess.ID, "upload", sess.UploadID, "path", path)

	sess.Standardized = standardize.Table(raw)
	if !sess.Standardized.HasColumn(standardize.AttrCountry) {
		return nil, ioupload.MissingColumnError(path, "country")
	}

	// one-time catalog read, fatal for the session when absent
	cat, err := p.loader.Load()
	if err != nil {
		return nil, err
	}

	if err = p.resolveCountries(sess, cat); err != nil {
		return nil, err
	}
	mapping, ok := sess.Mapping()
	if !ok {
		// resolveCountries either commits or errors; this is a bug guard
		return nil, CollisionError(nil)
	}

	sess.Enriched, err = enrich.Table(sess.Standardized, mapping, cat)
	if err != nil {
		return nil, ioupload.MissingColumnError(path, "country")
	}

	cleaned := p.imputeMissing(sess)
	filtered := p.filterRegions(cleaned)

	res := &whr.Result{
		Table:   filtered,
		Rows:    filtered.Len(),
		Columns: filtered.Columns(),
		Regions: distinctRegions(filtered),
	}
	if corr, ok := insight.CorrelationInsight(filtered); ok {
		res.Insights.Correlation = corr
	}
	if outliers, ok := insight.OutlierInsight(filtered); ok {
		res.Insights.Outliers = outliers
	}
	if factors, ok := insight.FactorInsight(filtered); ok {
		res.Insights.Factors = factors
	}

	slog.Info("Pipeline finished",
		"session", sess.ID,
		"rows", res.Rows,
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)
	return res, nil
}

// resolveCountries matches distinct raw country strings and drives the
// resolution state machine until the mapping is committed.
func (p *pipeline) resolveCountries(
	sess *session.Session,
	cat *catalog.Catalog,
) error {
	raws := distinctCountries(sess.Standardized)
	matcher := match.New(cat, p.cfg.Match.Threshold, p.cfg.Match.Suggestions)
	sess.BeginResolution(matcher.Run(raws))

	slog.Info("Country matching done",
		"distinct", len(raws),
		"matched", len(sess.Match.Mapping),
		"unmatched", len(sess.Match.Unmatched),
	)
	if !sess.NeedsInput() {
		return nil
	}

	if p.choices != nil {
		collisions, err := sess.Submit(p.choices)
		if err != nil {
			return ChoicesError(err)
		}
		if len(collisions) > 0 {
			return CollisionError(collisions)
		}
		return nil
	}

	if p.interactive {
		return p.reviewLoop(sess)
	}

	// No reviewer available: leave the residue unmapped so each raw
	// name falls back to its own identity, and say so loudly.
	for _, u := range sess.Match.Unmatched {
		gn.Warn(
			"No confident match for <em>%s</em>, keeping original name",
			u.Raw,
		)
	}
	collisions, err := sess.Submit(nil)
	if err != nil {
		return ChoicesError(err)
	}
	if len(collisions) > 0 {
		return CollisionError(collisions)
	}
	return nil
}

// imputeMissing reports missing numeric values and applies the chosen
// strategy. The pre-imputation snapshot stays on the session so another
// strategy can be recomputed from it, never cumulatively.
func (p *pipeline) imputeMissing(sess *session.Session) *table.Table {
	report := impute.Detect(sess.Enriched)
	sess.PreImpute = sess.Enriched
	if report.Empty() {
		gn.Info("No missing values found in the data")
		sess.Imputed = sess.Enriched
		return sess.Imputed
	}

	for _, col := range report.Columns {
		if n, ok := report.Missing[col]; ok {
			slog.Info("Missing values detected", "column", col, "count", n)
		}
	}
	gn.Info(
		"Missing data detected in %d rows, applying strategy <em>%s</em>",
		len(report.AffectedRows), string(p.strategy),
	)
	sess.Imputed = impute.Apply(sess.PreImpute, p.strategy)
	return sess.Imputed
}

func (p *pipeline) filterRegions(t *table.Table) *table.Table {
	if len(p.regions) == 0 {
		return t
	}
	regions := distinctRegions(t)
	if len(regions) < 2 {
		// nothing to narrow down
		return t
	}
	known := make(map[string]bool, len(regions))
	for _, r := range regions {
		known[r] = true
	}
	wanted := make(map[string]bool, len(p.regions))
	for _, r := range p.regions {
		if !known[r] {
			gn.Warn("Region <em>%s</em> is not present in the data", r)
			continue
		}
		wanted[r] = true
	}
	if len(wanted) == 0 {
		return t
	}
	return t.Filter(func(row int) bool {
		return wanted[t.Cell(standardize.AttrRegion, row).String()]
	})
}

// distinctCountries returns the deduplicated, non-null raw country
// strings in first-seen order.
func distinctCountries(t *table.Table) []string {
	cells, ok := t.Column(standardize.AttrCountry)
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(cells))
	var res []string
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		raw := c.String()
		if !seen[raw] {
			seen[raw] = true
			res = append(res, raw)
		}
	}
	return res
}

func distinctRegions(t *table.Table) []string {
	cells, ok := t.Column(standardize.AttrRegion)
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var res []string
	for _, c := range cells {
		region := c.String()
		if region != "" && !seen[region] {
			seen[region] = true
			res = append(res, region)
		}
	}
	sort.Strings(res)
	return res
}
