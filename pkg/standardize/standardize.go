// Package standardize maps heterogeneous source headers of yearly
// happiness reports onto the nine canonical attributes. Headers that do
// not match any attribute pass through unchanged.
package standardize

import (
	"strings"

	"github.com/happidata/whr/pkg/table"
)

// Canonical attribute names.
const (
	AttrCountry        = "Country"
	AttrRegion         = "Region"
	AttrHappinessScore = "Happiness Score"
	AttrGDP            = "GDP per capita"
	AttrSocialSupport  = "Social Support"
	AttrLifeExpectancy = "Life Expectancy"
	AttrFreedom        = "Freedom"
	AttrGenerosity     = "Generosity"
	AttrCorruption     = "Corruption"
)

// Attributes lists all canonical attributes in their output order.
var Attributes = []string{
	AttrCountry,
	AttrRegion,
	AttrHappinessScore,
	AttrGDP,
	AttrSocialSupport,
	AttrLifeExpectancy,
	AttrFreedom,
	AttrGenerosity,
	AttrCorruption,
}

// NumericAttributes lists the canonical attributes that carry numeric
// data. Used by imputation and insight generation.
var NumericAttributes = []string{
	AttrHappinessScore,
	AttrGDP,
	AttrSocialSupport,
	AttrLifeExpectancy,
	AttrFreedom,
	AttrGenerosity,
	AttrCorruption,
}

// keywords are the substrings that identify a source header as one of
// the canonical attributes. The yearly reports are inconsistent, e.g.
// "Happiness Score" in 2022 vs "Ladder score" in 2023/2024.
var keywords = map[string][]string{
	AttrCountry:        {"country"},
	AttrRegion:         {"regional indicator"},
	AttrHappinessScore: {"happiness score", "ladder score"},
	AttrGDP:            {"gdp per capita"},
	AttrSocialSupport:  {"social support"},
	AttrLifeExpectancy: {"healthy life expectancy"},
	AttrFreedom:        {"freedom to make life choices"},
	AttrGenerosity:     {"generosity"},
	AttrCorruption:     {"perceptions of corruption"},
}

// Some reports carry both a raw and an "Explained by:" variant of the
// same factor. The "Explained by:" column is the one to keep.
const explainedPrefix = "explained by:"

// Table produces a new table with canonical attribute columns for every
// discoverable attribute, followed by all unmapped source columns in
// their original order. A source header is consumed by at most one
// attribute; an attribute with no matching header is absent from the
// output.
func Table(src *table.Table) *table.Table {
	srcCols := src.Columns()
	consumed := make(map[string]bool, len(srcCols))
	res := table.New()

	for _, attr := range Attributes {
		header := findHeader(srcCols, consumed, keywords[attr])
		if header == "" {
			continue
		}
		consumed[header] = true
		cells, _ := src.Column(header)
		out := make([]table.Cell, len(cells))
		copy(out, cells)
		_ = res.AppendColumn(attr, out)
	}

	for _, col := range srcCols {
		if consumed[col] {
			continue
		}
		cells, _ := src.Column(col)
		out := make([]table.Cell, len(cells))
		copy(out, cells)
		_ = res.AppendColumn(col, out)
	}
	return res
}

// findHeader scans source headers in two passes: first only headers
// with the "explained by:" prefix, then all remaining headers. The
// first hit in source order wins.
func findHeader(cols []string, consumed map[string]bool, kws []string) string {
	for _, col := range cols {
		if consumed[col] {
			continue
		}
		lower := strings.TrimSpace(strings.ToLower(col))
		if !strings.HasPrefix(lower, explainedPrefix) {
			continue
		}
		stripped := strings.TrimSpace(
			strings.Replace(lower, explainedPrefix+" ", "", 1),
		)
		if containsAny(stripped, kws) {
			return col
		}
	}
	for _, col := range cols {
		if consumed[col] {
			continue
		}
		lower := strings.TrimSpace(strings.ToLower(col))
		if containsAny(lower, kws) {
			return col
		}
	}
	return ""
}

func containsAny(s string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
