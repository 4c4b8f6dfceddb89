// Package impute detects and repairs missing numeric values in the
// enriched table. Detection never mutates; a repair always starts from
// the pre-imputation snapshot, so switching strategies is not
// cumulative.
package impute

import (
	"fmt"
	"sort"

	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
)

// Strategy selects how missing values are repaired.
type Strategy string

const (
	// Median fills each affected numeric column with its own median.
	Median Strategy = "median"
	// Mean fills each affected numeric column with its arithmetic mean.
	Mean Strategy = "mean"
	// Drop removes every row with a missing value in any column.
	Drop Strategy = "drop"
)

// ParseStrategy validates a user-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Median, Mean, Drop:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf(
			"unknown imputation strategy %q, valid values are: median, mean, drop", s,
		)
	}
}

// Report describes detected missing values without mutating the table.
type Report struct {
	// Missing maps each numeric canonical column to its count of
	// missing cells. Columns without gaps are absent.
	Missing map[string]int
	// AffectedRows are the indices of rows with at least one missing
	// numeric canonical value.
	AffectedRows []int
	// Columns lists, in display order, the columns of the affected-rows
	// view: Country first when present, then the gapped columns.
	Columns []string
}

// Empty reports whether no missing values were found.
func (r Report) Empty() bool { return len(r.Missing) == 0 }

// Detect scans the numeric canonical columns for missing cells.
func Detect(t *table.Table) Report {
	res := Report{Missing: make(map[string]int)}
	affected := make(map[int]bool)
	for _, col := range standardize.NumericAttributes {
		cells, ok := t.Column(col)
		if !ok {
			continue
		}
		var count int
		for i, c := range cells {
			if c.IsNull() {
				count++
				affected[i] = true
			}
		}
		if count > 0 {
			res.Missing[col] = count
			res.Columns = append(res.Columns, col)
		}
	}
	if t.HasColumn(standardize.AttrCountry) && len(res.Columns) > 0 {
		res.Columns = append(
			[]string{standardize.AttrCountry}, res.Columns...,
		)
	}
	for row := range affected {
		res.AffectedRows = append(res.AffectedRows, row)
	}
	sort.Ints(res.AffectedRows)
	return res
}

// Apply repairs missing values per the strategy and returns a new
// table. The input is the pre-imputation snapshot and is not modified.
func Apply(t *table.Table, strategy Strategy) *table.Table {
	if strategy == Drop {
		return t.Filter(func(row int) bool {
			for _, col := range t.Columns() {
				if t.Cell(col, row).IsNull() {
					return false
				}
			}
			return true
		})
	}

	res := t.Clone()
	for _, col := range standardize.NumericAttributes {
		cells, ok := res.Column(col)
		if !ok || !res.IsNumeric(col) {
			continue
		}
		var vals []float64
		var gaps bool
		for _, c := range cells {
			if v, numeric := c.Float(); numeric {
				vals = append(vals, v)
			} else if c.IsNull() {
				gaps = true
			}
		}
		if !gaps || len(vals) == 0 {
			continue
		}
		fill := mean(vals)
		if strategy == Median {
			fill = median(vals)
		}
		filled := make([]table.Cell, len(cells))
		for i, c := range cells {
			if c.IsNull() {
				filled[i] = table.Number(fill)
			} else {
				filled[i] = c
			}
		}
		_ = res.SetColumn(col, filled)
	}
	return res
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
