// Package enrich joins the standardized table against the reference
// catalog to attach region data. After enrichment every row has exactly
// one region value and the Country column carries canonical names.
package enrich

import (
	"errors"

	"github.com/happidata/whr/pkg/catalog"
	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
)

// UnknownRegion is the sentinel region for countries absent from the
// catalog. The Region column never holds nulls after enrichment.
const UnknownRegion = "Unknown"

// ErrNoCountryColumn is returned when the standardized table has no
// Country column to join on.
var ErrNoCountryColumn = errors.New("standardized table has no Country column")

// Table enriches the standardized table using the finalized
// raw → canonical mapping. Raw country values outside the mapping fall
// back to their own string as the canonical identity. The uploaded
// Region column, if any, is discarded first; the catalog is the sole
// source of region data post-merge. The output has one row per input
// row.
func Table(
	std *table.Table,
	mapping map[string]string,
	cat *catalog.Catalog,
) (*table.Table, error) {
	countries, ok := std.Column(standardize.AttrCountry)
	if !ok {
		return nil, ErrNoCountryColumn
	}

	res := std.Clone()
	res.DropColumn(standardize.AttrRegion)

	canonical := make([]table.Cell, len(countries))
	regions := make([]table.Cell, len(countries))
	for i, cell := range countries {
		if cell.IsNull() {
			canonical[i] = table.Null()
			regions[i] = table.Text(UnknownRegion)
			continue
		}
		raw := cell.String()
		name, mapped := mapping[raw]
		if !mapped {
			name = raw
		}
		canonical[i] = table.Text(name)
		if region, found := cat.Region(name); found {
			regions[i] = table.Text(region)
		} else {
			regions[i] = table.Text(UnknownRegion)
		}
	}

	if err := res.SetColumn(standardize.AttrCountry, canonical); err != nil {
		return nil, err
	}
	if err := res.AppendColumn(standardize.AttrRegion, regions); err != nil {
		return nil, err
	}
	return res, nil
}
