package insight

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
)

// MaxFactors caps how many ranked factors are surfaced.
const MaxFactors = 5

// Factor is one happiness factor with its correlation against the
// happiness score.
type Factor struct {
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
}

// FactorInsight ranks the numeric canonical attributes by descending
// correlation with the happiness score and returns at most MaxFactors
// of them. The second value is false when fewer than two numeric
// attributes (including the happiness score itself) are present in the
// table; the insight is then skipped.
func FactorInsight(t *table.Table) ([]Factor, bool) {
	var present []string
	for _, attr := range standardize.NumericAttributes {
		if t.HasColumn(attr) {
			present = append(present, attr)
		}
	}
	if len(present) < 2 || !t.HasColumn(standardize.AttrHappinessScore) {
		return nil, false
	}

	var factors []Factor
	for _, attr := range present {
		if attr == standardize.AttrHappinessScore {
			continue
		}
		x, y := pairwise(t, attr, standardize.AttrHappinessScore)
		if len(x) < 2 {
			continue
		}
		c := stat.Correlation(x, y, nil)
		if math.IsNaN(c) {
			continue
		}
		factors = append(factors, Factor{Name: attr, Coefficient: c})
	}
	if len(factors) == 0 {
		return nil, false
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Coefficient > factors[j].Coefficient
	})
	if len(factors) > MaxFactors {
		factors = factors[:MaxFactors]
	}
	return factors, true
}
