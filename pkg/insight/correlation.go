// Package insight derives descriptive statistics from the cleaned,
// filtered table: a GDP/happiness correlation band, regression
// outliers, and a ranking of happiness factors. Every insight is
// skippable; insufficient data is never an error.
package insight

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
)

// Band is a qualitative label for a correlation coefficient.
type Band string

const (
	BandVeryStrong Band = "very strong"
	BandModerate   Band = "moderate"
	BandWeak       Band = "weak"
	BandNone       Band = "none"
)

// Correlation is the GDP-per-capita vs happiness-score insight.
type Correlation struct {
	Band        Band    `json:"band"`
	Coefficient float64 `json:"coefficient"`
	Summary     string  `json:"summary"`
}

// BandFor buckets a coefficient into its qualitative band.
func BandFor(c float64) Band {
	switch {
	case c > 0.7:
		return BandVeryStrong
	case c > 0.4:
		return BandModerate
	case c > 0.1:
		return BandWeak
	default:
		return BandNone
	}
}

// CorrelationInsight computes the Pearson correlation between GDP per
// capita and the happiness score over pairwise-complete rows. The
// second value is false when either column is absent or fewer than two
// complete pairs exist.
func CorrelationInsight(t *table.Table) (*Correlation, bool) {
	x, y := pairwise(t, standardize.AttrGDP, standardize.AttrHappinessScore)
	if len(x) < 2 {
		return nil, false
	}
	c := stat.Correlation(x, y, nil)
	res := &Correlation{
		Band:        BandFor(c),
		Coefficient: c,
		Summary:     summaryFor(c),
	}
	return res, true
}

func summaryFor(c float64) string {
	switch BandFor(c) {
	case BandVeryStrong:
		return fmt.Sprintf(
			"Very strong positive relationship (correlation: %.2f). "+
				"Higher GDP is strongly associated with higher happiness.", c)
	case BandModerate:
		return fmt.Sprintf(
			"Moderate positive relationship (correlation: %.2f). "+
				"A noticeable, but not perfect, link exists between GDP and happiness.", c)
	case BandWeak:
		return fmt.Sprintf(
			"Weak positive relationship (correlation: %.2f). "+
				"GDP has a minor positive impact on happiness.", c)
	default:
		return "No significant relationship detected."
	}
}

// pairwise extracts the rows where both columns hold numbers.
func pairwise(t *table.Table, colX, colY string) ([]float64, []float64) {
	xs, mx := t.Floats(colX)
	ys, my := t.Floats(colY)
	if xs == nil || ys == nil {
		return nil, nil
	}
	var x, y []float64
	for i := range xs {
		if mx[i] && my[i] {
			x = append(x, xs[i])
			y = append(y, ys[i])
		}
	}
	return x, y
}
