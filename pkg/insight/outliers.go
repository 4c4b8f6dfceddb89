package insight

import (
	"gonum.org/v1/gonum/stat"

	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
)

// Outliers identifies the countries deviating most from an
// ordinary-least-squares fit of happiness on GDP per capita.
type Outliers struct {
	// Happiest is the country with the maximal positive residual,
	// happier than its GDP level would predict.
	Happiest string `json:"happiest"`
	// Unhappiest is the country with the maximal negative residual.
	Unhappiest string `json:"unhappiest"`
}

// OutlierInsight fits happiness score on GDP per capita with an
// intercept over rows where both values are present and returns the
// extreme residuals. The second value is false with fewer than two
// valid rows; the insight is then skipped.
func OutlierInsight(t *table.Table) (*Outliers, bool) {
	xs, mx := t.Floats(standardize.AttrGDP)
	ys, my := t.Floats(standardize.AttrHappinessScore)
	if xs == nil || ys == nil {
		return nil, false
	}

	var x, y []float64
	var rows []int
	for i := range xs {
		if mx[i] && my[i] {
			x = append(x, xs[i])
			y = append(y, ys[i])
			rows = append(rows, i)
		}
	}
	if len(x) < 2 {
		return nil, false
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	maxIdx, minIdx := 0, 0
	maxRes, minRes := residual(alpha, beta, x[0], y[0]), residual(alpha, beta, x[0], y[0])
	for i := 1; i < len(x); i++ {
		r := residual(alpha, beta, x[i], y[i])
		if r > maxRes {
			maxRes, maxIdx = r, i
		}
		if r < minRes {
			minRes, minIdx = r, i
		}
	}

	res := &Outliers{
		Happiest:   t.Cell(standardize.AttrCountry, rows[maxIdx]).String(),
		Unhappiest: t.Cell(standardize.AttrCountry, rows[minIdx]).String(),
	}
	return res, true
}

func residual(alpha, beta, x, y float64) float64 {
	return y - (alpha + beta*x)
}
