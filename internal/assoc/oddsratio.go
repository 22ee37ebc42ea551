package assoc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"coassoc/domain/cohort"
	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// OddsRatio estimates OR = (a*d)/(b*c) over a 2x2 table laid out as
// [[a,b],[c,d]], with a two-sided Wald interval on the log scale. Row and
// column orientation carries the direction of effect: the caller's table
// labels are the semantic contract, nothing is reordered here. A zero
// cell yields Defined=false with the raw 0/+Inf/NaN estimate; it is never
// clamped to a finite value.
func OddsRatio(t *cohort.ContingencyTable, confidence float64) (*stats.OddsRatioResult, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Rows() != 2 || t.Cols() != 2 {
		return nil, fmt.Errorf("%w: odds ratio needs a 2x2 table, got %dx%d",
			core.ErrInsufficientData, t.Rows(), t.Cols())
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, core.NewValidationError("confidence", fmt.Sprintf("must be in (0,1), got %v", confidence))
	}

	a := float64(t.Cell(0, 0))
	b := float64(t.Cell(0, 1))
	c := float64(t.Cell(1, 0))
	d := float64(t.Cell(1, 1))

	or := (a * d) / (b * c)
	res := &stats.OddsRatioResult{
		OR:         or,
		Confidence: confidence,
		Lower:      math.NaN(),
		Upper:      math.NaN(),
		LogSE:      math.NaN(),
	}
	if a == 0 || b == 0 || c == 0 || d == 0 {
		return res, nil
	}

	se := math.Sqrt(1/a + 1/b + 1/c + 1/d)
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	logOR := math.Log(or)
	res.Defined = true
	res.LogSE = se
	res.Lower = math.Exp(logOR - z*se)
	res.Upper = math.Exp(logOR + z*se)
	return res, nil
}
