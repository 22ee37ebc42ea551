// Package assoc runs the contingency-table test battery: Pearson
// chi-squared, Fisher's exact, odds ratios, and the Hardy-Weinberg
// equilibrium check.
package assoc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"coassoc/domain/cohort"
	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// ChiSquare runs a Pearson chi-squared independence test over an RxC
// contingency table. The Yates continuity correction is a caller flag,
// default off: it is overly conservative when no expected cell falls
// below 5, and whether to enable it stays an analyst decision. The
// smallest expected cell is reported so that decision can be reviewed.
func ChiSquare(t *cohort.ContingencyTable, yates bool) (*stats.ChiSquareResult, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Rows() < 2 || t.Cols() < 2 {
		return nil, fmt.Errorf("%w: need at least a 2x2 table, got %dx%d",
			core.ErrInsufficientData, t.Rows(), t.Cols())
	}

	rowTotals, colTotals := t.RowTotals(), t.ColTotals()
	n := t.Total()
	if n == 0 {
		return nil, fmt.Errorf("%w: empty table", core.ErrZeroDivisor)
	}
	for i, rt := range rowTotals {
		if rt == 0 {
			return nil, fmt.Errorf("%w: row %q", core.ErrZeroDivisor, t.RowLabels[i])
		}
	}
	for j, ct := range colTotals {
		if ct == 0 {
			return nil, fmt.Errorf("%w: column %q", core.ErrZeroDivisor, t.ColLabels[j])
		}
	}

	statistic := 0.0
	expectedMin := math.Inf(1)
	for i := 0; i < t.Rows(); i++ {
		for j := 0; j < t.Cols(); j++ {
			expected := float64(rowTotals[i]) * float64(colTotals[j]) / float64(n)
			if expected < expectedMin {
				expectedMin = expected
			}
			diff := math.Abs(float64(t.Cell(i, j)) - expected)
			if yates {
				diff -= 0.5
				if diff < 0 {
					diff = 0
				}
			}
			statistic += diff * diff / expected
		}
	}

	df := (t.Rows() - 1) * (t.Cols() - 1)
	dist := distuv.ChiSquared{K: float64(df)}
	return &stats.ChiSquareResult{
		Statistic:   statistic,
		DF:          df,
		PValue:      1 - dist.CDF(statistic),
		Yates:       yates,
		ExpectedMin: expectedMin,
		N:           n,
	}, nil
}
