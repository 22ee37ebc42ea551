package assoc

import (
	"fmt"

	fet "github.com/glycerine/golang-fisher-exact"

	"coassoc/domain/cohort"
	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// FisherExact computes the two-sided Fisher exact p-value for a 2x2 table.
// Reported alongside the chi-squared result when small expected cells make
// the asymptotic test questionable.
func FisherExact(t *cohort.ContingencyTable) (*stats.FisherResult, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.Rows() != 2 || t.Cols() != 2 {
		return nil, fmt.Errorf("%w: Fisher exact needs a 2x2 table, got %dx%d",
			core.ErrInsufficientData, t.Rows(), t.Cols())
	}
	if t.Total() == 0 {
		return nil, fmt.Errorf("%w: empty table", core.ErrZeroDivisor)
	}

	_, _, _, twop := fet.FisherExactTest(t.Cell(0, 0), t.Cell(0, 1), t.Cell(1, 0), t.Cell(1, 1))
	return &stats.FisherResult{PValue: twop}, nil
}
