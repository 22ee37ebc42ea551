package clinical

import (
	"fmt"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// VarianceRatio runs the F-test of variance homogeneity between two
// groups: F = s1^2/s2^2 with (n1-1, n2-1) degrees of freedom and a
// two-sided p-value. A diagnostic for choosing between the Welch and
// pooled t-test variants; it does not choose for you.
func VarianceRatio(group1, group2 []float64) (*stats.VarianceRatioResult, error) {
	n1, n2 := len(group1), len(group2)
	if n1 < 2 || n2 < 2 {
		return nil, fmt.Errorf("%w: F-test needs at least 2 observations per group (got %d, %d)",
			core.ErrInsufficientData, n1, n2)
	}
	var1, _ := mstats.SampleVariance(group1)
	var2, _ := mstats.SampleVariance(group2)
	if var2 == 0 {
		return nil, fmt.Errorf("%w: second group is constant", core.ErrZeroVariance)
	}

	f := var1 / var2
	dist := distuv.F{D1: float64(n1 - 1), D2: float64(n2 - 1)}
	cdf := dist.CDF(f)
	p := 2 * cdf
	if tail := 2 * (1 - cdf); tail < p {
		p = tail
	}
	if p > 1 {
		p = 1
	}

	return &stats.VarianceRatioResult{
		F:      f,
		DF1:    n1 - 1,
		DF2:    n2 - 1,
		PValue: p,
	}, nil
}
