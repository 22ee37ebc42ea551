// Package clinical tests a binary or continuous clinical outcome against
// covariates: two-sample t-tests with normality and variance-homogeneity
// prechecks, and univariate logistic regression.
package clinical

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// TTest compares two group means. Welch's approximation (unequal
// variances) is the default; Pooled assumes equal variances. The choice
// of variant is the caller's: the Shapiro-Wilk and F-test diagnostics in
// this package inform it but never make it.
func TTest(group1, group2 []float64, variant stats.TTestVariant) (*stats.TTestResult, error) {
	n1, n2 := float64(len(group1)), float64(len(group2))
	if n1 < 2 || n2 < 2 {
		return nil, fmt.Errorf("%w: t-test needs at least 2 observations per group (got %d, %d)",
			core.ErrInsufficientData, len(group1), len(group2))
	}

	mean1, _ := mstats.Mean(group1)
	mean2, _ := mstats.Mean(group2)
	var1, _ := mstats.SampleVariance(group1)
	var2, _ := mstats.SampleVariance(group2)
	if var1 == 0 && var2 == 0 {
		return nil, fmt.Errorf("%w: both groups are constant", core.ErrZeroVariance)
	}

	var se, df float64
	switch variant {
	case stats.Pooled:
		pooled := ((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2)
		se = math.Sqrt(pooled * (1/n1 + 1/n2))
		df = n1 + n2 - 2
	default:
		se = math.Sqrt(var1/n1 + var2/n2)
		// Welch-Satterthwaite degrees of freedom
		df = math.Pow(var1/n1+var2/n2, 2) /
			(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))
	}
	if se == 0 {
		return nil, fmt.Errorf("%w: zero standard error", core.ErrZeroVariance)
	}

	t := (mean1 - mean2) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(math.Abs(t)))

	return &stats.TTestResult{
		Variant: variant,
		N1:      len(group1),
		N2:      len(group2),
		Mean1:   mean1,
		Mean2:   mean2,
		SD1:     math.Sqrt(var1),
		SD2:     math.Sqrt(var2),
		T:       t,
		DF:      df,
		PValue:  p,
	}, nil
}
