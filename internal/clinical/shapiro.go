package clinical

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// ShapiroWilk computes the Shapiro-Wilk W statistic and p-value using
// Royston's approximation (AS R94), valid for 3 <= n <= 5000. Reported as
// a precheck before trusting a t-test variant; a low p flags departure
// from normality, it does not abort anything.
func ShapiroWilk(data []float64) (*stats.ShapiroResult, error) {
	n := len(data)
	if n < 3 {
		return nil, fmt.Errorf("%w: Shapiro-Wilk needs n >= 3, got %d", core.ErrInsufficientData, n)
	}
	if n > 5000 {
		return nil, fmt.Errorf("%w: Shapiro-Wilk approximation is unreliable for n > 5000 (n=%d)",
			core.ErrInsufficientData, n)
	}

	x := make([]float64, n)
	copy(x, data)
	sort.Float64s(x)
	if x[0] == x[n-1] {
		return nil, fmt.Errorf("%w: all observations identical", core.ErrZeroVariance)
	}

	w := swStatistic(x)
	p := swPValue(w, n)
	return &stats.ShapiroResult{W: w, PValue: p, N: n}, nil
}

// swStatistic computes W from sorted data via Royston's normalized
// expected order statistics with polynomial tail corrections.
func swStatistic(x []float64) float64 {
	n := len(x)
	fn := float64(n)

	// Expected values of standard normal order statistics (Blom scores).
	m := make([]float64, n)
	m2 := 0.0
	for i := 0; i < n; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (fn + 0.25))
		m2 += m[i] * m[i]
	}

	a := make([]float64, n)
	u := 1 / math.Sqrt(fn)
	rm2 := math.Sqrt(m2)
	switch {
	case n == 3:
		a[0] = -math.Sqrt2 / 2
		a[2] = math.Sqrt2 / 2
	case n <= 5:
		an := m[n-1]/rm2 + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685-2.706056*u))))
		phi := (m2 - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		a[n-1] = an
		a[0] = -an
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	default:
		an := m[n-1]/rm2 + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685-2.706056*u))))
		an1 := m[n-2]/rm2 + u*(0.042981+u*(-0.293762+u*(-1.752461+u*(5.682633-3.582633*u))))
		phi := (m2 - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		a[n-1] = an
		a[n-2] = an1
		a[0] = -an
		a[1] = -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= fn

	num, den := 0.0, 0.0
	for i, v := range x {
		num += a[i] * v
		den += (v - mean) * (v - mean)
	}
	w := num * num / den
	if w > 1 {
		w = 1
	}
	return w
}

// swPValue transforms W to a p-value via Royston's normalizing
// approximations per sample-size band.
func swPValue(w float64, n int) float64 {
	fn := float64(n)
	if n == 3 {
		// Exact for n=3.
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return math.Max(0, math.Min(1, p))
	}

	var z float64
	if n <= 11 {
		gamma := -2.273 + 0.459*fn
		mu := 0.5440 + fn*(-0.39978+fn*(0.025054-0.0006714*fn))
		sigma := math.Exp(1.3822 + fn*(-0.77857+fn*(0.062767-0.0020322*fn)))
		lw := -math.Log(gamma - math.Log(1-w))
		z = (lw - mu) / sigma
	} else {
		ln := math.Log(fn)
		mu := -1.5861 + ln*(-0.31082+ln*(-0.083751+0.0038915*ln))
		sigma := math.Exp(-0.4803 + ln*(-0.082676+0.0030302*ln))
		lw := math.Log(1 - w)
		z = (lw - mu) / sigma
	}
	return 1 - distuv.UnitNormal.CDF(z)
}
