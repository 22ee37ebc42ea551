package assoc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// HardyWeinberg tests the three observed genotype counts of a bi-allelic
// locus against the distribution expected under random mating. Allele
// frequencies are estimated from the observed genotypes
// (p = (2*homCommon + het) / 2N), expected counts follow p^2, 2pq, q^2,
// and the fit is a chi-squared with one degree of freedom.
//
// A monomorphic site (one allele absent) is reported with chi-square 0 and
// p=1: the whole sample homozygous for the only allele present is exactly
// the equilibrium expectation.
func HardyWeinberg(homCommon, het, homRare int) (*stats.HWEResult, error) {
	if homCommon < 0 || het < 0 || homRare < 0 {
		return nil, fmt.Errorf("%w: genotype counts (%d,%d,%d)",
			core.ErrNegativeCell, homCommon, het, homRare)
	}
	n := homCommon + het + homRare
	if n == 0 {
		return nil, fmt.Errorf("%w: no genotyped individuals", core.ErrInsufficientData)
	}

	common := 2*homCommon + het
	rare := 2*homRare + het
	p := float64(common) / float64(2*n)
	q := 1 - p

	res := &stats.HWEResult{CommonFreq: p}
	if common == 0 || rare == 0 {
		res.Monomorphic = true
		res.PValue = 1
		res.ExpectedAA = p * p * float64(n)
		res.ExpectedAa = 2 * p * q * float64(n)
		res.Expectedaa = q * q * float64(n)
		return res, nil
	}

	eAA := p * p * float64(n)
	eAa := 2 * p * q * float64(n)
	eaa := q * q * float64(n)

	chi := math.Pow(eAA-float64(homCommon), 2)/eAA +
		math.Pow(eAa-float64(het), 2)/eAa +
		math.Pow(eaa-float64(homRare), 2)/eaa

	dist := distuv.ChiSquared{K: 1}
	res.ChiSquare = chi
	res.PValue = 1 - dist.CDF(chi)
	res.ExpectedAA = eAA
	res.ExpectedAa = eAa
	res.Expectedaa = eaa
	return res, nil
}
