package clinical

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"coassoc/domain/core"
	"coassoc/domain/stats"
)

const (
	irlsMaxIter = 50
	irlsTol     = 1e-9
)

// UnivariateLogit fits outcome ~ intercept + covariate by iteratively
// reweighted least squares and reports the Wald test on the covariate
// coefficient, the exponentiated coefficient as an odds ratio, and a Wald
// confidence interval on that ratio.
func UnivariateLogit(name string, outcome []bool, covariate []float64, confidence float64) (*stats.LogitResult, error) {
	n := len(outcome)
	if n != len(covariate) {
		return nil, fmt.Errorf("%w: %d outcomes vs %d covariate values",
			core.ErrLengthMismatch, n, len(covariate))
	}
	if n < 4 {
		return nil, fmt.Errorf("%w: logistic regression needs n >= 4, got %d",
			core.ErrInsufficientData, n)
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, core.NewValidationError("confidence", fmt.Sprintf("must be in (0,1), got %v", confidence))
	}

	pos := 0
	for _, y := range outcome {
		if y {
			pos++
		}
	}
	if pos == 0 || pos == n {
		return nil, fmt.Errorf("%w: outcome has a single class", core.ErrZeroVariance)
	}

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		if outcome[i] {
			y[i] = 1
		}
	}

	beta := [2]float64{math.Log(float64(pos) / float64(n-pos)), 0}
	info := mat.NewSymDense(2, nil)
	converged := false
	iter := 0

	for ; iter < irlsMaxIter; iter++ {
		// Working weights and response for the current linear predictor.
		w := make([]float64, n)
		z := make([]float64, n)
		for i := 0; i < n; i++ {
			eta := beta[0] + beta[1]*covariate[i]
			p := 1 / (1 + math.Exp(-eta))
			v := p * (1 - p)
			if v < 1e-10 {
				v = 1e-10
			}
			w[i] = v
			z[i] = eta + (y[i]-p)/v
		}

		// XtWX and XtWz for the weighted normal equations.
		xtwx := mat.NewSymDense(2, nil)
		xtwz := [2]float64{}
		for i := 0; i < n; i++ {
			xi := [2]float64{1, covariate[i]}
			for r := 0; r < 2; r++ {
				for c := r; c < 2; c++ {
					xtwx.SetSym(r, c, xtwx.At(r, c)+w[i]*xi[r]*xi[c])
				}
				xtwz[r] += w[i] * xi[r] * z[i]
			}
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(xtwx); !ok {
			return nil, fmt.Errorf("%w: information matrix not positive definite", core.ErrNotConverged)
		}
		var sol mat.VecDense
		if err := chol.SolveVecTo(&sol, mat.NewVecDense(2, xtwz[:])); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrNotConverged, err)
		}

		delta := math.Abs(sol.AtVec(0)-beta[0]) + math.Abs(sol.AtVec(1)-beta[1])
		beta[0], beta[1] = sol.AtVec(0), sol.AtVec(1)
		info.CopySym(xtwx)
		if delta < irlsTol {
			converged = true
			break
		}
	}

	// Variance of the coefficient from the inverse information matrix.
	var cov mat.SymDense
	var chol mat.Cholesky
	if ok := chol.Factorize(info); !ok {
		return nil, fmt.Errorf("%w: information matrix not positive definite", core.ErrNotConverged)
	}
	if err := chol.InverseTo(&cov); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNotConverged, err)
	}
	se := math.Sqrt(cov.At(1, 1))

	zq := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	waldZ := beta[1] / se
	p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(waldZ)))

	return &stats.LogitResult{
		Covariate:   name,
		Intercept:   beta[0],
		Coefficient: beta[1],
		SE:          se,
		WaldZ:       waldZ,
		PValue:      p,
		OR:          math.Exp(beta[1]),
		ORLower:     math.Exp(beta[1] - zq*se),
		ORUpper:     math.Exp(beta[1] + zq*se),
		Confidence:  confidence,
		N:           n,
		Iterations:  iter + 1,
		Converged:   converged,
	}, nil
}
