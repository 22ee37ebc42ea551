package clinical

import (
	"errors"
	"math"
	"testing"

	"coassoc/domain/core"
)

func TestVarianceRatio_IdenticalGroups(t *testing.T) {
	g := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	res, err := VarianceRatio(g, g)
	if err != nil {
		t.Fatalf("VarianceRatio: %v", err)
	}
	if math.Abs(res.F-1) > 1e-12 {
		t.Fatalf("F = %v, want 1", res.F)
	}
	if math.Abs(res.PValue-1) > 1e-9 {
		t.Fatalf("p = %v, want 1", res.PValue)
	}
	if res.DF1 != 7 || res.DF2 != 7 {
		t.Fatalf("df = (%d, %d), want (7, 7)", res.DF1, res.DF2)
	}
}

func TestVarianceRatio_ScaleQuadruplesF(t *testing.T) {
	g1 := []float64{1, 2, 3, 4, 5, 6}
	g2 := make([]float64, len(g1))
	for i, v := range g1 {
		g2[i] = 2 * v
	}
	res, err := VarianceRatio(g2, g1)
	if err != nil {
		t.Fatalf("VarianceRatio: %v", err)
	}
	if math.Abs(res.F-4) > 1e-12 {
		t.Fatalf("F = %v, want 4", res.F)
	}
	if res.PValue <= 0 || res.PValue >= 1 {
		t.Fatalf("p = %v, want interior", res.PValue)
	}
}

func TestVarianceRatio_TwoSidedSymmetry(t *testing.T) {
	g1 := []float64{1, 2, 3, 4, 5, 6}
	g2 := []float64{2, 5, 1, 9, 3, 12}

	ab, err := VarianceRatio(g1, g2)
	if err != nil {
		t.Fatalf("VarianceRatio: %v", err)
	}
	ba, err := VarianceRatio(g2, g1)
	if err != nil {
		t.Fatalf("VarianceRatio swapped: %v", err)
	}
	if math.Abs(ab.PValue-ba.PValue) > 1e-9 {
		t.Fatalf("p not symmetric under group swap: %v vs %v", ab.PValue, ba.PValue)
	}
}

func TestVarianceRatio_ConstantDenominator(t *testing.T) {
	if _, err := VarianceRatio([]float64{1, 2, 3}, []float64{5, 5, 5}); !errors.Is(err, core.ErrZeroVariance) {
		t.Fatalf("err = %v, want ErrZeroVariance", err)
	}
}
