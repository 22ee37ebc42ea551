package assoc

import (
	"errors"
	"math"
	"testing"

	"coassoc/domain/cohort"
	"coassoc/domain/core"
)

func table2x2(a, b, c, d int) *cohort.ContingencyTable {
	t := cohort.NewContingencyTable([]string{"exposed", "unexposed"}, []string{"case", "control"})
	t.Set(0, 0, a)
	t.Set(0, 1, b)
	t.Set(1, 0, c)
	t.Set(1, 1, d)
	return t
}

func TestChiSquare_KnownValue(t *testing.T) {
	// [[10,20],[30,40]]: expected [[12,18],[28,42]], chi2 = 0.79365.
	res, err := ChiSquare(table2x2(10, 20, 30, 40), false)
	if err != nil {
		t.Fatalf("ChiSquare: %v", err)
	}
	if math.Abs(res.Statistic-0.79365) > 1e-4 {
		t.Fatalf("statistic = %v, want 0.79365", res.Statistic)
	}
	if res.DF != 1 {
		t.Fatalf("df = %d, want 1", res.DF)
	}
	if math.Abs(res.PValue-0.3729) > 1e-3 {
		t.Fatalf("p = %v, want ~0.3729", res.PValue)
	}
	if math.Abs(res.ExpectedMin-12) > 1e-9 {
		t.Fatalf("min expected = %v, want 12", res.ExpectedMin)
	}
}

func TestChiSquare_TransposeInvariant(t *testing.T) {
	tab := cohort.NewContingencyTable([]string{"II", "ID", "DD"}, []string{"ICU", "control"})
	counts := [][]int{{30, 60}, {50, 90}, {20, 50}}
	for i := range counts {
		for j := range counts[i] {
			tab.Set(i, j, counts[i][j])
		}
	}

	a, err := ChiSquare(tab, false)
	if err != nil {
		t.Fatalf("ChiSquare: %v", err)
	}
	b, err := ChiSquare(tab.Transpose(), false)
	if err != nil {
		t.Fatalf("ChiSquare transposed: %v", err)
	}
	if math.Abs(a.Statistic-b.Statistic) > 1e-9 {
		t.Fatalf("statistic changed under transpose: %v vs %v", a.Statistic, b.Statistic)
	}
	if a.DF != b.DF {
		t.Fatalf("df changed under transpose: %d vs %d", a.DF, b.DF)
	}
	if math.Abs(a.PValue-b.PValue) > 1e-9 {
		t.Fatalf("p changed under transpose: %v vs %v", a.PValue, b.PValue)
	}
}

func TestChiSquare_YatesShrinksStatistic(t *testing.T) {
	plain, err := ChiSquare(table2x2(12, 5, 6, 14), false)
	if err != nil {
		t.Fatalf("ChiSquare: %v", err)
	}
	corrected, err := ChiSquare(table2x2(12, 5, 6, 14), true)
	if err != nil {
		t.Fatalf("ChiSquare yates: %v", err)
	}
	if corrected.Statistic >= plain.Statistic {
		t.Fatalf("Yates statistic %v not below uncorrected %v", corrected.Statistic, plain.Statistic)
	}
	if !corrected.Yates || plain.Yates {
		t.Fatalf("Yates flag not reported")
	}
}

func TestChiSquare_DegenerateInputs(t *testing.T) {
	zeroRow := table2x2(0, 0, 30, 40)
	if _, err := ChiSquare(zeroRow, false); !errors.Is(err, core.ErrZeroDivisor) {
		t.Fatalf("zero row: err = %v, want ErrZeroDivisor", err)
	}

	negative := table2x2(1, 2, 3, 4)
	negative.Set(0, 0, -1)
	if _, err := ChiSquare(negative, false); !errors.Is(err, core.ErrNegativeCell) {
		t.Fatalf("negative cell: err = %v, want ErrNegativeCell", err)
	}
}

func TestFisherExact_KnownValue(t *testing.T) {
	// [[5,0],[0,5]]: the two perfectly discordant tables are the only ones
	// as extreme, each with probability 1/C(10,5) = 1/252.
	res, err := FisherExact(table2x2(5, 0, 0, 5))
	if err != nil {
		t.Fatalf("FisherExact: %v", err)
	}
	if math.Abs(res.PValue-2.0/252.0) > 1e-6 {
		t.Fatalf("p = %v, want %v", res.PValue, 2.0/252.0)
	}
}

func TestFisherExact_Needs2x2(t *testing.T) {
	tab := cohort.NewContingencyTable([]string{"a", "b", "c"}, []string{"x", "y"})
	if _, err := FisherExact(tab); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}
