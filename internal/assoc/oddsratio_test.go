package assoc

import (
	"errors"
	"math"
	"testing"

	"coassoc/domain/core"
)

func TestOddsRatio_KnownValue(t *testing.T) {
	// [[10,20],[30,40]]: OR = 400/600 = 2/3,
	// SE = sqrt(1/10+1/20+1/30+1/40) = 0.45644.
	res, err := OddsRatio(table2x2(10, 20, 30, 40), 0.95)
	if err != nil {
		t.Fatalf("OddsRatio: %v", err)
	}
	if !res.Defined {
		t.Fatalf("OR reported undefined")
	}
	if math.Abs(res.OR-2.0/3.0) > 1e-9 {
		t.Fatalf("OR = %v, want 2/3", res.OR)
	}
	if math.Abs(res.LogSE-0.45644) > 1e-4 {
		t.Fatalf("log SE = %v, want 0.45644", res.LogSE)
	}
	if math.Abs(res.Lower-0.2725) > 1e-3 || math.Abs(res.Upper-1.6310) > 1e-3 {
		t.Fatalf("CI = (%v, %v), want (0.2725, 1.6310)", res.Lower, res.Upper)
	}
}

func TestOddsRatio_RowReversalInvertsRatio(t *testing.T) {
	tab := table2x2(12, 7, 5, 21)
	fwd, err := OddsRatio(tab, 0.95)
	if err != nil {
		t.Fatalf("OddsRatio: %v", err)
	}
	rev, err := OddsRatio(tab.ReverseRows(), 0.95)
	if err != nil {
		t.Fatalf("OddsRatio reversed: %v", err)
	}
	if math.Abs(fwd.OR*rev.OR-1) > 1e-9 {
		t.Fatalf("OR %v and row-reversed OR %v are not reciprocals", fwd.OR, rev.OR)
	}
}

func TestOddsRatio_ZeroCellUndefined(t *testing.T) {
	res, err := OddsRatio(table2x2(10, 0, 30, 40), 0.95)
	if err != nil {
		t.Fatalf("OddsRatio: %v", err)
	}
	if res.Defined {
		t.Fatalf("zero-cell OR reported as defined")
	}
	if !math.IsInf(res.OR, 1) {
		t.Fatalf("OR = %v, want +Inf (never clamped)", res.OR)
	}
	if !math.IsNaN(res.Lower) || !math.IsNaN(res.Upper) {
		t.Fatalf("CI = (%v, %v), want NaN bounds", res.Lower, res.Upper)
	}
}

func TestOddsRatio_NegativeCellFails(t *testing.T) {
	tab := table2x2(1, 2, 3, 4)
	tab.Set(1, 1, -4)
	if _, err := OddsRatio(tab, 0.95); !errors.Is(err, core.ErrNegativeCell) {
		t.Fatalf("err = %v, want ErrNegativeCell", err)
	}
}
