package freq

import (
	"errors"
	"math"
	"testing"

	"coassoc/domain/cohort"
	"coassoc/domain/core"
	"coassoc/domain/stats"
)

var aceCoding = cohort.GenotypeCoding{
	Locus:        "ACE I/D",
	HomCommon:    "II",
	Het:          "ID",
	HomRare:      "DD",
	CommonAllele: "I",
	RareAllele:   "D",
}

func TestGenotype_GroupedEndToEnd(t *testing.T) {
	genos := []string{"II", "ID", "DD", "II", "ID"}
	groups := []string{"NO", "YES", "NO", "YES", "NO"}

	res, err := Genotype(genos, nil, groups, nil, aceCoding, stats.WithinGroup)
	if err != nil {
		t.Fatalf("Genotype: %v", err)
	}

	if got, want := res.Groups, []string{"NO", "YES"}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("groups = %v, want %v", got, want)
	}
	wantGeno := [3][]int{{1, 1}, {1, 1}, {1, 0}}
	for li := range wantGeno {
		for gi := range wantGeno[li] {
			if res.GenotypeCounts[li][gi] != wantGeno[li][gi] {
				t.Fatalf("genotype counts[%d][%d] = %d, want %d (full: %v)",
					li, gi, res.GenotypeCounts[li][gi], wantGeno[li][gi], res.GenotypeCounts)
			}
		}
	}

	// Allele-counting identity: common = 2*homCommon + het, rare = 2*homRare + het.
	wantAllele := [2][]int{{3, 3}, {3, 1}}
	for ai := range wantAllele {
		for gi := range wantAllele[ai] {
			if res.AlleleCounts[ai][gi] != wantAllele[ai][gi] {
				t.Fatalf("allele counts[%d][%d] = %d, want %d (full: %v)",
					ai, gi, res.AlleleCounts[ai][gi], wantAllele[ai][gi], res.AlleleCounts)
			}
		}
	}

	// Allele totals are twice the genotyped individuals per group.
	groupN := []int{3, 2}
	for gi := range res.Groups {
		total := res.AlleleCounts[0][gi] + res.AlleleCounts[1][gi]
		if total != 2*groupN[gi] {
			t.Fatalf("allele total in group %d = %d, want %d", gi, total, 2*groupN[gi])
		}
	}
}

func TestGenotype_ProportionsSumToOneWithinGroup(t *testing.T) {
	genos := []string{"II", "ID", "DD", "II", "ID", "DD", "ID", "II"}
	groups := []string{"a", "b", "a", "b", "a", "b", "a", "b"}

	res, err := Genotype(genos, nil, groups, nil, aceCoding, stats.WithinGroup)
	if err != nil {
		t.Fatalf("Genotype: %v", err)
	}
	for gi := range res.Groups {
		sum := 0.0
		for li := 0; li < 3; li++ {
			sum += res.GenotypeProps[li][gi]
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("genotype proportions in group %d sum to %v, want 1", gi, sum)
		}
		alleleSum := res.AlleleProps[0][gi] + res.AlleleProps[1][gi]
		if math.Abs(alleleSum-1) > 1e-9 {
			t.Fatalf("allele proportions in group %d sum to %v, want 1", gi, alleleSum)
		}
	}
}

func TestGenotype_WithinLevelAxis(t *testing.T) {
	genos := []string{"II", "II", "ID", "DD", "DD", "DD"}
	groups := []string{"a", "b", "a", "a", "b", "b"}

	res, err := Genotype(genos, nil, groups, nil, aceCoding, stats.WithinLevel)
	if err != nil {
		t.Fatalf("Genotype: %v", err)
	}
	for li := 0; li < 3; li++ {
		sum := 0.0
		for gi := range res.Groups {
			sum += res.GenotypeProps[li][gi]
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("level %d proportions sum to %v, want 1", li, sum)
		}
	}
}

func TestGenotypeColumn_AlleleIdentity(t *testing.T) {
	// AA=10, AB=6, BB=4: common allele 26, rare 14, total 40 = 2*20.
	coding := cohort.GenotypeCoding{
		Locus: "toy", HomCommon: "AA", Het: "AB", HomRare: "BB",
		CommonAllele: "A", RareAllele: "B",
	}
	var genos []string
	for i := 0; i < 10; i++ {
		genos = append(genos, "AA")
	}
	for i := 0; i < 6; i++ {
		genos = append(genos, "AB")
	}
	for i := 0; i < 4; i++ {
		genos = append(genos, "BB")
	}

	res, err := GenotypeColumn(genos, nil, coding)
	if err != nil {
		t.Fatalf("GenotypeColumn: %v", err)
	}
	if res.AlleleCounts[0][0] != 26 || res.AlleleCounts[1][0] != 14 {
		t.Fatalf("allele counts = %v, want [26] [14]", res.AlleleCounts)
	}
	if res.N != 20 {
		t.Fatalf("N = %d, want 20", res.N)
	}
}

func TestGenotype_UnknownLevelFails(t *testing.T) {
	_, err := GenotypeColumn([]string{"II", "XX"}, nil, aceCoding)
	if !errors.Is(err, core.ErrBadGenotype) {
		t.Fatalf("err = %v, want ErrBadGenotype", err)
	}
}

func TestGenotype_ZeroRowFailsWithinLevel(t *testing.T) {
	// No DD observed: the DD row sum is zero and within-level
	// normalization must surface a domain error, not NaN.
	genos := []string{"II", "ID", "II", "ID"}
	groups := []string{"a", "a", "b", "b"}
	_, err := Genotype(genos, nil, groups, nil, aceCoding, stats.WithinLevel)
	if !errors.Is(err, core.ErrZeroDivisor) {
		t.Fatalf("err = %v, want ErrZeroDivisor", err)
	}
}

func TestGenotype_MissingRowsAreSkipped(t *testing.T) {
	genos := []string{"II", "ID", "DD", "II"}
	present := []bool{true, false, true, true}

	res, err := GenotypeColumn(genos, present, aceCoding)
	if err != nil {
		t.Fatalf("GenotypeColumn: %v", err)
	}
	if res.N != 3 {
		t.Fatalf("N = %d, want 3", res.N)
	}
	if res.GenotypeCounts[1][0] != 0 {
		t.Fatalf("het count = %d, want 0", res.GenotypeCounts[1][0])
	}
}
