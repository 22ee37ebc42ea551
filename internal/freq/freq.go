// Package freq tabulates genotype and allele frequencies for bi-allelic
// loci, with optional grouping by an aligned categorical column.
package freq

import (
	"fmt"

	"coassoc/domain/cohort"
	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// implicitGroup labels the single column of an ungrouped result.
const implicitGroup = "all"

// Genotype counts genotype observations per (level, group) and derives
// allele counts via the allele-counting identity for a bi-allelic locus:
//
//	common = 2*homCommon + het
//	rare   = 2*homRare + het
//
// The identity reads contract positions from the coding, never sorted
// label text. groups may be nil for an ungrouped tabulation; present masks
// may be nil when a column has no missing values. A row contributes only
// when both its genotype and its group are observed.
func Genotype(genos []string, genoPresent []bool, groups []string, groupPresent []bool, coding cohort.GenotypeCoding, axis stats.Axis) (*stats.FrequencyResult, error) {
	if err := coding.Validate(); err != nil {
		return nil, err
	}
	if groups != nil && len(groups) != len(genos) {
		return nil, fmt.Errorf("%w: %d genotypes vs %d group labels",
			core.ErrLengthMismatch, len(genos), len(groups))
	}

	groupLabels, groupIndex := groupAxis(genos, genoPresent, groups, groupPresent)
	if groups == nil {
		// Single implicit group: only within-group normalization is meaningful.
		axis = stats.WithinGroup
	}
	g := len(groupLabels)

	res := &stats.FrequencyResult{
		Locus:          coding.Locus,
		Groups:         groupLabels,
		GenotypeLevels: coding.Levels(),
		AlleleLabels:   [2]string{coding.CommonAllele, coding.RareAllele},
		Axis:           axis,
	}
	for r := 0; r < 3; r++ {
		res.GenotypeCounts[r] = make([]int, g)
		res.GenotypeProps[r] = make([]float64, g)
	}
	for r := 0; r < 2; r++ {
		res.AlleleCounts[r] = make([]int, g)
		res.AlleleProps[r] = make([]float64, g)
	}

	for i, label := range genos {
		if genoPresent != nil && !genoPresent[i] {
			continue
		}
		gi, ok := groupIndex(i)
		if !ok {
			continue
		}
		ri, ok := coding.IndexOf(label)
		if !ok {
			return nil, core.NewGenotypeError(coding.Locus, label)
		}
		res.GenotypeCounts[ri][gi]++
		res.N++
	}

	// Allele-counting identity, by contract position.
	for gi := 0; gi < g; gi++ {
		homCommon := res.GenotypeCounts[0][gi]
		het := res.GenotypeCounts[1][gi]
		homRare := res.GenotypeCounts[2][gi]
		res.AlleleCounts[0][gi] = 2*homCommon + het
		res.AlleleCounts[1][gi] = 2*homRare + het
	}

	if err := normalize(res.GenotypeCounts[:], res.GenotypeProps[:], axis); err != nil {
		return nil, fmt.Errorf("genotype frequencies for locus %s: %w", coding.Locus, err)
	}
	if err := normalize(res.AlleleCounts[:], res.AlleleProps[:], axis); err != nil {
		return nil, fmt.Errorf("allele frequencies for locus %s: %w", coding.Locus, err)
	}
	return res, nil
}

// GenotypeColumn is the ungrouped convenience form.
func GenotypeColumn(genos []string, present []bool, coding cohort.GenotypeCoding) (*stats.FrequencyResult, error) {
	return Genotype(genos, present, nil, nil, coding, stats.WithinGroup)
}

// ToContingency lifts a frequency result's genotype counts into a labeled
// contingency table (genotype levels x groups).
func ToContingency(res *stats.FrequencyResult) *cohort.ContingencyTable {
	t := cohort.NewContingencyTable(res.GenotypeLevels[:], res.Groups)
	for ri := range res.GenotypeCounts {
		for ci, c := range res.GenotypeCounts[ri] {
			t.Set(ri, ci, c)
		}
	}
	return t
}

// AlleleContingency lifts the allele counts into a 2xG table.
func AlleleContingency(res *stats.FrequencyResult) *cohort.ContingencyTable {
	t := cohort.NewContingencyTable(res.AlleleLabels[:], res.Groups)
	for ri := range res.AlleleCounts {
		for ci, c := range res.AlleleCounts[ri] {
			t.Set(ri, ci, c)
		}
	}
	return t
}

func groupAxis(genos []string, genoPresent []bool, groups []string, groupPresent []bool) ([]string, func(int) (int, bool)) {
	if groups == nil {
		return []string{implicitGroup}, func(i int) (int, bool) { return 0, true }
	}
	both := make([]bool, len(genos))
	for i := range both {
		both[i] = (genoPresent == nil || genoPresent[i]) && (groupPresent == nil || groupPresent[i])
	}
	labels := cohort.DistinctLabels(groups, both)
	index := map[string]int{}
	for i, l := range labels {
		index[l] = i
	}
	return labels, func(i int) (int, bool) {
		if !both[i] {
			return 0, false
		}
		gi, ok := index[groups[i]]
		return gi, ok
	}
}

// normalize fills props from counts along the requested axis. A zero
// divisor is a domain error, never a silent NaN.
func normalize(counts [][]int, props [][]float64, axis stats.Axis) error {
	if axis == stats.WithinLevel {
		for ri := range counts {
			sum := 0
			for _, c := range counts[ri] {
				sum += c
			}
			if sum == 0 {
				return fmt.Errorf("%w: level row %d", core.ErrZeroDivisor, ri)
			}
			for ci, c := range counts[ri] {
				props[ri][ci] = float64(c) / float64(sum)
			}
		}
		return nil
	}
	cols := len(counts[0])
	for ci := 0; ci < cols; ci++ {
		sum := 0
		for ri := range counts {
			sum += counts[ri][ci]
		}
		if sum == 0 {
			return fmt.Errorf("%w: group column %d", core.ErrZeroDivisor, ci)
		}
		for ri := range counts {
			props[ri][ci] = float64(counts[ri][ci]) / float64(sum)
		}
	}
	return nil
}
