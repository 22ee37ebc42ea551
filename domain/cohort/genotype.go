package cohort

import (
	"fmt"

	"coassoc/domain/core"
)

// GenotypeCoding fixes the ordered genotype triple for a bi-allelic locus.
// The order (homozygous-common, heterozygous, homozygous-rare) is a hard
// contract: allele counting reads positions, not labels, so the caller
// must declare the order explicitly rather than rely on sorted label text.
type GenotypeCoding struct {
	Locus        string `json:"locus"`
	HomCommon    string `json:"hom_common"`
	Het          string `json:"het"`
	HomRare      string `json:"hom_rare"`
	CommonAllele string `json:"common_allele"`
	RareAllele   string `json:"rare_allele"`
}

// Levels returns the genotype labels in contract order.
func (c GenotypeCoding) Levels() [3]string {
	return [3]string{c.HomCommon, c.Het, c.HomRare}
}

// IndexOf maps an observed genotype label to its contract position.
func (c GenotypeCoding) IndexOf(label string) (int, bool) {
	switch label {
	case c.HomCommon:
		return 0, true
	case c.Het:
		return 1, true
	case c.HomRare:
		return 2, true
	}
	return 0, false
}

// Validate checks the coding declares three distinct non-empty genotype
// levels and two distinct allele labels.
func (c GenotypeCoding) Validate() error {
	if c.Locus == "" {
		return core.NewValidationError("locus", "empty name")
	}
	levels := c.Levels()
	for i, l := range levels {
		if l == "" {
			return core.NewValidationError(c.Locus, fmt.Sprintf("genotype level %d is empty", i))
		}
	}
	if levels[0] == levels[1] || levels[0] == levels[2] || levels[1] == levels[2] {
		return core.NewValidationError(c.Locus, "genotype levels must be distinct")
	}
	if c.CommonAllele == "" || c.RareAllele == "" || c.CommonAllele == c.RareAllele {
		return core.NewValidationError(c.Locus, "allele labels must be two distinct non-empty strings")
	}
	return nil
}

// CheckColumn verifies every observed genotype is one of the declared levels.
func (c GenotypeCoding) CheckColumn(vals []string) error {
	for _, v := range vals {
		if _, ok := c.IndexOf(v); !ok {
			return core.NewGenotypeError(c.Locus, v)
		}
	}
	return nil
}
