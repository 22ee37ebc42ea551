package cohort

import (
	"coassoc/domain/core"
)

// GroupingMap collapses the three genotype levels of one locus into two.
// The pairing was decided once, by inspecting the signed residuals of a
// preliminary chi-squared test, and is held here as fixed configuration.
// It is never re-derived at runtime: residual signs near zero are unstable
// and the collapse is an analyst decision, not an algorithm.
type GroupingMap struct {
	Locus     string            `json:"locus"`
	Collapsed map[string]string `json:"collapsed"`
}

// Validate checks the map covers exactly the coding's three levels and
// targets exactly two collapsed labels.
func (g GroupingMap) Validate(c GenotypeCoding) error {
	if g.Locus != c.Locus {
		return core.NewValidationError(g.Locus, "grouping map locus does not match coding")
	}
	if len(g.Collapsed) != 3 {
		return core.NewValidationError(g.Locus, "grouping map must cover exactly three genotype levels")
	}
	targets := map[string]bool{}
	for _, raw := range c.Levels() {
		to, ok := g.Collapsed[raw]
		if !ok {
			return core.NewValidationError(g.Locus, "grouping map misses genotype level "+raw)
		}
		targets[to] = true
	}
	if len(targets) != 2 {
		return core.NewValidationError(g.Locus, "grouping map must collapse onto exactly two labels")
	}
	return nil
}

// Labels returns the two collapsed labels in contract order: the label the
// homozygous-common genotype maps to first, then the other one.
func (g GroupingMap) Labels(c GenotypeCoding) [2]string {
	first := g.Collapsed[c.HomCommon]
	for _, raw := range c.Levels() {
		if to := g.Collapsed[raw]; to != first {
			return [2]string{first, to}
		}
	}
	return [2]string{first, first}
}

// Apply maps a genotype column onto its collapsed two-level form.
func (g GroupingMap) Apply(vals []string) ([]string, error) {
	out := make([]string, len(vals))
	for i, v := range vals {
		to, ok := g.Collapsed[v]
		if !ok {
			return nil, core.NewGenotypeError(g.Locus, v)
		}
		out[i] = to
	}
	return out, nil
}
