// Package report renders the computed model into a markdown document and
// an HTML copy, with the figure files alongside.
package report

import (
	"fmt"
	"math"
	"strings"

	"coassoc/domain/report"
	"coassoc/domain/stats"
)

// Markdown builds the full report document from the model.
func Markdown(m *report.Model) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	fmt.Fprintf(&b, "Report `%s`, generated %s.\n\n", m.ID, m.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "Populations: %s (n=%d), %s (n=%d).\n\n",
		m.Patients.Name, m.Patients.N, m.Controls.Name, m.Controls.N)

	for i := range m.Loci {
		locusSection(&b, &m.Loci[i])
	}
	clinicalSection(&b, m.Clinical)
	ageSection(&b, m.Age)
	expressionSection(&b, m.Expr)

	return []byte(b.String())
}

func locusSection(b *strings.Builder, s *report.LocusSection) {
	fmt.Fprintf(b, "## %s\n\n", s.Locus)

	if s.HWEControls != nil {
		h := s.HWEControls
		if h.Monomorphic {
			fmt.Fprintf(b, "Controls are monomorphic at this locus (common allele frequency %.3f).\n\n", h.CommonFreq)
		} else {
			fmt.Fprintf(b, "Hardy-Weinberg check (controls): chi2=%.3f, p=%s, common allele frequency %.3f.\n\n",
				h.ChiSquare, fmtP(h.PValue), h.CommonFreq)
		}
	}

	if f := s.CaseControlGenotypes; f != nil {
		fmt.Fprintf(b, "### Case/control genotype distribution\n\n")
		freqTable(b, f)
		if s.GenotypeChiSquare != nil {
			chiLine(b, "Genotype", s.GenotypeChiSquare)
		}
		if s.AlleleChiSquare != nil {
			chiLine(b, "Allele", s.AlleleChiSquare)
		}
		if s.AlleleOddsRatio != nil {
			orLine(b, "Allele", s.AlleleOddsRatio)
		}
		if s.AlleleFisher != nil {
			fmt.Fprintf(b, "Fisher exact (allele 2x2): p=%s.\n\n", fmtP(s.AlleleFisher.PValue))
		}
	}

	fmt.Fprintf(b, "### Outcome association, %s vs %s\n\n", s.CollapsedLabels[0], s.CollapsedLabels[1])
	fmt.Fprintf(b, "| genotype | %s | %s |\n|---|---|---|\n", s.OutcomeLabels[0], s.OutcomeLabels[1])
	for i, label := range s.CollapsedLabels {
		fmt.Fprintf(b, "| %s | %d | %d |\n", label, s.OutcomeTable[i][0], s.OutcomeTable[i][1])
	}
	fmt.Fprintf(b, "\n")
	if s.OutcomeChiSquare != nil {
		chiLine(b, "Outcome", s.OutcomeChiSquare)
	}
	if s.OutcomeOddsRatio != nil {
		orLine(b, "Outcome", s.OutcomeOddsRatio)
	}
	if s.OutcomeFisher != nil {
		fmt.Fprintf(b, "Fisher exact (outcome 2x2): p=%s.\n\n", fmtP(s.OutcomeFisher.PValue))
	}
	if s.ProportionPlot != "" {
		fmt.Fprintf(b, "![%s genotype proportions](%s)\n\n", s.Locus, s.ProportionPlot)
	}
}

func freqTable(b *strings.Builder, f *stats.FrequencyResult) {
	fmt.Fprintf(b, "| level |")
	for _, g := range f.Groups {
		fmt.Fprintf(b, " %s |", g)
	}
	fmt.Fprintf(b, "\n|---|")
	for range f.Groups {
		fmt.Fprintf(b, "---|")
	}
	fmt.Fprintf(b, "\n")
	for li, level := range f.GenotypeLevels {
		fmt.Fprintf(b, "| %s |", level)
		for gi := range f.Groups {
			fmt.Fprintf(b, " %d (%.1f%%) |", f.GenotypeCounts[li][gi], 100*f.GenotypeProps[li][gi])
		}
		fmt.Fprintf(b, "\n")
	}
	for ai, allele := range f.AlleleLabels {
		fmt.Fprintf(b, "| allele %s |", allele)
		for gi := range f.Groups {
			fmt.Fprintf(b, " %d (%.1f%%) |", f.AlleleCounts[ai][gi], 100*f.AlleleProps[ai][gi])
		}
		fmt.Fprintf(b, "\n")
	}
	fmt.Fprintf(b, "\n")
}

func chiLine(b *strings.Builder, what string, r *stats.ChiSquareResult) {
	correction := "no continuity correction"
	if r.Yates {
		correction = "Yates correction"
	}
	fmt.Fprintf(b, "%s chi-squared: chi2=%.3f, df=%d, p=%s (%s; min expected cell %.2f).\n\n",
		what, r.Statistic, r.DF, fmtP(r.PValue), correction, r.ExpectedMin)
}

func orLine(b *strings.Builder, what string, r *stats.OddsRatioResult) {
	if !r.Defined {
		fmt.Fprintf(b, "%s odds ratio: undefined (zero cell; point estimate %v).\n\n", what, r.OR)
		return
	}
	fmt.Fprintf(b, "%s odds ratio: %.3f (%.0f%% CI %.3f to %.3f).\n\n",
		what, r.OR, 100*r.Confidence, r.Lower, r.Upper)
}

func clinicalSection(b *strings.Builder, rows []report.CovariateSection) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "## Clinical covariates (univariate logistic regression)\n\n")
	fmt.Fprintf(b, "| covariate | OR | CI | Wald p | n |\n|---|---|---|---|---|\n")
	for _, row := range rows {
		l := row.Logit
		fmt.Fprintf(b, "| %s | %.3f | %.3f to %.3f | %s | %d |\n",
			row.Covariate, l.OR, l.ORLower, l.ORUpper, fmtP(l.PValue), l.N)
	}
	fmt.Fprintf(b, "\n")
}

func ageSection(b *strings.Builder, s *report.AgeSection) {
	if s == nil {
		return
	}
	fmt.Fprintf(b, "## Age by outcome\n\n")
	for _, t := range []*stats.TTestResult{s.Welch, s.Pooled} {
		if t == nil {
			continue
		}
		fmt.Fprintf(b, "%s t-test: %s %.1f (sd %.1f, n=%d) vs %s %.1f (sd %.1f, n=%d); t=%.3f, df=%.1f, p=%s.\n\n",
			t.Variant, s.ByOutcome[0], t.Mean1, t.SD1, t.N1,
			s.ByOutcome[1], t.Mean2, t.SD2, t.N2, t.T, t.DF, fmtP(t.PValue))
	}
	if s.NormalityNeg != nil && s.NormalityPos != nil {
		fmt.Fprintf(b, "Shapiro-Wilk: %s W=%.4f p=%s; %s W=%.4f p=%s.\n\n",
			s.ByOutcome[0], s.NormalityNeg.W, fmtP(s.NormalityNeg.PValue),
			s.ByOutcome[1], s.NormalityPos.W, fmtP(s.NormalityPos.PValue))
	}
	if s.VarianceRatio != nil {
		fmt.Fprintf(b, "Variance homogeneity: F=%.3f (df %d, %d), p=%s.\n\n",
			s.VarianceRatio.F, s.VarianceRatio.DF1, s.VarianceRatio.DF2, fmtP(s.VarianceRatio.PValue))
	}
	if s.DensityPlot != "" {
		fmt.Fprintf(b, "![age density](%s)\n\n", s.DensityPlot)
	}
}

func expressionSection(b *strings.Builder, s *report.ExpressionSection) {
	if s == nil {
		return
	}
	fmt.Fprintf(b, "## Expression (Ct ratio) by %s group\n\n", s.Locus)
	t := s.Welch
	fmt.Fprintf(b, "%s %.3f (sd %.3f, n=%d) vs %s %.3f (sd %.3f, n=%d); Welch t=%.3f, p=%s.\n\n",
		s.Groups[0], t.Mean1, t.SD1, t.N1, s.Groups[1], t.Mean2, t.SD2, t.N2, t.T, fmtP(t.PValue))
	if s.BoxPlot != "" {
		fmt.Fprintf(b, "![expression boxplot](%s)\n\n", s.BoxPlot)
	}
}

// fmtP prints a p-value the way the tables do: very small values as a
// bound, everything else to four decimals.
func fmtP(p float64) string {
	if math.IsNaN(p) {
		return "NA"
	}
	if p < 0.0001 {
		return "<0.0001"
	}
	return fmt.Sprintf("%.4f", p)
}
