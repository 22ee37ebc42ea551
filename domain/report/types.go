package report

import (
	"time"

	"coassoc/domain/core"
	"coassoc/domain/stats"
)

// Model is the fully computed report: every table and test result the
// renderer needs, with no computation left to the presentation layer.
type Model struct {
	ID          core.ReportID
	Title       string
	GeneratedAt time.Time

	Patients PopulationSummary
	Controls PopulationSummary

	Loci     []LocusSection
	Clinical []CovariateSection
	Age      *AgeSection
	Expr     *ExpressionSection
}

// PopulationSummary describes one input population.
type PopulationSummary struct {
	Name string
	N    int
}

// LocusSection carries every per-locus result.
type LocusSection struct {
	Locus string

	// Hardy-Weinberg check on the control population (data quality).
	HWEControls *stats.HWEResult

	// Case/control comparisons on the full 3-level genotype and on the
	// derived alleles. Frequencies normalized within group.
	CaseControlGenotypes *stats.FrequencyResult
	GenotypeChiSquare    *stats.ChiSquareResult
	AlleleChiSquare      *stats.ChiSquareResult
	AlleleOddsRatio      *stats.OddsRatioResult
	AlleleFisher         *stats.FisherResult

	// Outcome association inside the patient cohort on the collapsed
	// 2-level genotype.
	CollapsedLabels    [2]string
	OutcomeTable       [][]int // collapsed genotype x outcome counts
	OutcomeLabels      [2]string
	OutcomeChiSquare   *stats.ChiSquareResult
	OutcomeOddsRatio   *stats.OddsRatioResult
	OutcomeFisher      *stats.FisherResult
	OutcomeProportions *stats.FrequencyResult
	ProportionPlot     string // rendered file name, empty when plotting is off
}

// CovariateSection is one univariate logistic regression row.
type CovariateSection struct {
	Covariate string
	Logit     *stats.LogitResult
}

// AgeSection reports the continuous-covariate group comparison with its
// diagnostics. The diagnostics are reported, not acted on: both t-test
// variants are shown and the choice of which to trust stays with the
// reader.
type AgeSection struct {
	ByOutcome     [2]string
	GroupValues   [2][]float64 // raw ages per outcome group, for the density plot
	Welch         *stats.TTestResult
	Pooled        *stats.TTestResult
	NormalityPos  *stats.ShapiroResult
	NormalityNeg  *stats.ShapiroResult
	VarianceRatio *stats.VarianceRatioResult
	DensityPlot   string // rendered file name, empty when plotting is off
}

// ExpressionSection compares Ct ratios across the collapsed genotype.
type ExpressionSection struct {
	Locus       string
	Groups      [2]string
	GroupValues [2][]float64
	Welch       *stats.TTestResult
	BoxPlot     string
}
