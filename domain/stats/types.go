package stats

// Result types for the test battery. These are derived, read-only values:
// computed once per (variable, grouping) pair, composed into a report,
// never mutated.

// Axis selects the normalization direction of a frequency matrix.
type Axis int

const (
	// WithinGroup divides each column by its column sum: the genotype
	// composition of each group. The only valid axis when no grouping
	// column was supplied.
	WithinGroup Axis = iota
	// WithinLevel divides each row by its row sum: the distribution of a
	// genotype level across groups.
	WithinLevel
)

func (a Axis) String() string {
	if a == WithinLevel {
		return "within_level"
	}
	return "within_group"
}

// FrequencyResult holds genotype and allele counts and proportions for one
// locus under one grouping.
type FrequencyResult struct {
	Locus          string       `json:"locus"`
	Groups         []string     `json:"groups"`
	GenotypeLevels [3]string    `json:"genotype_levels"` // hom-common, het, hom-rare
	GenotypeCounts [3][]int     `json:"genotype_counts"` // 3xG
	GenotypeProps  [3][]float64 `json:"genotype_props"`
	AlleleLabels   [2]string    `json:"allele_labels"` // common, rare
	AlleleCounts   [2][]int     `json:"allele_counts"` // 2xG
	AlleleProps    [2][]float64 `json:"allele_props"`
	Axis           Axis         `json:"axis"`
	N              int          `json:"n"` // non-missing genotyped individuals
}

// ChiSquareResult is a Pearson chi-squared independence test result.
type ChiSquareResult struct {
	Statistic   float64 `json:"statistic"`
	DF          int     `json:"df"`
	PValue      float64 `json:"p_value"`
	Yates       bool    `json:"yates"`        // continuity correction applied
	ExpectedMin float64 `json:"expected_min"` // smallest expected cell, for the analyst
	N           int     `json:"n"`
}

// OddsRatioResult is a 2x2 odds ratio with a Wald confidence interval.
// Defined is false when a zero cell makes the ratio undefined or infinite;
// the point estimate is then reported as-is (0, +Inf or NaN), never clamped.
type OddsRatioResult struct {
	OR         float64 `json:"or"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Confidence float64 `json:"confidence"`
	LogSE      float64 `json:"log_se"`
	Defined    bool    `json:"defined"`
}

// FisherResult is a two-sided Fisher exact test on a 2x2 table.
type FisherResult struct {
	PValue float64 `json:"p_value"`
}

// HWEResult is a Hardy-Weinberg equilibrium goodness-of-fit result (df=1).
type HWEResult struct {
	ChiSquare   float64 `json:"chi_square"`
	PValue      float64 `json:"p_value"`
	ExpectedAA  float64 `json:"expected_hom_common"`
	ExpectedAa  float64 `json:"expected_het"`
	Expectedaa  float64 `json:"expected_hom_rare"`
	CommonFreq  float64 `json:"common_allele_freq"`
	Monomorphic bool    `json:"monomorphic"`
}

// TTestVariant selects the two-sample t-test flavor. Diagnostics never
// auto-select the variant; the choice stays a reported judgment call.
type TTestVariant int

const (
	Welch TTestVariant = iota
	Pooled
)

func (v TTestVariant) String() string {
	if v == Pooled {
		return "pooled"
	}
	return "welch"
}

// TTestResult is a two-sample comparison of group means.
type TTestResult struct {
	Variant TTestVariant `json:"variant"`
	N1      int          `json:"n1"`
	N2      int          `json:"n2"`
	Mean1   float64      `json:"mean1"`
	Mean2   float64      `json:"mean2"`
	SD1     float64      `json:"sd1"`
	SD2     float64      `json:"sd2"`
	T       float64      `json:"t"`
	DF      float64      `json:"df"`
	PValue  float64      `json:"p_value"`
}

// ShapiroResult is a Shapiro-Wilk normality diagnostic.
type ShapiroResult struct {
	W      float64 `json:"w"`
	PValue float64 `json:"p_value"`
	N      int     `json:"n"`
}

// VarianceRatioResult is an F-test variance-homogeneity diagnostic.
type VarianceRatioResult struct {
	F      float64 `json:"f"`
	DF1    int     `json:"df1"`
	DF2    int     `json:"df2"`
	PValue float64 `json:"p_value"` // two-sided
}

// LogitResult is a univariate logistic regression of a binary outcome on
// one covariate, fitted by IRLS.
type LogitResult struct {
	Covariate   string  `json:"covariate"`
	Intercept   float64 `json:"intercept"`
	Coefficient float64 `json:"coefficient"`
	SE          float64 `json:"se"`
	WaldZ       float64 `json:"wald_z"`
	PValue      float64 `json:"p_value"`
	OR          float64 `json:"or"`
	ORLower     float64 `json:"or_lower"`
	ORUpper     float64 `json:"or_upper"`
	Confidence  float64 `json:"confidence"`
	N           int     `json:"n"`
	Iterations  int     `json:"iterations"`
	Converged   bool    `json:"converged"`
}
