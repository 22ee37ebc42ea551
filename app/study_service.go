// Package app wires the loaders, the test battery, and the report model
// together into the one pipeline the CLI runs.
package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"coassoc/adapters/table"
	"coassoc/domain/cohort"
	"coassoc/domain/core"
	"coassoc/domain/report"
	"coassoc/domain/stats"
	"coassoc/internal"
	"coassoc/internal/assoc"
	"coassoc/internal/clinical"
	"coassoc/internal/config"
	"coassoc/internal/freq"
)

// StudyService runs the full analysis: three populations in, one report
// model out. Every step is a deterministic pure transform; the only
// concurrency is fanning out the independent per-locus pipelines.
type StudyService struct {
	cfg   *config.Config
	study config.StudyDefinition
	log   *internal.Logger
}

// NewStudyService creates the service from validated configuration.
func NewStudyService(cfg *config.Config, study config.StudyDefinition) *StudyService {
	return &StudyService{cfg: cfg, study: study, log: internal.DefaultLogger}
}

// Run loads the inputs and computes the complete report model.
func (s *StudyService) Run(ctx context.Context) (*report.Model, error) {
	patients, err := table.LoadPatients(s.cfg.Inputs.PatientsFile, s.study)
	if err != nil {
		return nil, err
	}
	controls, err := table.LoadControls(s.cfg.Inputs.ControlsFile, s.study)
	if err != nil {
		return nil, err
	}
	s.log.Info("loaded %d patients, %d controls", patients.Len(), controls.Len())

	model := &report.Model{
		ID:          core.ReportID(core.NewID()),
		Title:       s.study.Title,
		GeneratedAt: time.Now().UTC(),
		Patients:    report.PopulationSummary{Name: "ICU patients", N: patients.Len()},
		Controls:    report.PopulationSummary{Name: "controls", N: controls.Len()},
	}

	// Per-locus pipelines share no mutable state; run them concurrently.
	model.Loci = make([]report.LocusSection, len(s.study.Loci))
	g, ctx := errgroup.WithContext(ctx)
	for i, locus := range s.study.Loci {
		i, locus := i, locus
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			section, err := s.locusSection(patients, controls, locus)
			if err != nil {
				return err
			}
			model.Loci[i] = *section
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.clinicalSections(patients, model); err != nil {
		return nil, err
	}
	if err := s.ageSection(patients, model); err != nil {
		return nil, err
	}
	if s.cfg.Inputs.ExpressionFile != "" {
		if err := s.expressionSection(model); err != nil {
			return nil, err
		}
	}
	return model, nil
}

// locusSection runs the genetic battery for one locus: HWE on controls,
// case/control genotype and allele tests, and the collapsed-genotype
// outcome association within the patient cohort.
func (s *StudyService) locusSection(patients, controls *cohort.Table, locus config.LocusDefinition) (*report.LocusSection, error) {
	section := &report.LocusSection{Locus: locus.Coding.Locus}

	patientGenos, err := patients.CompleteCategorical(locus.Column)
	if err != nil {
		return nil, err
	}
	controlGenos, err := controls.CompleteCategorical(locus.Column)
	if err != nil {
		return nil, err
	}

	// Data-quality check: are the controls in Hardy-Weinberg equilibrium?
	controlFreq, err := freq.GenotypeColumn(controlGenos, nil, locus.Coding)
	if err != nil {
		return nil, err
	}
	section.HWEControls, err = assoc.HardyWeinberg(
		controlFreq.GenotypeCounts[0][0],
		controlFreq.GenotypeCounts[1][0],
		controlFreq.GenotypeCounts[2][0],
	)
	if err != nil {
		return nil, err
	}

	// Case/control comparison over both populations.
	genos := append(append([]string(nil), patientGenos...), controlGenos...)
	pops := make([]string, 0, len(genos))
	for range patientGenos {
		pops = append(pops, "ICU")
	}
	for range controlGenos {
		pops = append(pops, "control")
	}
	ccFreq, err := freq.Genotype(genos, nil, pops, nil, locus.Coding, stats.WithinGroup)
	if err != nil {
		return nil, err
	}
	section.CaseControlGenotypes = ccFreq

	if section.GenotypeChiSquare, err = assoc.ChiSquare(freq.ToContingency(ccFreq), s.cfg.Stats.Yates); err != nil {
		return nil, err
	}
	alleleTable := freq.AlleleContingency(ccFreq)
	if section.AlleleChiSquare, err = assoc.ChiSquare(alleleTable, s.cfg.Stats.Yates); err != nil {
		return nil, err
	}
	if section.AlleleOddsRatio, err = assoc.OddsRatio(alleleTable, s.cfg.Stats.Confidence); err != nil {
		return nil, err
	}
	if section.AlleleFisher, err = assoc.FisherExact(alleleTable); err != nil {
		return nil, err
	}

	// Outcome association on the collapsed genotype, patients only.
	collapsed, err := locus.Grouping.Apply(patientGenos)
	if err != nil {
		return nil, err
	}
	outcomes, err := patients.CompleteCategorical(s.study.OutcomeColumn)
	if err != nil {
		return nil, err
	}
	section.CollapsedLabels = locus.Grouping.Labels(locus.Coding)
	section.OutcomeLabels = [2]string{s.study.OutcomeNegative, s.study.OutcomePositive}
	outcomeTable, err := cohort.Cross(collapsed, outcomes, nil, nil,
		section.CollapsedLabels[:], section.OutcomeLabels[:])
	if err != nil {
		return nil, err
	}
	section.OutcomeTable = outcomeTable.Counts
	if section.OutcomeChiSquare, err = assoc.ChiSquare(outcomeTable, s.cfg.Stats.Yates); err != nil {
		return nil, err
	}
	if section.OutcomeOddsRatio, err = assoc.OddsRatio(outcomeTable, s.cfg.Stats.Confidence); err != nil {
		return nil, err
	}
	if section.OutcomeFisher, err = assoc.FisherExact(outcomeTable); err != nil {
		return nil, err
	}

	// Genotype share of each outcome class, for the proportion bar chart.
	outFreq, err := freq.Genotype(patientGenos, nil, outcomes, nil, locus.Coding, stats.WithinGroup)
	if err != nil {
		return nil, err
	}
	section.OutcomeProportions = outFreq
	return section, nil
}

// clinicalSections fits one univariate logistic regression per covariate.
func (s *StudyService) clinicalSections(patients *cohort.Table, model *report.Model) error {
	outcome, err := s.outcomeFlags(patients)
	if err != nil {
		return err
	}
	for _, cov := range s.study.Covariates {
		vals, present, err := patients.Numeric(cov)
		if err != nil {
			return err
		}
		// Listwise deletion: only rows where the covariate is observed.
		var x []float64
		var y []bool
		for i := range vals {
			if present[i] {
				x = append(x, vals[i])
				y = append(y, outcome[i])
			}
		}
		res, err := clinical.UnivariateLogit(cov, y, x, s.cfg.Stats.Confidence)
		if err != nil {
			if core.IsDegenerateError(err) {
				s.log.Warn("skipping covariate %s: %v", cov, err)
				continue
			}
			return err
		}
		model.Clinical = append(model.Clinical, report.CovariateSection{Covariate: cov, Logit: res})
	}
	return nil
}

// ageSection compares age across outcome groups with both t-test variants
// and the normality and variance diagnostics the analyst reads before
// choosing which variant to trust.
func (s *StudyService) ageSection(patients *cohort.Table, model *report.Model) error {
	if s.study.AgeColumn == "" {
		return nil
	}
	neg, pos, err := patients.PairedNumericByGroup(
		s.study.AgeColumn, s.study.OutcomeColumn,
		s.study.OutcomeNegative, s.study.OutcomePositive)
	if err != nil {
		return err
	}

	section := &report.AgeSection{
		ByOutcome:   [2]string{s.study.OutcomeNegative, s.study.OutcomePositive},
		GroupValues: [2][]float64{neg, pos},
	}
	if section.Welch, err = clinical.TTest(neg, pos, stats.Welch); err != nil {
		return err
	}
	if section.Pooled, err = clinical.TTest(neg, pos, stats.Pooled); err != nil {
		return err
	}
	// Diagnostics are reported, never used to pick the variant here.
	if section.NormalityNeg, err = clinical.ShapiroWilk(neg); err != nil && !core.IsDegenerateError(err) {
		return err
	}
	if section.NormalityPos, err = clinical.ShapiroWilk(pos); err != nil && !core.IsDegenerateError(err) {
		return err
	}
	if section.VarianceRatio, err = clinical.VarianceRatio(neg, pos); err != nil && !core.IsDegenerateError(err) {
		return err
	}
	model.Age = section
	return nil
}

// expressionSection compares Ct ratios between the collapsed genotype
// groups of the configured locus.
func (s *StudyService) expressionSection(model *report.Model) error {
	locus, ok := s.study.Locus(s.study.ExpressionGroupLocus)
	if !ok {
		return core.NewValidationError("expression_group_locus",
			"locus "+s.study.ExpressionGroupLocus+" is not declared")
	}
	records, err := table.ReadExpression(s.cfg.Inputs.ExpressionFile)
	if err != nil {
		return err
	}
	labels := locus.Grouping.Labels(locus.Coding)
	a, b, err := table.SplitExpressionByGroup(records, labels[0], labels[1])
	if err != nil {
		return err
	}
	welch, err := clinical.TTest(a, b, stats.Welch)
	if err != nil {
		return err
	}
	model.Expr = &report.ExpressionSection{
		Locus:       locus.Coding.Locus,
		Groups:      labels,
		GroupValues: [2][]float64{a, b},
		Welch:       welch,
	}
	return nil
}

// outcomeFlags maps the outcome column onto event booleans.
func (s *StudyService) outcomeFlags(patients *cohort.Table) ([]bool, error) {
	vals, err := patients.CompleteCategorical(s.study.OutcomeColumn)
	if err != nil {
		return nil, err
	}
	flags := make([]bool, len(vals))
	for i, v := range vals {
		flags[i] = v == s.study.OutcomePositive
	}
	return flags, nil
}
