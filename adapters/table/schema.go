package table

import (
	"fmt"
	"strconv"

	"coassoc/domain/cohort"
	"coassoc/domain/core"
	"coassoc/internal/config"
	apperrors "coassoc/internal/errors"
)

// ColumnSpec declares how one raw column coerces into the typed table.
type ColumnSpec struct {
	Name string
	Kind cohort.ValueKind
	// Required columns must be present in the header and non-missing in
	// every row (outcome, genotypes). Optional columns may carry NA.
	Required bool
}

// LoadPatients reads and validates the ICU patient table: outcome and
// genotype columns are required and complete, clinical covariates are
// numeric with missing values allowed.
func LoadPatients(path string, study config.StudyDefinition) (*cohort.Table, error) {
	specs := []ColumnSpec{
		{Name: study.OutcomeColumn, Kind: cohort.KindCategory, Required: true},
	}
	for _, cov := range study.Covariates {
		specs = append(specs, ColumnSpec{Name: cov, Kind: cohort.KindNumber})
	}
	for _, locus := range study.Loci {
		specs = append(specs, ColumnSpec{Name: locus.Column, Kind: cohort.KindCategory, Required: true})
	}

	t, err := load(path, "patients", specs)
	if err != nil {
		return nil, err
	}
	if err := checkOutcome(t, study); err != nil {
		return nil, err
	}
	if err := checkGenotypes(t, study); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadControls reads and validates the control table: genotypes only.
func LoadControls(path string, study config.StudyDefinition) (*cohort.Table, error) {
	var specs []ColumnSpec
	for _, locus := range study.Loci {
		specs = append(specs, ColumnSpec{Name: locus.Column, Kind: cohort.KindCategory, Required: true})
	}
	t, err := load(path, "controls", specs)
	if err != nil {
		return nil, err
	}
	if err := checkGenotypes(t, study); err != nil {
		return nil, err
	}
	return t, nil
}

func load(path, name string, specs []ColumnSpec) (*cohort.Table, error) {
	raw, err := NewDataReader(path).ReadData()
	if err != nil {
		return nil, apperrors.Wrapf(err, "loading %s table", name)
	}
	return Coerce(raw, name, specs)
}

// Coerce converts raw string records into a typed table according to the
// column specs. Unknown extra columns are ignored; a declared column
// missing from the header, a required cell that is NA, or a cell that
// fails numeric parsing all abort with a descriptive input error.
func Coerce(raw *RawData, name string, specs []ColumnSpec) (*cohort.Table, error) {
	headerSet := map[string]bool{}
	for _, h := range raw.Headers {
		headerSet[h] = true
	}
	columns := make([]string, 0, len(specs))
	for _, spec := range specs {
		if !headerSet[spec.Name] {
			return nil, core.NewColumnError(name, spec.Name)
		}
		columns = append(columns, spec.Name)
	}

	t := cohort.NewTable(name, columns)
	for i, row := range raw.Rows {
		rec := cohort.Record{}
		for _, spec := range specs {
			cell := row[spec.Name]
			if cohort.NormalizeNA(cell) {
				if spec.Required {
					return nil, fmt.Errorf("%w: column %q row %d of table %q",
						core.ErrMissingValue, spec.Name, i+1, name)
				}
				rec[spec.Name] = cohort.NA()
				continue
			}
			switch spec.Kind {
			case cohort.KindNumber:
				f, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: column %q row %d of table %q: %q is not numeric",
						core.ErrMalformedInput, spec.Name, i+1, name, cell)
				}
				rec[spec.Name] = cohort.Number(f)
			default:
				rec[spec.Name] = cohort.Category(cell)
			}
		}
		t.Append(rec)
	}
	return t, nil
}

func checkOutcome(t *cohort.Table, study config.StudyDefinition) error {
	vals, err := t.CompleteCategorical(study.OutcomeColumn)
	if err != nil {
		return err
	}
	for i, v := range vals {
		if v != study.OutcomePositive && v != study.OutcomeNegative {
			return fmt.Errorf("%w: outcome row %d has label %q, want %q or %q",
				core.ErrMalformedInput, i, v, study.OutcomePositive, study.OutcomeNegative)
		}
	}
	return nil
}

func checkGenotypes(t *cohort.Table, study config.StudyDefinition) error {
	for _, locus := range study.Loci {
		vals, err := t.CompleteCategorical(locus.Column)
		if err != nil {
			return err
		}
		if err := locus.Coding.CheckColumn(vals); err != nil {
			return err
		}
	}
	return nil
}
