package config

import (
	"encoding/json"
	"fmt"
	"os"

	"coassoc/domain/cohort"
	"coassoc/internal/errors"
)

// LocusDefinition ties a genotype column to its coding and its fixed
// 3-to-2 collapse. The collapse pairs the heterozygous level with the
// homozygous level whose preliminary-test residual had the same sign; that
// pairing was reviewed once by the analyst and is data here, not logic.
type LocusDefinition struct {
	Column   string                `json:"column"`
	Coding   cohort.GenotypeCoding `json:"coding"`
	Grouping cohort.GroupingMap    `json:"grouping"`
}

// StudyDefinition names every column the analysis touches and declares the
// per-locus genotype contracts.
type StudyDefinition struct {
	Title string `json:"title"`

	// Patient table columns.
	OutcomeColumn   string   `json:"outcome_column"`
	OutcomePositive string   `json:"outcome_positive"` // label counted as the event
	OutcomeNegative string   `json:"outcome_negative"`
	AgeColumn       string   `json:"age_column"`
	Covariates      []string `json:"covariates"` // numeric clinical covariates, missing allowed

	Loci []LocusDefinition `json:"loci"`

	// Expression table columns (gocsv tags live on the record type).
	ExpressionGroupLocus string `json:"expression_group_locus"`
}

// DefaultStudy returns the built-in study definition: three bi-allelic
// loci in an ICU cohort versus population controls, ICU mortality as the
// outcome, and a qPCR Ct-ratio expression comparison keyed by the
// collapsed ACE genotype.
func DefaultStudy() StudyDefinition {
	return StudyDefinition{
		Title:           "ICU cohort genetic association analysis",
		OutcomeColumn:   "outcome",
		OutcomePositive: "deceased",
		OutcomeNegative: "survived",
		AgeColumn:       "age",
		Covariates:      []string{"age", "apache_ii", "ventilation_days"},
		Loci: []LocusDefinition{
			{
				Column: "ace_genotype",
				Coding: cohort.GenotypeCoding{
					Locus:        "ACE I/D",
					HomCommon:    "II",
					Het:          "ID",
					HomRare:      "DD",
					CommonAllele: "I",
					RareAllele:   "D",
				},
				Grouping: cohort.GroupingMap{
					Locus:     "ACE I/D",
					Collapsed: map[string]string{"II": "II+ID", "ID": "II+ID", "DD": "DD"},
				},
			},
			{
				Column: "tnf_genotype",
				Coding: cohort.GenotypeCoding{
					Locus:        "TNF -308 G/A",
					HomCommon:    "GG",
					Het:          "GA",
					HomRare:      "AA",
					CommonAllele: "G",
					RareAllele:   "A",
				},
				Grouping: cohort.GroupingMap{
					Locus:     "TNF -308 G/A",
					Collapsed: map[string]string{"GG": "GG", "GA": "GA+AA", "AA": "GA+AA"},
				},
			},
			{
				Column: "il6_genotype",
				Coding: cohort.GenotypeCoding{
					Locus:        "IL-6 -174 G/C",
					HomCommon:    "GG",
					Het:          "GC",
					HomRare:      "CC",
					CommonAllele: "G",
					RareAllele:   "C",
				},
				Grouping: cohort.GroupingMap{
					Locus:     "IL-6 -174 G/C",
					Collapsed: map[string]string{"GG": "GG", "GC": "GC+CC", "CC": "GC+CC"},
				},
			},
		},
		ExpressionGroupLocus: "ACE I/D",
	}
}

// LoadStudy returns the default study, overridden by a JSON file when one
// is configured.
func LoadStudy(path string) (StudyDefinition, error) {
	study := DefaultStudy()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return study, errors.Wrapf(err, "reading study file %s", path)
		}
		if err := json.Unmarshal(raw, &study); err != nil {
			return study, errors.Wrapf(err, "parsing study file %s", path)
		}
	}
	if err := study.Validate(); err != nil {
		return study, err
	}
	return study, nil
}

// Validate checks the column names and every locus contract.
func (s StudyDefinition) Validate() error {
	if s.OutcomeColumn == "" || s.OutcomePositive == "" || s.OutcomeNegative == "" {
		return errors.ConfigInvalid("study outcome column and labels are required")
	}
	if len(s.Loci) == 0 {
		return errors.ConfigInvalid("study declares no loci")
	}
	for _, l := range s.Loci {
		if l.Column == "" {
			return errors.ConfigInvalid(fmt.Sprintf("locus %s has no column", l.Coding.Locus))
		}
		if err := l.Coding.Validate(); err != nil {
			return err
		}
		if err := l.Grouping.Validate(l.Coding); err != nil {
			return err
		}
	}
	return nil
}

// Locus finds a locus definition by its name.
func (s StudyDefinition) Locus(name string) (LocusDefinition, bool) {
	for _, l := range s.Loci {
		if l.Coding.Locus == name {
			return l, true
		}
	}
	return LocusDefinition{}, false
}
