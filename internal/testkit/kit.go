// Package testkit generates synthetic study inputs with known ground
// truth, for gold-standard tests of the analysis pipeline.
package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"

	"coassoc/internal/config"
)

// Config controls the synthetic cohort.
type Config struct {
	Seed     int64
	Patients int
	Controls int
	// RareFreq is the rare-allele frequency per locus column; genotypes are
	// drawn in Hardy-Weinberg proportions.
	RareFreq map[string]float64
	// MortalityBase is the baseline probability of the positive outcome.
	MortalityBase float64
	// AgeLogOdds is the planted per-year log-odds effect of age (centered
	// at AgeMean) on the outcome.
	AgeLogOdds float64
	AgeMean    float64
	AgeSD      float64
}

// DefaultConfig returns a cohort with mild, realistic parameters.
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		Patients:      120,
		Controls:      200,
		MortalityBase: 0.3,
		AgeLogOdds:    0.04,
		AgeMean:       62,
		AgeSD:         14,
	}
}

// Dataset holds generated raw rows, header included, ready to write.
type Dataset struct {
	PatientRows [][]string
	ControlRows [][]string
}

// Generate draws a synthetic patient and control population for the given
// study definition. Deterministic for a fixed seed.
func Generate(cfg Config, study config.StudyDefinition) *Dataset {
	rng := rand.New(rand.NewSource(cfg.Seed))

	patientHeader := []string{study.OutcomeColumn}
	patientHeader = append(patientHeader, study.Covariates...)
	var controlHeader []string
	for _, l := range study.Loci {
		patientHeader = append(patientHeader, l.Column)
		controlHeader = append(controlHeader, l.Column)
	}

	ds := &Dataset{
		PatientRows: [][]string{patientHeader},
		ControlRows: [][]string{controlHeader},
	}

	for i := 0; i < cfg.Patients; i++ {
		age := cfg.AgeMean + cfg.AgeSD*rng.NormFloat64()
		logit := math.Log(cfg.MortalityBase/(1-cfg.MortalityBase)) + cfg.AgeLogOdds*(age-cfg.AgeMean)
		outcome := study.OutcomeNegative
		if rng.Float64() < 1/(1+math.Exp(-logit)) {
			outcome = study.OutcomePositive
		}

		row := []string{outcome}
		for _, cov := range study.Covariates {
			switch cov {
			case study.AgeColumn:
				row = append(row, fmt.Sprintf("%.1f", age))
			default:
				row = append(row, fmt.Sprintf("%.1f", 10+5*rng.NormFloat64()))
			}
		}
		for _, l := range study.Loci {
			row = append(row, sampleGenotype(rng, cfg.rareFreq(l.Column), l.Coding.Levels()))
		}
		ds.PatientRows = append(ds.PatientRows, row)
	}

	for i := 0; i < cfg.Controls; i++ {
		var row []string
		for _, l := range study.Loci {
			row = append(row, sampleGenotype(rng, cfg.rareFreq(l.Column), l.Coding.Levels()))
		}
		ds.ControlRows = append(ds.ControlRows, row)
	}
	return ds
}

func (c Config) rareFreq(column string) float64 {
	if f, ok := c.RareFreq[column]; ok {
		return f
	}
	return 0.3
}

// sampleGenotype draws one genotype in Hardy-Weinberg proportions for
// rare-allele frequency q.
func sampleGenotype(rng *rand.Rand, q float64, levels [3]string) string {
	p := 1 - q
	u := rng.Float64()
	switch {
	case u < p*p:
		return levels[0]
	case u < p*p+2*p*q:
		return levels[1]
	default:
		return levels[2]
	}
}

// WriteCSV writes rows to path.
func WriteCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
