package config

import (
	"testing"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("COASSOC_PATIENTS", "patients.csv")
	t.Setenv("COASSOC_CONTROLS", "controls.csv")
	t.Setenv("COASSOC_CONFIDENCE", "0.99")
	t.Setenv("COASSOC_YATES", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Inputs.PatientsFile != "patients.csv" || cfg.Inputs.ControlsFile != "controls.csv" {
		t.Fatalf("input paths = %+v", cfg.Inputs)
	}
	if cfg.Stats.Confidence != 0.99 || !cfg.Stats.Yates {
		t.Fatalf("stats config = %+v", cfg.Stats)
	}
	if cfg.Output.Dir != "out" || cfg.Output.ReportName != "report" {
		t.Fatalf("output defaults = %+v", cfg.Output)
	}
}

func TestLoad_MissingInputs(t *testing.T) {
	t.Setenv("COASSOC_PATIENTS", "")
	t.Setenv("COASSOC_CONTROLS", "")
	if _, err := Load(); err == nil {
		t.Fatalf("Load accepted empty input paths")
	}
}

func TestLoad_BadConfidence(t *testing.T) {
	t.Setenv("COASSOC_PATIENTS", "p.csv")
	t.Setenv("COASSOC_CONTROLS", "c.csv")
	t.Setenv("COASSOC_CONFIDENCE", "1.5")
	if _, err := Load(); err == nil {
		t.Fatalf("Load accepted confidence outside (0,1)")
	}
}
