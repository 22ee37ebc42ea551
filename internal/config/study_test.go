package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultStudy_Valid(t *testing.T) {
	study := DefaultStudy()
	if err := study.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(study.Loci) != 3 {
		t.Fatalf("loci = %d, want 3", len(study.Loci))
	}
	if _, ok := study.Locus("ACE I/D"); !ok {
		t.Fatalf("ACE I/D locus not found")
	}
	if _, ok := study.Locus("nope"); ok {
		t.Fatalf("unknown locus reported as found")
	}
}

func TestLoadStudy_JSONOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.json")
	if err := os.WriteFile(path, []byte(`{"title": "pilot run"}`), 0o644); err != nil {
		t.Fatalf("writing study file: %v", err)
	}

	study, err := LoadStudy(path)
	if err != nil {
		t.Fatalf("LoadStudy: %v", err)
	}
	if study.Title != "pilot run" {
		t.Fatalf("title = %q, want override", study.Title)
	}
	// Fields the file leaves out keep their defaults.
	if study.OutcomeColumn != "outcome" || len(study.Loci) != 3 {
		t.Fatalf("defaults lost under partial override")
	}
}

func TestLoadStudy_EmptyPathUsesDefault(t *testing.T) {
	study, err := LoadStudy("")
	if err != nil {
		t.Fatalf("LoadStudy: %v", err)
	}
	if study.Title != DefaultStudy().Title {
		t.Fatalf("title = %q", study.Title)
	}
}

func TestStudyValidate_Rejections(t *testing.T) {
	noOutcome := DefaultStudy()
	noOutcome.OutcomeColumn = ""
	if err := noOutcome.Validate(); err == nil {
		t.Fatalf("accepted study without outcome column")
	}

	noLoci := DefaultStudy()
	noLoci.Loci = nil
	if err := noLoci.Validate(); err == nil {
		t.Fatalf("accepted study without loci")
	}

	badGrouping := DefaultStudy()
	badGrouping.Loci[0].Grouping.Collapsed = map[string]string{"II": "a", "ID": "b", "DD": "c"}
	if err := badGrouping.Validate(); err == nil {
		t.Fatalf("accepted a three-target grouping map")
	}
}
