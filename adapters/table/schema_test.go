package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"coassoc/domain/core"
	"coassoc/internal/config"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadPatients_ValidFile(t *testing.T) {
	study := config.DefaultStudy()
	path := writeCSV(t, "patients.csv",
		"outcome,age,apache_ii,ventilation_days,ace_genotype,tnf_genotype,il6_genotype\n"+
			"deceased,71.5,24,12,DD,GG,GC\n"+
			"survived,58.0,NA,3,ID,GA,GG\n"+
			"survived,64.2,18,NA,II,GG,CC\n")

	tab, err := LoadPatients(path, study)
	if err != nil {
		t.Fatalf("LoadPatients: %v", err)
	}
	if tab.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tab.Len())
	}

	ages, present, err := tab.Numeric("age")
	if err != nil {
		t.Fatalf("Numeric(age): %v", err)
	}
	if !present[0] || ages[0] != 71.5 {
		t.Fatalf("age[0] = %v (present %v), want 71.5", ages[0], present[0])
	}

	// NA in an optional covariate stays missing rather than failing.
	_, apachePresent, err := tab.Numeric("apache_ii")
	if err != nil {
		t.Fatalf("Numeric(apache_ii): %v", err)
	}
	if apachePresent[1] {
		t.Fatalf("apache_ii[1] should be missing")
	}

	genos, err := tab.CompleteCategorical("ace_genotype")
	if err != nil {
		t.Fatalf("CompleteCategorical: %v", err)
	}
	if genos[0] != "DD" || genos[1] != "ID" || genos[2] != "II" {
		t.Fatalf("ace genotypes = %v", genos)
	}
}

func TestLoadPatients_MissingRequiredCell(t *testing.T) {
	study := config.DefaultStudy()
	path := writeCSV(t, "patients.csv",
		"outcome,age,apache_ii,ventilation_days,ace_genotype,tnf_genotype,il6_genotype\n"+
			"deceased,71.5,24,12,NA,GG,GC\n")

	if _, err := LoadPatients(path, study); !errors.Is(err, core.ErrMissingValue) {
		t.Fatalf("err = %v, want ErrMissingValue", err)
	}
}

func TestLoadPatients_UnknownGenotypeLevel(t *testing.T) {
	study := config.DefaultStudy()
	path := writeCSV(t, "patients.csv",
		"outcome,age,apache_ii,ventilation_days,ace_genotype,tnf_genotype,il6_genotype\n"+
			"deceased,71.5,24,12,I/D,GG,GC\n")

	if _, err := LoadPatients(path, study); !errors.Is(err, core.ErrBadGenotype) {
		t.Fatalf("err = %v, want ErrBadGenotype", err)
	}
}

func TestLoadPatients_UnknownOutcomeLabel(t *testing.T) {
	study := config.DefaultStudy()
	path := writeCSV(t, "patients.csv",
		"outcome,age,apache_ii,ventilation_days,ace_genotype,tnf_genotype,il6_genotype\n"+
			"dead,71.5,24,12,DD,GG,GC\n")

	if _, err := LoadPatients(path, study); !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("err = %v, want ErrMalformedInput", err)
	}
}

func TestLoadPatients_NonNumericCovariate(t *testing.T) {
	study := config.DefaultStudy()
	path := writeCSV(t, "patients.csv",
		"outcome,age,apache_ii,ventilation_days,ace_genotype,tnf_genotype,il6_genotype\n"+
			"deceased,old,24,12,DD,GG,GC\n")

	if _, err := LoadPatients(path, study); !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("err = %v, want ErrMalformedInput", err)
	}
}

func TestLoadControls_MissingColumn(t *testing.T) {
	study := config.DefaultStudy()
	path := writeCSV(t, "controls.csv",
		"ace_genotype,tnf_genotype\nII,GG\n")

	if _, err := LoadControls(path, study); !errors.Is(err, core.ErrColumnNotFound) {
		t.Fatalf("err = %v, want ErrColumnNotFound", err)
	}
}

func TestLoadControls_ExtraColumnsIgnored(t *testing.T) {
	study := config.DefaultStudy()
	path := writeCSV(t, "controls.csv",
		"sample_id,ace_genotype,tnf_genotype,il6_genotype,batch\n"+
			"s1,II,GG,GG,b1\n"+
			"s2,DD,AA,CC,b1\n")

	tab, err := LoadControls(path, study)
	if err != nil {
		t.Fatalf("LoadControls: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("rows = %d, want 2", tab.Len())
	}
	if tab.HasColumn("sample_id") {
		t.Fatalf("undeclared column leaked into the typed table")
	}
}

func TestReadExpression(t *testing.T) {
	path := writeCSV(t, "expression.csv",
		"subject,genotype_group,ct_ratio\n"+
			"p1,II+ID,0.82\n"+
			"p2,DD,1.14\n"+
			"p3,II+ID,0.91\n")

	records, err := ReadExpression(path)
	if err != nil {
		t.Fatalf("ReadExpression: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	a, b, err := SplitExpressionByGroup(records, "II+ID", "DD")
	if err != nil {
		t.Fatalf("SplitExpressionByGroup: %v", err)
	}
	if len(a) != 2 || len(b) != 1 {
		t.Fatalf("split sizes = %d, %d; want 2, 1", len(a), len(b))
	}
	if b[0] != 1.14 {
		t.Fatalf("DD ratio = %v, want 1.14", b[0])
	}

	if _, _, err := SplitExpressionByGroup(records, "DD", "GG"); err == nil {
		t.Fatalf("unknown group label accepted")
	}
}
