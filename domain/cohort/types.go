package cohort

import (
	"fmt"
	"strconv"
	"strings"

	"coassoc/domain/core"
)

// ValueKind discriminates the cell types an observation table can hold.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindCategory
	KindNumber
	KindBool
)

// Value is a single cell of an observation table.
type Value struct {
	Kind ValueKind
	Cat  string
	Num  float64
	Bool bool
}

// Missing reports whether the cell carries no observation.
func (v Value) Missing() bool { return v.Kind == KindMissing }

func Category(s string) Value { return Value{Kind: KindCategory, Cat: s} }
func Number(f float64) Value  { return Value{Kind: KindNumber, Num: f} }
func Boolean(b bool) Value    { return Value{Kind: KindBool, Bool: b} }
func NA() Value               { return Value{Kind: KindMissing} }

// Record is one individual: a mapping from column name to cell value.
type Record map[string]Value

// Table is an ordered sequence of records with a fixed column set.
// Records never change after construction; all analysis reads from
// column views extracted here.
type Table struct {
	Name    string
	Columns []string
	rows    []Record
}

// NewTable creates an empty table with the given column set.
func NewTable(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

// Append adds one record. Columns absent from the record read as missing.
func (t *Table) Append(r Record) {
	t.rows = append(t.rows, r)
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// At returns the cell at row i, column name.
func (t *Table) At(i int, name string) Value {
	v, ok := t.rows[i][name]
	if !ok {
		return NA()
	}
	return v
}

// Categorical extracts a column as category labels plus a presence mask,
// both aligned to the table's row order.
func (t *Table) Categorical(name string) ([]string, []bool, error) {
	if !t.HasColumn(name) {
		return nil, nil, core.NewColumnError(t.Name, name)
	}
	vals := make([]string, t.Len())
	present := make([]bool, t.Len())
	for i := range t.rows {
		v := t.At(i, name)
		switch v.Kind {
		case KindMissing:
		case KindCategory:
			vals[i] = v.Cat
			present[i] = true
		case KindBool:
			vals[i] = strconv.FormatBool(v.Bool)
			present[i] = true
		default:
			return nil, nil, fmt.Errorf("%w: column %q row %d is numeric, want categorical",
				core.ErrMalformedInput, name, i)
		}
	}
	return vals, present, nil
}

// Numeric extracts a column as float64 values plus a presence mask.
func (t *Table) Numeric(name string) ([]float64, []bool, error) {
	if !t.HasColumn(name) {
		return nil, nil, core.NewColumnError(t.Name, name)
	}
	vals := make([]float64, t.Len())
	present := make([]bool, t.Len())
	for i := range t.rows {
		v := t.At(i, name)
		switch v.Kind {
		case KindMissing:
		case KindNumber:
			vals[i] = v.Num
			present[i] = true
		case KindBool:
			if v.Bool {
				vals[i] = 1
			}
			present[i] = true
		default:
			return nil, nil, fmt.Errorf("%w: column %q row %d is categorical, want numeric",
				core.ErrMalformedInput, name, i)
		}
	}
	return vals, present, nil
}

// CompleteCategorical extracts a column that must have no missing values
// (outcome and genotype columns per the data contract).
func (t *Table) CompleteCategorical(name string) ([]string, error) {
	vals, present, err := t.Categorical(name)
	if err != nil {
		return nil, err
	}
	for i, ok := range present {
		if !ok {
			return nil, fmt.Errorf("%w: column %q row %d", core.ErrMissingValue, name, i)
		}
	}
	return vals, nil
}

// PairedNumericByGroup splits a numeric column into the values observed in
// each of exactly two group labels, dropping rows where either side is
// missing. Group labels other than the two named are rejected.
func (t *Table) PairedNumericByGroup(numCol, groupCol, labelA, labelB string) (a, b []float64, err error) {
	nums, numOK, err := t.Numeric(numCol)
	if err != nil {
		return nil, nil, err
	}
	groups, grpOK, err := t.Categorical(groupCol)
	if err != nil {
		return nil, nil, err
	}
	for i := range nums {
		if !numOK[i] || !grpOK[i] {
			continue
		}
		switch groups[i] {
		case labelA:
			a = append(a, nums[i])
		case labelB:
			b = append(b, nums[i])
		default:
			return nil, nil, fmt.Errorf("%w: group column %q row %d has label %q, want %q or %q",
				core.ErrMalformedInput, groupCol, i, groups[i], labelA, labelB)
		}
	}
	return a, b, nil
}

// DistinctLabels returns the distinct non-missing labels of a categorical
// column in first-appearance order.
func DistinctLabels(vals []string, present []bool) []string {
	seen := map[string]bool{}
	var out []string
	for i, v := range vals {
		if present != nil && !present[i] {
			continue
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// NormalizeNA reports whether a raw string cell is one of the recognized
// missing-value markers.
func NormalizeNA(s string) bool {
	switch strings.TrimSpace(strings.ToUpper(s)) {
	case "", "NA", "N/A", ".", "-":
		return true
	}
	return false
}
