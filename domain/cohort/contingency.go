package cohort

import (
	"fmt"

	"coassoc/domain/core"
)

// ContingencyTable holds labeled RxC non-negative counts. The sum of all
// cells equals the number of non-missing observations that fed the table.
type ContingencyTable struct {
	RowLabels []string
	ColLabels []string
	Counts    [][]int
}

// NewContingencyTable allocates a zeroed table with the given axis labels.
func NewContingencyTable(rowLabels, colLabels []string) *ContingencyTable {
	counts := make([][]int, len(rowLabels))
	for i := range counts {
		counts[i] = make([]int, len(colLabels))
	}
	return &ContingencyTable{
		RowLabels: append([]string(nil), rowLabels...),
		ColLabels: append([]string(nil), colLabels...),
		Counts:    counts,
	}
}

// Cross tabulates two aligned categorical columns. Rows where either side
// is missing are skipped. Label order is first-appearance order unless the
// caller passes explicit orders.
func Cross(rowVals, colVals []string, rowPresent, colPresent []bool, rowOrder, colOrder []string) (*ContingencyTable, error) {
	if len(rowVals) != len(colVals) {
		return nil, fmt.Errorf("%w: %d row values vs %d column values",
			core.ErrLengthMismatch, len(rowVals), len(colVals))
	}
	both := make([]bool, len(rowVals))
	for i := range both {
		both[i] = (rowPresent == nil || rowPresent[i]) && (colPresent == nil || colPresent[i])
	}
	if rowOrder == nil {
		rowOrder = DistinctLabels(rowVals, both)
	}
	if colOrder == nil {
		colOrder = DistinctLabels(colVals, both)
	}
	t := NewContingencyTable(rowOrder, colOrder)
	for i := range rowVals {
		if !both[i] {
			continue
		}
		if err := t.Add(rowVals[i], colVals[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add increments the cell addressed by labels.
func (t *ContingencyTable) Add(rowLabel, colLabel string) error {
	ri, ci := t.indexOf(t.RowLabels, rowLabel), t.indexOf(t.ColLabels, colLabel)
	if ri < 0 {
		return fmt.Errorf("%w: row label %q not declared", core.ErrMalformedInput, rowLabel)
	}
	if ci < 0 {
		return fmt.Errorf("%w: column label %q not declared", core.ErrMalformedInput, colLabel)
	}
	t.Counts[ri][ci]++
	return nil
}

func (t *ContingencyTable) indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Set overwrites a cell by position.
func (t *ContingencyTable) Set(ri, ci, count int) { t.Counts[ri][ci] = count }

// Cell returns the count at (ri, ci).
func (t *ContingencyTable) Cell(ri, ci int) int { return t.Counts[ri][ci] }

// Rows and Cols report the table dimensions.
func (t *ContingencyTable) Rows() int { return len(t.RowLabels) }
func (t *ContingencyTable) Cols() int { return len(t.ColLabels) }

// RowTotals returns the marginal row sums.
func (t *ContingencyTable) RowTotals() []int {
	totals := make([]int, t.Rows())
	for i, row := range t.Counts {
		for _, c := range row {
			totals[i] += c
		}
	}
	return totals
}

// ColTotals returns the marginal column sums.
func (t *ContingencyTable) ColTotals() []int {
	totals := make([]int, t.Cols())
	for _, row := range t.Counts {
		for j, c := range row {
			totals[j] += c
		}
	}
	return totals
}

// Total returns the grand total.
func (t *ContingencyTable) Total() int {
	n := 0
	for _, row := range t.Counts {
		for _, c := range row {
			n += c
		}
	}
	return n
}

// Transpose swaps row and column meaning.
func (t *ContingencyTable) Transpose() *ContingencyTable {
	out := NewContingencyTable(t.ColLabels, t.RowLabels)
	for i, row := range t.Counts {
		for j, c := range row {
			out.Counts[j][i] = c
		}
	}
	return out
}

// ReverseRows flips the row order (flips the direction of a 2x2 effect).
func (t *ContingencyTable) ReverseRows() *ContingencyTable {
	labels := make([]string, t.Rows())
	for i := range labels {
		labels[i] = t.RowLabels[t.Rows()-1-i]
	}
	out := NewContingencyTable(labels, t.ColLabels)
	for i := range t.Counts {
		copy(out.Counts[i], t.Counts[t.Rows()-1-i])
	}
	return out
}

// Validate rejects negative cells and empty dimensions.
func (t *ContingencyTable) Validate() error {
	if t.Rows() == 0 || t.Cols() == 0 {
		return fmt.Errorf("%w: empty contingency table", core.ErrInsufficientData)
	}
	for i, row := range t.Counts {
		for j, c := range row {
			if c < 0 {
				return fmt.Errorf("%w: cell (%s,%s) = %d",
					core.ErrNegativeCell, t.RowLabels[i], t.ColLabels[j], c)
			}
		}
	}
	return nil
}
