package table

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	apperrors "coassoc/internal/errors"
)

// ExpressionRecord is one paired qPCR measurement: the target-gene cycle
// count normalized by the housekeeping gene, keyed by the collapsed
// genotype group the subject falls into.
type ExpressionRecord struct {
	Subject string  `csv:"subject"`
	Group   string  `csv:"genotype_group"`
	CtRatio float64 `csv:"ct_ratio"`
}

// ReadExpression loads the gene-expression ratio table. The file is
// optional at the study level; callers skip the expression section when
// the path is empty.
func ReadExpression(path string) ([]ExpressionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "opening expression table %s", path)
	}
	defer f.Close()

	var records []ExpressionRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, apperrors.Wrapf(err, "parsing expression table %s", path)
	}
	if len(records) == 0 {
		return nil, apperrors.InputInvalid(fmt.Sprintf("expression table %s has no records", path))
	}
	return records, nil
}

// SplitExpressionByGroup partitions Ct ratios into the two collapsed
// genotype groups. Labels outside the expected pair abort.
func SplitExpressionByGroup(records []ExpressionRecord, labelA, labelB string) (a, b []float64, err error) {
	for i, rec := range records {
		switch rec.Group {
		case labelA:
			a = append(a, rec.CtRatio)
		case labelB:
			b = append(b, rec.CtRatio)
		default:
			return nil, nil, apperrors.InputInvalid(fmt.Sprintf(
				"expression record %d has group %q, want %q or %q", i, rec.Group, labelA, labelB))
		}
	}
	return a, b, nil
}
