package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Malformed input errors (fatal: abort the run)
	ErrMalformedInput = errors.New("malformed input")
	ErrColumnNotFound = fmt.Errorf("%w: column not found", ErrMalformedInput)
	ErrBadGenotype    = fmt.Errorf("%w: unexpected genotype level", ErrMalformedInput)
	ErrLengthMismatch = fmt.Errorf("%w: column length mismatch", ErrMalformedInput)
	ErrMissingValue   = fmt.Errorf("%w: missing value in a column that forbids them", ErrMalformedInput)

	// Degenerate statistical input (surfaced, never silently coerced)
	ErrDegenerateInput = errors.New("degenerate statistical input")
	ErrZeroDivisor     = fmt.Errorf("%w: zero row or column total", ErrDegenerateInput)
	ErrZeroVariance    = fmt.Errorf("%w: zero variance group", ErrDegenerateInput)
	ErrNegativeCell    = errors.New("negative contingency cell")

	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrNotConverged     = errors.New("estimation did not converge")
)

// Error constructors with context
func NewColumnError(table, column string) error {
	return fmt.Errorf("%w: %q in table %q", ErrColumnNotFound, column, table)
}

func NewGenotypeError(locus, observed string) error {
	return fmt.Errorf("%w: %q at locus %s", ErrBadGenotype, observed, locus)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

func IsDegenerateError(err error) bool {
	return errors.Is(err, ErrDegenerateInput) || errors.Is(err, ErrNegativeCell)
}
