package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Validation errors
	ErrEmptyTable       = errors.New("table has no columns")
	ErrDuplicateColumn  = errors.New("duplicate column name")
	ErrRaggedColumns    = errors.New("columns have unequal lengths")
	ErrNonNumeric       = errors.New("column is not numeric")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Imputation errors
	ErrAllMissing      = errors.New("column has no observed values")
	ErrDegenerateInput = errors.New("degenerate input for statistical test")
)

// Error constructors with context

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewNonNumericError(name string) error {
	return fmt.Errorf("%w: %q", ErrNonNumeric, name)
}

func NewInsufficientDataError(name string, n int) error {
	return fmt.Errorf("%w: %q has %d observed values", ErrInsufficientData, name, n)
}

// Error checking helpers

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}
