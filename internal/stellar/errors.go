package stellar

import (
	"errors"
	"fmt"
)

// Domain errors for profile operations.
var (
	// ErrMissingColumn indicates a required column is absent from a table.
	ErrMissingColumn = errors.New("stellar: missing column")

	// ErrLengthMismatch indicates input arrays of inconsistent length.
	ErrLengthMismatch = errors.New("stellar: length mismatch")

	// ErrEmptyTable indicates an operation that needs at least one zone.
	ErrEmptyTable = errors.New("stellar: empty table")
)

// ColumnError wraps an error with the name of the offending column.
type ColumnError struct {
	Column  string
	Wrapped error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: %q", e.Wrapped.Error(), e.Column)
}

func (e *ColumnError) Unwrap() error {
	return e.Wrapped
}

// MissingColumn returns a ColumnError wrapping ErrMissingColumn.
func MissingColumn(name string) error {
	return &ColumnError{Column: name, Wrapped: ErrMissingColumn}
}

// CheckLengths returns ErrLengthMismatch unless every slice has length n.
func CheckLengths(n int, arrays ...[]float64) error {
	for i, a := range arrays {
		if len(a) != n {
			return fmt.Errorf("%w: argument %d has %d zones, want %d", ErrLengthMismatch, i, len(a), n)
		}
	}
	return nil
}
