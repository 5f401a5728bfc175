package errors

import (
	"errors"
	"fmt"
)

// Error code constants for standardized error classification
const (
	CodeMissingParameter = "MISSING_PARAMETER"
	CodeFormatError      = "FORMAT_ERROR"
	CodeLookupMiss       = "LOOKUP_MISS"
)

// Domain-level sentinel errors
var (
	// ErrListingNotFound indicates the requested address has no row in the
	// listings database.
	ErrListingNotFound = errors.New("listing not found")

	// ErrInvalidPurchasePrice indicates the listing row exists but carries no
	// usable price, so no financial calculation is possible.
	ErrInvalidPurchasePrice = errors.New("purchase price missing or not positive")
)

// MissingParameterError is returned when a required parameter is absent from
// the CLI flags, the config file, and the script defaults. It is fatal and
// aborts the run before any computation.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q: provide it via CLI flag or config file", e.Param)
}

// MissingParameter creates a MissingParameterError for the named parameter.
func MissingParameter(param string) error {
	return &MissingParameterError{Param: param}
}

// IsMissingParameter reports whether err is (or wraps) a MissingParameterError.
func IsMissingParameter(err error) bool {
	var mpe *MissingParameterError
	return errors.As(err, &mpe)
}

// FormatError is returned when a raw listing field (tax string, rent figure,
// year built) cannot be parsed into a number. Callers recover by substituting
// a configured default and logging; it never aborts a run.
type FormatError struct {
	Field string
	Raw   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unparseable %s value %q", e.Field, e.Raw)
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
