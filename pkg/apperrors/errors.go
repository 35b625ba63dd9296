package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNoStatementHeader = errors.New("no CREATE statement header found")
	ErrInputTooLarge     = errors.New("input exceeds configured maximum length")
	ErrUnknownDialect    = errors.New("unknown dialect")
	ErrUnknownDriver     = errors.New("unknown datasource driver")
)

// ParseError is the only fatal failure the parsing pipeline signals. It wraps
// the underlying cause when one exists (e.g. a JSON decode error).
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema parse: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("schema parse: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError with the given reason and optional cause.
func NewParseError(reason string, cause error) *ParseError {
	return &ParseError{Reason: reason, Err: cause}
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
