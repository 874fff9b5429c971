package store

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned when no reader is registered for an input.
var ErrUnknownFormat = errors.New("unknown rdf format")

// ParseError reports an input file that could not be read or parsed.
type ParseError struct {
	Path   string
	Format string
	err    error
}

// NewParseError wraps err as a parse failure for path.
func NewParseError(path, format string, err error) error {
	return &ParseError{Path: path, Format: format, err: err}
}

func (e *ParseError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("parse %s: %v", e.Path, e.err)
	}
	return fmt.Sprintf("parse %s (%s): %v", e.Path, e.Format, e.err)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
