package compiler

import (
	"errors"
	"fmt"
)

// ErrNoSources is returned when a source pattern matches no files.
var ErrNoSources = errors.New("no source files matched")

// IOError reports an output path that could not be created or written.
type IOError struct {
	Path string
	Op   string
	err  error
}

// NewIOError wraps err as an output failure of op on path.
func NewIOError(op, path string, err error) error {
	return &IOError{Path: path, Op: op, err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.err)
}

func (e *IOError) Unwrap() error {
	return e.err
}

// IsIOError returns true if err is or wraps an IOError.
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}
