package genmapload

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput is returned when a required input is not configured or
	// cannot be read.
	ErrMissingInput = errors.New("missing input")

	// ErrMalformedRow is returned when a row has the wrong number of fields or
	// a field that cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
)

// RowError locates a malformed row within one of the input sources. Line is
// 1-based and counts the header, if any.
type RowError struct {
	Source string
	Line   int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: %s: %v", e.Source, e.Line, ErrMalformedRow, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Is makes every RowError match ErrMalformedRow.
func (e *RowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// MalformedRow builds a RowError with a formatted cause.
func MalformedRow(source string, line int, format string, args ...interface{}) error {
	return &RowError{Source: source, Line: line, Err: fmt.Errorf(format, args...)}
}
