package timeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputUnavailable is returned when the report source cannot be read at all
	ErrInputUnavailable = errors.New("timeline input unavailable")

	ErrTooFewFields   = errors.New("too few fields")
	ErrInvalidSeconds = errors.New("invalid seconds value")
)

// RowParseError reports a single data row that was skipped.
// It never aborts parsing.
type RowParseError struct {
	Line   int
	Fields []string
	Err    error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("row %d [%s]: %v", e.Line, strings.Join(e.Fields, ","), e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}
