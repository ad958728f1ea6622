package timeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/timeline-report/pkg/models/domain"
)

const (
	componentField = iota
	featureField
	secondsField
	healthField

	reportFields = healthField + 1
)

// RowOutcome is the result of parsing one data row: either Parsed or Skipped
type RowOutcome interface {
	isRowOutcome()
}

type Parsed struct {
	Line int
	Row  domain.ReportRow
}

type Skipped struct {
	Err *RowParseError
}

func (Parsed) isRowOutcome()  {}
func (Skipped) isRowOutcome() {}

// ParseRows reads a header-bearing CSV table and returns one outcome per data row,
// in input order. The first line is always treated as the header, even when blank.
// Quoting is lenient, so malformed quotes are kept as field text.
func ParseRows(r io.Reader) ([]RowOutcome, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrInputUnavailable)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var outcomes []RowOutcome
	header := true
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
		}

		line, _ := reader.FieldPos(0)
		if header {
			header = false
			// A blank first line is the header; csv.Reader drops blank lines.
			if line == 1 {
				continue
			}
		}

		outcomes = append(outcomes, parseRow(line, fields))
	}

	return outcomes, nil
}

func parseRow(line int, fields []string) RowOutcome {
	if len(fields) <= secondsField {
		return Skipped{Err: &RowParseError{Line: line, Fields: fields, Err: ErrTooFewFields}}
	}

	raw := strings.TrimSpace(fields[secondsField])
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Skipped{Err: &RowParseError{
			Line:   line,
			Fields: fields,
			Err:    fmt.Errorf("%w: %q", ErrInvalidSeconds, raw),
		}}
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Skipped{Err: &RowParseError{
			Line:   line,
			Fields: fields,
			Err:    fmt.Errorf("%w: %q is not finite", ErrInvalidSeconds, raw),
		}}
	}

	padded := make([]string, reportFields)
	copy(padded, fields)

	return Parsed{
		Line: line,
		Row: domain.ReportRow{
			Component: padded[componentField],
			Feature:   padded[featureField],
			Seconds:   seconds,
			Health:    padded[healthField],
		},
	}
}

// Collect splits outcomes into the parsed rows and the skip diagnostics
func Collect(outcomes []RowOutcome) ([]domain.ReportRow, []domain.SkippedRow) {
	rows := make([]domain.ReportRow, 0, len(outcomes))
	var skipped []domain.SkippedRow

	for _, outcome := range outcomes {
		switch o := outcome.(type) {
		case Parsed:
			rows = append(rows, o.Row)
		case Skipped:
			skipped = append(skipped, domain.SkippedRow{
				Line:   o.Err.Line,
				Fields: o.Err.Fields,
				Reason: o.Err.Err.Error(),
			})
		}
	}

	return rows, skipped
}
