package timeline

import (
	"context"
	"io"

	"github.com/de-tools/timeline-report/pkg/models/domain"
	"github.com/rs/zerolog"
)

// BuildReport parses a feature-compute-time table and sums the elapsed time of every valid row.
// Skipped rows are logged on the context logger and kept in Report.Skipped.
func BuildReport(ctx context.Context, documentName string, r io.Reader) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	outcomes, err := ParseRows(r)
	if err != nil {
		return nil, err
	}

	rows, skipped := Collect(outcomes)
	for _, s := range skipped {
		logger.Warn().
			Str("document", documentName).
			Int("line", s.Line).
			Strs("fields", s.Fields).
			Str("reason", s.Reason).
			Msg("skipping invalid row")
	}

	return &domain.Report{
		DocumentName: documentName,
		Rows:         rows,
		TotalSeconds: TotalSeconds(rows),
		Skipped:      skipped,
	}, nil
}

func TotalSeconds(rows []domain.ReportRow) float64 {
	var total float64
	for _, row := range rows {
		total += row.Seconds
	}
	return total
}
