package adapters

import (
	"github.com/de-tools/timeline-report/pkg/models/api"
	"github.com/de-tools/timeline-report/pkg/models/domain"
	"github.com/de-tools/timeline-report/pkg/models/store"
	"github.com/de-tools/timeline-report/pkg/services/timeline"
)

func MapDomainReportToStore(r *domain.Report) (store.ReportRecord, []store.ReportRowRecord) {
	record := store.ReportRecord{
		Document:     r.DocumentName,
		TotalSeconds: r.TotalSeconds,
		RowCount:     len(r.Rows),
		SkippedCount: len(r.Skipped),
	}

	rows := make([]store.ReportRowRecord, 0, len(r.Rows))
	for i, row := range r.Rows {
		rows = append(rows, store.ReportRowRecord{
			Position:  i,
			Component: row.Component,
			Feature:   row.Feature,
			Seconds:   row.Seconds,
			Health:    row.Health,
		})
	}
	return record, rows
}

// MapStoreReportToDomain rebuilds a report from the archive.
// Skip diagnostics are not archived, so Skipped stays empty.
func MapStoreReportToDomain(record store.ReportRecord, rows []store.ReportRowRecord) *domain.Report {
	report := &domain.Report{
		DocumentName: record.Document,
		Rows:         make([]domain.ReportRow, 0, len(rows)),
		TotalSeconds: record.TotalSeconds,
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, domain.ReportRow{
			Component: row.Component,
			Feature:   row.Feature,
			Seconds:   row.Seconds,
			Health:    row.Health,
		})
	}
	return report
}

func MapStoreReportToSummary(record store.ReportRecord) domain.ReportSummary {
	return domain.ReportSummary{
		ID:           record.ID,
		DocumentName: record.Document,
		TotalSeconds: record.TotalSeconds,
		RowCount:     record.RowCount,
		SkippedCount: record.SkippedCount,
		CreatedAt:    record.CreatedAt,
	}
}

func MapSummaryToAPI(s domain.ReportSummary) api.ReportSummary {
	return api.ReportSummary{
		ID:           s.ID,
		Document:     s.DocumentName,
		TotalSeconds: s.TotalSeconds,
		Total:        timeline.FormatDuration(s.TotalSeconds),
		RowCount:     s.RowCount,
		SkippedCount: s.SkippedCount,
		CreatedAt:    s.CreatedAt,
	}
}

func MapReportToAPI(r *domain.Report) api.Report {
	rows := make([]api.ReportRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, api.ReportRow{
			Component: row.Component,
			Feature:   row.Feature,
			Seconds:   row.Seconds,
			Health:    row.Health,
		})
	}

	return api.Report{
		Document:     r.DocumentName,
		TotalSeconds: r.TotalSeconds,
		Total:        timeline.FormatDuration(r.TotalSeconds),
		Rows:         rows,
	}
}

func MapCommandToAPI(c domain.CommandDefinition) api.CommandDefinition {
	return api.CommandDefinition{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Workspace:   c.Workspace,
		Tab:         c.TabID,
		Panel:       c.PanelID,
		Promoted:    c.Promoted,
	}
}
