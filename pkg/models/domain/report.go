package domain

import "time"

// ReportRow is one (component, feature, seconds, health) tuple of a feature-compute-time report
type ReportRow struct {
	Component string
	Feature   string
	Seconds   float64
	Health    string
}

// SkippedRow describes a data row that could not be turned into a ReportRow
type SkippedRow struct {
	Line   int
	Fields []string
	Reason string
}

// Report is the aggregated timeline report of a single document.
// Rows keep the order of the input; TotalSeconds is the sum of Rows[i].Seconds.
type Report struct {
	DocumentName string
	Rows         []ReportRow
	TotalSeconds float64
	Skipped      []SkippedRow
}

// ReportSummary describes an archived report without its rows
type ReportSummary struct {
	ID           string
	DocumentName string
	TotalSeconds float64
	RowCount     int
	SkippedCount int
	CreatedAt    time.Time
}
