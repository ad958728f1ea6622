package store

import "time"

type ReportRecord struct {
	ID           string
	Document     string
	TotalSeconds float64
	RowCount     int
	SkippedCount int
	CreatedAt    time.Time
}

type ReportRowRecord struct {
	ReportID  string
	Position  int
	Component string
	Feature   string
	Seconds   float64
	Health    string
}
