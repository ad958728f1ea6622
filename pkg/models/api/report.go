package api

import "time"

type ReportRow struct {
	Component string  `json:"component"`
	Feature   string  `json:"feature"`
	Seconds   float64 `json:"seconds"`
	Health    string  `json:"health"`
}

type Report struct {
	Document     string      `json:"document"`
	TotalSeconds float64     `json:"total_seconds"`
	Total        string      `json:"total"`
	Rows         []ReportRow `json:"rows"`
}

type ReportSummary struct {
	ID           string    `json:"id"`
	Document     string    `json:"document"`
	TotalSeconds float64   `json:"total_seconds"`
	Total        string    `json:"total"`
	RowCount     int       `json:"row_count"`
	SkippedCount int       `json:"skipped_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type CommandDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Workspace   string `json:"workspace"`
	Tab         string `json:"tab"`
	Panel       string `json:"panel"`
	Promoted    bool   `json:"promoted"`
}
