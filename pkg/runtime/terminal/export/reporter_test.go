package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/timeline-report/pkg/models/domain"
	"github.com/de-tools/timeline-report/pkg/services/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_HandleResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := r.HandleResult(&command.Result{
		DocumentName: "Bracket",
		CSVPath:      "/tmp/a.csv",
		HTMLPath:     "/tmp/a.html",
		ReportID:     "r-1",
		Report: &domain.Report{
			Rows:         []domain.ReportRow{{Feature: "A", Seconds: 3661.5}},
			TotalSeconds: 3661.5,
			Skipped:      []domain.SkippedRow{{Line: 3}},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Bracket")
	assert.Contains(t, out, "Total timeline compute: 1:01:01.500")
	assert.Contains(t, out, "Features: 1 (1 skipped)")
	assert.Contains(t, out, "HTML: /tmp/a.html")
	assert.Contains(t, out, "Archived as r-1")
}

func TestReporter_HandleHistory(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	require.NoError(t, r.HandleHistory(nil))
	assert.Equal(t, "No archived reports found\n", buf.String())

	buf.Reset()
	created := time.Date(2025, 6, 13, 8, 30, 0, 0, time.UTC)
	require.NoError(t, r.HandleHistory([]domain.ReportSummary{
		{ID: "r-1", DocumentName: strings.Repeat("x", 40), TotalSeconds: 2, RowCount: 3, SkippedCount: 1, CreatedAt: created},
	}))

	out := buf.String()
	assert.Contains(t, out, "| ID ")
	assert.Contains(t, out, "0:00:02.000")
	assert.Contains(t, out, "2025-06-13 08:30:00")
	assert.Contains(t, out, strings.Repeat("x", 31)+"…")
	assert.NotContains(t, out, strings.Repeat("x", 33))
}

func TestReporter_HandleCommands(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	require.NoError(t, r.HandleCommands([]domain.CommandDefinition{{
		ID:        "PTPM-timelinecompute",
		Name:      "Timeline Compute Report",
		Workspace: "FusionSolidEnvironment",
		TabID:     "SolidTab",
		PanelID:   "InspectPanel",
		After:     "InterferenceCheckCommand",
	}}))

	out := buf.String()
	assert.Contains(t, out, "=== Timeline Compute Report ===")
	assert.Contains(t, out, "Placement: FusionSolidEnvironment / SolidTab / InspectPanel (after InterferenceCheckCommand)")
}
