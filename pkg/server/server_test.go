package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/timeline-report/pkg/handlers/report"
	"github.com/de-tools/timeline-report/pkg/models/api"
	"github.com/de-tools/timeline-report/pkg/services/registry"
	"github.com/de-tools/timeline-report/pkg/services/reports"
	"github.com/de-tools/timeline-report/pkg/store/duckdb"
	reportstore "github.com/de-tools/timeline-report/pkg/store/duckdb/report"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const featureDump = "Component,Feature,Compute Time,Health\n" +
	"Root,Sketch1,0.25,Good\n" +
	"Root,Extrude1,1.25,Good\n" +
	"Root,<script>x</script>,0.5,Warning\n" +
	"Root,Broken,n/a,Error\n"

func setupServer(t *testing.T) *httptest.Server {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st, err := reportstore.NewStore(db)
	require.NoError(t, err)
	svc, err := reports.NewService(st)
	require.NoError(t, err)
	commands, err := registry.NewDefaultRegistry()
	require.NoError(t, err)

	router := ConfigureRouter(Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Reports:  svc,
			Commands: commands,
			Logger:   logger,
		},
	})
	testServer := httptest.NewServer(router)
	t.Cleanup(testServer.Close)
	return testServer
}

func TestWebAPI_ReportLifecycle(t *testing.T) {
	testServer := setupServer(t)

	// Create and archive a report
	resp, err := http.Post(
		testServer.URL+"/api/v1/reports?document=Bracket&archive=true",
		"text/csv",
		strings.NewReader(featureDump),
	)
	require.NoError(t, err, "Failed to send request")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Status code mismatch")
	id := resp.Header.Get(report.ReportIDHeader)
	require.NotEmpty(t, id)

	created, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(created), "Total timeline compute: 0:00:02.000")
	assert.Contains(t, string(created), "&lt;script&gt;")
	assert.NotContains(t, string(created), "<script>")

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "ListCommands",
			path:           "/api/v1/commands",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var commands []api.CommandDefinition
				require.NoError(t, json.Unmarshal(body, &commands))
				require.Len(t, commands, 1)
				assert.Equal(t, "Timeline Compute Report", commands[0].Name)
			},
		},
		{
			name:           "ListReports",
			path:           "/api/v1/reports?document=Bracket",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var summaries []api.ReportSummary
				require.NoError(t, json.Unmarshal(body, &summaries))
				require.Len(t, summaries, 1)
				assert.Equal(t, id, summaries[0].ID)
				assert.Equal(t, 3, summaries[0].RowCount)
				assert.Equal(t, 1, summaries[0].SkippedCount)
				assert.Equal(t, "0:00:02.000", summaries[0].Total)
			},
		},
		{
			name:           "GetReport",
			path:           "/api/v1/reports/" + id,
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, string(created), string(body))
			},
		},
		{
			name:           "GetReportRows",
			path:           "/api/v1/reports/" + id + "/rows",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var r api.Report
				require.NoError(t, json.Unmarshal(body, &r))
				require.Len(t, r.Rows, 3)
				assert.Equal(t, "Sketch1", r.Rows[0].Feature)
				assert.Equal(t, "<script>x</script>", r.Rows[2].Feature)
			},
		},
		{
			name:           "GetReport_NotFound",
			path:           "/api/v1/reports/unknown",
			expectedStatus: http.StatusNotFound,
			check: func(t *testing.T, body []byte) {
				assert.Equal(t, "report not found\n", string(body))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			tc.check(t, body)
		})
	}
}

func TestWebAPI_CreateReport_MissingDocument(t *testing.T) {
	testServer := setupServer(t)

	resp, err := http.Post(testServer.URL+"/api/v1/reports", "text/csv", strings.NewReader(featureDump))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewWebAPI_DefaultsShutdownTimeout(t *testing.T) {
	w := NewWebAPI(Config{Addr: "127.0.0.1:0"})
	assert.Equal(t, defaultShutdownTimeout, w.shutdownTimeout)
	assert.Equal(t, "127.0.0.1:0", w.server.Addr)
}
