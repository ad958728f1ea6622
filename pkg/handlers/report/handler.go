package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/de-tools/timeline-report/pkg/adapters"
	"github.com/de-tools/timeline-report/pkg/models/api"
	"github.com/de-tools/timeline-report/pkg/models/domain"
	"github.com/de-tools/timeline-report/pkg/services/registry"
	"github.com/de-tools/timeline-report/pkg/services/reports"
	"github.com/de-tools/timeline-report/pkg/services/timeline"
	reportstore "github.com/de-tools/timeline-report/pkg/store/duckdb/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	defaultLimit = 20
	maxBodyBytes = 32 << 20

	ReportIDHeader = "X-Report-Id"
)

type Handler struct {
	reports  reports.Service
	commands registry.Registry
}

func NewHandler(reports reports.Service, commands registry.Registry) *Handler {
	return &Handler{
		reports:  reports,
		commands: commands,
	}
}

func (h *Handler) ListCommands(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	commands, err := h.commands.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list commands")
		http.Error(w, "failed to list commands", http.StatusInternalServerError)
		return
	}

	response := make([]api.CommandDefinition, 0, len(commands))
	for _, c := range commands {
		response = append(response, adapters.MapCommandToAPI(c))
	}
	writeJSON(w, r, response)
}

// CreateReport renders the CSV request body as an HTML report
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	document := r.URL.Query().Get("document")
	if document == "" {
		http.Error(w, "missing 'document' query parameter", http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	report, err := h.reports.Generate(ctx, document, body)
	if err != nil {
		if errors.Is(err, timeline.ErrInputUnavailable) {
			http.Error(w, "failed to read report data", http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Str("document", document).Msg("failed to build report")
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	if archive, _ := strconv.ParseBool(r.URL.Query().Get("archive")); archive {
		id, err := h.reports.Archive(ctx, report)
		if err != nil {
			h.writeHistoryError(w, r, err)
			return
		}
		w.Header().Set(ReportIDHeader, id)
	}

	h.writeHTML(w, r, report)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid 'limit' value. Expected a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	summaries, err := h.reports.List(ctx, r.URL.Query().Get("document"), limit)
	if err != nil {
		h.writeHistoryError(w, r, err)
		return
	}

	response := make([]api.ReportSummary, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, adapters.MapSummaryToAPI(s))
	}
	writeJSON(w, r, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	h.writeHTML(w, r, report)
}

func (h *Handler) GetReportRows(w http.ResponseWriter, r *http.Request) {
	report, ok := h.loadReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, adapters.MapReportToAPI(report))
}

func (h *Handler) loadReport(w http.ResponseWriter, r *http.Request) (*domain.Report, bool) {
	id := chi.URLParam(r, "id")
	report, err := h.reports.Get(r.Context(), id)
	if err != nil {
		h.writeHistoryError(w, r, err)
		return nil, false
	}
	return report, true
}

func (h *Handler) writeHistoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reports.ErrHistoryDisabled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, reportstore.ErrNotFound):
		http.Error(w, "report not found", http.StatusNotFound)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("report history request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeHTML(w http.ResponseWriter, r *http.Request, report *domain.Report) {
	var buf bytes.Buffer
	if err := h.reports.Render(r.Context(), report, &buf); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render report")
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write report")
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
