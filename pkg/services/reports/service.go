package reports

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/timeline-report/pkg/adapters"
	"github.com/de-tools/timeline-report/pkg/models/domain"
	"github.com/de-tools/timeline-report/pkg/services/timeline"
	"github.com/de-tools/timeline-report/pkg/store/duckdb/report"
	"github.com/rs/zerolog"
)

var ErrHistoryDisabled = errors.New("report history is disabled")

// Service builds timeline reports and keeps an optional archive of them
type Service interface {
	Generate(ctx context.Context, document string, input io.Reader) (*domain.Report, error)
	Render(ctx context.Context, r *domain.Report, w io.Writer) error
	Archive(ctx context.Context, r *domain.Report) (string, error)
	List(ctx context.Context, document string, limit int) ([]domain.ReportSummary, error)
	Get(ctx context.Context, id string) (*domain.Report, error)
}

type service struct {
	store    report.Store
	renderer *timeline.Renderer
}

// NewService creates a report service. store may be nil, in which case
// Archive, List and Get return ErrHistoryDisabled.
func NewService(store report.Store) (Service, error) {
	renderer, err := timeline.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &service{
		store:    store,
		renderer: renderer,
	}, nil
}

func (s *service) Generate(ctx context.Context, document string, input io.Reader) (*domain.Report, error) {
	if document == "" {
		return nil, fmt.Errorf("document name is required")
	}
	return timeline.BuildReport(ctx, document, input)
}

func (s *service) Render(_ context.Context, r *domain.Report, w io.Writer) error {
	return s.renderer.Render(w, r)
}

func (s *service) Archive(ctx context.Context, r *domain.Report) (string, error) {
	if s.store == nil {
		return "", ErrHistoryDisabled
	}

	record, rows := adapters.MapDomainReportToStore(r)
	saved, err := s.store.Save(ctx, record, rows)
	if err != nil {
		return "", fmt.Errorf("failed to archive report: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("id", saved.ID).
		Str("document", saved.Document).
		Msg("report archived")

	return saved.ID, nil
}

func (s *service) List(ctx context.Context, document string, limit int) ([]domain.ReportSummary, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}

	records, err := s.store.List(ctx, document, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	summaries := make([]domain.ReportSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, adapters.MapStoreReportToSummary(record))
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Report, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}

	record, rows, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreReportToDomain(record, rows), nil
}
