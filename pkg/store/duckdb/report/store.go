package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/timeline-report/pkg/models/store"
	"github.com/de-tools/timeline-report/pkg/store/duckdb"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("report not found")

// Store archives generated timeline reports
type Store interface {
	Save(ctx context.Context, record store.ReportRecord, rows []store.ReportRowRecord) (store.ReportRecord, error)
	List(ctx context.Context, document string, limit int) ([]store.ReportRecord, error)
	Get(ctx context.Context, id string) (store.ReportRecord, []store.ReportRowRecord, error)
}

type reportStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{
		db:  db,
		now: time.Now,
	}, nil
}

// Save inserts the report and its rows in one transaction.
// The record gets a new ID and creation time when they are not set.
func (s *reportStore) Save(
	ctx context.Context,
	record store.ReportRecord,
	rows []store.ReportRowRecord,
) (store.ReportRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}

	tx := duckdb.GetTransaction(ctx)
	owned := tx == nil
	if owned {
		var err error
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return store.ReportRecord{}, fmt.Errorf("begin transaction: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO reports (
			id, document, total_seconds, row_count, skipped_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Document,
		record.TotalSeconds,
		record.RowCount,
		record.SkippedCount,
		record.CreatedAt,
	)
	if err != nil {
		return store.ReportRecord{}, fmt.Errorf("insert report: %w", err)
	}

	if len(rows) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO report_rows (
				report_id, row_index, component, feature, seconds, health
			) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return store.ReportRecord{}, fmt.Errorf("prepare statement: %w", err)
		}
		defer stmt.Close()

		for i, row := range rows {
			_, err = stmt.ExecContext(ctx,
				record.ID,
				i,
				row.Component,
				row.Feature,
				row.Seconds,
				row.Health,
			)
			if err != nil {
				return store.ReportRecord{}, fmt.Errorf("insert row %d: %w", i, err)
			}
		}
	}

	if owned {
		if err := tx.Commit(); err != nil {
			return store.ReportRecord{}, fmt.Errorf("commit: %w", err)
		}
	}

	return record, nil
}

// List returns archived reports newest first, optionally filtered by document name
func (s *reportStore) List(ctx context.Context, document string, limit int) ([]store.ReportRecord, error) {
	query := `
		SELECT id, document, total_seconds, row_count, skipped_count, created_at
		FROM reports`
	var args []interface{}
	if document != "" {
		query += ` WHERE document = ?`
		args = append(args, document)
	}
	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	records := []store.ReportRecord{}
	for rows.Next() {
		var r store.ReportRecord
		if err := rows.Scan(&r.ID, &r.Document, &r.TotalSeconds, &r.RowCount, &r.SkippedCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	return records, nil
}

func (s *reportStore) Get(ctx context.Context, id string) (store.ReportRecord, []store.ReportRowRecord, error) {
	var record store.ReportRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, document, total_seconds, row_count, skipped_count, created_at
		FROM reports
		WHERE id = ?`, id).
		Scan(&record.ID, &record.Document, &record.TotalSeconds, &record.RowCount, &record.SkippedCount, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ReportRecord{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return store.ReportRecord{}, nil, fmt.Errorf("query report: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT report_id, row_index, component, feature, seconds, health
		FROM report_rows
		WHERE report_id = ?
		ORDER BY row_index`, id)
	if err != nil {
		return store.ReportRecord{}, nil, fmt.Errorf("query report rows: %w", err)
	}
	defer rows.Close()

	result := []store.ReportRowRecord{}
	for rows.Next() {
		var r store.ReportRowRecord
		if err := rows.Scan(&r.ReportID, &r.Position, &r.Component, &r.Feature, &r.Seconds, &r.Health); err != nil {
			return store.ReportRecord{}, nil, fmt.Errorf("scan report row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return store.ReportRecord{}, nil, fmt.Errorf("iterate report rows: %w", err)
	}

	return record, result, nil
}
