package report

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/timeline-report/pkg/models/store"
)

func TestReportStore_Save_ShouldInsertReportAndRows(t *testing.T) {
	// Given: a sqlmock DB expecting one report and one row in a transaction
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reports (")).
		WithArgs("r-1", "Bracket", 1.5, 1, 0, created).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO report_rows ("))
	prep.ExpectExec().
		WithArgs("r-1", 0, "Root", "Extrude1", 1.5, "Good").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	// When
	saved, err := s.Save(context.Background(), store.ReportRecord{
		ID:           "r-1",
		Document:     "Bracket",
		TotalSeconds: 1.5,
		RowCount:     1,
		CreatedAt:    created,
	}, []store.ReportRowRecord{{Component: "Root", Feature: "Extrude1", Seconds: 1.5, Health: "Good"}})

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved.ID != "r-1" {
		t.Errorf("expected id r-1, got %s", saved.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestReportStore_Save_ShouldRollbackOnRowFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reports (")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO report_rows (")).
		ExpectExec().
		WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	s, _ := NewStore(db)

	_, err = s.Save(context.Background(), store.ReportRecord{Document: "Bracket"},
		[]store.ReportRowRecord{{Component: "Root", Feature: "Extrude1", Seconds: 1}})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestReportStore_List_ShouldApplyFilterAndLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "document", "total_seconds", "row_count", "skipped_count", "created_at"}).
		AddRow("r-2", "Bracket", 4.5, 3, 1, created)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE document = ? ORDER BY created_at DESC, id LIMIT ?")).
		WithArgs("Bracket", 5).
		WillReturnRows(rows)

	s, _ := NewStore(db)

	records, err := s.List(context.Background(), "Bracket", 5)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 || records[0].ID != "r-2" || records[0].SkippedCount != 1 {
		t.Errorf("unexpected records: %+v", records)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
