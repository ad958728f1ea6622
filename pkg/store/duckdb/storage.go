package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/duckdb/duckdb-go/v2"
)

const ReportsTableSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id VARCHAR NOT NULL PRIMARY KEY,
		document VARCHAR NOT NULL,
		total_seconds DOUBLE NOT NULL,
		row_count INTEGER NOT NULL,
		skipped_count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const ReportRowsTableSchema = `
	CREATE TABLE IF NOT EXISTS report_rows (
		report_id VARCHAR NOT NULL,
		row_index INTEGER NOT NULL,
		component VARCHAR,
		feature VARCHAR,
		seconds DOUBLE NOT NULL,
		health VARCHAR,
		PRIMARY KEY (report_id, row_index)
	);
`

var bootQueries = []string{
	ReportsTableSchema,
	ReportRowsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
