// Package ioexport writes a cleaned table for downstream consumers,
// either as an SQLite database or as a CSV file.
package ioexport

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	_ "modernc.org/sqlite"

	"github.com/happidata/whr/pkg/standardize"
	"github.com/happidata/whr/pkg/table"
	"github.com/happidata/whr/pkg/whr"
)

const tableName = "whr_cleaned"

type sqliteExporter struct{}

// NewSQLite creates an exporter that writes the table into an SQLite
// database file, replacing the whr_cleaned table if it exists.
func NewSQLite() whr.Exporter {
	return &sqliteExporter{}
}

func (e *sqliteExporter) Export(
	ctx context.Context,
	t *table.Table,
	path string,
) error {
	startTime := time.Now()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return CreateError(path, err)
	}
	defer db.Close()

	cols := t.Columns()
	if err = createTable(ctx, db, t, cols); err != nil {
		return CreateError(path, err)
	}
	if err = insertRows(ctx, db, t, cols); err != nil {
		return WriteError(path, err)
	}
	if err = createIndexes(ctx, db, t); err != nil {
		return WriteError(path, err)
	}

	slog.Info("Exported table to SQLite",
		"path", path,
		"rows", humanize.Comma(int64(t.Len())),
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)
	return nil
}

func createTable(
	ctx context.Context,
	db *sql.DB,
	t *table.Table,
	cols []string,
) error {
	drop := fmt.Sprintf("DROP TABLE IF EXISTS %q", tableName)
	if _, err := db.ExecContext(ctx, drop); err != nil {
		return err
	}
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = fmt.Sprintf("%q %s", col, sqlType(t, col))
	}
	create := fmt.Sprintf(
		"CREATE TABLE %q (\n  %s\n)", tableName, strings.Join(defs, ",\n  "),
	)
	_, err := db.ExecContext(ctx, create)
	return err
}

func insertRows(
	ctx context.Context,
	db *sql.DB,
	t *table.Table,
	cols []string,
) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	quoted := make([]string, len(cols))
	holes := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = fmt.Sprintf("%q", col)
		holes[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %q (%s) VALUES (%s)",
		tableName, strings.Join(quoted, ", "), strings.Join(holes, ", "),
	))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for row := 0; row < t.Len(); row++ {
		for i, col := range cols {
			args[i] = sqlValue(t.Cell(col, row))
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func createIndexes(ctx context.Context, db *sql.DB, t *table.Table) error {
	for _, col := range []string{
		standardize.AttrCountry, standardize.AttrRegion,
	} {
		if !t.HasColumn(col) {
			continue
		}
		idx := strings.ReplaceAll(strings.ToLower(col), " ", "_")
		q := fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_%s ON %q (%q)",
			tableName, idx, tableName, col,
		)
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func sqlType(t *table.Table, col string) string {
	for _, attr := range standardize.NumericAttributes {
		if col == attr {
			return "REAL"
		}
	}
	if t.IsNumeric(col) {
		return "REAL"
	}
	return "TEXT"
}

func sqlValue(c table.Cell) any {
	if c.IsNull() {
		return nil
	}
	if f, ok := c.Float(); ok {
		return f
	}
	return c.String()
}
