package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/otaviomart/olist-warehouse/internal/table"
)

// SQLiteSink writes Gold tables into a single embedded SQLite database
// file. Each operation opens one exclusive connection and closes it
// before returning; no handle is held across pipeline stages.
type SQLiteSink struct {
	path string
}

// NewSQLiteSink creates a sink for the given database file path.
func NewSQLiteSink(path string) *SQLiteSink {
	return &SQLiteSink{path: path}
}

func (s *SQLiteSink) open() (*sql.DB, error) {
	dsn := "file:" + s.path + "?_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", s.path, err)
	}
	return db, nil
}

// ApplySchema executes the DDL script verbatim. The script owns table
// (re)creation and constraint definitions; the sink treats it as opaque.
func (s *SQLiteSink) ApplySchema(ctx context.Context, ddl string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Replace overwrites the contents of a table inside one transaction:
// delete everything, then bulk-insert the new rows. Constraint
// violations roll the transaction back and surface as errors.
func (s *SQLiteSink) Replace(ctx context.Context, name string, t *table.Table) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(name)); err != nil {
		return fmt.Errorf("clear table: %w", err)
	}

	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quoteIdent(c)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(cols, ", "), strings.Join(marks, ", "),
	))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			args[j] = bindArg(row[col])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Checks reports, per expected table, whether it exists and how many
// rows it holds.
func (s *SQLiteSink) Checks(ctx context.Context, tables []string) (Report, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	report := make(Report, 2*len(tables))
	for _, name := range tables {
		var count int64
		err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
			name,
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("check table %q: %w", name, err)
		}

		exists := count == 1
		report[name+"_exists"] = exists
		if !exists {
			continue
		}

		var rows int64
		if err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM "+quoteIdent(name),
		).Scan(&rows); err != nil {
			return nil, fmt.Errorf("count table %q: %w", name, err)
		}
		report[name+"_rowcount"] = rows
	}
	return report, nil
}

// bindArg converts a value to its SQLite representation. Timestamps are
// stored as canonical text so the DDL can declare them TEXT.
func bindArg(v table.Value) any {
	if !v.Valid {
		return nil
	}
	if v.Kind == table.KindTime {
		return v.Time.Format(table.TimeLayout)
	}
	return v.Primitive()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
