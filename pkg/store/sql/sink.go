// Package sql persists output tables and the run ledger into a SQL database.
// Statements stick to the subset shared by DuckDB and SQLite.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/de-tools/hours-atlas/pkg/adapters"
	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// RunsTableSchema is executed by the database openers at boot.
const RunsTableSchema = `
	CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR NOT NULL PRIMARY KEY,
		status VARCHAR NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NULL,
		inputs VARCHAR,
		error VARCHAR NULL
	);
`

// Sink replaces one database table per output table on every run and records
// each run in the runs table.
type Sink struct {
	db     *sql.DB
	target string
}

// NewSink wraps db. target names the database in errors and logs, usually its file path.
func NewSink(db *sql.DB, target string) (*Sink, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Sink{db: db, target: target}, nil
}

func (s *Sink) Begin(ctx context.Context, run *domain.Run) error {
	r := adapters.MapDomainRunToStore(run)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, started_at, inputs) VALUES (?, ?, ?, ?)`,
		r.ID, r.Status, r.StartedAt, r.Inputs,
	)
	if err != nil {
		return recerrors.NewOutputWriteError(s.target, fmt.Errorf("insert run: %w", err))
	}
	return nil
}

// Write drops and recreates the table, then inserts every row. It joins the transaction
// stored in ctx when there is one and otherwise runs in its own.
func (s *Sink) Write(ctx context.Context, table store.Table) (err error) {
	logger := zerolog.Ctx(ctx)
	destination := s.target + "#" + table.Name

	tx := GetTransaction(ctx)
	if tx == nil {
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return recerrors.NewOutputWriteError(destination, fmt.Errorf("begin transaction: %w", err))
		}
		defer func() {
			if err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					logger.Warn().Err(rerr).Str("table", table.Name).Msg("failed to roll back table write")
				}
				return
			}
			if cerr := tx.Commit(); cerr != nil {
				err = recerrors.NewOutputWriteError(destination, fmt.Errorf("commit: %w", cerr))
			}
		}()
	}

	if err := replaceTable(ctx, tx, table); err != nil {
		return recerrors.NewOutputWriteError(destination, err)
	}

	logger.Info().
		Str("database", s.target).
		Str("table", table.Name).
		Int("rows", len(table.Rows)).
		Msg("wrote table")
	return nil
}

// WriteAll replaces every table inside one transaction. A failing table rolls back
// the tables written before it.
func (s *Sink) WriteAll(ctx context.Context, tables []store.Table) (err error) {
	logger := zerolog.Ctx(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return recerrors.NewOutputWriteError(s.target, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				logger.Warn().Err(rerr).Str("database", s.target).Msg("failed to roll back run tables")
			}
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = recerrors.NewOutputWriteError(s.target, fmt.Errorf("commit: %w", cerr))
		}
	}()

	ctx = WithTransaction(ctx, tx)
	for _, table := range tables {
		if err = s.Write(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sink) Finish(ctx context.Context, run *domain.Run) error {
	r := adapters.MapDomainRunToStore(run)
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ?, error = ? WHERE id = ?`,
		r.Status, r.FinishedAt, r.Error, r.ID,
	)
	if err != nil {
		return recerrors.NewOutputWriteError(s.target, fmt.Errorf("update run: %w", err))
	}
	return nil
}

func (s *Sink) Close() error {
	return s.db.Close()
}

func replaceTable(ctx context.Context, tx *sql.Tx, table store.Table) error {
	name := quoteIdent(table.Name)

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createTableQuery(table)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if len(table.Rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, insertQuery(table))
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(table.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return nil
}

func createTableQuery(table store.Table) string {
	defs := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		defs[i] = quoteIdent(c.Name) + " " + columnType(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table.Name), strings.Join(defs, ", "))
}

func insertQuery(table store.Table) string {
	names := make([]string, len(table.Columns))
	placeholders := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		names[i] = quoteIdent(c.Name)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table.Name), strings.Join(names, ", "), strings.Join(placeholders, ", "))
}

func columnType(t store.ColumnType) string {
	switch t {
	case store.ColumnFloat:
		return "DOUBLE"
	case store.ColumnInt:
		return "BIGINT"
	case store.ColumnBool:
		return "BOOLEAN"
	case store.ColumnDate:
		return "DATE"
	default:
		return "VARCHAR"
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
