package output

import (
	"database/sql"
	"os"
	"path/filepath"

	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
	"github.com/de-tools/hours-atlas/pkg/services/config"
	"github.com/de-tools/hours-atlas/pkg/services/workflow"
	"github.com/de-tools/hours-atlas/pkg/store/duckdb"
	"github.com/de-tools/hours-atlas/pkg/store/file"
	recsql "github.com/de-tools/hours-atlas/pkg/store/sql"
	"github.com/de-tools/hours-atlas/pkg/store/sqlite"
)

// Database file names created inside the output directory.
const (
	DuckDBFile = "recon.duckdb"
	SQLiteFile = "recon.sqlite"
)

func CSVSinkFactory(dir string) (workflow.Sink, error) {
	return file.NewSink(dir), nil
}

func DuckDBSinkFactory(dir string) (workflow.Sink, error) {
	path, err := databasePath(dir, DuckDBFile)
	if err != nil {
		return nil, err
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: path})
	if err != nil {
		return nil, recerrors.NewOutputWriteError(path, err)
	}
	return newSQLSink(db, path)
}

func SQLiteSinkFactory(dir string) (workflow.Sink, error) {
	path, err := databasePath(dir, SQLiteFile)
	if err != nil {
		return nil, err
	}
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: path})
	if err != nil {
		return nil, recerrors.NewOutputWriteError(path, err)
	}
	return newSQLSink(db, path)
}

// DefaultRegistry registers the csv, duckdb and sqlite sinks.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]SinkFactory{
		config.FormatCSV:    CSVSinkFactory,
		config.FormatDuckDB: DuckDBSinkFactory,
		config.FormatSQLite: SQLiteSinkFactory,
	})
}

func databasePath(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", recerrors.NewOutputWriteError(dir, err)
	}
	return filepath.Join(dir, name), nil
}

func newSQLSink(db *sql.DB, path string) (workflow.Sink, error) {
	sink, err := recsql.NewSink(db, path)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return sink, nil
}
