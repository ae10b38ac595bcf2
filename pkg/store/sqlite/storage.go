// Package sqlite opens the SQLite output database.
package sqlite

import (
	"database/sql"
	"fmt"

	recsql "github.com/de-tools/hours-atlas/pkg/store/sql"
	_ "github.com/mattn/go-sqlite3"
)

var bootQueries = []string{
	recsql.RunsTableSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the database file and creates the runs table. SQLite allows a single
// writer, so the pool is limited to one connection.
func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", settings.DbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("boot sqlite schema: %w", err)
		}
	}
	return db, nil
}
