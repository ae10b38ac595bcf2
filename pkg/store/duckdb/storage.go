package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	recsql "github.com/de-tools/hours-atlas/pkg/store/sql"
	"github.com/marcboeker/go-duckdb/v2"
)

var bootQueries = []string{
	recsql.RunsTableSchema,
}

type Settings struct {
	DbPath string
	// Threads caps DuckDB worker threads; zero keeps the default of 4.
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
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
