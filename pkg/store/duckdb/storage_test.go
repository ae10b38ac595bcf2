package duckdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/models/store"
	recsql "github.com/de-tools/hours-atlas/pkg/store/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesRunsTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO runs (id, status, started_at, inputs) VALUES (?, ?, ?, ?)`,
		"run-001", "running", time.Now(), "HRSystem:hr.csv",
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM runs WHERE id = ?", "run-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSink_ReplacesTablesAcrossRuns(t *testing.T) {
	// Given a DuckDB file and a sink over it
	db, err := NewDB(Settings{DbPath: filepath.Join(t.TempDir(), "recon.duckdb")})
	require.NoError(t, err)
	sink, err := recsql.NewSink(db, "recon.duckdb")
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })

	ctx := context.Background()
	table := store.Table{
		Name: "HRSystem_daily",
		Columns: []store.Column{
			{Name: "Date", Type: store.ColumnDate},
			{Name: "Employee", Type: store.ColumnText},
			{Name: "Hours", Type: store.ColumnFloat},
			{Name: "AA code", Type: store.ColumnText},
			{Name: "Investigate", Type: store.ColumnBool},
		},
		Rows: [][]any{
			{time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "Alice", 9.0, "0800", true},
			{time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), "Bob", 7.0, nil, false},
		},
	}

	// When two runs write the same table
	for _, id := range []string{"run-1", "run-2"} {
		run := &domain.Run{ID: id, Status: domain.RunStatusRunning, StartedAt: time.Now()}
		require.NoError(t, sink.Begin(ctx, run))
		require.NoError(t, sink.Write(ctx, table))
		finished := time.Now()
		run.Status, run.FinishedAt = domain.RunStatusFinished, &finished
		require.NoError(t, sink.Finish(ctx, run))
	}

	// Then the table holds a single copy of the rows and both runs are recorded
	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "HRSystem_daily"`).Scan(&rows))
	assert.Equal(t, 2, rows)

	var hours float64
	require.NoError(t, db.QueryRow(`SELECT "Hours" FROM "HRSystem_daily" WHERE "Employee" = ?`, "Alice").Scan(&hours))
	assert.Equal(t, 9.0, hours)

	var finished int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs WHERE status = 'finished'`).Scan(&finished))
	assert.Equal(t, 2, finished)
}
