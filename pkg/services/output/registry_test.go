package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/hours-atlas/pkg/services/workflow"
	"github.com/de-tools/hours-atlas/pkg/store/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(nil)
	noop := func(string) (workflow.Sink, error) { return nil, nil }

	require.NoError(t, r.Register("parquet", noop))
	assert.ErrorContains(t, r.Register("parquet", noop), "already registered")
	assert.Error(t, r.Register("", noop))
	assert.Error(t, r.Register("json", nil))
	assert.Equal(t, []string{"parquet"}, r.ListFormats())
}

func TestRegistry_CreateUnknownFormat(t *testing.T) {
	_, err := DefaultRegistry().Create("xlsx", t.TempDir())
	assert.ErrorContains(t, err, `format "xlsx" is not registered`)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"csv", "duckdb", "sqlite"}, r.ListFormats())

	dir := t.TempDir()
	sink, err := r.Create("csv", dir)
	require.NoError(t, err)
	csvSink, ok := sink.(*file.Sink)
	require.True(t, ok)
	assert.Equal(t, dir, csvSink.Dir())
}

func TestSQLiteSinkFactory_CreatesDatabaseFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	sink, err := SQLiteSinkFactory(dir)
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })

	_, err = os.Stat(filepath.Join(dir, SQLiteFile))
	assert.NoError(t, err)
}

func TestDuckDBSinkFactory_CreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()

	sink, err := DuckDBSinkFactory(dir)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	_, err = os.Stat(filepath.Join(dir, DuckDBFile))
	assert.NoError(t, err)
}
