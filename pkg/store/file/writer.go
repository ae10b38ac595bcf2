package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const stagingSuffix = ".tmp"

// Sink writes every table to <dir>/<table name>.csv, prefixed with a UTF-8 BOM.
type Sink struct {
	dir string
}

func NewSink(dir string) *Sink {
	return &Sink{dir: dir}
}

func (s *Sink) Dir() string {
	return s.dir
}

func (s *Sink) Begin(ctx context.Context, run *domain.Run) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return recerrors.NewOutputWriteError(s.dir, err)
	}
	zerolog.Ctx(ctx).Debug().Str("dir", s.dir).Str("run_id", run.ID).Msg("csv sink ready")
	return nil
}

func (s *Sink) Write(ctx context.Context, table store.Table) error {
	path := filepath.Join(s.dir, table.Name+".csv")
	if err := writeCSV(path, table); err != nil {
		return recerrors.NewOutputWriteError(path, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("path", path).
		Int("rows", len(table.Rows)).
		Msg("wrote table")
	return nil
}

// WriteAll writes every table to a staging file first and renames the staged files
// over the previous output only when all of them were written.
func (s *Sink) WriteAll(ctx context.Context, tables []store.Table) error {
	logger := zerolog.Ctx(ctx)

	staged := make([]string, 0, len(tables))
	discard := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, table := range tables {
		path := filepath.Join(s.dir, table.Name+".csv")
		tmp := path + stagingSuffix
		staged = append(staged, tmp)
		if err := writeCSV(tmp, table); err != nil {
			discard()
			return recerrors.NewOutputWriteError(path, err)
		}
	}

	for i, table := range tables {
		path := strings.TrimSuffix(staged[i], stagingSuffix)
		if err := os.Rename(staged[i], path); err != nil {
			discard()
			return recerrors.NewOutputWriteError(path, err)
		}
		logger.Info().
			Str("path", path).
			Int("rows", len(table.Rows)).
			Msg("wrote table")
	}
	return nil
}

func (s *Sink) Finish(_ context.Context, _ *domain.Run) error {
	return nil
}

func (s *Sink) Close() error {
	return nil
}

func writeCSV(path string, table store.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.ColumnNames()); err != nil {
		return err
	}

	record := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(table.Columns))
		}
		for j, cell := range row {
			record[j] = FormatCell(cell)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FormatCell renders a table cell the way it appears in CSV output.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		if val {
			return "True"
		}
		return "False"
	case time.Time:
		return val.Format(domain.DateLayout)
	default:
		return fmt.Sprint(val)
	}
}
