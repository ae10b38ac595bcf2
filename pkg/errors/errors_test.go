package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"missing file", NewMissingFileError("a.csv", fs.ErrNotExist), ErrMissingFile},
		{"schema mismatch", NewSchemaMismatchError("HRSystem", "b.csv", []string{"Hours"}), ErrSchemaMismatch},
		{"empty input", NewEmptyInputError("c.csv", "no data rows"), ErrEmptyInput},
		{"date parse", NewDateParseError("HRSystem", "Date", 3, "2024-01-01", nil), ErrDateParse},
		{"field parse", NewFieldParseWarning("PayrollSystem", "Hours", 2, "abc H", nil), ErrFieldParse},
		{"output write", NewOutputWriteError("out/x.csv", fs.ErrPermission), ErrOutputWrite},
		{"unknown source", NewUnknownSourceError("Timecard"), ErrUnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("run failed: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
		})
	}
}

func TestSchemaMismatchError_NamesEveryMissingColumn(t *testing.T) {
	err := NewSchemaMismatchError("PayrollSystem", "sap.csv", []string{"Number (unit)", "Receiver"})

	assert.Equal(t,
		`PayrollSystem schema mismatch in sap.csv: missing columns "Number (unit)", "Receiver"`,
		err.Error())
}

func TestUnwrap_PreservesCause(t *testing.T) {
	err := NewMissingFileError("a.csv", fs.ErrNotExist)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	out := NewOutputWriteError("dir", fs.ErrPermission)
	assert.True(t, errors.Is(out, fs.ErrPermission))
}
