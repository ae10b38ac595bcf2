// Package errors provides the error taxonomy of a reconciliation run.
// Every fatal error aborts the run; FieldParseWarning is the only non-fatal kind
// and is absorbed by the normalizer.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrMissingFile    = errors.New("missing file")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrEmptyInput     = errors.New("empty input")
	ErrDateParse      = errors.New("date parse")
	ErrFieldParse     = errors.New("field parse")
	ErrOutputWrite    = errors.New("output write")
	ErrUnknownSource  = errors.New("unknown source")
)

// MissingFileError is returned when an input path does not resolve.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("input file %q not found", e.Path)
}

func (e *MissingFileError) Unwrap() error {
	return e.Err
}

func (e *MissingFileError) Is(target error) bool {
	return target == ErrMissingFile
}

func NewMissingFileError(path string, err error) *MissingFileError {
	return &MissingFileError{Path: path, Err: err}
}

// SchemaMismatchError lists every required column absent from an input file.
type SchemaMismatchError struct {
	Source  string
	Path    string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s schema mismatch in %s: missing columns %s", e.Source, e.Path, strings.Join(quoted, ", "))
	}
	return fmt.Sprintf("%s schema mismatch: missing columns %s", e.Source, strings.Join(quoted, ", "))
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

func NewSchemaMismatchError(source, path string, missing []string) *SchemaMismatchError {
	return &SchemaMismatchError{Source: source, Path: path, Missing: missing}
}

// EmptyInputError is returned for files without a header row or without data rows.
type EmptyInputError struct {
	Path   string
	Reason string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("input file %q is empty: %s", e.Path, e.Reason)
}

func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

func NewEmptyInputError(path, reason string) *EmptyInputError {
	return &EmptyInputError{Path: path, Reason: reason}
}

// DateParseError aborts a whole batch: a single bad date usually means the wrong file was supplied.
type DateParseError struct {
	Source string
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse column %q at row %d: value %q", e.Source, e.Column, e.Row, e.Value)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}

func NewDateParseError(source, column string, row int, value string, err error) *DateParseError {
	return &DateParseError{Source: source, Column: column, Row: row, Value: value, Err: err}
}

// FieldParseWarning records a single unparseable field. The field becomes missing
// for that row only and the row stays in the pipeline.
type FieldParseWarning struct {
	Source string
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *FieldParseWarning) Error() string {
	return fmt.Sprintf("%s: ignoring column %q at row %d: value %q", e.Source, e.Column, e.Row, e.Value)
}

func (e *FieldParseWarning) Unwrap() error {
	return e.Err
}

func (e *FieldParseWarning) Is(target error) bool {
	return target == ErrFieldParse
}

func NewFieldParseWarning(source, column string, row int, value string, err error) *FieldParseWarning {
	return &FieldParseWarning{Source: source, Column: column, Row: row, Value: value, Err: err}
}

// OutputWriteError wraps any failure to persist an output table.
type OutputWriteError struct {
	Destination string
	Err         error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Destination, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

func (e *OutputWriteError) Is(target error) bool {
	return target == ErrOutputWrite
}

func NewOutputWriteError(destination string, err error) *OutputWriteError {
	return &OutputWriteError{Destination: destination, Err: err}
}

// UnknownSourceError is returned when no schema is registered for a source id.
type UnknownSourceError struct {
	Source string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("source %q is not registered", e.Source)
}

func (e *UnknownSourceError) Is(target error) bool {
	return target == ErrUnknownSource
}

func NewUnknownSourceError(source string) *UnknownSourceError {
	return &UnknownSourceError{Source: source}
}
