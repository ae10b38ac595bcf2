// Package file reads timesheet exports from delimited files and writes output
// tables as CSV.
package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
	"github.com/de-tools/hours-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadTable loads a delimited export. UTF-8 and UTF-16 byte order marks are honoured,
// input that is not valid UTF-8 is decoded as Latin-1, and the delimiter is detected
// from the header line. Short rows are padded and long rows truncated to the header width.
func ReadTable(ctx context.Context, path string) (*store.RawTable, error) {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, recerrors.NewMissingFileError(path, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	decoded, encoding, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = detectDelimiter(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, recerrors.NewEmptyInputError(path, "no header row")
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	table := &store.RawTable{Path: path, Headers: headers}
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", path, line, err)
		}
		if isBlank(row) {
			continue
		}

		if len(row) != len(headers) {
			logger.Warn().
				Str("path", path).
				Int("line", line).
				Int("columns", len(row)).
				Int("expected", len(headers)).
				Msg("row width differs from header, adjusting")
			adjusted := make([]string, len(headers))
			copy(adjusted, row)
			row = adjusted
		}
		table.Rows = append(table.Rows, row)
	}

	logger.Debug().
		Str("path", path).
		Str("encoding", encoding).
		Int("columns", len(headers)).
		Int("rows", len(table.Rows)).
		Msg("read input table")

	return table, nil
}

func decode(data []byte) ([]byte, string, error) {
	if !hasBOM(data) && !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		return decoded, "latin-1", err
	}

	encoding := "utf-8"
	if hasBOM(data) {
		encoding = "utf-bom"
	}
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, "", err
	}
	return decoded, encoding, nil
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// detectDelimiter parses the header line with each candidate delimiter and keeps the
// one yielding the most fields, so delimiters inside quoted headers are not counted.
func detectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}

	best, bestFields := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		r := csv.NewReader(bytes.NewReader(header))
		r.Comma = d
		r.LazyQuotes = true
		fields, err := r.Read()
		if err != nil {
			continue
		}
		if len(fields) > bestFields {
			best, bestFields = d, len(fields)
		}
	}
	return best
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
