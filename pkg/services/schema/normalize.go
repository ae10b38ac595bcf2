package schema

import (
	"context"
	"strings"
	"time"

	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Normalizer applies registered schemas to raw exports.
type Normalizer struct {
	registry Registry
}

func NewNormalizer(registry Registry) *Normalizer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Normalizer{registry: registry}
}

// Normalize validates raw against the schema registered for source and converts every
// row into a canonical record. A malformed date aborts the batch; malformed hours and
// secondary times are recorded as warnings and left missing.
func (n *Normalizer) Normalize(ctx context.Context, source domain.SourceID, raw *store.RawTable) (*domain.CanonicalTable, error) {
	logger := zerolog.Ctx(ctx).With().Str("source", string(source)).Logger()

	s, err := n.registry.Get(source)
	if err != nil {
		return nil, err
	}

	if missing := missingColumns(raw, s.Required); len(missing) > 0 {
		return nil, recerrors.NewSchemaMismatchError(string(source), raw.Path, missing)
	}
	if len(raw.Rows) == 0 {
		return nil, recerrors.NewEmptyInputError(raw.Path, "no data rows")
	}

	columns := make(map[string]int, len(raw.Headers))
	for i, h := range raw.Headers {
		name := s.canonicalName(h)
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}

	table := &domain.CanonicalTable{
		Source:    source,
		Path:      raw.Path,
		Records:   make([]domain.CanonicalRecord, 0, len(raw.Rows)),
		FirstWins: append([]string(nil), s.FirstWins...),
	}

	for i, cells := range raw.Rows {
		rowNum := i + 1
		get := func(column string) string {
			idx, ok := columns[column]
			if !ok || idx >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[idx])
		}

		dateValue := get(s.DateColumn)
		date, err := time.Parse(s.DateLayout, dateValue)
		if err != nil {
			return nil, recerrors.NewDateParseError(string(source), s.DateColumn, rowNum, dateValue, err)
		}

		record := domain.CanonicalRecord{
			Row:            rowNum,
			EmployeeID:     get(domain.FieldEmployeeID),
			EmployeeName:   get(domain.FieldEmployee),
			AttendanceCode: get(domain.FieldAttendanceCode),
			Date:           date,
		}

		hoursValue := get(s.Hours.Column)
		if hours, err := parseHours(hoursValue, s.Hours.Suffix); err != nil {
			table.Warnings = append(table.Warnings,
				recerrors.NewFieldParseWarning(string(source), s.Hours.Column, rowNum, hoursValue, err))
		} else {
			record.Hours = &hours
		}

		if len(s.Times) > 0 {
			record.Times = make(map[string]*time.Time, len(s.Times))
			for _, rule := range s.Times {
				value := get(rule.Column)
				t, err := parseTime(value, rule.Layout)
				if err != nil {
					table.Warnings = append(table.Warnings,
						recerrors.NewFieldParseWarning(string(source), rule.Column, rowNum, value, err))
				}
				record.Times[rule.Column] = t
			}
		}

		if len(s.TextExtras) > 0 {
			record.Extras = make(map[string]string, len(s.TextExtras))
			for _, column := range s.TextExtras {
				record.Extras[column] = get(column)
			}
		}

		table.Records = append(table.Records, record)
	}

	for _, w := range table.Warnings {
		logger.Warn().
			Str("column", w.Column).
			Int("row", w.Row).
			Str("value", w.Value).
			Msg("field could not be parsed, treating as missing")
	}
	logger.Debug().
		Int("records", len(table.Records)).
		Int("warnings", len(table.Warnings)).
		Msg("normalized source")

	return table, nil
}

func missingColumns(raw *store.RawTable, required []string) []string {
	present := raw.Index()
	var missing []string
	for _, column := range required {
		if _, ok := present[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}
