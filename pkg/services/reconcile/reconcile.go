// Package reconcile compares two same-granularity aggregate tables key by key and
// reports every key on which the sources disagree.
package reconcile

import (
	"context"
	"fmt"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Settings controls how pairs are classified
type Settings struct {
	// Tolerance is the absolute difference in hours treated as equal (default: 0, exact comparison)
	Tolerance float64 `mapstructure:"tolerance"`
	// SkipZeroMissing drops unmatched rows whose own hours are zero (default: false)
	SkipZeroMissing bool `mapstructure:"skip_zero_missing"`
	// IncludeOnlyInB also reports keys present only in source B (default: false)
	IncludeOnlyInB bool `mapstructure:"include_only_in_b"`
}

// DefaultSettings returns the default reconciliation settings
func DefaultSettings() Settings {
	return Settings{}
}

func (s Settings) Validate() error {
	if s.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %v", s.Tolerance)
	}
	return nil
}

// Side names one aggregate table taking part in a comparison.
type Side[T domain.Aggregate] struct {
	Source domain.SourceID
	Rows   []T
}

// Compare matches rows of a and b by key. Rows of a are visited in order; a key absent
// from b is MissingInOtherSource, otherwise the delta a-b is classified against the
// tolerance and equal pairs are dropped. Only-in-b keys follow when enabled.
func Compare[T domain.Aggregate](ctx context.Context, granularity domain.Granularity, a, b Side[T], settings Settings) domain.ComparisonTable {
	lookup := make(map[domain.Key]float64, len(b.Rows))
	for _, row := range b.Rows {
		if _, ok := lookup[row.Key()]; !ok {
			lookup[row.Key()] = row.TotalHours()
		}
	}

	result := domain.ComparisonTable{
		Granularity: granularity,
		SourceA:     a.Source,
		SourceB:     b.Source,
	}

	seenA := make(map[domain.Key]struct{}, len(a.Rows))
	skipped := 0
	for _, row := range a.Rows {
		key := row.Key()
		seenA[key] = struct{}{}
		hoursA := row.TotalHours()

		hoursB, ok := lookup[key]
		if !ok {
			if settings.SkipZeroMissing && hoursA == 0 {
				skipped++
				continue
			}
			result.Rows = append(result.Rows, domain.ComparisonRecord{
				Granularity:    granularity,
				Key:            key,
				HoursA:         &hoursA,
				Classification: domain.MissingInOtherSource,
			})
			continue
		}

		class, delta := classify(hoursA, hoursB, settings.Tolerance)
		if class == domain.Equal {
			continue
		}
		result.Rows = append(result.Rows, domain.ComparisonRecord{
			Granularity:    granularity,
			Key:            key,
			HoursA:         &hoursA,
			HoursB:         &hoursB,
			Delta:          &delta,
			Classification: class,
		})
	}

	if settings.IncludeOnlyInB {
		emitted := make(map[domain.Key]struct{})
		for _, row := range b.Rows {
			key := row.Key()
			if _, ok := seenA[key]; ok {
				continue
			}
			if _, ok := emitted[key]; ok {
				continue
			}
			emitted[key] = struct{}{}

			hoursB := lookup[key]
			if settings.SkipZeroMissing && hoursB == 0 {
				skipped++
				continue
			}
			result.Rows = append(result.Rows, domain.ComparisonRecord{
				Granularity:    granularity,
				Key:            key,
				HoursB:         &hoursB,
				Classification: domain.MissingInOtherSource,
			})
		}
	}

	counts := result.CountBy()
	zerolog.Ctx(ctx).Debug().
		Str("granularity", string(granularity)).
		Str("source_a", string(a.Source)).
		Str("source_b", string(b.Source)).
		Int("higher_in_a", counts[domain.HigherInSourceA]).
		Int("higher_in_b", counts[domain.HigherInSourceB]).
		Int("missing", counts[domain.MissingInOtherSource]).
		Int("skipped_zero", skipped).
		Msg("compared aggregates")

	return result
}

// classify computes a-b exactly and compares it against tolerance.
func classify(a, b, tolerance float64) (domain.Classification, float64) {
	delta := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b))
	tol := decimal.NewFromFloat(tolerance)

	switch {
	case delta.GreaterThan(tol):
		return domain.HigherInSourceA, delta.InexactFloat64()
	case delta.Neg().GreaterThan(tol):
		return domain.HigherInSourceB, delta.InexactFloat64()
	}
	return domain.Equal, delta.InexactFloat64()
}

// CompareDaily reconciles two daily tables.
func CompareDaily(ctx context.Context, a, b domain.DailyTable, settings Settings) domain.ComparisonTable {
	return Compare(ctx, domain.GranularityDaily,
		Side[domain.DailyAggregate]{Source: a.Source, Rows: a.Rows},
		Side[domain.DailyAggregate]{Source: b.Source, Rows: b.Rows},
		settings)
}

// CompareMonthly reconciles two monthly tables.
func CompareMonthly(ctx context.Context, a, b domain.MonthlyTable, settings Settings) domain.ComparisonTable {
	return Compare(ctx, domain.GranularityMonthly,
		Side[domain.MonthlyAggregate]{Source: a.Source, Rows: a.Rows},
		Side[domain.MonthlyAggregate]{Source: b.Source, Rows: b.Rows},
		settings)
}
