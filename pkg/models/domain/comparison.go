package domain

import (
	"fmt"
	"strings"
)

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case GranularityDaily:
		return GranularityDaily, nil
	case GranularityMonthly:
		return GranularityMonthly, nil
	}
	return "", fmt.Errorf("unknown granularity %q (expected daily or monthly)", s)
}

// PeriodColumn is the output header of the key's period part.
func (g Granularity) PeriodColumn() string {
	if g == GranularityMonthly {
		return "YearMonth"
	}
	return FieldDate
}

type Classification string

const (
	HigherInSourceA      Classification = "HigherInSourceA"
	HigherInSourceB      Classification = "HigherInSourceB"
	Equal                Classification = "Equal"
	MissingInOtherSource Classification = "MissingInOtherSource"
)

// ComparisonRecord is a key on which the two sources disagree. A nil hours
// pointer means the source has no record for the key.
type ComparisonRecord struct {
	Granularity    Granularity
	Key            Key
	HoursA         *float64
	HoursB         *float64
	Delta          *float64
	Classification Classification
}

type ComparisonTable struct {
	Granularity Granularity
	SourceA     SourceID
	SourceB     SourceID
	Rows        []ComparisonRecord
}

// CountBy tallies rows per classification.
func (t ComparisonTable) CountBy() map[Classification]int {
	counts := make(map[Classification]int)
	for _, r := range t.Rows {
		counts[r.Classification]++
	}
	return counts
}
