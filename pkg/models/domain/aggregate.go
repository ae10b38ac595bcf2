package domain

import (
	"fmt"
	"time"
)

// Key identifies an aggregate row across sources: a day or a month plus the employee name.
type Key struct {
	Period   string
	Employee string
}

// Aggregate is implemented by daily and monthly rows so they can be reconciled alike.
type Aggregate interface {
	Key() Key
	TotalHours() float64
}

type DailyAggregate struct {
	Date        time.Time
	Employee    string
	Hours       float64
	Extras      map[string]string
	Investigate bool
}

func (d DailyAggregate) Key() Key {
	return Key{Period: d.Date.Format(DateLayout), Employee: d.Employee}
}

func (d DailyAggregate) TotalHours() float64 {
	return d.Hours
}

// YearMonth is a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(YearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q, expected YYYY-MM: %w", s, err)
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// First returns the first calendar day of the month.
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last calendar day of the month.
func (ym YearMonth) Last() time.Time {
	return ym.First().AddDate(0, 1, -1)
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

type MonthlyAggregate struct {
	Employee        string
	Period          YearMonth
	Hours           float64
	WorkingDays     int
	MaxWorkingHours float64
	Investigate     bool
}

func (m MonthlyAggregate) Key() Key {
	return Key{Period: m.Period.String(), Employee: m.Employee}
}

func (m MonthlyAggregate) TotalHours() float64 {
	return m.Hours
}

// DailyTable is the daily aggregate of one source.
type DailyTable struct {
	Source       SourceID
	ExtraColumns []string
	Threshold    float64
	Rows         []DailyAggregate
}

// MonthlyTable is the monthly aggregate of one source.
type MonthlyTable struct {
	Source    SourceID
	Threshold float64
	Rows      []MonthlyAggregate
}

// InvestigateCount returns how many rows carry the investigate flag.
func (t DailyTable) InvestigateCount() int {
	n := 0
	for _, r := range t.Rows {
		if r.Investigate {
			n++
		}
	}
	return n
}

func (t MonthlyTable) InvestigateCount() int {
	n := 0
	for _, r := range t.Rows {
		if r.Investigate {
			n++
		}
	}
	return n
}
