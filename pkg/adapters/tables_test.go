package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestMapDailyTableToStore(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	table := MapDailyTableToStore(domain.DailyTable{
		Source:       domain.SourcePayroll,
		ExtraColumns: []string{domain.FieldAttendanceText, domain.FieldReceiver},
		Rows: []domain.DailyAggregate{{
			Date:        date,
			Employee:    "Alice",
			Hours:       9,
			Extras:      map[string]string{domain.FieldAttendanceText: "Work"},
			Investigate: true,
		}},
	})

	assert.Equal(t, "PayrollSystem_daily", table.Name)
	assert.Equal(t, []string{"Date", "Employee", "Hours", "AA text", "Receiver", "Investigate"}, table.ColumnNames())
	assert.Equal(t, store.ColumnDate, table.Columns[0].Type)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []any{date, "Alice", 9.0, "Work", "", true}, table.Rows[0])
}

func TestMapMonthlyTableToStore(t *testing.T) {
	table := MapMonthlyTableToStore(domain.MonthlyTable{
		Source: domain.SourceHR,
		Rows: []domain.MonthlyAggregate{{
			Employee:        "Carol",
			Period:          domain.YearMonth{Year: 2024, Month: time.August},
			Hours:           180,
			WorkingDays:     22,
			MaxWorkingHours: 176,
			Investigate:     true,
		}},
	})

	assert.Equal(t, "HRSystem_monthly", table.Name)
	assert.Equal(t,
		[]string{"Employee", "YearMonth", "Year", "Month", "Hours", "WorkingDays", "MaxWorkingHours", "Investigate"},
		table.ColumnNames())
	assert.Equal(t, []any{"Carol", "2024-08", 2024, 8, 180.0, 22, 176.0, true}, table.Rows[0])
}

func TestMapComparisonTableToStore(t *testing.T) {
	table := MapComparisonTableToStore(domain.ComparisonTable{
		Granularity: domain.GranularityDaily,
		SourceA:     domain.SourceHR,
		SourceB:     domain.SourcePayroll,
		Rows: []domain.ComparisonRecord{
			{
				Key:            domain.Key{Period: "2024-01-10", Employee: "Alice"},
				HoursA:         ptr(9),
				HoursB:         ptr(8),
				Delta:          ptr(1),
				Classification: domain.HigherInSourceA,
			},
			{
				Key:            domain.Key{Period: "2024-01-11", Employee: "Bob"},
				HoursA:         ptr(7),
				Classification: domain.MissingInOtherSource,
			},
			{
				Key:            domain.Key{Period: "2024-01-13", Employee: "Erin"},
				HoursB:         ptr(5),
				Classification: domain.MissingInOtherSource,
			},
		},
	})

	assert.Equal(t, "comparison_daily", table.Name)
	assert.Equal(t, []string{"Date", "Employee", "HRSystem Hours", "PayrollSystem Hours", "Delta", "Classification"}, table.ColumnNames())
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []any{"2024-01-10", "Alice", 9.0, 8.0, 1.0, "HigherInSourceA"}, table.Rows[0])
	assert.Equal(t, []any{"2024-01-11", "Bob", 7.0, -1.0, nil, "MissingInOtherSource"}, table.Rows[1])
	assert.Equal(t, []any{"2024-01-13", "Erin", -1.0, 5.0, nil, "MissingInOtherSource"}, table.Rows[2])
}

func TestMapComparisonTableToStore_MonthlyPeriodColumn(t *testing.T) {
	table := MapComparisonTableToStore(domain.ComparisonTable{
		Granularity: domain.GranularityMonthly,
		SourceA:     domain.SourceHR,
		SourceB:     domain.SourcePayroll,
	})

	assert.Equal(t, "comparison_monthly", table.Name)
	assert.Equal(t, "YearMonth", table.Columns[0].Name)
	assert.Empty(t, table.Rows)
}

func TestMapDomainRunToStore(t *testing.T) {
	assert.Nil(t, MapDomainRunToStore(nil))

	started := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	msg := "boom"
	r := MapDomainRunToStore(&domain.Run{
		ID:        "run-1",
		Status:    domain.RunStatusFailed,
		StartedAt: started,
		Inputs: []domain.SourceProfile{
			{Name: domain.SourceHR, Path: "hr.csv"},
			{Name: domain.SourcePayroll, Path: "sap.csv"},
		},
		Error: &msg,
	})

	assert.Equal(t, "run-1", r.ID)
	assert.Equal(t, "failed", r.Status)
	assert.Equal(t, started, r.StartedAt)
	assert.Nil(t, r.FinishedAt)
	assert.Equal(t, "HRSystem:hr.csv, PayrollSystem:sap.csv", r.Inputs)
	assert.Equal(t, &msg, r.Error)
}
