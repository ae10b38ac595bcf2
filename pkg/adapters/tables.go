package adapters

import (
	"fmt"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/models/store"
)

// MissingHours stands in for "no matching record" in written comparison tables.
const MissingHours = -1.0

func DailyTableName(source domain.SourceID) string {
	return string(source) + "_daily"
}

func MonthlyTableName(source domain.SourceID) string {
	return string(source) + "_monthly"
}

func ComparisonTableName(g domain.Granularity) string {
	return "comparison_" + string(g)
}

func MapDailyTableToStore(t domain.DailyTable) store.Table {
	columns := []store.Column{
		{Name: domain.FieldDate, Type: store.ColumnDate},
		{Name: domain.FieldEmployee, Type: store.ColumnText},
		{Name: domain.FieldHours, Type: store.ColumnFloat},
	}
	for _, extra := range t.ExtraColumns {
		columns = append(columns, store.Column{Name: extra, Type: store.ColumnText})
	}
	columns = append(columns, store.Column{Name: "Investigate", Type: store.ColumnBool})

	rows := make([][]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]any, 0, len(columns))
		row = append(row, r.Date, r.Employee, r.Hours)
		for _, extra := range t.ExtraColumns {
			row = append(row, r.Extras[extra])
		}
		row = append(row, r.Investigate)
		rows = append(rows, row)
	}

	return store.Table{Name: DailyTableName(t.Source), Columns: columns, Rows: rows}
}

func MapMonthlyTableToStore(t domain.MonthlyTable) store.Table {
	columns := []store.Column{
		{Name: domain.FieldEmployee, Type: store.ColumnText},
		{Name: "YearMonth", Type: store.ColumnText},
		{Name: "Year", Type: store.ColumnInt},
		{Name: "Month", Type: store.ColumnInt},
		{Name: domain.FieldHours, Type: store.ColumnFloat},
		{Name: "WorkingDays", Type: store.ColumnInt},
		{Name: "MaxWorkingHours", Type: store.ColumnFloat},
		{Name: "Investigate", Type: store.ColumnBool},
	}

	rows := make([][]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, []any{
			r.Employee,
			r.Period.String(),
			r.Period.Year,
			int(r.Period.Month),
			r.Hours,
			r.WorkingDays,
			r.MaxWorkingHours,
			r.Investigate,
		})
	}

	return store.Table{Name: MonthlyTableName(t.Source), Columns: columns, Rows: rows}
}

// MapComparisonTableToStore writes missing hours as MissingHours and leaves the delta
// of unmatched rows empty.
func MapComparisonTableToStore(t domain.ComparisonTable) store.Table {
	columns := []store.Column{
		{Name: t.Granularity.PeriodColumn(), Type: store.ColumnText},
		{Name: domain.FieldEmployee, Type: store.ColumnText},
		{Name: fmt.Sprintf("%s Hours", t.SourceA), Type: store.ColumnFloat},
		{Name: fmt.Sprintf("%s Hours", t.SourceB), Type: store.ColumnFloat},
		{Name: "Delta", Type: store.ColumnFloat},
		{Name: "Classification", Type: store.ColumnText},
	}

	rows := make([][]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		var delta any
		if r.Delta != nil {
			delta = *r.Delta
		}
		rows = append(rows, []any{
			r.Key.Period,
			r.Key.Employee,
			hoursOrSentinel(r.HoursA),
			hoursOrSentinel(r.HoursB),
			delta,
			string(r.Classification),
		})
	}

	return store.Table{Name: ComparisonTableName(t.Granularity), Columns: columns, Rows: rows}
}

func hoursOrSentinel(h *float64) float64 {
	if h == nil {
		return MissingHours
	}
	return *h
}
