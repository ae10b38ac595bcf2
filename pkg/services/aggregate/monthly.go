package aggregate

import (
	"context"
	"sort"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Monthly groups records by (employee, calendar month). Each row carries the month's
// working days and the resulting ceiling; rows above the ceiling are flagged.
func Monthly(ctx context.Context, table *domain.CanonicalTable, settings Settings) domain.MonthlyTable {
	groups := newOrderedGroups()
	for _, r := range table.Records {
		key := domain.Key{Period: domain.YearMonthOf(r.Date).String(), Employee: r.EmployeeName}
		groups.add(key, r)
	}

	rows := make([]domain.MonthlyAggregate, 0, len(groups.items))
	for _, g := range groups.items {
		period := domain.YearMonthOf(g.first.Date)
		workingDays := WorkingDays(period)
		maxHours := float64(workingDays) * settings.MonthlyThreshold
		hours := g.hours.InexactFloat64()

		rows = append(rows, domain.MonthlyAggregate{
			Employee:        g.key.Employee,
			Period:          period,
			Hours:           hours,
			WorkingDays:     workingDays,
			MaxWorkingHours: maxHours,
			Investigate:     hours > maxHours,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Employee != rows[j].Employee {
			return rows[i].Employee < rows[j].Employee
		}
		return rows[i].Period.Before(rows[j].Period)
	})

	result := domain.MonthlyTable{
		Source:    table.Source,
		Threshold: settings.MonthlyThreshold,
		Rows:      rows,
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", string(table.Source)).
		Int("rows", len(rows)).
		Int("investigate", result.InvestigateCount()).
		Msg("built monthly aggregate")

	return result
}
