package aggregate

import (
	"context"
	"sort"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Daily groups records by (date, employee) and sums their hours. Missing hours count
// as zero. First-wins columns take the value of the earliest row of each group.
func Daily(ctx context.Context, table *domain.CanonicalTable, settings Settings) domain.DailyTable {
	groups := newOrderedGroups()
	for _, r := range table.Records {
		key := domain.Key{Period: r.Date.Format(domain.DateLayout), Employee: r.EmployeeName}
		groups.add(key, r)
	}

	rows := make([]domain.DailyAggregate, 0, len(groups.items))
	for _, g := range groups.items {
		hours := g.hours.InexactFloat64()
		row := domain.DailyAggregate{
			Date:        g.first.Date,
			Employee:    g.key.Employee,
			Hours:       hours,
			Investigate: hours > settings.DailyThreshold,
		}
		if len(table.FirstWins) > 0 {
			row.Extras = make(map[string]string, len(table.FirstWins))
			for _, column := range table.FirstWins {
				row.Extras[column] = g.first.Value(column)
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Employee < rows[j].Employee
	})

	result := domain.DailyTable{
		Source:       table.Source,
		ExtraColumns: append([]string(nil), table.FirstWins...),
		Threshold:    settings.DailyThreshold,
		Rows:         rows,
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", string(table.Source)).
		Int("records", len(table.Records)).
		Int("rows", len(rows)).
		Int("investigate", result.InvestigateCount()).
		Msg("built daily aggregate")

	return result
}
