package aggregate

import (
	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// group accumulates records under one key. first is the earliest record in source
// row order and supplies the first-wins values.
type group struct {
	key   domain.Key
	first domain.CanonicalRecord
	hours decimal.Decimal
}

// orderedGroups is a map that remembers insertion order.
type orderedGroups struct {
	index map[domain.Key]int
	items []*group
}

func newOrderedGroups() *orderedGroups {
	return &orderedGroups{index: make(map[domain.Key]int)}
}

func (g *orderedGroups) add(key domain.Key, r domain.CanonicalRecord) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.items)
		g.index[key] = i
		g.items = append(g.items, &group{key: key, first: r, hours: decimal.Zero})
	}
	item := g.items[i]
	item.hours = item.hours.Add(decimal.NewFromFloat(r.HoursOrZero()))
}

// TotalHours returns the exact sum of the non-missing hours of records.
func TotalHours(records []domain.CanonicalRecord) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.HoursOrZero()))
	}
	return total.InexactFloat64()
}
