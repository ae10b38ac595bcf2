package aggregate

import (
	"time"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
)

// WorkingDays counts Monday to Friday days of the month, first and last day included.
// Public holidays are not excluded.
func WorkingDays(ym domain.YearMonth) int {
	days := 0
	last := ym.Last()
	for d := ym.First(); !d.After(last); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		days++
	}
	return days
}

// MaxWorkingHours is the monthly ceiling for ym under the given hours-per-day threshold.
func MaxWorkingHours(ym domain.YearMonth, threshold float64) float64 {
	return float64(WorkingDays(ym)) * threshold
}
