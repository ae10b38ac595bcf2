// Package aggregate rolls canonical records up into daily and monthly totals
// per employee and flags totals above the configured working-hours policy.
package aggregate

import "fmt"

// Settings contains configurable thresholds for the investigate flags
type Settings struct {
	// DailyThreshold is the hours per day above which a daily row is flagged (default: 8.0)
	DailyThreshold float64 `mapstructure:"daily_threshold"`
	// MonthlyThreshold is the permissible hours per working day used for the monthly ceiling (default: 8.0)
	MonthlyThreshold float64 `mapstructure:"monthly_threshold"`
}

// DefaultSettings returns the default aggregation thresholds
func DefaultSettings() Settings {
	return Settings{
		DailyThreshold:   8.0,
		MonthlyThreshold: 8.0,
	}
}

func (s Settings) Validate() error {
	if s.DailyThreshold < 0 {
		return fmt.Errorf("daily threshold must not be negative, got %v", s.DailyThreshold)
	}
	if s.MonthlyThreshold < 0 {
		return fmt.Errorf("monthly threshold must not be negative, got %v", s.MonthlyThreshold)
	}
	return nil
}
