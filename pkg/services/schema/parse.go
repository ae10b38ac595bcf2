package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// parseHours strips an optional unit suffix and parses the remainder.
// The result is always finite and non-negative.
func parseHours(raw, suffix string) (float64, error) {
	v := strings.TrimSpace(raw)
	if unit := strings.TrimSpace(suffix); unit != "" {
		v = strings.TrimSpace(strings.TrimSuffix(v, unit))
	}
	if v == "" {
		return 0, fmt.Errorf("empty hours value")
	}

	hours, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("hours value %q is not finite", raw)
	}
	if hours < 0 {
		return 0, fmt.Errorf("hours value %q is negative", raw)
	}
	return hours, nil
}

// parseTime parses a tolerant secondary value. Blank input yields (nil, nil).
func parseTime(raw, layout string) (*time.Time, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
