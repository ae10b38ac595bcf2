package domain

import (
	"time"

	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
)

// Canonical column names shared by every source schema.
const (
	FieldEmployeeID     = "ID"
	FieldEmployee       = "Employee"
	FieldAttendanceCode = "AA code"
	FieldAttendanceText = "AA text"
	FieldHours          = "Hours"
	FieldDate           = "Date"
	FieldStartTime      = "Start time"
	FieldEndTime        = "End time"
	FieldApprovalDate   = "Approval date"
	FieldReceiver       = "Receiver"
	FieldShortText      = "Short Text"
)

// Layouts used when dates and periods are written out.
const (
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04:05"
	YearMonthLayout = "2006-01"
)

// CanonicalRecord is one attendance/absence event normalized to the shared field set.
type CanonicalRecord struct {
	Row            int
	EmployeeID     string
	EmployeeName   string
	AttendanceCode string
	Date           time.Time
	// Hours is nil when the source value could not be parsed.
	Hours *float64
	// Extras holds descriptive text columns carried only by some sources.
	Extras map[string]string
	// Times holds clock times and secondary dates; a nil entry is a missing value.
	Times map[string]*time.Time
}

// Value returns the textual value of a canonical or extra column.
func (r CanonicalRecord) Value(column string) string {
	switch column {
	case FieldEmployeeID:
		return r.EmployeeID
	case FieldEmployee:
		return r.EmployeeName
	case FieldAttendanceCode:
		return r.AttendanceCode
	}
	return r.Extras[column]
}

// HoursOrZero treats missing hours as zero.
func (r CanonicalRecord) HoursOrZero() float64 {
	if r.Hours == nil {
		return 0
	}
	return *r.Hours
}

// CanonicalTable is the normalizer's output for one source.
type CanonicalTable struct {
	Source   SourceID
	Path     string
	Records  []CanonicalRecord
	Warnings []*recerrors.FieldParseWarning
	// FirstWins lists the extra columns kept by first occurrence during daily aggregation.
	FirstWins []string
}
