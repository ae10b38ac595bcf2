// Package schema normalizes source-specific timesheet exports into canonical records.
// Each source is described by a Schema value registered under its source id, so the
// normalizer itself carries no per-source branching.
package schema

import (
	"github.com/de-tools/hours-atlas/pkg/models/domain"
)

// HoursRule describes the column holding worked hours and an optional unit suffix (e.g. " H").
type HoursRule struct {
	Column string `yaml:"column"`
	Suffix string `yaml:"suffix,omitempty"`
}

// TimeRule parses a secondary time value (clock time or date). Failures are tolerated.
type TimeRule struct {
	Column string `yaml:"column"`
	Layout string `yaml:"layout"`
}

// Schema is the declarative description of one source export.
// Column names in rules refer to canonical names, after Renames is applied.
type Schema struct {
	Source domain.SourceID `yaml:"source"`
	// Renames maps raw column names to canonical ones.
	Renames map[string]string `yaml:"renames"`
	// Required lists raw column names that must be present in the header.
	Required   []string   `yaml:"required"`
	DateColumn string     `yaml:"date_column"`
	DateLayout string     `yaml:"date_layout"`
	Hours      HoursRule  `yaml:"hours"`
	Times      []TimeRule `yaml:"times,omitempty"`
	TextExtras []string   `yaml:"text_extras,omitempty"`
	// FirstWins lists columns whose first value per day is kept by the daily aggregate.
	FirstWins []string `yaml:"first_wins,omitempty"`
}

// canonicalName returns the canonical name of a raw header.
func (s Schema) canonicalName(raw string) string {
	if name, ok := s.Renames[raw]; ok {
		return name
	}
	return raw
}

// DayMonthYear is the date layout of both exports; it accepts one or two digit days and months.
const DayMonthYear = "2/1/2006"

// PayrollSchema describes the internal payroll export.
func PayrollSchema() Schema {
	return Schema{
		Source: domain.SourcePayroll,
		Renames: map[string]string{
			"Personnel No.":   domain.FieldEmployeeID,
			"Empl./appl.name": domain.FieldEmployee,
			"Att./abs. type":  domain.FieldAttendanceCode,
			"A/A type text":   domain.FieldAttendanceText,
			"Number (unit)":   domain.FieldHours,
		},
		Required: []string{
			"Personnel No.",
			"Empl./appl.name",
			"Att./abs. type",
			"A/A type text",
			"Number (unit)",
			"Date",
			"Start time",
			"End time",
			"Receiver",
			"Short Text",
		},
		DateColumn: domain.FieldDate,
		DateLayout: DayMonthYear,
		Hours:      HoursRule{Column: domain.FieldHours, Suffix: " H"},
		Times: []TimeRule{
			{Column: domain.FieldStartTime, Layout: domain.ClockLayout},
			{Column: domain.FieldEndTime, Layout: domain.ClockLayout},
		},
		TextExtras: []string{domain.FieldAttendanceText, domain.FieldReceiver, domain.FieldShortText},
		FirstWins:  []string{domain.FieldAttendanceText, domain.FieldReceiver, domain.FieldShortText},
	}
}

// HRSchema describes the third-party HR export.
func HRSchema() Schema {
	return Schema{
		Source: domain.SourceHR,
		Renames: map[string]string{
			"Personnel No.":                 domain.FieldEmployeeID,
			"Name of employee or applicant": domain.FieldEmployee,
			"Att./Absence type":             domain.FieldAttendanceCode,
		},
		Required: []string{
			"Personnel No.",
			"Name of employee or applicant",
			"Att./Absence type",
			"Hours",
			"Date",
			"Approval date",
		},
		DateColumn: domain.FieldDate,
		DateLayout: DayMonthYear,
		Hours:      HoursRule{Column: domain.FieldHours},
		Times: []TimeRule{
			{Column: domain.FieldApprovalDate, Layout: DayMonthYear},
		},
		FirstWins: []string{domain.FieldAttendanceCode},
	}
}
