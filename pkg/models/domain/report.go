package domain

import "time"

// Report represents the summary of a reconciliation run
type Report struct {
	Title    string
	RunID    string
	Period   TimePeriod
	Sections []ReportSection
}

// TimePeriod represents the date range covered by the inputs
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
