package domain

import "fmt"

// SourceID identifies one of the timesheet-exporting systems.
type SourceID string

const (
	SourcePayroll SourceID = "PayrollSystem"
	SourceHR      SourceID = "HRSystem"
)

func (s SourceID) String() string {
	return string(s)
}

// SourceProfile binds a source to the export file supplied for a run.
type SourceProfile struct {
	Name SourceID
	Path string
	// Schema names the registered schema to apply; empty means Name.
	Schema SourceID
}

func (p SourceProfile) SchemaID() SourceID {
	if p.Schema != "" {
		return p.Schema
	}
	return p.Name
}

func (p SourceProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.Path)
}
