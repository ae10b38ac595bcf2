package domain

import "time"

type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusFinished RunStatus = "finished"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one end-to-end reconciliation of two exports.
type Run struct {
	ID         string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	Inputs     []SourceProfile
	Error      *string
}
