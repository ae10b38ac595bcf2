package store

import "time"

type Run struct {
	ID         string
	Status     string
	StartedAt  time.Time
	FinishedAt *time.Time
	Inputs     string
	Error      *string
}
