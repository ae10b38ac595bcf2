package adapters

import (
	"strings"

	"github.com/de-tools/hours-atlas/pkg/models/domain"
	"github.com/de-tools/hours-atlas/pkg/models/store"
)

func MapDomainRunToStore(run *domain.Run) *store.Run {
	if run == nil {
		return nil
	}

	inputs := make([]string, len(run.Inputs))
	for i, p := range run.Inputs {
		inputs[i] = p.String()
	}

	return &store.Run{
		ID:         run.ID,
		Status:     string(run.Status),
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Inputs:     strings.Join(inputs, ", "),
		Error:      run.Error,
	}
}
