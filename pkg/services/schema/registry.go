package schema

import (
	"fmt"
	"sort"
	"sync"

	recerrors "github.com/de-tools/hours-atlas/pkg/errors"
	"github.com/de-tools/hours-atlas/pkg/models/domain"
)

// Registry manages source schemas keyed by source id
type Registry interface {
	// Register adds a schema for a new source
	Register(s Schema) error
	// Get returns the schema registered for source
	Get(source domain.SourceID) (Schema, error)
	// ListSources returns registered source ids in sorted order
	ListSources() []domain.SourceID
}

type registry struct {
	mu      sync.RWMutex
	schemas map[domain.SourceID]Schema
}

// NewRegistry creates an empty schema registry
func NewRegistry() Registry {
	return &registry{
		schemas: make(map[domain.SourceID]Schema),
	}
}

// DefaultRegistry returns a registry holding the payroll and HR schemas.
func DefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(PayrollSchema())
	_ = r.Register(HRSchema())
	return r
}

func (r *registry) Register(s Schema) error {
	if s.Source == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if s.DateColumn == "" || s.DateLayout == "" {
		return fmt.Errorf("schema %q must define a date column and layout", s.Source)
	}
	if s.Hours.Column == "" {
		return fmt.Errorf("schema %q must define an hours column", s.Source)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[s.Source]; exists {
		return fmt.Errorf("source %q is already registered", s.Source)
	}

	r.schemas[s.Source] = s
	return nil
}

func (r *registry) Get(source domain.SourceID) (Schema, error) {
	r.mu.RLock()
	s, exists := r.schemas[source]
	r.mu.RUnlock()

	if !exists {
		return Schema{}, recerrors.NewUnknownSourceError(string(source))
	}
	return s, nil
}

func (r *registry) ListSources() []domain.SourceID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]domain.SourceID, 0, len(r.schemas))
	for source := range r.schemas {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}
