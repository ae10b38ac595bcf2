// Package output maps an output format name to the sink that writes it.
package output

import (
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/hours-atlas/pkg/services/workflow"
)

// SinkFactory creates a Sink writing into the given output directory
type SinkFactory func(dir string) (workflow.Sink, error)

// Registry manages sink factories by format
type Registry interface {
	// Register adds a new format
	Register(format string, factory SinkFactory) error
	// Create instantiates the sink for format writing into dir
	Create(format, dir string) (workflow.Sink, error)
	// ListFormats returns registered formats in sorted order
	ListFormats() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]SinkFactory
}

// NewRegistry creates a registry from the given factories
func NewRegistry(factories map[string]SinkFactory) Registry {
	r := &registry{
		factories: make(map[string]SinkFactory, len(factories)),
	}
	for format, factory := range factories {
		r.factories[format] = factory
	}
	return r
}

func (r *registry) Register(format string, factory SinkFactory) error {
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.factories[format] = factory
	return nil
}

func (r *registry) Create(format, dir string) (workflow.Sink, error) {
	r.mu.RLock()
	factory, exists := r.factories[format]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("format %q is not registered", format)
	}

	return factory(dir)
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.factories))
	for format := range r.factories {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
