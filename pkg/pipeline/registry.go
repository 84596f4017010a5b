package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"github.com/batuta-io/batuta/pkg/domain"
	"github.com/batuta-io/batuta/pkg/ports"
)

// Registry maps workflow names to pipelines. It is populated at process
// start and read-only afterwards, so lookups need no coordination beyond
// the RWMutex guarding late registration in tests.
type Registry struct {
	mu        sync.RWMutex
	pipelines map[string]ports.Pipeline
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pipelines: make(map[string]ports.Pipeline),
	}
}

// Register adds a pipeline under its own name.
// Registering the same name twice overwrites the previous entry.
func (r *Registry) Register(p ports.Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipelines[p.Name()] = p
}

// Resolve looks up a pipeline by workflow name.
// An unknown name wraps domain.ErrWorkflowNotFound: it signals a
// classifier/registry mismatch, not bad user input.
func (r *Registry) Resolve(name string) (ports.Pipeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pipelines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorkflowNotFound, name)
	}
	return p, nil
}

// Has reports whether a workflow name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pipelines[name]
	return ok
}

// Names returns the registered workflow names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pipelines))
	for name := range r.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
