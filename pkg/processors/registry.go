package processors

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/chatfang/pkg/toposort"
)

// Sentinel registry errors.
var (
	// ErrDuplicateProcessor indicates a processor type was registered twice.
	ErrDuplicateProcessor = errors.New("processor type already registered")
)

// Registry holds processors and derives their execution order. Order ties
// between independent processors are broken by registration order, which
// keeps runs deterministic.
type Registry struct {
	byType map[string]Processor
	order  []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[string]Processor)}
}

// Register adds a processor. Registering the same type twice is a
// configuration error.
func (r *Registry) Register(p Processor) error {
	name := p.Type()

	if _, exists := r.byType[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProcessor, name)
	}

	r.byType[name] = p
	r.order = append(r.order, name)

	return nil
}

// Get returns the processor registered under the given type.
func (r *Registry) Get(name string) (Processor, bool) {
	p, ok := r.byType[name]

	return p, ok
}

// Types returns all registered processor types in registration order.
func (r *Registry) Types() []string {
	types := make([]string, len(r.order))
	copy(types, r.order)

	return types
}

// ExecutionOrder computes the dependency-ordered execution sequence:
// every processor appears strictly after all of its dependencies. A
// dependency on an unregistered type constrains nothing. A circular
// dependency fails with toposort.ErrCycle before any processing begins.
func (r *Registry) ExecutionOrder() ([]string, error) {
	graph := toposort.NewGraph()

	for _, name := range r.order {
		graph.AddNode(name)

		for _, dep := range r.byType[name].Dependencies() {
			if _, registered := r.byType[dep]; registered {
				graph.AddDependency(name, dep)
			}
		}
	}

	sorted, err := graph.Sort()
	if err != nil {
		return nil, fmt.Errorf("processor execution order: %w", err)
	}

	return sorted, nil
}
