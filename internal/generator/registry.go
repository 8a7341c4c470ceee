// Package generator selects and implements content generators.
package generator

import (
	"fmt"
	"sort"

	"github.com/dave/jobwiz-sub002/internal/ports"
)

// Registry keeps a mapping from generator names to their implementations.
type Registry struct {
	generators map[string]ports.Generator
}

// NewRegistry builds a registry holding the given generators.
func NewRegistry(generators ...ports.Generator) *Registry {
	r := &Registry{generators: map[string]ports.Generator{}}
	for _, g := range generators {
		r.Register(g)
	}
	return r
}

// Register adds or replaces a generator implementation.
func (r *Registry) Register(g ports.Generator) {
	if g == nil {
		return
	}
	if r.generators == nil {
		r.generators = map[string]ports.Generator{}
	}
	r.generators[g.Name()] = g
}

// Resolve returns a generator by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.Generator, error) {
	if g, ok := r.generators[name]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("generator %s is not registered (have %v)", name, r.Names())
}

// Names lists the registered generators, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
