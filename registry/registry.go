package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sviezypan/protocodec/schema"
)

// Registry stores schemas under caller-chosen names so messages can be
// marshalled and unmarshalled by name. It is safe for concurrent use;
// the schemas themselves are immutable and shared.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*schema.Schema
}

func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*schema.Schema),
	}
}

// Register stores a schema under the given name. Registering the same
// name again replaces the previous schema.
func (r *Registry) Register(name string, s *schema.Schema) error {
	if name == "" {
		return fmt.Errorf("schema name must not be empty")
	}
	if s == nil {
		return fmt.Errorf("schema must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = s
	return nil
}

// Get returns the schema registered under the given name.
func (r *Registry) Get(name string) (*schema.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("schema not found: %s", name)
	}
	return s, nil
}

// Names returns the registered schema names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
