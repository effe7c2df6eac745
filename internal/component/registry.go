package component

import (
	"fmt"
	"sort"
	"sync"

	"flow-components/internal/common/logger"
	"flow-components/internal/common/validation"
)

// Registry holds the components available to the host, keyed by name. It is
// built once at startup and read-mostly afterwards.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Component
	logger     logger.Logger
}

func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Registry{
		components: make(map[string]Component),
		logger:     log,
	}
}

// Register adds a component to the registry. Names must follow the
// domain.subdomain.action convention and be unique; the first registration
// of a name wins.
func (r *Registry) Register(c Component) error {
	if c == nil {
		return fmt.Errorf("component must not be nil")
	}
	name := c.Name()
	if err := validation.ValidateComponentNaming(name); err != nil {
		return fmt.Errorf("invalid component name %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[name]; exists {
		return fmt.Errorf("component %q already registered", name)
	}
	r.components[name] = c

	r.logger.Info("Component registered", map[string]interface{}{
		"component": name,
		"category":  c.Metadata().Category,
		"custom":    c.Metadata().Custom,
	})
	return nil
}

// RegisterCollection registers a batch of components with error isolation:
// a component that fails to register is logged and skipped, never aborting
// the rest of the batch. Returns the number registered.
func (r *Registry) RegisterCollection(components []Component) int {
	registered := 0
	for _, c := range components {
		if err := r.Register(c); err != nil {
			name := "<nil>"
			if c != nil {
				name = c.Name()
			}
			r.logger.Warn("Skipping component that failed to register", map[string]interface{}{
				"component": name,
				"error":     err.Error(),
			})
			continue
		}
		registered++
	}
	return registered
}

// Get returns the component with the given name.
func (r *Registry) Get(name string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Names returns all registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns the renderable descriptors for every registered component,
// sorted by name.
func (r *Registry) Catalog() []NodeConfig {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	catalog := make([]NodeConfig, 0, len(names))
	for _, name := range names {
		catalog = append(catalog, r.components[name].BuildConfig())
	}
	return catalog
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}
