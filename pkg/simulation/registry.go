package simulation

import (
	"fmt"
	"sort"
	"sync"
)

type entry struct {
	factory func() Simulation
	config  *SimulationConfig
}

// Registry manages available simulations
type Registry struct {
	mu          sync.RWMutex
	simulations map[string]entry
}

// NewRegistry creates a new simulation registry
func NewRegistry() *Registry {
	return &Registry{
		simulations: make(map[string]entry),
	}
}

// Register adds a simulation to the registry
func (r *Registry) Register(name string, factory func() Simulation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.simulations[name]; exists {
		return fmt.Errorf("simulation %s already registered", name)
	}

	r.simulations[name] = entry{factory: factory}
	return nil
}

// RegisterWithConfig adds a simulation described by its simulation.yaml document.
// The simulation is registered under the document's name.
func (r *Registry) RegisterWithConfig(descriptor []byte, factory func() Simulation) error {
	cfg, err := ParseConfig(descriptor)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.simulations[cfg.Name]; exists {
		return fmt.Errorf("simulation %s already registered", cfg.Name)
	}

	r.simulations[cfg.Name] = entry{factory: factory, config: cfg}
	return nil
}

// Get returns a new instance of the requested simulation
func (r *Registry) Get(name string) (Simulation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.simulations[name]
	if !exists {
		return nil, fmt.Errorf("simulation %s not found", name)
	}

	return e.factory(), nil
}

// Config returns the parameter descriptors of a simulation
func (r *Registry) Config(name string) (*SimulationConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.simulations[name]
	if !exists {
		return nil, fmt.Errorf("simulation %s not found", name)
	}
	if e.config == nil {
		return nil, fmt.Errorf("simulation %s has no configuration", name)
	}
	return e.config, nil
}

// List returns all registered simulation names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.simulations))
	for name := range r.simulations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global simulation registry
var DefaultRegistry = NewRegistry()
