package simulation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SimulationConfig represents the configuration structure for a simulation
// loaded from simulation.yaml
type SimulationConfig struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Version     string      `yaml:"version"`
	Category    string      `yaml:"category"`
	Parameters  []Parameter `yaml:"parameters"`
}

// Parameter defines a configurable parameter for a simulation
type Parameter struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"` // integer, float, string, duration, boolean
	Description string      `yaml:"description"`
	Default     interface{} `yaml:"default"`
	Required    bool        `yaml:"required"`
	Min         interface{} `yaml:"min,omitempty"`
	Max         interface{} `yaml:"max,omitempty"`
	Options     []string    `yaml:"options,omitempty"` // For string enums
}

var parameterTypes = map[string]bool{
	"integer": true, "float": true, "string": true, "duration": true, "boolean": true,
}

// ParseConfig decodes and checks a simulation.yaml document
func ParseConfig(data []byte) (*SimulationConfig, error) {
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("simulation config has no name")
	}

	seen := make(map[string]bool, len(cfg.Parameters))
	for _, p := range cfg.Parameters {
		if !parameterTypes[p.Type] {
			return nil, fmt.Errorf("parameter %s: unsupported type %q", p.Name, p.Type)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("parameter %s declared twice", p.Name)
		}
		seen[p.Name] = true
	}
	return &cfg, nil
}

// Parameter returns the named parameter descriptor
func (c *SimulationConfig) Parameter(name string) (Parameter, bool) {
	for _, p := range c.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Defaults returns the declared default of every parameter that has one
func (c *SimulationConfig) Defaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(c.Parameters))
	for _, p := range c.Parameters {
		if p.Default != nil {
			defaults[p.Name] = p.Default
		}
	}
	return defaults
}
