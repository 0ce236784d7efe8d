package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
)

const (
	dirName        = ".ballistics-sim"
	conditionsFile = "conditions.yaml"
)

// Preset is a named set of shooting conditions
type Preset struct {
	Name       string                             `yaml:"name"`
	Conditions ballistics.EnvironmentalConditions `yaml:",inline"`
}

// Presets holds the saved condition presets
type Presets struct {
	Presets  []Preset `yaml:"presets"`
	Selected string   `yaml:"selected,omitempty"`
}

// Dir returns the per-user configuration directory
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, dirName), nil
}

// PresetsPath returns the default location of the presets file
func PresetsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, conditionsFile), nil
}

// LoadPresets loads condition presets from the default location
func LoadPresets() (*Presets, error) {
	path, err := PresetsPath()
	if err != nil {
		return nil, err
	}
	return LoadPresetsFromFile(path)
}

// LoadPresetsFromFile loads condition presets from a specific file
func LoadPresetsFromFile(path string) (*Presets, error) {
	// If file doesn't exist, return the built-in presets
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultPresets(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var presets Presets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	for _, p := range presets.Presets {
		if err := p.Conditions.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.Name, err)
		}
	}

	return &presets, nil
}

// SavePresets saves the presets to the default location
func SavePresets(presets *Presets) error {
	path, err := PresetsPath()
	if err != nil {
		return err
	}
	return SavePresetsToFile(path, presets)
}

// SavePresetsToFile saves the presets to path, creating its directory
func SavePresetsToFile(path string, presets *Presets) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	return nil
}

// Find returns the preset with the given name, ignoring case
func (p *Presets) Find(name string) (Preset, bool) {
	for _, preset := range p.Presets {
		if strings.EqualFold(preset.Name, name) {
			return preset, true
		}
	}
	return Preset{}, false
}

// Names lists the preset names in file order
func (p *Presets) Names() []string {
	names := make([]string, len(p.Presets))
	for i, preset := range p.Presets {
		names[i] = preset.Name
	}
	return names
}

// Add appends a preset after validating its conditions
func (p *Presets) Add(preset Preset) error {
	if strings.TrimSpace(preset.Name) == "" {
		return fmt.Errorf("preset name is required")
	}
	if _, exists := p.Find(preset.Name); exists {
		return fmt.Errorf("preset %s already exists", preset.Name)
	}
	if err := preset.Conditions.Validate(); err != nil {
		return fmt.Errorf("preset %s: %w", preset.Name, err)
	}
	p.Presets = append(p.Presets, preset)
	return nil
}

// Remove deletes the named preset
func (p *Presets) Remove(name string) error {
	kept := make([]Preset, 0, len(p.Presets))
	for _, preset := range p.Presets {
		if !strings.EqualFold(preset.Name, name) {
			kept = append(kept, preset)
		}
	}
	if len(kept) == len(p.Presets) {
		return fmt.Errorf("preset %s not found", name)
	}
	p.Presets = kept
	if strings.EqualFold(p.Selected, name) {
		p.Selected = ""
	}
	return nil
}

// DefaultPresets returns the built-in presets
func DefaultPresets() *Presets {
	return &Presets{
		Presets: []Preset{
			{
				Name:       "Sea Level Standard",
				Conditions: ballistics.EnvironmentalConditions{TemperatureF: 59, PressureInHg: 29.92},
			},
			{
				Name:       "High Desert",
				Conditions: ballistics.EnvironmentalConditions{TemperatureF: 85, PressureInHg: 25.5, HumidityPercent: 15},
			},
			{
				Name:       "Humid Coast",
				Conditions: ballistics.EnvironmentalConditions{TemperatureF: 80, PressureInHg: 30.05, HumidityPercent: 85},
			},
		},
		Selected: "Sea Level Standard",
	}
}

// Lookup resolves a preset name against the presets file at the default location
func Lookup(name string) (ballistics.EnvironmentalConditions, bool) {
	presets, err := LoadPresets()
	if err != nil {
		return ballistics.EnvironmentalConditions{}, false
	}
	preset, ok := presets.Find(name)
	return preset.Conditions, ok
}
