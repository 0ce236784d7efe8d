package utils

import (
	"fmt"

	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

// SimulationInfo contains information about a registered simulation
type SimulationInfo struct {
	Name   string
	Config simulation.SimulationConfig
}

// DiscoverSimulations lists the simulations in reg that ship a simulation.yaml,
// ordered by name
func DiscoverSimulations(reg *simulation.Registry) ([]SimulationInfo, error) {
	var simulations []SimulationInfo

	for _, name := range reg.List() {
		cfg, err := reg.Config(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
		simulations = append(simulations, SimulationInfo{Name: name, Config: *cfg})
	}

	return simulations, nil
}

// FindSimulation returns the configuration of the named simulation
func FindSimulation(infos []SimulationInfo, name string) (*simulation.SimulationConfig, error) {
	for i := range infos {
		if infos[i].Config.Name == name {
			return &infos[i].Config, nil
		}
	}
	return nil, fmt.Errorf("simulation configuration not found for %s", name)
}
