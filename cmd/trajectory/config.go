package trajectory

import (
	"fmt"
	"time"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

// Config holds the configuration for the trajectory simulation
type Config struct {
	Request ballistics.SimulationRequest
	Engine  ballistics.Config
	Timeout time.Duration
}

// ValidateAndParse validates and parses the raw parameters into a Config
func ValidateAndParse(params map[string]interface{}, lookup simulation.PresetLookup) (*Config, error) {
	p := simulation.Params(params)

	profile, err := parseProfile(p)
	if err != nil {
		return nil, err
	}

	shot, err := simulation.ParseShot(params, lookup)
	if err != nil {
		return nil, err
	}

	return &Config{
		Request: shot.Request(profile),
		Engine:  shot.Engine,
		Timeout: shot.Timeout,
	}, nil
}

func parseProfile(p simulation.Params) (ballistics.BulletProfile, error) {
	name := p.String("profile", "")
	if name == "" {
		return ballistics.BulletProfile{}, fmt.Errorf("profile is required")
	}

	if name != ballistics.CustomProfileName {
		profile, ok := ballistics.LookupProfile(name)
		if !ok {
			return ballistics.BulletProfile{}, fmt.Errorf("unknown profile %s (use custom for your own load)", name)
		}
		return profile, nil
	}

	values := make([]float64, 4)
	for i, field := range []string{"ballistic_coefficient", "mass_grains", "diameter_inches", "muzzle_velocity_fps"} {
		v, err := p.Float(field, 0)
		if err != nil {
			return ballistics.BulletProfile{}, err
		}
		values[i] = v
	}
	return ballistics.CustomProfile(values[0], values[1], values[2], values[3]), nil
}
