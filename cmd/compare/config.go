package compare

import (
	"fmt"
	"strings"
	"time"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

const maxWorkers = 16

// Config holds the configuration for the profile comparison
type Config struct {
	Profiles []ballistics.BulletProfile
	Shot     *simulation.Shot
	Workers  int
	Timeout  time.Duration
}

// ValidateAndParse validates and parses the raw parameters into a Config
func ValidateAndParse(params map[string]interface{}, lookup simulation.PresetLookup) (*Config, error) {
	p := simulation.Params(params)
	cfg := &Config{}

	raw := p.String("profiles", "")
	if raw == "" {
		return nil, fmt.Errorf("profiles is required")
	}
	seen := make(map[string]bool)
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		profile, ok := ballistics.LookupProfile(name)
		if !ok {
			return nil, fmt.Errorf("unknown profile %s", name)
		}
		if seen[profile.Name] {
			continue
		}
		seen[profile.Name] = true
		cfg.Profiles = append(cfg.Profiles, profile)
	}
	if len(cfg.Profiles) == 0 {
		return nil, fmt.Errorf("profiles is required")
	}

	workers, err := p.Int("workers", 4)
	if err != nil {
		return nil, err
	}
	if workers < 1 || workers > maxWorkers {
		return nil, fmt.Errorf("workers must be between 1 and %d", maxWorkers)
	}
	cfg.Workers = workers

	shot, err := simulation.ParseShot(params, lookup)
	if err != nil {
		return nil, err
	}
	cfg.Shot = shot
	cfg.Timeout = shot.Timeout

	return cfg, nil
}
