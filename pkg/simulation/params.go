package simulation

import (
	"fmt"
	"strings"
	"time"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
)

// Params reads typed values from the raw parameter map passed to Configure.
// Missing keys yield the supplied default.
type Params map[string]interface{}

// Float returns a numeric parameter
func (p Params) Float(name string, def float64) (float64, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("%s must be a number", name)
	}
}

// Int returns an integer parameter
func (p Params) Int(name string, def int) (int, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return int(val), nil
	default:
		return 0, fmt.Errorf("%s must be an integer", name)
	}
}

// String returns a string parameter, trimmed
func (p Params) String(name, def string) string {
	v, ok := p[name]
	if !ok || v == nil {
		return def
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// Bool returns a boolean parameter
func (p Params) Bool(name string, def bool) (bool, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("%s must be true or false", name)
}

// Duration returns a duration parameter given as a duration, a string or seconds
func (p Params) Duration(name string, def time.Duration) (time.Duration, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case float64:
		return time.Duration(val * float64(time.Second)), nil
	case int:
		return time.Duration(val) * time.Second, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", name, err)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("%s must be a duration", name)
	}
}

// PresetLookup resolves a named condition preset
type PresetLookup func(name string) (ballistics.EnvironmentalConditions, bool)

// Shot holds the request fields every simulation shares: conditions, sight, sampling
// and engine tuning
type Shot struct {
	Conditions          string
	Environment         ballistics.EnvironmentalConditions
	Sight               ballistics.SightConfig
	MaxRangeYards       float64
	SampleIntervalYards float64
	VitalZoneInches     float64
	Engine              ballistics.Config
	Timeout             time.Duration
}

// ParseShot reads the shared parameters. When a conditions preset is named, it
// replaces the individual environment parameters. Physical validity is left to the
// engine so that its typed errors reach the caller.
func ParseShot(params map[string]interface{}, lookup PresetLookup) (*Shot, error) {
	p := Params(params)
	shot := &Shot{Conditions: p.String("conditions", "")}

	floats := []struct {
		name string
		def  float64
		dst  *float64
	}{
		{"temperature_f", 59, &shot.Environment.TemperatureF},
		{"pressure_inhg", 29.92, &shot.Environment.PressureInHg},
		{"humidity_percent", 0, &shot.Environment.HumidityPercent},
		{"wind_speed_mph", 0, &shot.Environment.WindSpeedMph},
		{"wind_angle_deg", 90, &shot.Environment.WindAngleDeg},
		{"shooting_angle_deg", 0, &shot.Environment.ShootingAngleDeg},
		{"sight_height_inches", 1.5, &shot.Sight.SightHeightInches},
		{"zero_range_yards", 100, &shot.Sight.ZeroRangeYards},
		{"max_range_yards", 500, &shot.MaxRangeYards},
		{"sample_interval_yards", ballistics.DefaultSampleIntervalYards, &shot.SampleIntervalYards},
		{"vital_zone_inches", ballistics.DefaultVitalZoneInches, &shot.VitalZoneInches},
		{"zero_tolerance_inches", 0, &shot.Engine.ZeroToleranceInches},
	}
	for _, f := range floats {
		v, err := p.Float(f.name, f.def)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"time_step", &shot.Engine.TimeStep},
		{"max_flight_time", &shot.Engine.MaxFlightTime},
		{"timeout", &shot.Timeout},
	}
	for _, d := range durations {
		v, err := p.Duration(d.name, 0)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("%s must not be negative", d.name)
		}
		*d.dst = v
	}

	if shot.Conditions != "" {
		if lookup == nil {
			return nil, fmt.Errorf("conditions preset %s cannot be resolved", shot.Conditions)
		}
		env, ok := lookup(shot.Conditions)
		if !ok {
			return nil, fmt.Errorf("conditions preset %s not found", shot.Conditions)
		}
		shot.Environment = env
	}

	return shot, nil
}

// Request combines the shot with a profile
func (s *Shot) Request(profile ballistics.BulletProfile) ballistics.SimulationRequest {
	return ballistics.SimulationRequest{
		Profile:             profile,
		Environment:         s.Environment,
		Sight:               s.Sight,
		MaxRangeYards:       s.MaxRangeYards,
		SampleIntervalYards: s.SampleIntervalYards,
		VitalZoneInches:     s.VitalZoneInches,
	}
}
