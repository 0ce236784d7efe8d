package ballistics

import "math"

const (
	// DefaultSampleIntervalYards is the spacing between recorded trajectory points
	DefaultSampleIntervalYards = 10.0

	// maxSamples bounds the output size of a single run
	maxSamples = 100000
)

// Validate checks the profile's physical properties
func (p BulletProfile) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"ballisticCoefficient", p.BallisticCoefficient},
		{"massGrains", p.MassGrains},
		{"diameterInches", p.DiameterInches},
		{"muzzleVelocityFps", p.MuzzleVelocityFps},
	}
	for _, c := range checks {
		if !finite(c.value) || c.value <= 0 {
			return invalid(ErrInvalidProfile, c.field, c.value, "must be positive")
		}
	}
	return nil
}

// Validate checks the air model inputs, wind and incline
func (e EnvironmentalConditions) Validate() error {
	if err := validateAir(e.TemperatureF, e.PressureInHg, e.HumidityPercent); err != nil {
		return err
	}
	if !finite(e.WindSpeedMph) || e.WindSpeedMph < 0 {
		return invalid(ErrInvalidEnvironment, "windSpeedMph", e.WindSpeedMph, "must not be negative")
	}
	if !finite(e.WindAngleDeg) {
		return invalid(ErrInvalidEnvironment, "windAngleDeg", e.WindAngleDeg, "must be a finite angle")
	}
	if !finite(e.ShootingAngleDeg) || math.Abs(e.ShootingAngleDeg) >= 90 {
		return invalid(ErrInvalidEnvironment, "shootingAngleDeg", e.ShootingAngleDeg, "must be within -90..90 exclusive")
	}
	return nil
}

// Validate checks the zero constraint
func (s SightConfig) Validate() error {
	if !finite(s.SightHeightInches) || s.SightHeightInches <= 0 {
		return invalid(ErrInvalidRequest, "sightHeightInches", s.SightHeightInches, "must be positive")
	}
	if !finite(s.ZeroRangeYards) || s.ZeroRangeYards <= 0 {
		return invalid(ErrInvalidRequest, "zeroRangeYards", s.ZeroRangeYards, "must be positive")
	}
	return nil
}

// Validate checks every part of the request. Zero interval and vital zone mean defaults.
func (r SimulationRequest) Validate() error {
	if err := r.Profile.Validate(); err != nil {
		return err
	}
	if err := r.Environment.Validate(); err != nil {
		return err
	}
	if err := r.Sight.Validate(); err != nil {
		return err
	}
	if !finite(r.MaxRangeYards) || r.MaxRangeYards <= 0 {
		return invalid(ErrInvalidRequest, "maxRangeYards", r.MaxRangeYards, "must be positive")
	}
	if !finite(r.SampleIntervalYards) || r.SampleIntervalYards < 0 {
		return invalid(ErrInvalidRequest, "sampleIntervalYards", r.SampleIntervalYards, "must not be negative")
	}
	if !finite(r.VitalZoneInches) || r.VitalZoneInches < 0 {
		return invalid(ErrInvalidRequest, "vitalZoneInches", r.VitalZoneInches, "must not be negative")
	}
	if r.MaxRangeYards/r.interval() > maxSamples {
		return invalid(ErrInvalidRequest, "sampleIntervalYards", r.SampleIntervalYards, "yields too many samples")
	}
	return nil
}

func (r SimulationRequest) interval() float64 {
	if r.SampleIntervalYards == 0 {
		return DefaultSampleIntervalYards
	}
	return r.SampleIntervalYards
}

func (r SimulationRequest) vitalZone() float64 {
	if r.VitalZoneInches == 0 {
		return DefaultVitalZoneInches
	}
	return r.VitalZoneInches
}

// SampleDistances lists the distances (yards) a run of r records, ascending:
// the interval grid up to the max range, the zero range and the max range itself.
func (r SimulationRequest) SampleDistances() []float64 {
	const eps = 1e-9
	step := r.interval()
	maxRange := r.MaxRangeYards

	distances := make([]float64, 0, int(maxRange/step)+3)
	for k := 0; ; k++ {
		d := float64(k) * step
		if d > maxRange+eps {
			break
		}
		distances = append(distances, d)
	}

	zero := r.Sight.ZeroRangeYards
	if zero <= maxRange+eps {
		if off := math.Abs(zero - math.Round(zero/step)*step); off > eps {
			distances = insertSorted(distances, zero)
		}
	}
	if last := distances[len(distances)-1]; maxRange-last > eps {
		distances = append(distances, maxRange)
	}
	return distances
}

func insertSorted(values []float64, v float64) []float64 {
	i := len(values)
	for i > 0 && values[i-1] > v {
		i--
	}
	values = append(values, 0)
	copy(values[i+1:], values[i:])
	values[i] = v
	return values
}
