package ballistics

import "math"

const (
	// DefaultVitalZoneInches is the drop tolerance defining point-blank range
	DefaultVitalZoneInches = 3.0

	RifleEnergyThresholdFtLbs   = 1000.0
	DefaultEnergyThresholdFtLbs = 300.0
)

// EnergyThreshold returns the minimum effective energy for a profile class.
// Anything that is not a rifle uses the handgun threshold.
func EnergyThreshold(class ProfileClass) float64 {
	if class == ClassRifle {
		return RifleEnergyThresholdFtLbs
	}
	return DefaultEnergyThresholdFtLbs
}

// Summarize derives the point-blank band and the maximum effective range from points
// ordered by distance. Only the first band inside the vital zone is reported; a
// trajectory that re-enters the zone after leaving it does not extend the band.
// A non-positive vitalZoneInches selects DefaultVitalZoneInches.
func Summarize(points []TrajectoryPoint, class ProfileClass, vitalZoneInches float64) RangeSummary {
	if vitalZoneInches <= 0 {
		vitalZoneInches = DefaultVitalZoneInches
	}
	summary := RangeSummary{
		VitalZoneInches:      vitalZoneInches,
		EnergyThresholdFtLbs: EnergyThreshold(class),
	}

	open, closed := false, false
	for _, p := range points {
		inside := math.Abs(p.DropInches) <= vitalZoneInches
		switch {
		case inside && !closed:
			if !open {
				open = true
				summary.PointBlankFound = true
				summary.PointBlankMin = p.DistanceYards
			}
			summary.PointBlankMax = p.DistanceYards
		case !inside && open:
			open, closed = false, true
		}

		if !summary.ThresholdReached && p.EnergyFtLbs < summary.EnergyThresholdFtLbs {
			summary.ThresholdReached = true
			summary.MaxEffectiveRange = p.DistanceYards
		}
	}

	if !summary.ThresholdReached && len(points) > 0 {
		summary.MaxEffectiveRange = points[len(points)-1].DistanceYards
	}
	return summary
}
