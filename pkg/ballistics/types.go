package ballistics

// ProfileClass selects the energy threshold used for the maximum effective range
type ProfileClass string

const (
	ClassRifle   ProfileClass = "rifle"
	ClassHandgun ProfileClass = "handgun"
	ClassShotgun ProfileClass = "shotgun"
	ClassUnknown ProfileClass = "unknown"
)

// BulletProfile holds the physical properties of a projectile
type BulletProfile struct {
	Name                 string       `json:"name" yaml:"name"`
	Class                ProfileClass `json:"class" yaml:"class"`
	BallisticCoefficient float64      `json:"ballisticCoefficient" yaml:"ballistic_coefficient"`
	MassGrains           float64      `json:"massGrains" yaml:"mass_grains"`
	DiameterInches       float64      `json:"diameterInches" yaml:"diameter_inches"`
	MuzzleVelocityFps    float64      `json:"muzzleVelocityFps" yaml:"muzzle_velocity_fps"`
}

// EnvironmentalConditions describes the air and the shot geometry.
// WindAngleDeg is the direction the wind blows from, relative to the shot line:
// 0 is a headwind, 90 a full value wind from the shooter's right.
type EnvironmentalConditions struct {
	TemperatureF     float64 `json:"temperatureF" yaml:"temperature_f"`
	PressureInHg     float64 `json:"pressureInHg" yaml:"pressure_inhg"`
	HumidityPercent  float64 `json:"humidityPercent" yaml:"humidity_percent"`
	WindSpeedMph     float64 `json:"windSpeedMph" yaml:"wind_speed_mph"`
	WindAngleDeg     float64 `json:"windAngleDeg" yaml:"wind_angle_deg"`
	ShootingAngleDeg float64 `json:"shootingAngleDeg" yaml:"shooting_angle_deg"`
}

// SightConfig defines the zero constraint
type SightConfig struct {
	SightHeightInches float64 `json:"sightHeightInches" yaml:"sight_height_inches"`
	ZeroRangeYards    float64 `json:"zeroRangeYards" yaml:"zero_range_yards"`
}

// SimulationRequest is the immutable input of a single engine run
type SimulationRequest struct {
	Profile             BulletProfile           `json:"profile" yaml:"profile"`
	Environment         EnvironmentalConditions `json:"environment" yaml:"environment"`
	Sight               SightConfig             `json:"sight" yaml:"sight"`
	MaxRangeYards       float64                 `json:"maxRangeYards" yaml:"max_range_yards"`
	SampleIntervalYards float64                 `json:"sampleIntervalYards" yaml:"sample_interval_yards"`
	VitalZoneInches     float64                 `json:"vitalZoneInches,omitempty" yaml:"vital_zone_inches,omitempty"`
}

// TrajectoryPoint is the projectile state sampled at one distance.
// DropInches is positive above the line of sight, WindageInches positive to the shooter's left.
// The muzzle point therefore reports DropInches = -SightHeightInches.
// VelocityFps is the true speed. It falls while drag exceeds gravity; in the late descent
// of slow, long flights gravity wins and it can rise again.
type TrajectoryPoint struct {
	DistanceYards float64 `json:"distanceYards"`
	DropInches    float64 `json:"dropInches"`
	DropMOA       float64 `json:"dropMOA"`
	VelocityFps   float64 `json:"velocityFps"`
	EnergyFtLbs   float64 `json:"energyFtLbs"`
	WindageInches float64 `json:"windageInches"`
	WindageMOA    float64 `json:"windageMOA"`
	TimeSeconds   float64 `json:"timeSeconds"`
}

// RangeSummary is derived from a trajectory by Summarize
type RangeSummary struct {
	PointBlankMin        float64 `json:"pointBlankMin"`
	PointBlankMax        float64 `json:"pointBlankMax"`
	PointBlankFound      bool    `json:"pointBlankFound"`
	MaxEffectiveRange    float64 `json:"maxEffectiveRange"`
	ThresholdReached     bool    `json:"thresholdReached"`
	VitalZoneInches      float64 `json:"vitalZoneInches"`
	EnergyThresholdFtLbs float64 `json:"energyThresholdFtLbs"`
}

// Solution is the full output of Engine.Solve
type Solution struct {
	Points         []TrajectoryPoint `json:"points"`
	Summary        RangeSummary      `json:"summary"`
	ZeroAngleRad   float64           `json:"zeroAngleRad"`
	DensityRatio   float64           `json:"densityRatio"`
	Truncated      bool              `json:"truncated"`
	ZeroIterations int               `json:"zeroIterations"`
}
