// Package ballistics is a point-mass exterior ballistics engine. Given a bullet profile,
// the shooting conditions and a sight zero it solves the launch angle and returns the
// trajectory sampled at fixed distances, plus point-blank and effective-range bands.
//
// The model uses one constant effective drag coefficient and explicit Euler steps; it
// has no Mach-dependent drag tables, spin drift or Coriolis terms. Every call is a pure
// function of its inputs and an Engine is safe for concurrent use.
package ballistics

import (
	"fmt"
	"math"
	"time"
)

// Config tunes the numerical integration. Zero values select the defaults.
type Config struct {
	TimeStep            time.Duration
	MaxFlightTime       time.Duration
	ZeroToleranceInches float64
	MaxZeroIterations   int
	MaxLaunchAngleDeg   float64
}

// DefaultConfig returns the engine defaults
func DefaultConfig() Config {
	return Config{
		TimeStep:            time.Millisecond,
		MaxFlightTime:       10 * time.Second,
		ZeroToleranceInches: 0.001,
		MaxZeroIterations:   60,
		MaxLaunchAngleDeg:   45,
	}
}

// Engine runs trajectory solutions. It holds no mutable state.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine, filling unset Config fields with defaults
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = def.TimeStep
	}
	if cfg.MaxFlightTime <= 0 {
		cfg.MaxFlightTime = def.MaxFlightTime
	}
	if cfg.ZeroToleranceInches <= 0 {
		cfg.ZeroToleranceInches = def.ZeroToleranceInches
	}
	if cfg.MaxZeroIterations <= 0 {
		cfg.MaxZeroIterations = def.MaxZeroIterations
	}
	if cfg.MaxLaunchAngleDeg <= 0 || cfg.MaxLaunchAngleDeg >= 90 {
		cfg.MaxLaunchAngleDeg = def.MaxLaunchAngleDeg
	}
	return &Engine{cfg: cfg}
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// SolveZeroAngle returns the launch angle in radians, relative to the line of sight,
// that puts the bullet on the line of sight at the zero range. The search uses the
// environment's air density but no wind and no incline.
func (e *Engine) SolveZeroAngle(profile BulletProfile, env EnvironmentalConditions, sight SightConfig) (float64, error) {
	angle, _, err := e.solveZero(profile, env, sight)
	return angle, err
}

func (e *Engine) solveZero(profile BulletProfile, env EnvironmentalConditions, sight SightConfig) (float64, int, error) {
	if err := profile.Validate(); err != nil {
		return 0, 0, err
	}
	if err := sight.Validate(); err != nil {
		return 0, 0, err
	}
	ratio, err := AirDensityRatio(env.TemperatureF, env.PressureInHg, env.HumidityPercent)
	if err != nil {
		return 0, 0, err
	}

	search := &zeroSearch{
		shot:      newShot(profile.BallisticCoefficient, ratio, 0, Vector{}, e.cfg),
		profile:   profile,
		sight:     sight,
		tolerance: e.cfg.ZeroToleranceInches,
		maxAngle:  e.cfg.MaxLaunchAngleDeg * math.Pi / 180,
		maxIter:   e.cfg.MaxZeroIterations,
	}
	angle, err := search.solve()
	return angle, search.iterations, err
}

// Simulate integrates the full trajectory for a solved zero angle. The line of sight is
// tilted by the request's shooting angle. If a sample distance is not reached within
// the flight time bound, the reached prefix is returned with ErrSimulationTimeout.
func (e *Engine) Simulate(req SimulationRequest, zeroAngleRad float64) ([]TrajectoryPoint, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ratio, err := AirDensityRatio(req.Environment.TemperatureF, req.Environment.PressureInHg, req.Environment.HumidityPercent)
	if err != nil {
		return nil, err
	}
	return e.simulate(req, ratio, zeroAngleRad, req.SampleDistances())
}

func (e *Engine) simulate(req SimulationRequest, ratio, zeroAngleRad float64, distances []float64) ([]TrajectoryPoint, error) {
	env := req.Environment
	s := newShot(req.Profile.BallisticCoefficient, ratio, env.ShootingAngleDeg*math.Pi/180,
		windVector(env.WindSpeedMph, env.WindAngleDeg), e.cfg)

	targets := make([]float64, len(distances))
	for i, d := range distances {
		targets[i] = d * metersPerYard
	}

	points := make([]TrajectoryPoint, 0, len(distances))
	start := muzzleState(req.Profile.MuzzleVelocityFps, req.Sight.SightHeightInches, zeroAngleRad)
	reached := s.fly(start, targets, func(i int, at state) {
		points = append(points, point(distances[i], req.Profile.MassGrains, at))
	})

	if reached < len(distances) {
		return points, fmt.Errorf("%w: %.0f yd not reached within %s of flight",
			ErrSimulationTimeout, distances[reached], e.cfg.MaxFlightTime)
	}
	return points, nil
}

// Solve runs the whole pipeline: air density, zero angle, trajectory and summary.
// On ErrSimulationTimeout the returned Solution is non-nil, marked Truncated and holds
// the reached part of the trajectory.
func (e *Engine) Solve(req SimulationRequest) (*Solution, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ratio, err := AirDensityRatio(req.Environment.TemperatureF, req.Environment.PressureInHg, req.Environment.HumidityPercent)
	if err != nil {
		return nil, err
	}
	angle, iterations, err := e.solveZero(req.Profile, req.Environment, req.Sight)
	if err != nil {
		return nil, err
	}

	points, simErr := e.simulate(req, ratio, angle, req.SampleDistances())
	sol := &Solution{
		Points:         points,
		Summary:        Summarize(points, req.Profile.Class, req.vitalZone()),
		ZeroAngleRad:   angle,
		DensityRatio:   ratio,
		Truncated:      simErr != nil,
		ZeroIterations: iterations,
	}
	return sol, simErr
}

// SolveAt returns the single trajectory point at distanceYards
func (e *Engine) SolveAt(req SimulationRequest, distanceYards float64) (TrajectoryPoint, error) {
	if err := req.Validate(); err != nil {
		return TrajectoryPoint{}, err
	}
	if !finite(distanceYards) || distanceYards < 0 {
		return TrajectoryPoint{}, invalid(ErrInvalidRequest, "distanceYards", distanceYards, "must not be negative")
	}
	ratio, err := AirDensityRatio(req.Environment.TemperatureF, req.Environment.PressureInHg, req.Environment.HumidityPercent)
	if err != nil {
		return TrajectoryPoint{}, err
	}
	angle, _, err := e.solveZero(req.Profile, req.Environment, req.Sight)
	if err != nil {
		return TrajectoryPoint{}, err
	}
	points, err := e.simulate(req, ratio, angle, []float64{distanceYards})
	if err != nil {
		return TrajectoryPoint{}, err
	}
	return points[0], nil
}
