package ballistics

import "math"

const (
	gravity         = 9.81 // m/s^2
	metersPerYard   = 0.9144
	metersPerInch   = 0.0254
	metersPerFoot   = 0.3048
	metersPerSecMph = 0.44704

	// energyConstant turns grains * fps^2 into foot-pounds
	energyConstant = 450240.0
	moaPerRadian   = 60 * 180 / math.Pi
)

// state is the projectile at one instant, in the shot frame (SI units)
type state struct {
	pos  Vector
	vel  Vector
	time float64
}

// shot holds everything that stays constant during one flight
type shot struct {
	bc           float64
	densityRatio float64
	gravity      Vector
	wind         Vector
	dt           float64
	maxTime      float64
}

func newShot(bc, densityRatio, inclineRad float64, wind Vector, cfg Config) *shot {
	return &shot{
		bc:           bc,
		densityRatio: densityRatio,
		gravity:      Vector{X: -gravity * math.Sin(inclineRad), Y: -gravity * math.Cos(inclineRad)},
		wind:         wind,
		dt:           cfg.TimeStep.Seconds(),
		maxTime:      cfg.MaxFlightTime.Seconds(),
	}
}

// windVector resolves a wind blowing from angleDeg (0 = headwind, 90 = from the right)
// into the shot frame. The air moves toward the shooter and to the left.
func windVector(speedMph, angleDeg float64) Vector {
	speed := speedMph * metersPerSecMph
	angle := angleDeg * math.Pi / 180
	return Vector{X: -speed * math.Cos(angle), Z: speed * math.Sin(angle)}
}

func muzzleState(muzzleVelocityFps, sightHeightInches, launchAngleRad float64) state {
	speed := muzzleVelocityFps * metersPerFoot
	return state{
		pos: Vector{Y: -sightHeightInches * metersPerInch},
		vel: Vector{X: speed * math.Cos(launchAngleRad), Y: speed * math.Sin(launchAngleRad)},
	}
}

// step advances one explicit Euler step. Drag acts on the air-relative velocity;
// position uses the mean of the old and new velocity.
func (s *shot) step(cur state) state {
	relative := cur.vel.Sub(s.wind)
	acc := DragDeceleration(relative, s.bc, s.densityRatio).Add(s.gravity)
	vel := cur.vel.Add(acc.Scale(s.dt))
	pos := cur.pos.Add(cur.vel.Add(vel).Scale(s.dt / 2))
	return state{pos: pos, vel: vel, time: cur.time + s.dt}
}

// fly integrates from start and calls record once per target distance (meters, ascending)
// with the state interpolated at the crossing. It returns how many targets were reached
// before the flight time bound or before the projectile stopped advancing.
func (s *shot) fly(start state, targets []float64, record func(i int, at state)) int {
	cur := start
	i := 0
	for i < len(targets) && cur.pos.X >= targets[i] {
		record(i, cur)
		i++
	}

	for i < len(targets) {
		if cur.time >= s.maxTime || cur.vel.X <= 0 {
			break
		}
		next := s.step(cur)
		for i < len(targets) && next.pos.X >= targets[i] {
			f := (targets[i] - cur.pos.X) / (next.pos.X - cur.pos.X)
			record(i, state{
				pos:  cur.pos.Lerp(next.pos, f),
				vel:  cur.vel.Lerp(next.vel, f),
				time: cur.time + (next.time-cur.time)*f,
			})
			i++
		}
		cur = next
	}
	return i
}

// point converts an interpolated state at distanceYards into output units
func point(distanceYards, massGrains float64, at state) TrajectoryPoint {
	velocityFps := at.vel.Norm() / metersPerFoot
	p := TrajectoryPoint{
		DistanceYards: distanceYards,
		DropInches:    at.pos.Y / metersPerInch,
		VelocityFps:   velocityFps,
		EnergyFtLbs:   Energy(massGrains, velocityFps),
		WindageInches: at.pos.Z / metersPerInch,
		TimeSeconds:   at.time,
	}
	if at.pos.X > 0 {
		p.DropMOA = math.Atan(at.pos.Y/at.pos.X) * moaPerRadian
		p.WindageMOA = math.Atan(at.pos.Z/at.pos.X) * moaPerRadian
	}
	return p
}

// Energy returns kinetic energy in foot-pounds for a mass in grains and a speed in fps
func Energy(massGrains, velocityFps float64) float64 {
	return massGrains * velocityFps * velocityFps / energyConstant
}
