package ballistics

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"
)

var standardAir = EnvironmentalConditions{TemperatureF: 59, PressureInHg: 29.92}

func mustProfile(t *testing.T, name string) BulletProfile {
	t.Helper()
	p, ok := LookupProfile(name)
	if !ok {
		t.Fatalf("profile %q not in catalog", name)
	}
	return p
}

func pistolRequest(t *testing.T) SimulationRequest {
	return SimulationRequest{
		Profile:       mustProfile(t, "9mm"),
		Environment:   standardAir,
		Sight:         SightConfig{SightHeightInches: 1.5, ZeroRangeYards: 25},
		MaxRangeYards: 100,
	}
}

func rifleRequest(t *testing.T) SimulationRequest {
	env := standardAir
	env.WindSpeedMph = 10
	env.WindAngleDeg = 90
	return SimulationRequest{
		Profile:             mustProfile(t, ".223Rem"),
		Environment:         env,
		Sight:               SightConfig{SightHeightInches: 1.5, ZeroRangeYards: 100},
		MaxRangeYards:       500,
		SampleIntervalYards: 50,
	}
}

func findPoint(t *testing.T, points []TrajectoryPoint, distance float64) TrajectoryPoint {
	t.Helper()
	for _, p := range points {
		if math.Abs(p.DistanceYards-distance) < 1e-9 {
			return p
		}
	}
	t.Fatalf("no point at %v yards", distance)
	return TrajectoryPoint{}
}

func TestSolvePistolZero(t *testing.T) {
	sol, err := NewEngine(Config{}).Solve(pistolRequest(t))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if got := findPoint(t, sol.Points, 25).DropInches; math.Abs(got) > 0.1 {
		t.Errorf("drop at zero range = %.4f in, want ≈0", got)
	}
	drop100 := findPoint(t, sol.Points, 100).DropInches
	if drop100 >= 0 {
		t.Errorf("drop at 100 yd = %.3f in, want below the line of sight", drop100)
	}
	if drop100 < -8 || drop100 > -6 {
		t.Errorf("drop at 100 yd = %.3f in, want about -7.1", drop100)
	}
	if sol.ZeroAngleRad <= 0 {
		t.Errorf("zero angle %v should point above the line of sight", sol.ZeroAngleRad)
	}
	if !sol.Summary.PointBlankFound || sol.Summary.PointBlankMin != 0 || sol.Summary.PointBlankMax != 70 {
		t.Errorf("point-blank band = %+v, want 0..70", sol.Summary)
	}
	if !sol.Summary.ThresholdReached || sol.Summary.MaxEffectiveRange != 40 {
		t.Errorf("max effective range = %v (reached=%v), want 40",
			sol.Summary.MaxEffectiveRange, sol.Summary.ThresholdReached)
	}
}

func TestSolveRifleCrosswind(t *testing.T) {
	sol, err := NewEngine(Config{}).Solve(rifleRequest(t))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	prev := 0.0
	for _, p := range sol.Points[1:] {
		if p.WindageInches <= prev {
			t.Fatalf("windage not increasing at %v yd: %.3f after %.3f", p.DistanceYards, p.WindageInches, prev)
		}
		prev = p.WindageInches
	}
	if last := sol.Points[len(sol.Points)-1]; last.WindageInches < 25 || last.WindageInches > 40 {
		t.Errorf("windage at 500 yd = %.2f in, want about 33", last.WindageInches)
	}

	if !sol.Summary.ThresholdReached || sol.Summary.MaxEffectiveRange >= 500 {
		t.Errorf("max effective range = %v (reached=%v), want below 500",
			sol.Summary.MaxEffectiveRange, sol.Summary.ThresholdReached)
	}
	if sol.Summary.MaxEffectiveRange != 100 {
		t.Errorf("max effective range = %v, want 100 on a 50 yd grid", sol.Summary.MaxEffectiveRange)
	}
}

func TestSolveRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationRequest)
		want   error
	}{
		{"humidity above 100", func(r *SimulationRequest) { r.Environment.HumidityPercent = 150 }, ErrInvalidEnvironment},
		{"zero ballistic coefficient", func(r *SimulationRequest) { r.Profile.BallisticCoefficient = 0 }, ErrInvalidProfile},
		{"negative mass", func(r *SimulationRequest) { r.Profile.MassGrains = -1 }, ErrInvalidProfile},
		{"zero muzzle velocity", func(r *SimulationRequest) { r.Profile.MuzzleVelocityFps = 0 }, ErrInvalidProfile},
		{"negative wind", func(r *SimulationRequest) { r.Environment.WindSpeedMph = -3 }, ErrInvalidEnvironment},
		{"vertical shot", func(r *SimulationRequest) { r.Environment.ShootingAngleDeg = 90 }, ErrInvalidEnvironment},
		{"no sight height", func(r *SimulationRequest) { r.Sight.SightHeightInches = 0 }, ErrInvalidRequest},
		{"no zero range", func(r *SimulationRequest) { r.Sight.ZeroRangeYards = 0 }, ErrInvalidRequest},
		{"no max range", func(r *SimulationRequest) { r.MaxRangeYards = 0 }, ErrInvalidRequest},
		{"negative interval", func(r *SimulationRequest) { r.SampleIntervalYards = -10 }, ErrInvalidRequest},
		{"too many samples", func(r *SimulationRequest) { r.SampleIntervalYards = 1e-6 }, ErrInvalidRequest},
	}

	engine := NewEngine(Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pistolRequest(t)
			tt.mutate(&req)

			sol, err := engine.Solve(req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Solve error = %v, want %v", err, tt.want)
			}
			if sol != nil {
				t.Errorf("Solve returned a partial solution %+v", sol)
			}
			if Describe(err) == "" {
				t.Error("Describe returned an empty message")
			}
		})
	}
}

func TestTrajectoryProperties(t *testing.T) {
	engine := NewEngine(Config{})
	for _, name := range ProfileNames() {
		t.Run(name, func(t *testing.T) {
			profile := mustProfile(t, name)
			zero, maxRange := 100.0, 300.0
			if profile.Class != ClassRifle {
				zero, maxRange = 25, 100
			}
			req := SimulationRequest{
				Profile:       profile,
				Environment:   standardAir,
				Sight:         SightConfig{SightHeightInches: 1.5, ZeroRangeYards: zero},
				MaxRangeYards: maxRange,
			}
			sol, err := engine.Solve(req)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}

			first := sol.Points[0]
			if first.DistanceYards != 0 || math.Abs(first.DropInches+1.5) > 1e-9 {
				t.Errorf("muzzle point = %+v, want distance 0 and drop -1.5", first)
			}
			if math.Abs(first.VelocityFps-profile.MuzzleVelocityFps) > 1e-6 {
				t.Errorf("muzzle velocity = %v, want %v", first.VelocityFps, profile.MuzzleVelocityFps)
			}
			if got := findPoint(t, sol.Points, zero).DropInches; math.Abs(got) > 0.1 {
				t.Errorf("drop at zero range = %.4f", got)
			}

			for i := 1; i < len(sol.Points); i++ {
				prev, cur := sol.Points[i-1], sol.Points[i]
				if cur.DistanceYards <= prev.DistanceYards {
					t.Fatalf("distance not increasing at index %d", i)
				}
				if cur.TimeSeconds < prev.TimeSeconds {
					t.Fatalf("time decreased at %v yd", cur.DistanceYards)
				}
				if cur.VelocityFps > prev.VelocityFps {
					t.Fatalf("velocity increased at %v yd with no wind", cur.DistanceYards)
				}
				if cur.EnergyFtLbs > prev.EnergyFtLbs {
					t.Fatalf("energy increased at %v yd", cur.DistanceYards)
				}
				if cur.WindageInches != 0 {
					t.Fatalf("windage %v without wind", cur.WindageInches)
				}
			}
		})
	}
}

// Past the point where drag falls below gravity the bullet can pick up speed on the
// way down. Any rise between samples must start below that balance speed.
func TestVelocityRisesOnlyBelowBalanceSpeed(t *testing.T) {
	engine := NewEngine(Config{})
	ratio, err := AirDensityRatio(standardAir.TemperatureF, standardAir.PressureInHg, standardAir.HumidityPercent)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range ProfileNames() {
		for _, incline := range []float64{0, 30, -30, 60, -60} {
			t.Run(fmt.Sprintf("%s/%+.0f", name, incline), func(t *testing.T) {
				profile := mustProfile(t, name)
				zero := 25.0
				if profile.Class == ClassRifle {
					zero = 100
				}
				env := standardAir
				env.ShootingAngleDeg = incline
				req := SimulationRequest{
					Profile:       profile,
					Environment:   env,
					Sight:         SightConfig{SightHeightInches: 1.5, ZeroRangeYards: zero},
					MaxRangeYards: 2000,
				}
				sol, err := engine.Solve(req)
				if err != nil && !errors.Is(err, ErrSimulationTimeout) {
					t.Fatalf("Solve: %v", err)
				}

				k := 0.5 * ratio * DragFactor(profile.BallisticCoefficient)
				for i := 1; i < len(sol.Points); i++ {
					prev, cur := sol.Points[i-1], sol.Points[i]
					if cur.VelocityFps <= prev.VelocityFps {
						continue
					}
					v := prev.VelocityFps * metersPerFoot
					if drag := k * v * v; drag >= gravity {
						t.Errorf("velocity rose at %v yd with drag %.2f m/s^2 above gravity", cur.DistanceYards, drag)
					}
					if cur.EnergyFtLbs <= prev.EnergyFtLbs {
						t.Errorf("energy did not follow velocity at %v yd", cur.DistanceYards)
					}
				}
			})
		}
	}
}

func TestSlowLongFlightSpeedsUp(t *testing.T) {
	req := SimulationRequest{
		Profile:       mustProfile(t, ".380ACP"),
		Environment:   standardAir,
		Sight:         SightConfig{SightHeightInches: 1.5, ZeroRangeYards: 25},
		MaxRangeYards: 1000,
	}
	sol, err := NewEngine(Config{}).Solve(req)
	if err != nil && !errors.Is(err, ErrSimulationTimeout) {
		t.Fatalf("Solve: %v", err)
	}

	risen := false
	for i := 1; i < len(sol.Points); i++ {
		prev, cur := sol.Points[i-1], sol.Points[i]
		if cur.VelocityFps > prev.VelocityFps {
			if cur.DistanceYards < 500 {
				t.Errorf("velocity rose at %v yd, expected only in the late descent", cur.DistanceYards)
			}
			risen = true
		}
	}
	if !risen {
		t.Error("expected the .380 ACP to speed up in its late descent")
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	engine := NewEngine(Config{})
	req := rifleRequest(t)

	want, err := engine.Solve(req)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*Solution, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = engine.Solve(req)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("run %d differs from the first solution", i)
		}
	}
}

func TestWindDirection(t *testing.T) {
	engine := NewEngine(Config{})
	solveWith := func(angle float64) *Solution {
		req := rifleRequest(t)
		req.Environment.WindAngleDeg = angle
		sol, err := engine.Solve(req)
		if err != nil {
			t.Fatalf("Solve(wind %v°): %v", angle, err)
		}
		return sol
	}

	fromRight := solveWith(90).Points
	fromLeft := solveWith(270).Points
	for i := 1; i < len(fromRight); i++ {
		if fromRight[i].WindageInches <= 0 || fromLeft[i].WindageInches >= 0 {
			t.Fatalf("at %v yd right=%.3f left=%.3f, want opposite signs",
				fromRight[i].DistanceYards, fromRight[i].WindageInches, fromLeft[i].WindageInches)
		}
		if math.Abs(fromRight[i].WindageInches+fromLeft[i].WindageInches) > 1e-6 {
			t.Errorf("windage not mirrored at %v yd", fromRight[i].DistanceYards)
		}
	}

	head := solveWith(0).Points
	tail := solveWith(180).Points
	last := len(head) - 1
	if head[last].DropInches >= tail[last].DropInches {
		t.Errorf("headwind drop %.3f should exceed tailwind drop %.3f", head[last].DropInches, tail[last].DropInches)
	}
	if head[last].EnergyFtLbs >= tail[last].EnergyFtLbs {
		t.Errorf("headwind energy %.1f should be below tailwind energy %.1f", head[last].EnergyFtLbs, tail[last].EnergyFtLbs)
	}
}

func TestInclinedShotHitsHigh(t *testing.T) {
	engine := NewEngine(Config{})
	dropAt := func(angle float64) float64 {
		req := rifleRequest(t)
		req.Environment.WindSpeedMph = 0
		req.Environment.ShootingAngleDeg = angle
		sol, err := engine.Solve(req)
		if err != nil {
			t.Fatalf("Solve(incline %v°): %v", angle, err)
		}
		return findPoint(t, sol.Points, 500).DropInches
	}

	level := dropAt(0)
	for _, angle := range []float64{30, -30} {
		if got := dropAt(angle); got <= level {
			t.Errorf("drop at %v° = %.2f, want above level drop %.2f", angle, got, level)
		}
	}
}

func TestSolveZeroAngle(t *testing.T) {
	engine := NewEngine(Config{})
	profile := mustProfile(t, "9mm")

	near, err := engine.SolveZeroAngle(profile, standardAir, SightConfig{SightHeightInches: 1.5, ZeroRangeYards: 25})
	if err != nil {
		t.Fatalf("SolveZeroAngle(25): %v", err)
	}
	far, err := engine.SolveZeroAngle(profile, standardAir, SightConfig{SightHeightInches: 1.5, ZeroRangeYards: 800})
	if err != nil {
		t.Fatalf("SolveZeroAngle(800): %v", err)
	}
	if far <= near {
		t.Errorf("800 yd zero angle %v should exceed 25 yd angle %v", far, near)
	}

	_, err = engine.SolveZeroAngle(profile, standardAir, SightConfig{SightHeightInches: 1.5, ZeroRangeYards: 3000})
	if !errors.Is(err, ErrZeroNotAchievable) {
		t.Errorf("3000 yd pistol zero error = %v, want ErrZeroNotAchievable", err)
	}

	_, err = engine.SolveZeroAngle(profile, EnvironmentalConditions{TemperatureF: 59, PressureInHg: 29.92, HumidityPercent: 150},
		SightConfig{SightHeightInches: 1.5, ZeroRangeYards: 25})
	if !errors.Is(err, ErrInvalidEnvironment) {
		t.Errorf("error = %v, want ErrInvalidEnvironment", err)
	}
}

func TestSimulateTimeoutKeepsPrefix(t *testing.T) {
	engine := NewEngine(Config{MaxFlightTime: 500 * time.Millisecond})
	req := pistolRequest(t)
	req.MaxRangeYards = 2000
	req.SampleIntervalYards = 100

	sol, err := engine.Solve(req)
	if !errors.Is(err, ErrSimulationTimeout) {
		t.Fatalf("Solve error = %v, want ErrSimulationTimeout", err)
	}
	if sol == nil || !sol.Truncated {
		t.Fatalf("expected a truncated solution, got %+v", sol)
	}
	grid := req.SampleDistances()
	if n := len(sol.Points); n == 0 || n >= len(grid) {
		t.Fatalf("got %d points, want a non-empty prefix of %d", n, len(grid))
	}
	for i, p := range sol.Points {
		if p.DistanceYards != grid[i] {
			t.Errorf("point %d at %v yd, want %v", i, p.DistanceYards, grid[i])
		}
	}
	if got := sol.Points[1].DistanceYards; got != req.Sight.ZeroRangeYards {
		t.Errorf("second point at %v yd, want the off-grid zero %v", got, req.Sight.ZeroRangeYards)
	}

	points, err := engine.Simulate(req, sol.ZeroAngleRad)
	if !errors.Is(err, ErrSimulationTimeout) || !reflect.DeepEqual(points, sol.Points) {
		t.Errorf("Simulate returned %d points, err %v", len(points), err)
	}
}

func TestSolveAtMatchesGrid(t *testing.T) {
	engine := NewEngine(Config{})
	req := rifleRequest(t)

	sol, err := engine.Solve(req)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	want := findPoint(t, sol.Points, 300)

	got, err := engine.SolveAt(req, 300)
	if err != nil {
		t.Fatalf("SolveAt: %v", err)
	}
	if math.Abs(got.DropInches-want.DropInches) > 1e-9 || math.Abs(got.WindageInches-want.WindageInches) > 1e-9 {
		t.Errorf("SolveAt(300) = %+v, want %+v", got, want)
	}

	if _, err := engine.SolveAt(req, -5); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("SolveAt(-5) error = %v, want ErrInvalidRequest", err)
	}
}

func TestSampleDistances(t *testing.T) {
	tests := []struct {
		name     string
		maxRange float64
		interval float64
		zero     float64
		want     []float64
	}{
		{"zero on grid", 50, 10, 20, []float64{0, 10, 20, 30, 40, 50}},
		{"zero off grid", 50, 10, 25, []float64{0, 10, 20, 25, 30, 40, 50}},
		{"max range off grid", 45, 10, 20, []float64{0, 10, 20, 30, 40, 45}},
		{"zero beyond max range", 30, 10, 100, []float64{0, 10, 20, 30}},
		{"default interval", 30, 0, 25, []float64{0, 10, 20, 25, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SimulationRequest{
				Sight:               SightConfig{SightHeightInches: 1.5, ZeroRangeYards: tt.zero},
				MaxRangeYards:       tt.maxRange,
				SampleIntervalYards: tt.interval,
			}
			if got := req.SampleDistances(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SampleDistances() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeStepConvergence(t *testing.T) {
	req := pistolRequest(t)
	coarse, err := NewEngine(Config{}).Solve(req)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	fine, err := NewEngine(Config{TimeStep: 500 * time.Microsecond}).Solve(req)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	a := findPoint(t, coarse.Points, 100).DropInches
	b := findPoint(t, fine.Points, 100).DropInches
	if math.Abs(a-b) > 0.05 {
		t.Errorf("halving the time step moved the 100 yd drop from %.4f to %.4f", a, b)
	}
}

func TestEnergy(t *testing.T) {
	if got := Energy(115, 1180); math.Abs(got-355.6) > 0.1 {
		t.Errorf("Energy(115 gr, 1180 fps) = %.2f, want 355.6", got)
	}
}
