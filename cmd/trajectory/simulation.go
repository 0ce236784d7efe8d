package trajectory

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/config"
	"github.com/picogrid/ballistics-sim/pkg/logger"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

//go:embed simulation.yaml
var descriptor []byte

// Simulation runs one request through the ballistics engine
type Simulation struct {
	config *Config
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSimulation creates a new instance of the trajectory simulation
func NewSimulation() simulation.Simulation {
	return &Simulation{}
}

// Name returns the simulation name
func (s *Simulation) Name() string {
	return "Trajectory"
}

// Description returns the simulation description
func (s *Simulation) Description() string {
	return "Solve the zero and the full trajectory of one load under given conditions"
}

// Configure sets up the simulation with provided parameters
func (s *Simulation) Configure(params map[string]interface{}) error {
	cfg, err := ValidateAndParse(params, config.Lookup)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	s.config = cfg
	return nil
}

type outcome struct {
	solution *ballistics.Solution
	err      error
	elapsed  time.Duration
}

// Run solves the trajectory and publishes it. A truncated trajectory is published and
// reported as a warning; any other engine error is published and returned.
func (s *Simulation) Run(ctx context.Context, sink simulation.Sink) error {
	if s.config == nil {
		return fmt.Errorf("simulation is not configured")
	}

	ctx, cancel := s.runContext(ctx)
	defer cancel()

	req := s.config.Request
	log := logger.WithPrefix("trajectory").WithFields(map[string]interface{}{
		"profile": req.Profile.Name,
		"zero":    req.Sight.ZeroRangeYards,
	})
	log.Infof("Solving %g yd trajectory", req.MaxRangeYards)

	engine := ballistics.NewEngine(s.config.Engine)
	done := make(chan outcome, 1)
	go func() {
		start := time.Now()
		sol, err := engine.Solve(req)
		done <- outcome{solution: sol, err: err, elapsed: time.Since(start)}
	}()

	var o outcome
	err := logger.WithSpinner(fmt.Sprintf("Solving %s", req.Profile.Name), func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case o = <-done:
			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("trajectory solve abandoned: %w", err)
	}

	result := simulation.Result{
		Simulation: s.Name(),
		Label:      req.Profile.Name,
		Request:    req,
		Solution:   o.solution,
		Err:        o.err,
		Elapsed:    o.elapsed,
	}
	if err := sink.Publish(ctx, result); err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}

	switch {
	case o.err == nil:
		log.Debugf("Solved in %s (%d zero iterations)", o.elapsed, o.solution.ZeroIterations)
		return nil
	case errors.Is(o.err, ballistics.ErrSimulationTimeout):
		log.Warn(ballistics.Describe(o.err))
		return nil
	default:
		return fmt.Errorf("trajectory failed: %w", o.err)
	}
}

func (s *Simulation) runContext(parent context.Context) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if s.config.Timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, s.config.Timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	return ctx, cancel
}

// Stop abandons a running solve
func (s *Simulation) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// init registers the simulation
func init() {
	err := simulation.DefaultRegistry.RegisterWithConfig(descriptor, NewSimulation)
	if err != nil {
		logger.Errorf("Failed to register trajectory simulation: %v", err)
	}
}
