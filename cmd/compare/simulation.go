package compare

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/config"
	"github.com/picogrid/ballistics-sim/pkg/logger"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

//go:embed simulation.yaml
var descriptor []byte

// Simulation solves several profiles under one set of conditions
type Simulation struct {
	config *Config
	mu     sync.Mutex
	cancel context.CancelFunc
	quiet  bool
}

// NewSimulation creates a new instance of the profile comparison
func NewSimulation() simulation.Simulation {
	return &Simulation{}
}

// Name returns the simulation name
func (s *Simulation) Name() string {
	return "Profile Comparison"
}

// Description returns the simulation description
func (s *Simulation) Description() string {
	return "Compare several catalog loads under the same conditions and zero"
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

// Run solves every profile on a bounded worker pool. A profile whose solve fails is
// published as a failed result and does not stop the others. Results are published in
// the configured profile order once every solve is done.
func (s *Simulation) Run(ctx context.Context, sink simulation.Sink) error {
	if s.config == nil {
		return fmt.Errorf("simulation is not configured")
	}

	ctx, cancel := s.runContext(ctx)
	defer cancel()

	log := logger.WithPrefix("compare").WithField("workers", s.config.Workers)
	log.Infof("Comparing %d profiles", len(s.config.Profiles))

	engine := ballistics.NewEngine(s.config.Shot.Engine)
	results := make([]simulation.Result, len(s.config.Profiles))

	var bar *logger.ProgressBar
	if !s.quiet && logger.Animated() {
		bar = logger.NewProgressBar(len(s.config.Profiles), "Solving")
	}
	var solved atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i, profile := range s.config.Profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			req := s.config.Shot.Request(profile)
			start := time.Now()
			sol, err := engine.Solve(req)
			results[i] = simulation.Result{
				Simulation: s.Name(),
				Label:      profile.Name,
				Request:    req,
				Solution:   sol,
				Err:        err,
				Elapsed:    time.Since(start),
			}
			n := solved.Add(1)
			switch {
			case bar != nil:
				bar.Increment()
			case !s.quiet:
				logger.Progressf("Solved %s (%d/%d)", profile.Name, n, len(s.config.Profiles))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("comparison abandoned: %w", err)
	}
	if bar != nil {
		bar.Finish()
	}

	failed := 0
	for _, r := range results {
		if err := sink.Publish(ctx, r); err != nil {
			return fmt.Errorf("failed to publish %s: %w", r.Label, err)
		}
		if r.Err != nil && !errors.Is(r.Err, ballistics.ErrSimulationTimeout) {
			failed++
			log.WithField("profile", r.Label).Warnf("Solve failed: %v", r.Err)
		}
	}

	if failed == len(results) {
		return fmt.Errorf("all %d profiles failed: %w", failed, results[0].Err)
	}
	return nil
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

// Stop cancels outstanding solves
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
		logger.Errorf("Failed to register comparison simulation: %v", err)
	}
}
