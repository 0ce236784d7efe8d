package simulation

import (
	"context"
	"time"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
)

// Result is one engine run as seen by the presentation layer. Err is set when the run
// failed; Solution may still hold a truncated trajectory when Err is a timeout.
type Result struct {
	Simulation string
	Label      string
	Request    ballistics.SimulationRequest
	Solution   *ballistics.Solution
	Err        error
	Elapsed    time.Duration
}

// Failed reports whether the run produced no usable trajectory
func (r Result) Failed() bool {
	return r.Solution == nil || len(r.Solution.Points) == 0
}

// Sink receives results as simulations produce them
type Sink interface {
	Publish(ctx context.Context, result Result) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ctx context.Context, result Result) error

// Publish calls f
func (f SinkFunc) Publish(ctx context.Context, result Result) error {
	return f(ctx, result)
}
