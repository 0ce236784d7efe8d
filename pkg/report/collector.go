// Package report collects simulation results and renders them to the console and to
// export files.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/logger"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

// Options selects what a Collector renders and exports
type Options struct {
	Console    bool
	Chart      bool
	ChartWidth int
	OutputDir  string
	JSON       bool
	CSV        bool
	PNG        bool
	ShareURL   string
	Writer     io.Writer
}

// Collector is a simulation.Sink that keeps every published result of one run
type Collector struct {
	mu      sync.Mutex
	runID   uuid.UUID
	started time.Time
	opts    Options
	results []simulation.Result
	log     logger.Logger
}

// NewCollector creates a collector with a fresh run id
func NewCollector(opts Options) *Collector {
	if opts.Writer == nil {
		opts.Writer = logger.Writer()
	}
	runID := uuid.New()
	return &Collector{
		runID:   runID,
		started: time.Now(),
		opts:    opts,
		log:     logger.WithPrefix("report").WithField("run", shortID(runID)),
	}
}

// RunID identifies the run in exported files
func (c *Collector) RunID() uuid.UUID {
	return c.runID
}

// Publish records a result and renders it to the console when enabled
func (c *Collector) Publish(ctx context.Context, result simulation.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.results = append(c.results, result)
	c.mu.Unlock()

	if result.Err != nil {
		c.log.WithField("label", result.Label).Warn(ballistics.Describe(result.Err))
	}
	if c.opts.Console && !result.Failed() {
		WriteResult(c.opts.Writer, result, c.opts.Chart, c.opts.ChartWidth)
		if c.opts.ShareURL != "" {
			link, err := ShareLink(c.opts.ShareURL, result.Request)
			if err == nil {
				_, _ = fmt.Fprintf(c.opts.Writer, "%s %s\n", logger.IconLink, link)
			}
		}
	}
	return nil
}

// Results returns the published results in publish order
func (c *Collector) Results() []simulation.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]simulation.Result, len(c.results))
	copy(out, c.results)
	return out
}

// Summarize prints the comparison table when more than one result was published
func (c *Collector) Summarize() {
	results := c.Results()
	if c.opts.Console && len(results) > 1 {
		WriteComparison(c.opts.Writer, results)
	}
}

// Export writes the enabled export formats to OutputDir and returns the written paths.
// Failed results are skipped by the per-result formats; files of a previous run are
// never touched because every name carries the run id.
func (c *Collector) Export() ([]string, error) {
	if !c.opts.JSON && !c.opts.CSV && !c.opts.PNG {
		return nil, nil
	}

	dir := c.opts.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := c.Results()
	base := filepath.Join(dir, "trajectory-"+shortID(c.runID))
	var written []string

	if c.opts.JSON {
		path := base + ".json"
		if err := writeFile(path, func(w io.Writer) error {
			return WriteJSON(w, NewDocument(c.runID, c.started, results))
		}); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if c.opts.CSV {
		for _, r := range results {
			if r.Failed() {
				continue
			}
			path := base + "-" + slug(r.Label) + ".csv"
			if err := writeFile(path, func(w io.Writer) error {
				return WriteCSV(w, r.Solution.Points)
			}); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}

	if c.opts.PNG {
		path := base + ".png"
		if err := writeFile(path, func(w io.Writer) error {
			return WritePlot(w, results)
		}); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	for _, path := range written {
		c.log.Debugf("wrote %s", path)
	}
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}
	return os.Rename(tmp, path)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(label string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(label), "-"), "-")
	if s == "" {
		return "result"
	}
	return s
}
