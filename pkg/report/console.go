package report

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/logger"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

var (
	colorHeading = color.New(color.FgCyan, color.Bold)
	colorGood    = color.New(color.FgGreen)
	colorWarn    = color.New(color.FgYellow)
	colorBad     = color.New(color.FgRed)
)

// TrajectoryTable builds the per-distance table of a trajectory
func TrajectoryTable(points []ballistics.TrajectoryPoint) *logger.Table {
	table := logger.NewTable("Range (yd)", "Drop (in)", "Drop (MOA)", "Wind (in)", "Wind (MOA)",
		"Velocity (fps)", "Energy (ft-lb)", "Time (s)")
	for _, p := range points {
		table.AddRow(
			fmt.Sprintf("%g", p.DistanceYards),
			fmt.Sprintf("%.2f", p.DropInches),
			fmt.Sprintf("%.2f", p.DropMOA),
			fmt.Sprintf("%.2f", p.WindageInches),
			fmt.Sprintf("%.2f", p.WindageMOA),
			fmt.Sprintf("%.0f", p.VelocityFps),
			fmt.Sprintf("%.0f", p.EnergyFtLbs),
			fmt.Sprintf("%.3f", p.TimeSeconds),
		)
	}
	return table
}

// WriteResult renders one result: heading, trajectory table, summary and optional chart
func WriteResult(w io.Writer, r simulation.Result, chart bool, chartWidth int) {
	sol := r.Solution
	req := r.Request

	_, _ = fmt.Fprintln(w)
	_, _ = colorHeading.Fprintf(w, "%s %s  zero %g yd  sight %g in\n", logger.IconTarget,
		r.Label, req.Sight.ZeroRangeYards, req.Sight.SightHeightInches)
	_, _ = fmt.Fprintf(w, "density ratio %.4f  zero angle %.3f MOA (%d iterations)\n\n",
		sol.DensityRatio, sol.ZeroAngleRad*180/math.Pi*60, sol.ZeroIterations)

	TrajectoryTable(sol.Points).Fprint(w)
	_, _ = fmt.Fprintln(w)
	writeSummary(w, sol)

	if chart {
		if plot := DropChart(sol.Points, chartWidth); plot != "" {
			_, _ = fmt.Fprintf(w, "\n%s\n", plot)
		}
	}
}

func writeSummary(w io.Writer, sol *ballistics.Solution) {
	s := sol.Summary
	if s.PointBlankFound {
		_, _ = colorGood.Fprintf(w, "%s point blank %g-%g yd (±%g in)\n", logger.IconCheck,
			s.PointBlankMin, s.PointBlankMax, s.VitalZoneInches)
	} else {
		_, _ = colorWarn.Fprintf(w, "%s no point-blank band within ±%g in\n", logger.IconCross, s.VitalZoneInches)
	}

	if s.ThresholdReached {
		_, _ = colorGood.Fprintf(w, "%s max effective range %g yd (%g ft-lb)\n", logger.IconCheck,
			s.MaxEffectiveRange, s.EnergyThresholdFtLbs)
	} else {
		_, _ = colorGood.Fprintf(w, "%s above %g ft-lb through %g yd\n", logger.IconCheck,
			s.EnergyThresholdFtLbs, s.MaxEffectiveRange)
	}

	if sol.Truncated {
		_, _ = colorBad.Fprintf(w, "%s trajectory cut short at %g yd\n", logger.IconWarning,
			sol.Points[len(sol.Points)-1].DistanceYards)
	}
}

// WriteComparison renders one summary row per result
func WriteComparison(w io.Writer, results []simulation.Result) {
	table := logger.NewTable("Profile", "Zero (MOA)", "Point blank (yd)", "Max effective (yd)",
		"Drop @ max (in)", "Wind @ max (in)", "Status")
	for _, r := range results {
		if r.Failed() {
			table.AddRow(r.Label, "-", "-", "-", "-", "-", ballistics.Describe(r.Err))
			continue
		}
		s := r.Solution.Summary
		last := r.Solution.Points[len(r.Solution.Points)-1]

		band := "-"
		if s.PointBlankFound {
			band = fmt.Sprintf("%g-%g", s.PointBlankMin, s.PointBlankMax)
		}
		status := "ok"
		if r.Solution.Truncated {
			status = "truncated"
		}
		table.AddRow(
			r.Label,
			fmt.Sprintf("%.2f", r.Solution.ZeroAngleRad*180/math.Pi*60),
			band,
			fmt.Sprintf("%g", s.MaxEffectiveRange),
			fmt.Sprintf("%.2f", last.DropInches),
			fmt.Sprintf("%.2f", last.WindageInches),
			status,
		)
	}

	if table.Len() == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	_, _ = colorHeading.Fprintf(w, "%s Comparison\n", logger.IconChart)
	table.Fprint(w)
}
