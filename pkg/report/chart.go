package report

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
)

// DefaultChartWidth is used when the terminal width is unknown
const DefaultChartWidth = 60

// DropChart plots drop, and windage when there is any, against range as an ASCII chart.
// It returns an empty string for fewer than two points.
func DropChart(points []ballistics.TrajectoryPoint, width int) string {
	if len(points) < 2 {
		return ""
	}
	if width <= 0 {
		width = DefaultChartWidth
	}

	drop := make([]float64, len(points))
	windage := make([]float64, len(points))
	hasWind := false
	for i, p := range points {
		drop[i] = p.DropInches
		windage[i] = p.WindageInches
		if p.WindageInches != 0 {
			hasWind = true
		}
	}

	caption := fmt.Sprintf("inches, %g-%g yd", points[0].DistanceYards, points[len(points)-1].DistanceYards)
	opts := []asciigraph.Option{
		asciigraph.Height(12),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	}

	if !hasWind {
		return asciigraph.Plot(drop, opts...)
	}
	opts = append(opts,
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.SeriesLegends("drop", "windage"),
	)
	return asciigraph.PlotMany([][]float64{drop, windage}, opts...)
}
