package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

// Document is the JSON export of one run
type Document struct {
	RunID   string         `json:"runId"`
	Started time.Time      `json:"started"`
	Results []ResultRecord `json:"results"`
}

// ResultRecord is one result in a Document
type ResultRecord struct {
	Simulation string                       `json:"simulation"`
	Label      string                       `json:"label"`
	Request    ballistics.SimulationRequest `json:"request"`
	Solution   *ballistics.Solution         `json:"solution,omitempty"`
	Error      string                       `json:"error,omitempty"`
	ElapsedMs  float64                      `json:"elapsedMs"`
}

// NewDocument builds the JSON export of results
func NewDocument(runID uuid.UUID, started time.Time, results []simulation.Result) Document {
	doc := Document{RunID: runID.String(), Started: started.UTC(), Results: make([]ResultRecord, len(results))}
	for i, r := range results {
		rec := ResultRecord{
			Simulation: r.Simulation,
			Label:      r.Label,
			Request:    r.Request,
			Solution:   r.Solution,
			ElapsedMs:  float64(r.Elapsed) / float64(time.Millisecond),
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		doc.Results[i] = rec
	}
	return doc
}

// WriteJSON writes doc as indented JSON
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

var csvHeader = []string{
	"Range (yrds)",
	"Drop (in)",
	"Drop (MOA)",
	"Time (s)",
	"Wind (in)",
	"Wind (MOA)",
	"Energy (ft*lbs)",
	"Velocity (fps)",
}

// WriteCSV writes one row per trajectory point
func WriteCSV(w io.Writer, points []ballistics.TrajectoryPoint) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(csvHeader); err != nil {
		return err
	}

	for _, p := range points {
		err := csvWriter.Write([]string{
			fmt.Sprintf("%g", p.DistanceYards),
			fmt.Sprintf("%0.2f", p.DropInches),
			fmt.Sprintf("%0.2f", p.DropMOA),
			fmt.Sprintf("%0.3f", p.TimeSeconds),
			fmt.Sprintf("%0.2f", p.WindageInches),
			fmt.Sprintf("%0.2f", p.WindageMOA),
			fmt.Sprintf("%0.2f", p.EnergyFtLbs),
			fmt.Sprintf("%0.2f", p.VelocityFps),
		})
		if err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

var palette = []color.RGBA{
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// NewPlot builds a drop-versus-range plot with one line per successful result
func NewPlot(results []simulation.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Trajectory"
	p.X.Label.Text = "Range (yd)"
	p.Y.Label.Text = "Drop (in)"
	p.Add(plotter.NewGrid())

	lines := 0
	for _, r := range results {
		if r.Failed() {
			continue
		}
		xys := make(plotter.XYs, len(r.Solution.Points))
		for i, pt := range r.Solution.Points {
			xys[i].X = pt.DistanceYards
			xys[i].Y = pt.DropInches
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s: %w", r.Label, err)
		}
		line.Color = palette[lines%len(palette)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(r.Label, line)
		lines++
	}

	if lines == 0 {
		return nil, fmt.Errorf("no trajectory to plot")
	}
	p.Legend.Top = true
	return p, nil
}

// WritePlot renders NewPlot as a PNG image
func WritePlot(w io.Writer, results []simulation.Result) error {
	p, err := NewPlot(results)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
