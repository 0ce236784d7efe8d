package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

func rifleRequest(t *testing.T) ballistics.SimulationRequest {
	t.Helper()
	profile, ok := ballistics.LookupProfile(".308Win")
	if !ok {
		t.Fatal(".308Win missing from catalog")
	}
	return ballistics.SimulationRequest{
		Profile: profile,
		Environment: ballistics.EnvironmentalConditions{
			TemperatureF: 59, PressureInHg: 29.92, WindSpeedMph: 10, WindAngleDeg: 90,
		},
		Sight:               ballistics.SightConfig{SightHeightInches: 1.5, ZeroRangeYards: 100},
		MaxRangeYards:       300,
		SampleIntervalYards: 50,
	}
}

func solved(t *testing.T, req ballistics.SimulationRequest) simulation.Result {
	t.Helper()
	sol, err := ballistics.NewEngine(ballistics.Config{}).Solve(req)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return simulation.Result{Simulation: "Trajectory", Label: req.Profile.Name, Request: req, Solution: sol}
}

func TestShareQueryRoundTrip(t *testing.T) {
	catalog := rifleRequest(t)
	custom := rifleRequest(t)
	custom.Profile = ballistics.CustomProfile(0.5, 175, 0.308, 2600)
	custom.VitalZoneInches = 4

	for _, req := range []ballistics.SimulationRequest{catalog, custom} {
		query := EncodeShareQuery(req)
		got, err := DecodeShareQuery(query)
		if err != nil {
			t.Fatalf("DecodeShareQuery(%s): %v", query, err)
		}
		if got != req {
			t.Errorf("round trip of %s\n got %+v\nwant %+v", query, got, req)
		}
	}

	if q := EncodeShareQuery(catalog); !strings.Contains(q, "profile=.308Win") || strings.Contains(q, "bc=") {
		t.Errorf("catalog profile should be shared by name: %s", q)
	}
}

func TestDecodeShareQueryErrors(t *testing.T) {
	if _, err := DecodeShareQuery("profile=9mm&temp=59&press=29.92&sight=1.5&zero=25"); err == nil {
		t.Error("missing range should fail")
	}
	if _, err := DecodeShareQuery("profile=blunderbuss"); err == nil {
		t.Error("unknown profile should fail")
	}
	_, err := DecodeShareQuery("profile=9mm&temp=59&press=29.92&hum=150&sight=1.5&zero=25&range=100")
	if !errors.Is(err, ballistics.ErrInvalidEnvironment) {
		t.Errorf("error = %v, want ErrInvalidEnvironment", err)
	}
}

func TestShareLink(t *testing.T) {
	link, err := ShareLink("https://example.com/calc", rifleRequest(t))
	if err != nil {
		t.Fatalf("ShareLink: %v", err)
	}
	if !strings.HasPrefix(link, "https://example.com/calc?") {
		t.Errorf("link = %s", link)
	}
}

func TestWriteCSV(t *testing.T) {
	r := solved(t, rifleRequest(t))

	var buf bytes.Buffer
	if err := WriteCSV(&buf, r.Solution.Points); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(rows) != len(r.Solution.Points)+1 {
		t.Fatalf("got %d rows, want %d", len(rows), len(r.Solution.Points)+1)
	}
	if rows[0][0] != "Range (yrds)" || rows[1][0] != "0" || rows[1][1] != "-1.50" {
		t.Errorf("unexpected rows %v / %v", rows[0], rows[1])
	}
}

func TestWriteJSON(t *testing.T) {
	c := NewCollector(Options{})
	ok := solved(t, rifleRequest(t))
	failed := simulation.Result{Label: "broken", Err: ballistics.ErrZeroNotAchievable}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewDocument(c.RunID(), c.started, []simulation.Result{ok, failed})); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if doc.RunID != c.RunID().String() || len(doc.Results) != 2 {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Results[0].Solution == nil || len(doc.Results[0].Solution.Points) != len(ok.Solution.Points) {
		t.Error("solution points lost in JSON")
	}
	if doc.Results[1].Error == "" || doc.Results[1].Solution != nil {
		t.Errorf("failed result = %+v", doc.Results[1])
	}
}

func TestDropChart(t *testing.T) {
	r := solved(t, rifleRequest(t))

	chart := DropChart(r.Solution.Points, 40)
	if chart == "" || !strings.Contains(chart, "windage") {
		t.Errorf("chart with wind should carry a legend:\n%s", chart)
	}
	if DropChart(r.Solution.Points[:1], 40) != "" {
		t.Error("a single point should not be charted")
	}
}

func TestCollectorPublishAndExport(t *testing.T) {
	var console bytes.Buffer
	dir := t.TempDir()
	c := NewCollector(Options{
		Console: true, Chart: true, Writer: &console,
		OutputDir: dir, JSON: true, CSV: true, PNG: true,
		ShareURL: "https://example.com/calc",
	})

	ctx := context.Background()
	if err := c.Publish(ctx, solved(t, rifleRequest(t))); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := c.Publish(ctx, simulation.Result{Label: "far zero", Err: ballistics.ErrZeroNotAchievable}); err != nil {
		t.Fatalf("Publish failed result: %v", err)
	}
	c.Summarize()

	out := console.String()
	for _, want := range []string{"Range (yd)", "point blank", "https://example.com/calc?", "Comparison", "far zero"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q", want)
		}
	}

	paths, err := c.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("wrote %v, want json, one csv and png", paths)
	}
	for _, path := range paths {
		if filepath.Dir(path) != dir {
			t.Errorf("%s written outside the output dir", path)
		}
		if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("temporary file left for %s", path)
		}
	}

	png, err := os.ReadFile(paths[2])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("plot is not a PNG")
	}

	if len(c.Results()) != 2 {
		t.Errorf("Results() has %d entries, want 2", len(c.Results()))
	}
}

func TestCollectorRejectsCancelledContext(t *testing.T) {
	c := NewCollector(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Publish(ctx, simulation.Result{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Publish error = %v, want context.Canceled", err)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{".308Win": "308win", "12ga Slug": "12ga-slug", "!!!": "result"}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
