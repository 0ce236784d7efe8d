package logger

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: InfoLevel, Writer: &buf, NoColor: true})

	log.Debug("hidden")
	log.WithFields(map[string]interface{}{"zero": 25, "profile": "9mm"}).
		WithPrefix("trajectory").
		Infof("solved in %d iterations", 10)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	want := "INFO  [trajectory] profile=9mm zero=25 solved in 10 iterations\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestDerivedLoggerDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithConfig(Config{Level: DebugLevel, Writer: &buf, NoColor: true})
	_ = parent.WithField("profile", "9mm")

	parent.Warn("plain")
	if got := buf.String(); got != "WARN  plain\n" {
		t.Errorf("parent output = %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTableFprint(t *testing.T) {
	table := NewTable("Range", "Drop", "Velocity")
	table.AddRow("0", "-1.50", "1180")
	table.AddRow("100", "-7.10", "919")

	var buf bytes.Buffer
	table.Fprint(&buf)

	want := strings.Join([]string{
		"Range   Drop  Velocity",
		"-----  -----  --------",
		"0      -1.50      1180",
		"100    -7.10       919",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("table output:\n%s\nwant:\n%s", buf.String(), want)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBarTo(&buf, 4, "profiles")
	bar.Increment()
	bar.Increment()
	if bar.Current() != 2 {
		t.Errorf("Current() = %d, want 2", bar.Current())
	}
	bar.Finish()
	if !strings.Contains(buf.String(), "100%") {
		t.Errorf("finished bar should show 100%%: %q", buf.String())
	}
}

// captureDefault points the package-level logger at a buffer, without color or
// timestamps, for the duration of a test.
func captureDefault(t *testing.T, animate bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	SetShowTime(false)
	SetAnimate(animate)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetNoColor(false)
		SetShowTime(true)
		SetAnimate(false)
	})
	return &buf
}

func TestConsoleHelpers(t *testing.T) {
	buf := captureDefault(t, false)

	Targetf("%s zeroed at %d yd", "9mm", 25)
	Progressf("Solved %s (%d/%d)", ".308Win", 1, 2)
	LogSubSection("300 yd")
	LogList("Exported 2 files", []string{"a.json", "b.csv"})
	table := NewTable("Name", "BC")
	table.AddRow("9mm", "0.125")
	table.Print()

	want := strings.Join([]string{
		"INFO  " + IconTarget + " 9mm zeroed at 25 yd",
		"INFO  " + IconRefresh + " Solved .308Win (1/2)",
		strings.Repeat("-", 40),
		"300 yd",
		strings.Repeat("-", 40),
		"INFO  Exported 2 files",
		"  " + IconDot + " a.json",
		"  " + IconDot + " b.csv",
		"Name     BC",
		"----  -----",
		"9mm   0.125",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWithSpinner(t *testing.T) {
	tests := []struct {
		name     string
		animate  bool
		err      error
		contains []string
		frames   bool
	}{
		{name: "static success", contains: []string{"Solving completed"}},
		{name: "static failure", err: errors.New("boom"), contains: []string{"Solving failed: boom"}},
		{name: "animated", animate: true, contains: []string{SpinnerDots[0] + " Solving", "Solving completed"}, frames: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureDefault(t, tt.animate)

			err := WithSpinner("Solving", func() error {
				if tt.animate {
					time.Sleep(150 * time.Millisecond)
				}
				return tt.err
			})
			if !errors.Is(err, tt.err) {
				t.Errorf("WithSpinner error = %v, want %v", err, tt.err)
			}

			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output %q missing %q", out, s)
				}
			}
			if got := strings.Contains(out, "\r"); got != tt.frames {
				t.Errorf("spinner frames drawn = %v, want %v", got, tt.frames)
			}
		})
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	captureDefault(t, false)
	s := NewSpinner("idle")
	s.Start()
	s.Stop()
}
