package logger

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Icons and symbols for different log types
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️"
	IconInfo    = "ℹ️"
	IconRocket  = "🚀"
	IconConfig  = "⚙️"
	IconTarget  = "🎯"
	IconWind    = "💨"
	IconChart   = "📈"
	IconFile    = "📄"
	IconFolder  = "📁"
	IconLink    = "🔗"
	IconRefresh = "🔄"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconDot     = "•"
	IconArrow   = "→"
)

// Success logs a success message with a green checkmark
func Success(args ...interface{}) {
	defaultLogger.Info(IconSuccess + " " + fmt.Sprint(args...))
}

// Successf logs a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message with a refresh icon
func Progress(args ...interface{}) {
	defaultLogger.Info(IconRefresh + " " + fmt.Sprint(args...))
}

// Progressf logs a formatted progress message
func Progressf(format string, args ...interface{}) {
	Progress(fmt.Sprintf(format, args...))
}

// Target logs a shot or solution related message
func Target(args ...interface{}) {
	defaultLogger.Info(IconTarget + " " + fmt.Sprint(args...))
}

// Targetf logs a formatted shot message
func Targetf(format string, args ...interface{}) {
	Target(fmt.Sprintf(format, args...))
}

func printLines(lines ...string) {
	o := defaultOutput()
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, line := range lines {
		_, _ = fmt.Fprintln(o.writer, line)
	}
}

func paintDefault(c *color.Color, s string) string {
	o := defaultOutput()
	o.mu.Lock()
	noColor := o.noColor
	o.mu.Unlock()
	if noColor {
		return s
	}
	return c.Sprint(s)
}

// LogSection creates a visual section separator
func LogSection(title string) {
	line := paintDefault(colorPrefix, strings.Repeat("=", 50))
	printLines(line, paintDefault(colorTitle, title), line)
}

// LogSubSection creates a visual subsection separator
func LogSubSection(title string) {
	line := paintDefault(colorField, strings.Repeat("-", 40))
	printLines(line, paintDefault(colorField, title), line)
}

// LogList logs a list of items with bullets
func LogList(title string, items []string) {
	Info(title)
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("  %s %s", IconDot, item)
	}
	printLines(lines...)
}

// LogKeyValue logs a key-value pair with nice formatting
func LogKeyValue(key string, value interface{}) {
	printLines(fmt.Sprintf("%s %v", paintDefault(colorPrefix, key+":"), value))
}

// LogKeyValues logs multiple key-value pairs ordered by key
func LogKeyValues(pairs map[string]interface{}) {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		LogKeyValue(k, pairs[k])
	}
}

// Table represents a simple table for logging
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a new table
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    [][]string{},
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Print prints the table to the default logger's output
func (t *Table) Print() {
	o := defaultOutput()
	o.mu.Lock()
	defer o.mu.Unlock()
	t.Fprint(o.writer)
}

// Fprint writes the table to w. Cells are right-aligned except the first column.
func (t *Table) Fprint(w io.Writer) {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			if i == 0 {
				b.WriteString(cell + pad)
			} else {
				b.WriteString(pad + cell)
			}
			if i < len(widths)-1 {
				b.WriteString("  ")
			}
		}
		_, _ = fmt.Fprintln(w, b.String())
	}

	writeRow(t.headers)
	separators := make([]string, len(widths))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}
	writeRow(separators)
	for _, row := range t.rows {
		writeRow(row)
	}
}
