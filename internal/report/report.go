// Package report formats the human-readable output of the hexgrid command:
// the program banner, saved-file lines and the debug summary.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/hexgrid"
)

// BannerWidth is the total width of the banner box in columns.
const BannerWidth = 60

// Program metadata shown in the banner.
const (
	Title  = "HEX Grid Tessellator"
	Author = "Rohin Gosling"
)

// Reporter writes styled report text. Styling degrades to plain text when
// the output is not a color terminal.
type Reporter struct {
	out     *termenv.Output
	printer *message.Printer
}

// New creates a Reporter writing to w with the detected terminal profile.
func New(w io.Writer, opts ...termenv.OutputOption) *Reporter {
	return &Reporter{
		out:     termenv.NewOutput(w, opts...),
		printer: message.NewPrinter(language.English),
	}
}

// BannerText returns the unstyled banner box.
func BannerText() string {
	inner := BannerWidth - 2
	line := func(label, value string) string {
		text := "  " + label + value
		pad := max(inner-utf8.RuneCountInString(text), 0)
		return "│" + text + strings.Repeat(" ", pad) + "│"
	}
	return strings.Join([]string{
		"┌" + strings.Repeat("─", inner) + "┐",
		line("Program:    ", Title),
		line("Version:    ", hexgrid.Version),
		line("Build Date: ", hexgrid.BuildDate),
		line("Author:     ", Author),
		"└" + strings.Repeat("─", inner) + "┘",
	}, "\n")
}

// Banner writes the banner box.
func (r *Reporter) Banner() {
	fmt.Fprintln(r.out, r.out.String(BannerText()).Bold())
}

// Saved writes a confirmation line for a file of the given size.
func (r *Reporter) Saved(path string, size int64) {
	fmt.Fprintf(r.out, "  Saved: %s (%s)\n", path, FormatFileSize(size))
}

// Error writes an error line.
func (r *Reporter) Error(err error) {
	fmt.Fprintln(r.out, r.out.String("Error: "+err.Error()).Foreground(r.out.Color("1")))
}

// FormatFileSize renders a byte count as B, KB or MB.
func FormatFileSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	}
}

// ColorInput pairs a user color string with its parsed value.
type ColorInput struct {
	Spec  string
	Value hexgrid.RGB
}

// String formats the pair as "spec -> (r, g, b)".
func (c ColorInput) String() string {
	return c.Spec + " -> " + c.Value.String()
}

// Summary is the content of the debug report.
type Summary struct {
	Width, Height int
	Circumradius  float64
	Margin        float64
	LineWidth     int
	Layers        int
	AutoLayers    bool
	Antialias     string
	Rasterizer    string
	Cull          bool
	Fill          ColorInput
	Line          ColorInput
	Background    ColorInput
	Cells         int
	Culled        int
	Polygons      int
}

// Debug writes the parameter summary.
func (r *Reporter) Debug(s Summary) {
	layers := fmt.Sprint(s.Layers)
	if s.AutoLayers {
		layers += " (auto-computed from requested 0)"
	}

	p := r.printer
	rows := [][2]string{
		{"Image size:", fmt.Sprintf("%d x %d", s.Width, s.Height)},
		{"Circumradius:", fmt.Sprint(s.Circumradius)},
		{"Margin:", fmt.Sprint(s.Margin)},
		{"Line width:", fmt.Sprint(s.LineWidth)},
		{"Layers:", layers},
		{"Anti-alias:", s.Antialias},
		{"Rasterizer:", s.Rasterizer},
		{"Cull:", fmt.Sprint(s.Cull)},
		{"Fill colour:", s.Fill.String()},
		{"Line colour:", s.Line.String()},
		{"Background:", s.Background.String()},
		{"Centre pixel:", fmt.Sprintf("(%d, %d)", s.Width/2, s.Height/2)},
		{"Cells:", p.Sprintf("%d", s.Cells)},
		{"Culled:", p.Sprintf("%d", s.Culled)},
		{"Polygons drawn:", p.Sprintf("%d", s.Polygons)},
	}

	fmt.Fprintln(r.out)
	for _, row := range rows {
		fmt.Fprintf(r.out, "  %-18s%s\n", row[0], row[1])
	}
}
