// Command hexgrid renders a hexagonal grid tessellation to an image file.
//
// Usage:
//
//	hexgrid --debug
//	hexgrid --width 1920 --height 1080 --circumradius 48 --antialias high --debug
//	hexgrid --import_settings settings.json
//	hexgrid --export_settings settings.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/hexgrid"
	"github.com/gogpu/hexgrid/internal/colorspec"
	"github.com/gogpu/hexgrid/internal/report"
	"github.com/gogpu/hexgrid/internal/settings"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	settings.Settings

	exportPath string
	importPath string
	rasterizer string
	verbose    bool

	// explicit records the flags given on the command line.
	explicit map[string]bool
}

// boolFlag is a bool flag that also accepts yes/no.
type boolFlag struct{ v *bool }

func (b boolFlag) String() string {
	if b.v == nil {
		return "false"
	}
	return strconv.FormatBool(*b.v)
}

func (b boolFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		*b.v = true
	case "false", "0", "no":
		*b.v = false
	default:
		return fmt.Errorf("boolean value expected, got %q", s)
	}
	return nil
}

func (b boolFlag) IsBoolFlag() bool { return true }

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{Settings: settings.Defaults()}
	d := settings.Defaults()

	flags := flag.NewFlagSet("hexgrid", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, report.BannerText())
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "HEX Grid Tessellator: generate hexagonal grid tessellation images.")
		fmt.Fprintln(stderr)
		flags.PrintDefaults()
	}

	flags.IntVar(&o.Width, "width", d.Width, "image width in pixels")
	flags.IntVar(&o.Height, "height", d.Height, "image height in pixels")
	flags.Float64Var(&o.Circumradius, "circumradius", d.Circumradius, "hexagon circumradius R in pixels")
	flags.Float64Var(&o.Margin, "margin", d.Margin, "gap between hexagon edges in pixels")
	flags.IntVar(&o.LineWidth, "line_width", d.LineWidth, "stroke width in pixels, 0 = no outline")
	flags.IntVar(&o.Layers, "layers", d.Layers, "concentric layers, 0 = auto-fill")
	flags.StringVar(&o.ColorFill, "color_fill", d.ColorFill, "hexagon fill colour")
	flags.StringVar(&o.ColorLine, "color_line", d.ColorLine, "hexagon outline colour")
	flags.StringVar(&o.ColorBackground, "color_background", d.ColorBackground, "background colour")
	flags.StringVar(&o.Antialias, "antialias", d.Antialias, "anti-alias level: off, low, medium, high")
	flags.StringVar(&o.File, "file", d.File, "output image filename (.png, .bmp, .tif, .tiff)")
	flags.Var(boolFlag{&o.Cull}, "cull", "enable viewport culling")
	flags.Var(boolFlag{&o.Debug}, "debug", "enable debug output")
	flags.StringVar(&o.exportPath, "export_settings", "", "export parameters to a settings file (.json, .toml, .yaml)")
	flags.StringVar(&o.importPath, "import_settings", "", "import parameters from a settings file (.json, .toml, .yaml)")
	flags.StringVar(&o.rasterizer, "rasterizer", "scanline", "polygon rasterizer: scanline, coverage")
	flags.BoolVar(&o.verbose, "verbose", false, "log render pipeline stages to stderr")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	o.explicit = make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { o.explicit[f.Name] = true })
	return o, nil
}

// outputPath appends ".png" unless the name already has a supported image extension.
func outputPath(name string) string {
	if hexgrid.SupportedExtension(name) {
		return name
	}
	return name + ".png"
}

func run(args []string, stdout, stderr io.Writer) int {
	rep := report.New(stdout)
	errRep := report.New(stderr)
	fail := func(err error) int {
		errRep.Error(err)
		return 1
	}

	o, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return fail(err)
	}

	if o.verbose {
		hexgrid.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer hexgrid.SetLogger(nil)
	}

	if o.importPath != "" {
		overlay, path, err := settings.Load(o.importPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return fail(fmt.Errorf("settings file not found: %q", path))
		case errors.Is(err, settings.ErrMalformed):
			return fail(fmt.Errorf("malformed settings file %q: %w", path, err))
		case err != nil:
			return fail(err)
		}
		o.Settings = settings.Merge(o.Settings, overlay, o.explicit)
	}

	var exported string
	if o.exportPath != "" {
		exported, err = settings.Save(o.exportPath, o.Settings)
		if err != nil {
			return fail(fmt.Errorf("cannot write settings file: %w", err))
		}
	}

	params, colors, err := buildParams(o)
	if err != nil {
		return fail(err)
	}

	mode, err := hexgrid.ParseRasterizerMode(o.rasterizer)
	if err != nil {
		return fail(err)
	}

	res, err := hexgrid.Render(params, hexgrid.WithRasterizer(mode))
	if err != nil {
		return fail(err)
	}

	out := outputPath(o.File)
	if err := res.Image.Save(out); err != nil {
		return fail(err)
	}

	saved := []string{out}
	if exported != "" {
		saved = append(saved, exported)
	}

	rep.Banner()
	if err := reportSaved(rep, saved); err != nil {
		return fail(err)
	}

	if o.Debug {
		rep.Debug(report.Summary{
			Width:        o.Width,
			Height:       o.Height,
			Circumradius: o.Circumradius,
			Margin:       o.Margin,
			LineWidth:    o.LineWidth,
			Layers:       res.Layers,
			AutoLayers:   res.AutoLayers,
			Antialias:    params.Antialias.String(),
			Rasterizer:   mode.String(),
			Cull:         o.Cull,
			Fill:         colors[0],
			Line:         colors[1],
			Background:   colors[2],
			Cells:        res.Cells,
			Culled:       res.Culled,
			Polygons:     res.Polygons,
		})
		if err := reportSaved(rep, saved); err != nil {
			return fail(err)
		}
	}
	fmt.Fprintln(stdout)
	return 0
}

// buildParams resolves colors and the antialias level into render parameters.
func buildParams(o *options) (hexgrid.Params, [3]report.ColorInput, error) {
	var colors [3]report.ColorInput
	for i, spec := range []string{o.ColorFill, o.ColorLine, o.ColorBackground} {
		c, err := colorspec.Parse(spec)
		if err != nil {
			return hexgrid.Params{}, colors, err
		}
		colors[i] = report.ColorInput{Spec: spec, Value: c}
	}

	aa, err := hexgrid.ParseAntialias(o.Antialias)
	if err != nil {
		return hexgrid.Params{}, colors, err
	}

	return hexgrid.Params{
		Width:        o.Width,
		Height:       o.Height,
		Circumradius: o.Circumradius,
		Margin:       o.Margin,
		Stroke:       float64(o.LineWidth),
		Layers:       o.Layers,
		Antialias:    aa,
		Cull:         o.Cull,
		Fill:         colors[0].Value,
		Line:         colors[1].Value,
		Background:   colors[2].Value,
	}, colors, nil
}

func reportSaved(rep *report.Reporter, paths []string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		rep.Saved(p, info.Size())
	}
	return nil
}
