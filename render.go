package hexgrid

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/hexgrid/internal/coverage"
	"github.com/gogpu/hexgrid/internal/raster"
	"github.com/gogpu/hexgrid/internal/resample"
)

// Params is the fully resolved input of one render. All lengths are in
// target (not oversampled) pixels.
type Params struct {
	// Width and Height of the output image.
	Width, Height int

	// Circumradius is the drawn hexagon's center-to-vertex distance.
	Circumradius float64

	// Margin is the gap between neighboring hexagon edges. It affects
	// layout only; hexagons are drawn at Circumradius.
	Margin float64

	// Stroke is the outline width, centered on the hexagon boundary.
	// Zero draws fill only.
	Stroke float64

	// Layers is the number of concentric layers; 0 selects the smallest
	// count that covers the canvas.
	Layers int

	// Antialias selects the supersampling factor.
	Antialias Antialias

	// Cull drops hexagons whose stroked outline is not entirely on canvas.
	Cull bool

	Fill       RGB
	Line       RGB
	Background RGB
}

// Spacing returns the layout radius R + m/2.
func (p Params) Spacing() float64 {
	return p.Circumradius + p.Margin/2
}

// Validate checks p and returns the first violation found.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, p.Width, p.Height)
	case !finite(p.Circumradius):
		return fmt.Errorf("%w: %v (must be finite)", ErrNegativeRadius, p.Circumradius)
	case p.Circumradius < 0:
		return fmt.Errorf("%w: %v", ErrNegativeRadius, p.Circumradius)
	case !finite(p.Stroke):
		return fmt.Errorf("%w: %v (must be finite)", ErrNegativeStroke, p.Stroke)
	case p.Stroke < 0:
		return fmt.Errorf("%w: %v", ErrNegativeStroke, p.Stroke)
	case !finite(p.Margin):
		return fmt.Errorf("%w: margin %v (must be finite)", ErrInvalidSpacing, p.Margin)
	case p.Layers < 0 || p.Layers > MaxLayers:
		return fmt.Errorf("%w: %d (must be in [0, %d])", ErrInvalidLayers, p.Layers, MaxLayers)
	case p.Layers == 0 && !(p.Spacing() > 0):
		return fmt.Errorf("%w: circumradius %v + margin/2 %v", ErrInvalidSpacing, p.Circumradius, p.Margin/2)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Result is the output of a render.
type Result struct {
	// Image is the final Width×Height canvas.
	Image *Pixmap

	// Layers is the layer count actually used.
	Layers int

	// AutoLayers reports whether Layers was computed by auto-fill.
	AutoLayers bool

	// Cells is the number of enumerated grid cells before culling.
	Cells int

	// Culled is the number of cells dropped by culling.
	Culled int

	// Polygons is the number of polygons drawn across all passes.
	Polygons int

	// Scale is the supersampling factor used.
	Scale int
}

// Stage identifies a step of the render pipeline.
type Stage int

// Pipeline stages in execution order.
const (
	StageScale Stage = iota
	StageLayers
	StageEnumerate
	StageCull
	StageOuterPass
	StageInnerPass
	StageDownsample
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageScale:
		return "scale"
	case StageLayers:
		return "layers"
	case StageEnumerate:
		return "enumerate"
	case StageCull:
		return "cull"
	case StageOuterPass:
		return "outer-pass"
	case StageInnerPass:
		return "inner-pass"
	case StageDownsample:
		return "downsample"
	default:
		return "unknown"
	}
}

// scaled holds the parameters in oversampled canvas space.
type scaled struct {
	k       int
	width   int
	height  int
	radius  float64
	margin  float64
	stroke  float64
	spacing float64
}

// Render draws the tessellation described by p.
//
// The pipeline is: scale every pixel-space parameter by the supersampling
// factor, resolve the layer count, enumerate cell centers, optionally
// cull, draw, and downsample to the target size. Drawing happens in two
// global passes: every stroke-colored outer hexagon first, then every
// fill-colored inner hexagon, so no fill can cover a neighbor's stroke.
//
// Render has no shared state; concurrent calls are independent.
func Render(p Params, opts ...RenderOption) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	notify := func(s Stage) {
		if o.observer != nil {
			o.observer(s)
		}
	}

	log := Logger()
	res := &Result{}

	s := scaleParams(p)
	res.Scale = s.k
	log.Debug("hexgrid: scaled parameters",
		slog.Int("k", s.k),
		slog.Int("width", s.width),
		slog.Int("height", s.height),
		slog.Float64("radius", s.radius),
		slog.Float64("stroke", s.stroke),
		slog.Float64("spacing", s.spacing))
	notify(StageScale)

	res.Layers = p.Layers
	if res.Layers == 0 {
		res.Layers = AutoFillLayers(float64(s.width), float64(s.height), s.spacing)
		res.AutoLayers = true
	}
	log.Debug("hexgrid: layers resolved", slog.Int("layers", res.Layers), slog.Bool("auto", res.AutoLayers))
	notify(StageLayers)

	centers, err := enumerateCenters(res.Layers, s)
	if err != nil {
		return nil, err
	}
	res.Cells = len(centers)
	notify(StageEnumerate)

	if p.Cull {
		kept := cullCenters(centers, s.radius+s.stroke/2, float64(s.width), float64(s.height))
		res.Culled = len(centers) - len(kept)
		centers = kept
		log.Debug("hexgrid: culled", slog.Int("kept", len(centers)), slog.Int("dropped", res.Culled))
	}
	notify(StageCull)

	canvas := NewPixmap(s.width, s.height)
	canvas.Clear(p.Background)
	res.Polygons = drawPasses(canvas, centers, s, p, newPolygonFiller(o.rasterizer), notify)

	if s.k > 1 {
		out, err := downsample(canvas, p.Width, p.Height)
		if err != nil {
			return nil, err
		}
		canvas = out
		notify(StageDownsample)
	}
	res.Image = canvas

	log.Info("hexgrid: rendered",
		slog.Int("width", p.Width),
		slog.Int("height", p.Height),
		slog.Int("layers", res.Layers),
		slog.Int("polygons", res.Polygons))
	return res, nil
}

// scaleParams multiplies every pixel-space parameter by the supersampling
// factor. It must run before any geometry is computed.
func scaleParams(p Params) scaled {
	k := p.Antialias.Scale()
	fk := float64(k)
	s := scaled{
		k:      k,
		width:  p.Width * k,
		height: p.Height * k,
		radius: p.Circumradius * fk,
		margin: p.Margin * fk,
		stroke: p.Stroke * fk,
	}
	s.spacing = s.radius + s.margin/2
	return s
}

// enumerateCenters returns the pixel centers of every cell, innermost layer
// first, in the oversampled canvas.
func enumerateCenters(layers int, s scaled) ([]Point, error) {
	cells, err := ConcentricGrid(layers)
	if err != nil {
		return nil, err
	}
	w, h := float64(s.width), float64(s.height)
	centers := make([]Point, len(cells))
	for i, c := range cells {
		centers[i] = AxialToPixel(c, s.spacing, w, h)
	}
	return centers, nil
}

// cullCenters keeps the centers whose hexagon at radius lies entirely
// inside [0,w]×[0,h]. The input slice is not modified.
func cullCenters(centers []Point, radius, w, h float64) []Point {
	kept := make([]Point, 0, len(centers))
next:
	for _, c := range centers {
		for _, v := range HexVertices(c, radius) {
			if !v.Within(w, h) {
				continue next
			}
		}
		kept = append(kept, c)
	}
	return kept
}

// drawPasses draws every center in one or two full passes and returns the
// number of polygons drawn.
func drawPasses(canvas *Pixmap, centers []Point, s scaled, p Params, fill polygonFiller, notify func(Stage)) int {
	drawAll := func(radius float64, c RGB) int {
		if radius <= 0 {
			return 0
		}
		for _, center := range centers {
			fill.fillHexagon(canvas, HexVertices(center, radius), c)
		}
		return len(centers)
	}

	if s.stroke <= 0 {
		n := drawAll(s.radius, p.Fill)
		notify(StageInnerPass)
		return n
	}

	outer := s.radius + s.stroke/2
	inner := max(s.radius-s.stroke/2, 0)

	n := drawAll(outer, p.Line)
	notify(StageOuterPass)

	n += drawAll(inner, p.Fill)
	notify(StageInnerPass)
	return n
}

// downsample filters the oversampled canvas to the target size into a new
// pixmap; src is left untouched.
func downsample(src *Pixmap, width, height int) (*Pixmap, error) {
	img, err := resample.Downsample(src.ToImage(), width, height, resample.Lanczos)
	if err != nil {
		return nil, fmt.Errorf("hexgrid: downsample: %w", err)
	}
	return FromImage(img), nil
}

// polygonFiller adapts a rasterizer to hexagon drawing on a Pixmap.
type polygonFiller interface {
	fillHexagon(dst *Pixmap, v [6]Point, c RGB)
}

func newPolygonFiller(m RasterizerMode) polygonFiller {
	if m == RasterizerCoverage {
		return &coverageFiller{f: coverage.NewFiller()}
	}
	return &scanlineFiller{r: raster.NewRasterizer()}
}

type scanlineFiller struct {
	r   *raster.Rasterizer
	pts [6]raster.Point
}

func (f *scanlineFiller) fillHexagon(dst *Pixmap, v [6]Point, c RGB) {
	for i, p := range v {
		f.pts[i] = raster.Point{X: p.X, Y: p.Y}
	}
	f.r.FillPolygon(spanTarget{dst}, f.pts[:], raster.FillRuleNonZero, raster.RGB{R: c.R, G: c.G, B: c.B})
}

// spanTarget exposes a Pixmap as a raster.SpanFiller.
type spanTarget struct{ *Pixmap }

func (t spanTarget) FillSpan(x1, x2, y int, c raster.RGB) {
	t.Pixmap.FillSpan(x1, x2, y, RGB{R: c.R, G: c.G, B: c.B})
}

type coverageFiller struct {
	f   *coverage.Filler
	pts [6]coverage.Point
}

func (f *coverageFiller) fillHexagon(dst *Pixmap, v [6]Point, c RGB) {
	for i, p := range v {
		f.pts[i] = coverage.Point{X: p.X, Y: p.Y}
	}
	f.f.FillPolygon(blendTarget{dst}, f.pts[:], coverage.RGB{R: c.R, G: c.G, B: c.B})
}

// blendTarget exposes a Pixmap as a coverage.Canvas.
type blendTarget struct{ *Pixmap }

func (t blendTarget) BlendPixel(x, y int, c coverage.RGB, a uint8) {
	t.Pixmap.BlendPixel(x, y, RGB{R: c.R, G: c.G, B: c.B}, a)
}
