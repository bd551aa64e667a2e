// Package raster provides scanline polygon filling for hexgrid.
//
// A pixel is inside a polygon when its center (x+0.5, y+0.5) is inside.
// There is no partial coverage: anti-aliasing is the job of the
// supersample-and-downsample pipeline around the rasterizer.
package raster

import "math"

// RGB represents a color (internal copy to avoid import cycle).
type RGB struct {
	R, G, B uint8
}

// SpanFiller is the destination of a fill: it paints horizontal runs.
type SpanFiller interface {
	Width() int
	Height() int
	// FillSpan paints pixels [x1, x2) on row y.
	FillSpan(x1, x2, y int, c RGB)
}

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// horizontalEpsilon is the height below which an edge is treated as
// horizontal and dropped; horizontal edges never cross a pixel center row.
const horizontalEpsilon = 1e-9

// Rasterizer performs scanline rasterization. It reuses its edge buffers
// between calls and is not safe for concurrent use.
type Rasterizer struct {
	edges []Edge
	aet   *ActiveEdgeTable
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		edges: make([]Edge, 0, 8),
		aet:   NewActiveEdgeTable(),
	}
}

// FillPolygon fills the closed polygon through points. The last point
// connects back to the first; an explicit closing point is not needed.
func (r *Rasterizer) FillPolygon(dst SpanFiller, points []Point, fillRule FillRule, color RGB) {
	if len(points) < 3 {
		return
	}

	r.edges = r.edges[:0]
	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	for i := range points {
		p0 := points[i]
		p1 := points[(i+1)%len(points)]
		if math.Abs(p1.Y-p0.Y) < horizontalEpsilon {
			continue
		}
		e := NewEdge(p0, p1)
		r.edges = append(r.edges, e)
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}

	if len(r.edges) == 0 {
		return
	}

	// Rows whose centers fall in [yMin, yMax).
	rowMin := max(int(math.Ceil(yMin-0.5)), 0)
	rowMax := min(int(math.Ceil(yMax-0.5)), dst.Height())

	for y := rowMin; y < rowMax; y++ {
		r.scanline(dst, float64(y)+0.5, y, fillRule, color)
	}
}

// scanline processes a single scanline sampled at scanY.
func (r *Rasterizer) scanline(dst SpanFiller, scanY float64, row int, fillRule FillRule, color RGB) {
	r.aet.Clear()
	for i := range r.edges {
		if r.edges[i].Crosses(scanY) {
			r.aet.AddAtY(r.edges[i], scanY)
		}
	}

	if len(r.aet.Edges()) == 0 {
		return
	}
	r.aet.Sort()

	active := r.aet.Edges()
	if fillRule == FillRuleNonZero {
		fillNonZero(dst, active, row, color)
	} else {
		fillEvenOdd(dst, active, row, color)
	}
}

// fillNonZero fills using the non-zero winding rule.
func fillNonZero(dst SpanFiller, edges []ActiveEdge, y int, color RGB) {
	winding := 0
	var x1 float64

	for _, edge := range edges {
		if winding == 0 {
			x1 = edge.x
		}
		winding += edge.dir
		if winding == 0 {
			fillSpan(dst, x1, edge.x, y, color)
		}
	}
}

// fillEvenOdd fills using the even-odd rule.
func fillEvenOdd(dst SpanFiller, edges []ActiveEdge, y int, color RGB) {
	for i := 0; i+1 < len(edges); i += 2 {
		fillSpan(dst, edges[i].x, edges[i+1].x, y, color)
	}
}

// fillSpan paints the pixels whose centers lie in [xl, xr).
func fillSpan(dst SpanFiller, xl, xr float64, y int, color RGB) {
	x1 := max(int(math.Ceil(xl-0.5)), 0)
	x2 := min(int(math.Ceil(xr-0.5)), dst.Width())
	if x1 >= x2 {
		return
	}
	dst.FillSpan(x1, x2, y, color)
}
