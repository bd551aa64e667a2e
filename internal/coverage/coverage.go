// Package coverage fills polygons with exact per-pixel area coverage using
// golang.org/x/image/vector, blending the color over the destination.
package coverage

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// RGB represents a color (internal copy to avoid import cycle).
type RGB struct {
	R, G, B uint8
}

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Canvas is the destination of a coverage fill.
type Canvas interface {
	Width() int
	Height() int
	// BlendPixel composites c with the given coverage (0-255) over the pixel.
	BlendPixel(x, y int, c RGB, coverage uint8)
}

// Filler rasterizes one polygon at a time into a bounding-box sized mask.
// It reuses its buffers between calls and is not safe for concurrent use.
type Filler struct {
	z    *vector.Rasterizer
	mask *image.Alpha
}

// NewFiller creates a coverage filler.
func NewFiller() *Filler {
	return &Filler{z: vector.NewRasterizer(0, 0)}
}

// FillPolygon fills the closed polygon through points.
func (f *Filler) FillPolygon(dst Canvas, points []Point, color RGB) {
	if len(points) < 3 {
		return
	}

	bounds := polygonBounds(points).Intersect(image.Rect(0, 0, dst.Width(), dst.Height()))
	if bounds.Empty() {
		return
	}

	w, h := bounds.Dx(), bounds.Dy()
	f.z.Reset(w, h)
	f.z.DrawOp = draw.Src

	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)
	f.z.MoveTo(float32(points[0].X-ox), float32(points[0].Y-oy))
	for _, p := range points[1:] {
		f.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	f.z.ClosePath()

	mask := f.maskFor(w, h)
	f.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, a := range row {
			if a != 0 {
				dst.BlendPixel(bounds.Min.X+x, bounds.Min.Y+y, color, a)
			}
		}
	}
}

// maskFor returns a cleared w×h alpha mask, reallocating only when the
// existing one is too small.
func (f *Filler) maskFor(w, h int) *image.Alpha {
	if f.mask == nil || len(f.mask.Pix) < w*h {
		f.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return f.mask
	}
	m := &image.Alpha{Pix: f.mask.Pix[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
	clear(m.Pix)
	return m
}

// polygonBounds returns the integer pixel box enclosing the points.
func polygonBounds(points []Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}
