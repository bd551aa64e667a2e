package hexgrid

import (
	"fmt"
	"strings"
)

// RasterizerMode controls how hexagon polygons are scan-converted onto the
// oversampled canvas.
//
// The mode is per-render, not global.
type RasterizerMode int

const (
	// RasterizerScanline fills every pixel whose center lies inside the
	// polygon with the solid color (default). Edges are hard at the
	// oversampled resolution; smoothing comes from the downsample stage.
	RasterizerScanline RasterizerMode = iota

	// RasterizerCoverage computes exact per-pixel area coverage and blends
	// the polygon color over the canvas. Useful with AntialiasOff, where no
	// downsample stage exists to smooth edges.
	RasterizerCoverage
)

// String returns the rasterizer mode name.
func (m RasterizerMode) String() string {
	switch m {
	case RasterizerScanline:
		return "scanline"
	case RasterizerCoverage:
		return "coverage"
	default:
		return "unknown"
	}
}

// ParseRasterizerMode converts a mode name (scanline, coverage) to a RasterizerMode.
func ParseRasterizerMode(s string) (RasterizerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scanline", "":
		return RasterizerScanline, nil
	case "coverage":
		return RasterizerCoverage, nil
	}
	return RasterizerScanline, fmt.Errorf("%w %q: must be scanline or coverage", ErrUnknownRasterizer, s)
}
