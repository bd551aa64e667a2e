// Package hexgrid renders tessellations of regular flat-top hexagons
// arranged in concentric layers around the canvas center.
//
// # Quick Start
//
//	res, err := hexgrid.Render(hexgrid.Params{
//	    Width:        1024,
//	    Height:       768,
//	    Circumradius: 64,
//	    Margin:       16,
//	    Stroke:       8,
//	    Antialias:    hexgrid.AntialiasHigh,
//	    Fill:         hexgrid.RGB{128, 128, 128},
//	    Line:         hexgrid.Black,
//	    Background:   hexgrid.RGB{169, 169, 169},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = res.Image.Save("tessellation.png")
//
// # Coordinate System
//
// Cells are addressed with axial coordinates (q, r); the cube coordinate
// s = -q - r is implied. The origin cell sits at the canvas center. Pixel
// coordinates follow the usual raster convention:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Pipeline
//
// Render scales all pixel-space parameters by the antialias factor,
// resolves the layer count, enumerates cells ring by ring, optionally culls
// cells that leave the canvas, draws all stroke polygons followed by all
// fill polygons, and finally downsamples with a Lanczos filter.
//
// The package is stateless; every Render call owns its buffers.
package hexgrid

// Version information
const (
	// Version is the current version of the library
	Version = "3.1.0"

	// BuildDate is the release date of Version
	BuildDate = "2026-02-09"
)
