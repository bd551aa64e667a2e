package hexgrid

import (
	"fmt"
	"image/color"
)

// RGB is an opaque 8-bit color. Every pixel hexgrid produces is an RGB.
type RGB struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FromColor converts a standard color.Color to RGB, compositing any
// translucent color over black.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// String formats the color as an (r, g, b) triple.
func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}
