package hexgrid

import "math"

// sqrt3 is used throughout the flat-top layout math.
var sqrt3 = math.Sqrt(3)

// Hexagon describes a regular flat-top hexagon by its circumradius.
// The zero value is a degenerate hexagon whose vertices all coincide.
type Hexagon struct {
	// Circumradius is the center-to-vertex distance in pixels.
	Circumradius float64
}

// Width returns the vertex-to-vertex extent, 2R.
func (h Hexagon) Width() float64 {
	return 2 * h.Circumradius
}

// Height returns the edge-to-edge extent, R·√3.
func (h Hexagon) Height() float64 {
	return h.Circumradius * sqrt3
}

// Inradius returns the apothem, R·√3/2.
func (h Hexagon) Inradius() float64 {
	return h.Circumradius * sqrt3 / 2
}

// Vertices returns the six vertices of the hexagon centered at c.
func (h Hexagon) Vertices(c Point) [6]Point {
	return HexVertices(c, h.Circumradius)
}

// HexVertices computes the six vertices of a flat-top hexagon.
//
// Vertex 0 is the rightmost point (cx+R, cy); the rest follow at 60°
// increments, counter-clockwise in math orientation. With Y growing down
// on the canvas vertex 1 therefore lies below-right of the center.
func HexVertices(c Point, radius float64) [6]Point {
	var v [6]Point
	for k := range v {
		angle := math.Pi * float64(k) / 3
		v[k] = Point{
			X: c.X + radius*math.Cos(angle),
			Y: c.Y + radius*math.Sin(angle),
		}
	}
	return v
}
