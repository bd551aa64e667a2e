package hexgrid

import (
	"fmt"
	"math"
)

// Axial is a hex cell address in axial coordinates. The third cube
// coordinate is implied as s = -q - r, so q + r + s = 0 always holds.
type Axial struct {
	Q, R int
}

// S returns the implied third cube coordinate.
func (a Axial) S() int {
	return -a.Q - a.R
}

// Add returns the cell reached by stepping from a by b.
func (a Axial) Add(b Axial) Axial {
	return Axial{Q: a.Q + b.Q, R: a.R + b.R}
}

// Distance returns the hex distance from the origin, max(|q|, |r|, |s|).
func (a Axial) Distance() int {
	return max(abs(a.Q), abs(a.R), abs(a.S()))
}

// String formats the address as (q, r).
func (a Axial) String() string {
	return fmt.Sprintf("(%d, %d)", a.Q, a.R)
}

// ringDirections is the fixed walk order used by Ring. Changing it changes
// draw order and breaks bit-reproducible output.
var ringDirections = [6]Axial{
	{Q: +1, R: -1},
	{Q: +1, R: 0},
	{Q: 0, R: +1},
	{Q: -1, R: +1},
	{Q: -1, R: 0},
	{Q: 0, R: -1},
}

// Ring returns the cells at exact hex distance d from the origin.
//
// Ring(0) is the origin alone. For d >= 1 the walk starts at (-d, 0) and
// takes d steps along each of the six directions, recording each cell
// before stepping, which yields 6d cells and ends back at the start.
// Negative d returns nil.
func Ring(d int) []Axial {
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []Axial{{}}
	}

	cells := make([]Axial, 0, 6*d)
	cur := Axial{Q: -d}
	for _, dir := range ringDirections {
		for i := 0; i < d; i++ {
			cells = append(cells, cur)
			cur = cur.Add(dir)
		}
	}
	return cells
}

// MaxLayers is the largest layer count ConcentricGrid enumerates.
const MaxLayers = 2048

// CellCount returns the number of cells in a concentric grid of the given
// layer count: the centered hexagonal number 1 + 3L(L-1). Layer counts
// above MaxLayers yield -1.
func CellCount(layers int) int {
	switch {
	case layers < 1:
		return 0
	case layers > MaxLayers:
		return -1
	}
	return 1 + 3*layers*(layers-1)
}

// ConcentricGrid returns every cell of a grid with the given number of
// layers, innermost first. Layer 1 is the origin and layer ℓ is Ring(ℓ-1).
//
// A layer count below 1 or above MaxLayers is rejected; resolve auto-fill
// with AutoFillLayers before calling.
func ConcentricGrid(layers int) ([]Axial, error) {
	if layers < 1 || layers > MaxLayers {
		return nil, fmt.Errorf("%w: %d (must be in [1, %d])", ErrInvalidLayers, layers, MaxLayers)
	}
	cells := make([]Axial, 0, CellCount(layers))
	for d := 0; d < layers; d++ {
		cells = append(cells, Ring(d)...)
	}
	return cells, nil
}

// AxialToPixel maps a cell to its center on a width×height canvas, with the
// origin cell at the canvas center.
//
// Columns are 3/2·spacing apart, and the q/2 term staggers alternate
// columns by half a hexagon height.
func AxialToPixel(a Axial, spacing, width, height float64) Point {
	q, r := float64(a.Q), float64(a.R)
	return Point{
		X: width/2 + spacing*1.5*q,
		Y: height/2 + spacing*sqrt3*(r+q/2),
	}
}

// AutoFillLayers returns the smallest layer count whose outermost ring
// covers a width×height canvas, never less than 1.
//
// The extra layer past the per-axis estimate is required: without it the
// staggered outer columns leave gaps along the canvas border. A spacing
// that is not positive yields 1. The result saturates at math.MaxInt32, so
// tiny spacings produce a count ConcentricGrid rejects rather than one
// that wrapped around.
func AutoFillLayers(width, height, spacing float64) int {
	if !(spacing > 0) {
		return 1
	}
	lh := math.Ceil((width / 2) / (1.5 * spacing))
	lv := math.Ceil((height / 2) / (sqrt3 * spacing))
	l := max(lh, lv) + 1
	switch {
	case math.IsNaN(l):
		return 1
	case l >= math.MaxInt32:
		return math.MaxInt32
	}
	return max(int(l), 1)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
