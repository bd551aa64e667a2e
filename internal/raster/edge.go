package raster

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Edge represents a non-horizontal polygon side for scanline rasterization.
type Edge struct {
	x0, y0 float64 // Upper end point (smaller y)
	x1, y1 float64 // Lower end point
	dxdy   float64 // Inverse slope
	dir    int     // Winding direction: +1 downward, -1 upward
}

// NewEdge creates a new edge from two points.
func NewEdge(p0, p1 Point) Edge {
	// Determine direction before swap (for non-zero winding rule)
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}

	var dxdy float64
	if dy := p1.Y - p0.Y; dy != 0 {
		dxdy = (p1.X - p0.X) / dy
	}

	return Edge{
		x0:   p0.X,
		y0:   p0.Y,
		x1:   p1.X,
		y1:   p1.Y,
		dxdy: dxdy,
		dir:  dir,
	}
}

// XAtY calculates the x coordinate at the given y coordinate.
func (e *Edge) XAtY(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

// Crosses reports whether the edge spans the scanline at y, using a
// half-open [y0, y1) interval so shared vertices are counted once.
func (e *Edge) Crosses(y float64) bool {
	return e.y0 <= y && y < e.y1
}

// ActiveEdgeTable holds the edges crossing the current scanline.
type ActiveEdgeTable struct {
	edges []ActiveEdge
}

// ActiveEdge is an edge intersected with one scanline.
type ActiveEdge struct {
	x   float64 // Intersection x on the scanline
	dir int     // Direction for winding
}

// NewActiveEdgeTable creates a new active edge table.
func NewActiveEdgeTable() *ActiveEdgeTable {
	return &ActiveEdgeTable{
		edges: make([]ActiveEdge, 0, 8),
	}
}

// AddAtY adds an edge with x computed for the given y.
func (aet *ActiveEdgeTable) AddAtY(edge Edge, y float64) {
	aet.edges = append(aet.edges, ActiveEdge{
		x:   edge.XAtY(y),
		dir: edge.dir,
	})
}

// Sort sorts edges by x coordinate (insertion sort for small lists).
func (aet *ActiveEdgeTable) Sort() {
	for i := 1; i < len(aet.edges); i++ {
		key := aet.edges[i]
		j := i - 1
		for j >= 0 && aet.edges[j].x > key.x {
			aet.edges[j+1] = aet.edges[j]
			j--
		}
		aet.edges[j+1] = key
	}
}

// Edges returns the active edges.
func (aet *ActiveEdgeTable) Edges() []ActiveEdge {
	return aet.edges
}

// Clear clears all edges.
func (aet *ActiveEdgeTable) Clear() {
	aet.edges = aet.edges[:0]
}
