package coverage

import (
	"image"
	"testing"
)

// testCanvas records blended coverage per pixel.
type testCanvas struct {
	w, h int
	cov  []uint8
}

func newTestCanvas(w, h int) *testCanvas {
	return &testCanvas{w: w, h: h, cov: make([]uint8, w*h)}
}

func (c *testCanvas) Width() int  { return c.w }
func (c *testCanvas) Height() int { return c.h }

func (c *testCanvas) BlendPixel(x, y int, _ RGB, coverage uint8) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		panic("blend out of bounds")
	}
	c.cov[y*c.w+x] = coverage
}

func (c *testCanvas) at(x, y int) uint8 { return c.cov[y*c.w+x] }

func TestFillPolygon_FullAndPartialCoverage(t *testing.T) {
	dst := newTestCanvas(10, 10)
	// Integer-aligned left/top edges, half-pixel right/bottom edges.
	NewFiller().FillPolygon(dst, []Point{{2, 2}, {5.5, 2}, {5.5, 5.5}, {2, 5.5}}, RGB{R: 255})

	if got := dst.at(3, 3); got != 0xff {
		t.Errorf("interior coverage = %d, want 255", got)
	}
	if got := dst.at(5, 3); got < 0x70 || got > 0x90 {
		t.Errorf("half-covered edge pixel coverage = %d, want ~128", got)
	}
	if got := dst.at(1, 3); got != 0 {
		t.Errorf("outside pixel coverage = %d, want 0", got)
	}
	if got := dst.at(5, 5); got < 0x30 || got > 0x50 {
		t.Errorf("quarter-covered corner coverage = %d, want ~64", got)
	}
}

func TestFillPolygon_ClipsToCanvas(t *testing.T) {
	dst := newTestCanvas(6, 6)
	NewFiller().FillPolygon(dst, []Point{{-10, -10}, {20, -10}, {20, 20}, {-10, 20}}, RGB{})
	for i, c := range dst.cov {
		if c != 0xff {
			t.Fatalf("pixel %d coverage = %d, want 255", i, c)
		}
	}
}

func TestFillPolygon_OffCanvas(t *testing.T) {
	dst := newTestCanvas(6, 6)
	NewFiller().FillPolygon(dst, []Point{{20, 20}, {30, 20}, {30, 30}}, RGB{})
	for i, c := range dst.cov {
		if c != 0 {
			t.Fatalf("pixel %d coverage = %d, want 0", i, c)
		}
	}
}

func TestFillPolygon_ReusesMask(t *testing.T) {
	f := NewFiller()
	big := newTestCanvas(20, 20)
	f.FillPolygon(big, []Point{{0, 0}, {20, 0}, {20, 20}, {0, 20}}, RGB{})

	// A smaller polygon after a large one must not see stale coverage.
	small := newTestCanvas(20, 20)
	f.FillPolygon(small, []Point{{1, 1}, {3, 1}, {3, 3}, {1, 3}}, RGB{})
	if got := small.at(10, 10); got != 0 {
		t.Errorf("stale coverage %d outside second polygon", got)
	}
	if got := small.at(2, 2); got != 0xff {
		t.Errorf("coverage = %d, want 255", got)
	}
}

func TestPolygonBounds(t *testing.T) {
	got := polygonBounds([]Point{{1.2, 3.7}, {-0.5, 2}, {4, 9.1}})
	want := image.Rect(-1, 2, 4, 10)
	if got != want {
		t.Errorf("polygonBounds = %v, want %v", got, want)
	}
}
