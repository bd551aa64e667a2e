package hexgrid

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestPixmap_SetGetPixel(t *testing.T) {
	pm := NewPixmap(10, 10)
	c := RGB{128, 64, 32}
	pm.SetPixel(5, 5, c)

	if got := pm.GetPixel(5, 5); got != c {
		t.Errorf("GetPixel = %v, want %v", got, c)
	}
	i := (5*10 + 5) * 3
	data := pm.Data()
	if data[i] != 128 || data[i+1] != 64 || data[i+2] != 32 {
		t.Errorf("raw data = (%d, %d, %d), want (128, 64, 32)", data[i], data[i+1], data[i+2])
	}
}

// TestPixmap_OutOfBounds verifies out-of-bounds writes are silently ignored.
func TestPixmap_OutOfBounds(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Clear(White)
	original := append([]uint8(nil), pm.Data()...)

	oob := []struct{ x, y int }{
		{-1, 5}, {10, 5}, {5, -1}, {5, 10}, {-100, -100}, {100, 100},
	}
	for _, c := range oob {
		pm.SetPixel(c.x, c.y, Black)
		pm.BlendPixel(c.x, c.y, Black, 255)
		if got := pm.GetPixel(c.x, c.y); got != Black {
			t.Errorf("GetPixel(%d, %d) = %v, want black", c.x, c.y, got)
		}
	}
	pm.FillSpan(-5, 20, 10, Black)
	pm.FillSpan(-5, 20, -1, Black)

	for i, v := range pm.Data() {
		if v != original[i] {
			t.Fatalf("out-of-bounds write modified data at index %d", i)
		}
	}
}

func TestPixmap_FillSpanClips(t *testing.T) {
	pm := NewPixmap(8, 2)
	pm.FillSpan(-3, 4, 1, White)
	for x := 0; x < 8; x++ {
		want := Black
		if x < 4 {
			want = White
		}
		if got := pm.GetPixel(x, 1); got != want {
			t.Errorf("pixel (%d,1) = %v, want %v", x, got, want)
		}
		if got := pm.GetPixel(x, 0); got != Black {
			t.Errorf("row 0 pixel %d modified", x)
		}
	}
	// Inverted span is a no-op.
	pm.FillSpan(6, 5, 0, White)
	if pm.GetPixel(5, 0) != Black {
		t.Error("inverted span painted pixels")
	}
}

func TestPixmap_BlendPixel(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.BlendPixel(0, 0, White, 0)
	if got := pm.GetPixel(0, 0); got != Black {
		t.Errorf("coverage 0 changed pixel to %v", got)
	}
	pm.BlendPixel(0, 0, White, 128)
	if got := pm.GetPixel(0, 0); got != (RGB{128, 128, 128}) {
		t.Errorf("half coverage = %v, want (128, 128, 128)", got)
	}
	pm.BlendPixel(0, 0, RGB{10, 20, 30}, 255)
	if got := pm.GetPixel(0, 0); got != (RGB{10, 20, 30}) {
		t.Errorf("full coverage = %v, want (10, 20, 30)", got)
	}
}

func TestPixmap_ImageRoundTrip(t *testing.T) {
	pm := NewPixmap(3, 2)
	pm.SetPixel(0, 0, RGB{1, 2, 3})
	pm.SetPixel(2, 1, RGB{250, 251, 252})

	img := pm.ToImage()
	if img.Pix[3] != 0xff {
		t.Error("ToImage produced a non-opaque pixel")
	}
	back := FromImage(img)
	if back.Width() != 3 || back.Height() != 2 {
		t.Fatalf("FromImage size = %dx%d, want 3x2", back.Width(), back.Height())
	}
	for i, v := range pm.Data() {
		if back.Data()[i] != v {
			t.Fatalf("round trip mismatch at byte %d", i)
		}
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 7))
	img.SetRGBA(6, 6, color.RGBA{9, 8, 7, 255})
	pm := FromImage(img)
	if got := pm.GetPixel(1, 1); got != (RGB{9, 8, 7}) {
		t.Errorf("GetPixel(1,1) = %v, want (9, 8, 7)", got)
	}
}

func TestPixmap_Clone(t *testing.T) {
	pm := NewPixmap(2, 2)
	c := pm.Clone()
	c.SetPixel(0, 0, White)
	if pm.GetPixel(0, 0) != Black {
		t.Error("Clone shares storage with the original")
	}
}

func TestPixmap_Save(t *testing.T) {
	pm := NewPixmap(4, 3)
	pm.Clear(RGB{169, 169, 169})
	dir := t.TempDir()

	decoders := map[string]func(*os.File) (image.Image, error){
		"out.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"out.BMP":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"out.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}

	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := pm.Save(path); err != nil {
				t.Fatalf("Save(%q) = %v", name, err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
				t.Errorf("decoded bounds = %v, want 4x3", b)
			}
			if got := FromColor(img.At(2, 1)); got != (RGB{169, 169, 169}) {
				t.Errorf("decoded pixel = %v, want (169, 169, 169)", got)
			}
		})
	}
}

func TestPixmap_SaveUnsupported(t *testing.T) {
	err := NewPixmap(1, 1).Save(filepath.Join(t.TempDir(), "out.gif"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.gif) = %v, want ErrUnsupportedFormat", err)
	}
	if SupportedExtension("a.jpeg") || !SupportedExtension("A.PNG") {
		t.Error("SupportedExtension mismatch")
	}
}
