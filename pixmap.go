package hexgrid

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Pixmap is an opaque RGB pixel buffer, three bytes per pixel.
//
// Pixmap implements draw.Image so standard compositing code can write to it;
// the alpha of incoming colors is discarded after premultiplication.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGB format, 3 bytes per pixel
}

// NewPixmap creates a new black pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*3),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGB format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGB) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 3
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
}

// GetPixel returns the color of a single pixel, or black when out of bounds.
func (p *Pixmap) GetPixel(x, y int) RGB {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Black
	}
	i := (y*p.width + x) * 3
	return RGB{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2]}
}

// BlendPixel composites c over the pixel with the given coverage, where
// 255 replaces the pixel and 0 leaves it unchanged.
func (p *Pixmap) BlendPixel(x, y int, c RGB, coverage uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 3
	a := uint32(coverage)
	p.data[i+0] = blend8(p.data[i+0], c.R, a)
	p.data[i+1] = blend8(p.data[i+1], c.G, a)
	p.data[i+2] = blend8(p.data[i+2], c.B, a)
}

// blend8 returns dst*(1-a) + src*a for an 8-bit coverage a, rounded.
func blend8(dst, src uint8, a uint32) uint8 {
	return uint8((uint32(src)*a + uint32(dst)*(255-a) + 127) / 255)
}

// FillSpan fills pixels [x1, x2) on row y. The span is clipped to the pixmap.
func (p *Pixmap) FillSpan(x1, x2, y int, c RGB) {
	if y < 0 || y >= p.height {
		return
	}
	x1 = max(x1, 0)
	x2 = min(x2, p.width)
	if x1 >= x2 {
		return
	}

	row := p.data[(y*p.width+x1)*3 : (y*p.width+x2)*3]
	for i := 0; i < len(row); i += 3 {
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGB) {
	for i := 0; i < len(p.data); i += 3 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
	}
}

// Clone returns an independent copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := NewPixmap(p.width, p.height)
	copy(c.data, p.data)
	return c
}

// ToImage converts the pixmap to an opaque image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i, j := 0, 0; i < len(p.data); i, j = i+3, j+4 {
		img.Pix[j+0] = p.data[i+0]
		img.Pix[j+1] = p.data[i+1]
		img.Pix[j+2] = p.data[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FromImage creates a pixmap from an image. Translucent pixels are
// composited over black.
func FromImage(img image.Image) *Pixmap {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())

	for y := 0; y < pm.height; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+pm.width*4]
		dst := pm.data[y*pm.width*3 : (y+1)*pm.width*3]
		for i, j := 0, 0; j < len(dst); i, j = i+4, j+3 {
			dst[j+0] = src[i+0]
			dst[j+1] = src[i+1]
			dst[j+2] = src[i+2]
		}
	}

	return pm
}

// Encoder writes an image in a persistent format.
type Encoder func(w io.Writer, img image.Image) error

// encoders maps lower-case file extensions to their encoder.
var encoders = map[string]Encoder{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// SupportedExtension reports whether Save can encode a file with the
// extension of path.
func SupportedExtension(path string) bool {
	_, ok := encoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Save encodes the pixmap to path, choosing PNG, BMP or TIFF by extension.
func (p *Pixmap) Save(path string) error {
	enc, ok := encoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}

	if err := enc(f, p.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("hexgrid: encode %s: %w", path, err)
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, FromColor(c))
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
