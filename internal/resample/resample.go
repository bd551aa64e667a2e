// Package resample downsamples supersampled canvases to their target size.
package resample

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Filter names a reconstruction filter for Downsample.
type Filter int

const (
	// Lanczos is the 3-lobe windowed-sinc filter used for final output.
	Lanczos Filter = iota
	// Linear is a tent filter, cheaper and softer than Lanczos.
	Linear
	// Box averages the source pixels under each target pixel.
	Box
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case Lanczos:
		return "Lanczos"
	case Linear:
		return "Linear"
	case Box:
		return "Box"
	default:
		return "Unknown"
	}
}

func (f Filter) bild() transform.ResampleFilter {
	switch f {
	case Linear:
		return transform.Linear
	case Box:
		return transform.Box
	default:
		return transform.Lanczos
	}
}

// Downsample resamples src to width×height with the given filter and
// returns a newly allocated image; src is never modified.
func Downsample(src image.Image, width, height int, f Filter) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resample: invalid target size %dx%d", width, height)
	}
	return transform.Resize(src, width, height, f.bild()), nil
}
