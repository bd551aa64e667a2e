package hexgrid

import "errors"

// Errors returned by parameter validation. Validation runs before any
// drawing; invalid values are never clamped.
var (
	// ErrInvalidDimensions is returned when the canvas width or height is not positive.
	ErrInvalidDimensions = errors.New("hexgrid: canvas dimensions must be positive")

	// ErrNegativeRadius is returned for a negative or non-finite circumradius.
	ErrNegativeRadius = errors.New("hexgrid: circumradius must be a non-negative number")

	// ErrNegativeStroke is returned for a negative or non-finite stroke width.
	ErrNegativeStroke = errors.New("hexgrid: stroke width must be a non-negative number")

	// ErrInvalidLayers is returned for a layer count the operation cannot use.
	ErrInvalidLayers = errors.New("hexgrid: invalid layer count")

	// ErrInvalidSpacing is returned for a non-finite margin, or when
	// auto-fill is requested but the spacing radius R+m/2 is not positive.
	ErrInvalidSpacing = errors.New("hexgrid: invalid spacing radius")

	// ErrUnknownAntialias is returned by ParseAntialias for unrecognized level names.
	ErrUnknownAntialias = errors.New("hexgrid: unknown antialias level")

	// ErrUnknownRasterizer is returned by ParseRasterizerMode for unrecognized names.
	ErrUnknownRasterizer = errors.New("hexgrid: unknown rasterizer mode")

	// ErrUnsupportedFormat is returned by Pixmap.Save for unknown file extensions.
	ErrUnsupportedFormat = errors.New("hexgrid: unsupported image format")
)
