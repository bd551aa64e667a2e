package hexgrid

import (
	"fmt"
	"strings"
)

// Antialias selects the supersampling level of a render.
//
// The scene is rasterized at Scale() times the target resolution and then
// filtered down, so higher levels trade memory and time for smoother edges.
type Antialias int

const (
	// AntialiasOff renders directly at the target resolution (k=1).
	AntialiasOff Antialias = iota

	// AntialiasLow supersamples at 2x.
	AntialiasLow

	// AntialiasMedium supersamples at 4x.
	AntialiasMedium

	// AntialiasHigh supersamples at 8x.
	AntialiasHigh
)

// Scale returns the supersampling factor k for the level.
// Unknown levels render without supersampling.
func (a Antialias) Scale() int {
	switch a {
	case AntialiasLow:
		return 2
	case AntialiasMedium:
		return 4
	case AntialiasHigh:
		return 8
	default:
		return 1
	}
}

// String returns the level name as accepted by ParseAntialias.
func (a Antialias) String() string {
	switch a {
	case AntialiasOff:
		return "off"
	case AntialiasLow:
		return "low"
	case AntialiasMedium:
		return "medium"
	case AntialiasHigh:
		return "high"
	default:
		return "unknown"
	}
}

// AntialiasLevels lists the valid level names in ascending order.
func AntialiasLevels() []string {
	return []string{"off", "low", "medium", "high"}
}

// ParseAntialias converts a level name (off, low, medium, high) to an Antialias.
func ParseAntialias(s string) (Antialias, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return AntialiasOff, nil
	case "low":
		return AntialiasLow, nil
	case "medium":
		return AntialiasMedium, nil
	case "high":
		return AntialiasHigh, nil
	}
	return AntialiasOff, fmt.Errorf("%w %q: must be one of %s",
		ErrUnknownAntialias, s, strings.Join(AntialiasLevels(), ", "))
}
