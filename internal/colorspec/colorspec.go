// Package colorspec parses user color strings into opaque RGB triples.
//
// Accepted forms:
//   - "r,g,b" with three integers in [0, 255], spaces allowed
//   - "rgb(r, g, b)"
//   - "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" (alpha is ignored)
//   - CSS/SVG color names, case-insensitive ("grey", "darkgrey", "cornflowerblue")
package colorspec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/hexgrid"
)

// ErrInvalidColor is returned for strings that match none of the accepted forms.
var ErrInvalidColor = errors.New("colorspec: invalid color specification")

// Parse converts s to an RGB triple.
func Parse(s string) (hexgrid.RGB, error) {
	t := strings.TrimSpace(s)

	switch {
	case strings.Contains(t, ","):
		if inner, ok := functional(t); ok {
			t = inner
		}
		return parseTuple(t)
	case strings.HasPrefix(t, "#"):
		return parseHex(t[1:], s)
	}

	if c, ok := colornames.Map[strings.ToLower(t)]; ok {
		return hexgrid.RGB{R: c.R, G: c.G, B: c.B}, nil
	}
	return hexgrid.RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) hexgrid.RGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// functional strips an "rgb(...)" wrapper.
func functional(s string) (string, bool) {
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "rgb(") || !strings.HasSuffix(lower, ")") {
		return s, false
	}
	return s[len("rgb(") : len(s)-1], true
}

func parseTuple(s string) (hexgrid.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return hexgrid.RGB{}, fmt.Errorf("%w: RGB tuple must have 3 components, got %d: %q",
			ErrInvalidColor, len(parts), s)
	}

	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return hexgrid.RGB{}, fmt.Errorf("%w: RGB components must be integers: %q", ErrInvalidColor, s)
		}
		if n < 0 || n > 255 {
			return hexgrid.RGB{}, fmt.Errorf("%w: RGB values must be in [0, 255], got %d: %q",
				ErrInvalidColor, n, s)
		}
		v[i] = uint8(n)
	}
	return hexgrid.RGB{R: v[0], G: v[1], B: v[2]}, nil
}

func parseHex(h, orig string) (hexgrid.RGB, error) {
	var digits [8]uint8
	if len(h) > len(digits) {
		return hexgrid.RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	for i := 0; i < len(h); i++ {
		d, ok := hexDigit(h[i])
		if !ok {
			return hexgrid.RGB{}, fmt.Errorf("%w: bad hex digit in %q", ErrInvalidColor, orig)
		}
		digits[i] = d
	}

	switch len(h) {
	case 3, 4: // #rgb, #rgba
		return hexgrid.RGB{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17}, nil
	case 6, 8: // #rrggbb, #rrggbbaa
		return hexgrid.RGB{
			R: digits[0]<<4 | digits[1],
			G: digits[2]<<4 | digits[3],
			B: digits[4]<<4 | digits[5],
		}, nil
	}
	return hexgrid.RGB{}, fmt.Errorf("%w: hex color must have 3, 4, 6 or 8 digits: %q", ErrInvalidColor, orig)
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
