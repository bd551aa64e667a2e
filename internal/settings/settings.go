// Package settings persists hexgrid command-line parameters and merges
// imported values with command-line flags.
//
// Precedence, lowest to highest: built-in defaults, imported file values,
// flags given explicitly on the command line.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when a settings file cannot be decoded.
var ErrMalformed = errors.New("settings: malformed settings file")

// Settings is the persisted parameter set. Field names on disk match the
// command-line flag names.
type Settings struct {
	Width           int     `json:"width" toml:"width" yaml:"width"`
	Height          int     `json:"height" toml:"height" yaml:"height"`
	Circumradius    float64 `json:"circumradius" toml:"circumradius" yaml:"circumradius"`
	Margin          float64 `json:"margin" toml:"margin" yaml:"margin"`
	LineWidth       int     `json:"line_width" toml:"line_width" yaml:"line_width"`
	Layers          int     `json:"layers" toml:"layers" yaml:"layers"`
	ColorFill       string  `json:"color_fill" toml:"color_fill" yaml:"color_fill"`
	ColorLine       string  `json:"color_line" toml:"color_line" yaml:"color_line"`
	ColorBackground string  `json:"color_background" toml:"color_background" yaml:"color_background"`
	Antialias       string  `json:"antialias" toml:"antialias" yaml:"antialias"`
	File            string  `json:"file" toml:"file" yaml:"file"`
	Cull            bool    `json:"cull" toml:"cull" yaml:"cull"`
	Debug           bool    `json:"debug" toml:"debug" yaml:"debug"`
}

// Defaults returns the built-in parameter set.
func Defaults() Settings {
	return Settings{
		Width:           1024,
		Height:          768,
		Circumradius:    64,
		Margin:          16,
		LineWidth:       8,
		Layers:          0,
		ColorFill:       "grey",
		ColorLine:       "black",
		ColorBackground: "darkgrey",
		Antialias:       "high",
		File:            "tessellation.png",
		Cull:            false,
		Debug:           false,
	}
}

// Keys lists the persisted keys in file order.
func Keys() []string {
	return []string{
		"width", "height", "circumradius", "margin", "line_width",
		"layers", "color_fill", "color_line", "color_background",
		"antialias", "file", "cull", "debug",
	}
}

// Overlay is a partially specified Settings decoded from a file. A nil
// field was absent from the file.
type Overlay struct {
	Width           *int     `json:"width" toml:"width" yaml:"width"`
	Height          *int     `json:"height" toml:"height" yaml:"height"`
	Circumradius    *float64 `json:"circumradius" toml:"circumradius" yaml:"circumradius"`
	Margin          *float64 `json:"margin" toml:"margin" yaml:"margin"`
	LineWidth       *int     `json:"line_width" toml:"line_width" yaml:"line_width"`
	Layers          *int     `json:"layers" toml:"layers" yaml:"layers"`
	ColorFill       *string  `json:"color_fill" toml:"color_fill" yaml:"color_fill"`
	ColorLine       *string  `json:"color_line" toml:"color_line" yaml:"color_line"`
	ColorBackground *string  `json:"color_background" toml:"color_background" yaml:"color_background"`
	Antialias       *string  `json:"antialias" toml:"antialias" yaml:"antialias"`
	File            *string  `json:"file" toml:"file" yaml:"file"`
	Cull            *bool    `json:"cull" toml:"cull" yaml:"cull"`
	Debug           *bool    `json:"debug" toml:"debug" yaml:"debug"`
}

// Merge applies every field present in o onto base, except keys listed in
// explicit, which were set on the command line and take precedence.
func Merge(base Settings, o Overlay, explicit map[string]bool) Settings {
	set := func(key string) bool { return !explicit[key] }

	apply(&base.Width, o.Width, set("width"))
	apply(&base.Height, o.Height, set("height"))
	apply(&base.Circumradius, o.Circumradius, set("circumradius"))
	apply(&base.Margin, o.Margin, set("margin"))
	apply(&base.LineWidth, o.LineWidth, set("line_width"))
	apply(&base.Layers, o.Layers, set("layers"))
	apply(&base.ColorFill, o.ColorFill, set("color_fill"))
	apply(&base.ColorLine, o.ColorLine, set("color_line"))
	apply(&base.ColorBackground, o.ColorBackground, set("color_background"))
	apply(&base.Antialias, o.Antialias, set("antialias"))
	apply(&base.File, o.File, set("file"))
	apply(&base.Cull, o.Cull, set("cull"))
	apply(&base.Debug, o.Debug, set("debug"))
	return base
}

func apply[T any](dst *T, src *T, ok bool) {
	if ok && src != nil {
		*dst = *src
	}
}

// Format is an on-disk settings encoding.
type Format int

const (
	// JSON is the default format.
	JSON Format = iota
	TOML
	YAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".toml":
		return TOML, true
	case ".yaml", ".yml":
		return YAML, true
	}
	return JSON, false
}

// ResolvePath appends ".json" unless path already names a known format.
func ResolvePath(path string) string {
	if _, ok := FormatOf(path); ok {
		return path
	}
	return path + ".json"
}

// Load reads and decodes an overlay from path, resolved with ResolvePath.
// A missing file yields an error satisfying errors.Is(err, fs.ErrNotExist).
func Load(path string) (Overlay, string, error) {
	path = ResolvePath(path)
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Overlay{}, path, err
	}
	o, err := Decode(data, mustFormat(path))
	return o, path, err
}

// Decode parses an overlay in the given format.
func Decode(data []byte, f Format) (Overlay, error) {
	var o Overlay
	var err error
	switch f {
	case TOML:
		err = toml.Unmarshal(data, &o)
	case YAML:
		err = yaml.Unmarshal(data, &o)
	default:
		o, err = decodeJSON(data)
	}
	if err != nil {
		return Overlay{}, fmt.Errorf("%w (%s): %v", ErrMalformed, f, err)
	}
	return o, nil
}

// jsonOverlay reads the integer keys as numbers so that whole values
// written as floats (1024.0) are accepted.
type jsonOverlay struct {
	Overlay
	Width     *json.Number `json:"width"`
	Height    *json.Number `json:"height"`
	LineWidth *json.Number `json:"line_width"`
	Layers    *json.Number `json:"layers"`
}

func decodeJSON(data []byte) (Overlay, error) {
	var raw jsonOverlay
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return Overlay{}, err
	}
	o := raw.Overlay
	var err error
	if o.Width, err = wholeNumber("width", raw.Width); err != nil {
		return Overlay{}, err
	}
	if o.Height, err = wholeNumber("height", raw.Height); err != nil {
		return Overlay{}, err
	}
	if o.LineWidth, err = wholeNumber("line_width", raw.LineWidth); err != nil {
		return Overlay{}, err
	}
	if o.Layers, err = wholeNumber("layers", raw.Layers); err != nil {
		return Overlay{}, err
	}
	return o, nil
}

func wholeNumber(key string, n *json.Number) (*int, error) {
	if n == nil {
		return nil, nil
	}
	if i, err := n.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
		v := int(i)
		return &v, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return nil, fmt.Errorf("%s: %s is not an integer", key, n.String())
	}
	v := int(f)
	return &v, nil
}

// Encode serializes s in the given format.
func Encode(s Settings, f Format) ([]byte, error) {
	switch f {
	case TOML:
		return toml.Marshal(s)
	case YAML:
		return yaml.Marshal(s)
	default:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// Save writes s to path, resolved with ResolvePath, and returns the path
// actually written.
func Save(path string, s Settings) (string, error) {
	path = ResolvePath(path)
	data, err := Encode(s, mustFormat(path))
	if err != nil {
		return path, fmt.Errorf("settings: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // settings are not secret
		return path, err
	}
	return path, nil
}

func mustFormat(path string) Format {
	f, _ := FormatOf(path)
	return f
}
