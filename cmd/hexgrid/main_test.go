package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// small keeps renders fast.
var small = []string{"--width", "64", "--height", "48", "--circumradius", "8", "--margin", "2", "--line_width", "2", "--antialias", "off"}

func withSmall(args ...string) []string {
	return append(append([]string{}, small...), args...)
}

func TestRunProducesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hex.png")
	code, stdout, stderr := runCLI(t, withSmall("--file", out)...)
	require.Equal(t, 0, code, stderr)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	assert.Contains(t, stdout, "HEX Grid Tessellator")
	assert.Contains(t, stdout, "Saved: "+out)
}

func TestRunAppendsPNGExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "noext")
	code, _, stderr := runCLI(t, withSmall("--file", base)...)
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, base+".png")
	assert.NoFileExists(t, base)
}

func TestRunOtherFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"hex.bmp", "hex.tiff"} {
		out := filepath.Join(dir, name)
		code, _, stderr := runCLI(t, withSmall("--file", out)...)
		require.Equal(t, 0, code, stderr)
		assert.FileExists(t, out)
	}
}

func TestRunDebugOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hex.png")
	code, stdout, _ := runCLI(t, withSmall("--file", out, "--debug", "--cull")...)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Image size:       64 x 48")
	assert.Contains(t, stdout, "(auto-computed from requested 0)")
	assert.Contains(t, stdout, "Polygons drawn:")
	assert.Contains(t, stdout, "Cull:             true")
}

func TestRunInvalidInputs(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"antialias", []string{"--antialias", "ultra"}, "unknown antialias level"},
		{"color", []string{"--color_fill", "notacolor"}, "invalid color"},
		{"negative radius", []string{"--circumradius", "-4"}, "circumradius must be a non-negative number"},
		{"zero width", []string{"--width", "0"}, "canvas dimensions must be positive"},
		{"nan radius", []string{"--circumradius", "NaN"}, "must be finite"},
		{"infinite margin", []string{"--margin", "+Inf"}, "must be finite"},
		{"rasterizer", []string{"--rasterizer", "gpu"}, "unknown rasterizer"},
		{"missing import", []string{"--import_settings", filepath.Join(dir, "nonexistent_file_12345.json")}, "settings file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := withSmall(append([]string{"--file", filepath.Join(dir, tt.name+".png")}, tt.args...)...)
			code, stdout, stderr := runCLI(t, args...)
			assert.NotEqual(t, 0, code)
			assert.Contains(t, stderr, tt.want)
			assert.NotContains(t, stdout, "Saved:")
		})
	}
}

func TestRunMalformedImport(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))

	code, _, stderr := runCLI(t, withSmall("--file", filepath.Join(dir, "x.png"), "--import_settings", bad)...)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "malformed settings file")
}

func TestRunExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	settingsBase := filepath.Join(dir, "settings")
	first := filepath.Join(dir, "first.png")

	code, stdout, stderr := runCLI(t, withSmall("--file", first, "--cull", "--export_settings", settingsBase)...)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Saved: "+settingsBase+".json")

	data, err := os.ReadFile(settingsBase + ".json")
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(64), raw["width"])
	assert.Equal(t, true, raw["cull"])
	assert.Equal(t, first, raw["file"])

	// Importing with no other flags reproduces the first render exactly.
	code, _, stderr = runCLI(t, "--import_settings", settingsBase+".json")
	require.Equal(t, 0, code, stderr)

	again := filepath.Join(dir, "again.png")
	code, _, stderr = runCLI(t, "--import_settings", settingsBase, "--file", again)
	require.Equal(t, 0, code, stderr)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(again)
	require.NoError(t, err)
	assert.Equal(t, a, b, "explicit --file must override the imported file while other settings apply")
}

func TestRunCLIOverridesImport(t *testing.T) {
	dir := t.TempDir()
	fromJSON := filepath.Join(dir, "from_json.png")
	fromCLI := filepath.Join(dir, "from_cli.png")
	cfg := filepath.Join(dir, "cfg.json")

	data, err := json.Marshal(map[string]any{
		"width": 32, "height": 32, "layers": 2, "antialias": "off", "file": fromJSON, "debug": false,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg, data, 0o644))

	code, _, stderr := runCLI(t, "--import_settings", cfg, "--file", fromCLI)
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, fromCLI)
	assert.NoFileExists(t, fromJSON)
}

func TestParseFlagsExplicit(t *testing.T) {
	var stderr bytes.Buffer
	o, err := parseFlags([]string{"--width", "10", "--debug"}, &stderr)
	require.NoError(t, err)
	assert.True(t, o.explicit["width"])
	assert.True(t, o.explicit["debug"])
	assert.False(t, o.explicit["height"])
	assert.True(t, o.Debug)
	assert.Equal(t, 768, o.Height)
}

func TestParseFlagsBoolValues(t *testing.T) {
	var stderr bytes.Buffer
	o, err := parseFlags([]string{"--cull=yes", "--debug=0"}, &stderr)
	require.NoError(t, err)
	assert.True(t, o.Cull)
	assert.False(t, o.Debug)

	_, err = parseFlags([]string{"--cull=maybe"}, &stderr)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "a.png", outputPath("a"))
	assert.Equal(t, "a.PNG", outputPath("a.PNG"))
	assert.Equal(t, "a.bmp", outputPath("a.bmp"))
	assert.Equal(t, "a.jpg.png", outputPath("a.jpg"))
}
