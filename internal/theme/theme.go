// Package theme holds the board color scheme and loads optional
// user overrides from a small YAML file.
package theme

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Theme is the set of colors the rasterizer draws with.
type Theme struct {
	LightSquare color.NRGBA
	DarkSquare  color.NRGBA
	Highlight   color.NRGBA
	Coordinate  color.NRGBA
}

// Default returns the stock board colors.
func Default() Theme {
	return Theme{
		LightSquare: color.NRGBA{R: 233, G: 207, B: 163, A: 255},
		DarkSquare:  color.NRGBA{R: 187, G: 136, B: 96, A: 255},
		Highlight:   color.NRGBA{R: 255, G: 228, B: 120, A: 140},
		Coordinate:  color.NRGBA{R: 70, G: 48, B: 32, A: 255},
	}
}

type themeFile struct {
	LightSquare string `yaml:"light_square"`
	DarkSquare  string `yaml:"dark_square"`
	Highlight   string `yaml:"highlight"`
	Coordinate  string `yaml:"coordinate"`
}

// Load reads a theme override file. Missing keys keep the defaults,
// unknown keys and malformed colors are errors.
func Load(path string) (Theme, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML theme data on top of the default theme.
func Parse(raw []byte) (Theme, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var tf themeFile
	if err := dec.Decode(&tf); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}

	t := Default()
	fields := []struct {
		value string
		dst   *color.NRGBA
		key   string
	}{
		{tf.LightSquare, &t.LightSquare, "light_square"},
		{tf.DarkSquare, &t.DarkSquare, "dark_square"},
		{tf.Highlight, &t.Highlight, "highlight"},
		{tf.Coordinate, &t.Coordinate, "coordinate"},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		c, err := parseHexColor(f.value)
		if err != nil {
			return Theme{}, fmt.Errorf("theme key %s: %w", f.key, err)
		}
		*f.dst = c
	}
	return t, nil
}

// parseHexColor accepts #rrggbb and #rrggbbaa.
func parseHexColor(s string) (color.NRGBA, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) != 6 && len(v) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	c := color.NRGBA{A: 255}
	if len(v) == 8 {
		c.A = uint8(n & 0xff)
		n >>= 8
	}
	c.B = uint8(n & 0xff)
	c.G = uint8(n >> 8 & 0xff)
	c.R = uint8(n >> 16 & 0xff)
	return c, nil
}
