package theme

import (
	"image/color"
	"testing"
)

func TestParseOverridesSubset(t *testing.T) {
	th, err := Parse([]byte("light_square: \"#ffffff\"\nhighlight: \"#ff000080\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.LightSquare != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("light square = %+v", th.LightSquare)
	}
	if th.Highlight != (color.NRGBA{R: 255, A: 128}) {
		t.Fatalf("highlight = %+v", th.Highlight)
	}
	// Untouched keys keep their defaults.
	if th.DarkSquare != Default().DarkSquare {
		t.Fatalf("dark square changed: %+v", th.DarkSquare)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("border: \"#000000\"\n")); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestParseRejectsMalformedColor(t *testing.T) {
	if _, err := Parse([]byte("dark_square: \"brown\"\n")); err == nil {
		t.Fatalf("expected error for malformed color")
	}
	if _, err := Parse([]byte("dark_square: \"#12345\"\n")); err == nil {
		t.Fatalf("expected error for short hex color")
	}
}
