package colorutil

import (
	"math"
	"testing"
)

// TestParseForms verifies the accepted hex input forms all decode to the
// same normalized triple.
func TestParseForms(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b float64
	}{
		{"#FFFFFF", 1, 1, 1},
		{"FFFFFF", 1, 1, 1},
		{"#000000", 0, 0, 0},
		{"#FF0000", 1, 0, 0},
		{"#F00", 1, 0, 0},
		{"0F0", 0, 1, 0},
	}

	for _, tc := range cases {
		c, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tc.in, err)
			continue
		}
		if !closeTo(c.R, tc.r) || !closeTo(c.G, tc.g) || !closeTo(c.B, tc.b) {
			t.Errorf("Parse(%q) = %+v, want (%g, %g, %g)", tc.in, c, tc.r, tc.g, tc.b)
		}
	}
}

// TestParseRejectsGarbage verifies malformed strings surface an error
// instead of a zero color.
func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12", "notacolor", "#GGGGGG"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

// TestPixel verifies the TrueColor pixel packing.
func TestPixel(t *testing.T) {
	cases := []struct {
		c    RGB
		want uint32
	}{
		{RGB{R: 1, G: 1, B: 1}, 0xFFFFFF},
		{RGB{}, 0x000000},
		{RGB{R: 1}, 0xFF0000},
		{RGB{G: 1}, 0x00FF00},
		{RGB{B: 1}, 0x0000FF},
		{RGB{R: 0.5, G: 0.5, B: 0.5}, 0x808080},
	}

	for _, tc := range cases {
		if got := tc.c.Pixel(); got != tc.want {
			t.Errorf("%+v.Pixel() = %#06x, want %#06x", tc.c, got, tc.want)
		}
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
