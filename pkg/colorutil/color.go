// Package colorutil decodes user-supplied color strings into the
// normalized channel triples the bar renders with.
//
// Colors arrive as hex strings on the command line ("#RRGGBB") or inside
// span markup; everything past this package works with normalized
// [0,1] channels or X pixel values.
package colorutil

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a color with channels normalized to [0,1].
type RGB struct {
	R, G, B float64
}

// Parse decodes a hex color string. The leading '#' is optional and the
// short "#RGB" form is accepted alongside "#RRGGBB".
func Parse(s string) (RGB, error) {
	hex := s
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) == 4 {
		// Expand #RGB to #RRGGBB; go-colorful only takes the long form.
		hex = fmt.Sprintf("#%c%c%c%c%c%c", hex[1], hex[1], hex[2], hex[2], hex[3], hex[3])
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("decoding color %q: %w", s, err)
	}
	return RGB{R: c.R, G: c.G, B: c.B}, nil
}

// Pixel returns the 24-bit TrueColor pixel value (0xRRGGBB) used for
// graphics context foreground/background values.
func (c RGB) Pixel() uint32 {
	r := channelByte(c.R)
	g := channelByte(c.G)
	b := channelByte(c.B)
	return r<<16 | g<<8 | b
}

func channelByte(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint32(v*255 + 0.5)
}
