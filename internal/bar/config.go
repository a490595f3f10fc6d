package bar

import (
	"fmt"
	"math"

	"github.com/HarveyHunt/barney/pkg/colorutil"
)

// AutoY derives the bar's top edge from the dock edge: 0 for a top bar,
// screen height minus bar height for a bottom bar.
const AutoY = -1

// Config describes the bar. It is assembled once from the command line
// and read-only afterwards.
type Config struct {
	// Height is the bar height in pixels. Required.
	Height int

	// Width is the bar width in pixels. 0 anchors the bar to the full
	// screen width; any other value makes a floating bar.
	Width int

	// X is the left edge of the bar window.
	X int

	// Y is the top edge of the bar window, or AutoY.
	Y int

	// Foreground and Background are the default text and fill colors.
	Foreground colorutil.RGB
	Background colorutil.RGB

	// Bottom docks the bar to the bottom screen edge instead of the top.
	Bottom bool

	// Opacity in [0,1]. Anything below 1.0 is advertised to the
	// compositor via _NET_WM_WINDOW_OPACITY.
	Opacity float64

	// Font is the core font family, FontSize its pixel size.
	Font     string
	FontSize string

	// Separator joins same-aligned segments into one rendered string.
	Separator string

	// Plain switches the interaction profile: lines are rendered
	// verbatim without alignment parsing, and a button press dismisses
	// the bar.
	Plain bool
}

// DefaultConfig returns the defaults the command line starts from:
// white on black, fully opaque, Sans 12, docked to the top edge.
func DefaultConfig() Config {
	return Config{
		Y:          AutoY,
		Foreground: colorutil.RGB{R: 1, G: 1, B: 1},
		Background: colorutil.RGB{},
		Opacity:    1.0,
		Font:       "Sans",
		FontSize:   "12",
	}
}

// Validate enforces the config invariants before any X resource exists.
// The geometry bounds match the wire types of the window setup: 16-bit
// unsigned sizes, 16-bit signed coordinates.
func (c Config) Validate() error {
	if c.Height <= 0 || c.Height > math.MaxUint16 {
		return fmt.Errorf("height must be within [1,%d], got %d", math.MaxUint16, c.Height)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity must be within [0,1], got %g", c.Opacity)
	}
	if c.Width < 0 || c.Width > math.MaxUint16 {
		return fmt.Errorf("width must be within [0,%d], got %d", math.MaxUint16, c.Width)
	}
	if c.X < math.MinInt16 || c.X > math.MaxInt16 {
		return fmt.Errorf("x must be within [%d,%d], got %d", math.MinInt16, math.MaxInt16, c.X)
	}
	if c.Y != AutoY && (c.Y < math.MinInt16 || c.Y > math.MaxInt16) {
		return fmt.Errorf("y must be within [%d,%d], got %d", math.MinInt16, math.MaxInt16, c.Y)
	}
	return nil
}
