// Package text renders styled strings onto X drawables.
//
// It is the bar's text engine boundary: callers hand it a markup string
// and a drawable, and get back a measured, rendered single line. Text is
// shaped with X core fonts — the font is chosen through an XLFD pattern
// built from the configured family and size, with "fixed" as the
// fallback.
//
// The markup dialect is a minimal Pango-compatible subset: a
// <span foreground="#RRGGBB"> tag colors the enclosed run, any other tag
// is stripped, and the five XML entities are unescaped. Everything the
// parser does not understand degrades to plain text rather than an error.
package text

import (
	"fmt"
	"log"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/HarveyHunt/barney/pkg/colorutil"
)

// ImageText8 carries the string inline in the request; the length field
// is one byte, so a run is drawn in chunks of at most this many bytes.
const maxTextChunk = 254

const fallbackFont = "fixed"

// Layout is a reusable single-line text layout bound to one connection
// and one font. Set content with SetMarkup, then measure or render it.
type Layout struct {
	x      *xgb.Conn
	font   xproto.Font
	ascent int16
	runs   []span
}

// NewLayout opens a core font matching the given family and size and
// binds a layout to it. A family with no matching core font falls back
// to "fixed" with a warning rather than failing setup.
func NewLayout(x *xgb.Conn, family, size string) (*Layout, error) {
	fid, err := xproto.NewFontId(x)
	if err != nil {
		return nil, fmt.Errorf("allocating font id: %w", err)
	}

	pattern := xlfd(family, size)
	if err := xproto.OpenFontChecked(x, fid, uint16(len(pattern)), pattern).Check(); err != nil {
		log.Printf("[WARN] No core font matches %q, falling back to %q", pattern, fallbackFont)
		if err := xproto.OpenFontChecked(x, fid, uint16(len(fallbackFont)), fallbackFont).Check(); err != nil {
			return nil, fmt.Errorf("opening fallback font: %w", err)
		}
	}

	info, err := xproto.QueryFont(x, xproto.Fontable(fid)).Reply()
	if err != nil {
		return nil, fmt.Errorf("querying font metrics: %w", err)
	}

	return &Layout{x: x, font: fid, ascent: info.FontAscent}, nil
}

// xlfd builds a core font pattern from a family name and a pixel size.
func xlfd(family, size string) string {
	return fmt.Sprintf("-*-%s-medium-r-*-*-%s-*-*-*-*-*-*-*", strings.ToLower(family), size)
}

// SetMarkup replaces the layout's content.
func (l *Layout) SetMarkup(s string) {
	l.runs = parseSpans(s)
}

// PixelWidth measures the rendered width of the current content.
func (l *Layout) PixelWidth() (int, error) {
	_, total, err := l.extents()
	return total, err
}

// Render draws the current content with its baseline at the font ascent,
// starting at x. Runs without their own span color use fg; the GC
// background is set to bg so each glyph cell paints opaquely.
//
// Drawing requests are unchecked: a failure here is a protocol error and
// surfaces through the event loop's poll, where it is fatal anyway.
func (l *Layout) Render(d xproto.Drawable, gc xproto.Gcontext, x int16, fg, bg uint32) error {
	widths, _, err := l.extents()
	if err != nil {
		return err
	}

	pen := x
	for i, run := range l.runs {
		pixel := fg
		if run.fg != "" {
			if c, err := colorutil.Parse(run.fg); err == nil {
				pixel = c.Pixel()
			}
			// A bad span color keeps the default foreground; malformed
			// markup is never fatal.
		}
		xproto.ChangeGC(l.x, gc, xproto.GcForeground|xproto.GcBackground|xproto.GcFont,
			[]uint32{pixel, bg, uint32(l.font)})
		if err := l.drawRun(d, gc, pen, run.text); err != nil {
			return err
		}
		pen += int16(widths[i])
	}
	return nil
}

// Close releases the font. The layout is unusable afterwards.
func (l *Layout) Close() {
	xproto.CloseFont(l.x, l.font)
}

// extents measures every run, batching the requests cookie-first so the
// round trips overlap.
func (l *Layout) extents() ([]int, int, error) {
	cookies := make([]xproto.QueryTextExtentsCookie, len(l.runs))
	for i, run := range l.runs {
		chars := chars2b(run.text)
		cookies[i] = xproto.QueryTextExtents(l.x, xproto.Fontable(l.font), chars, uint16(len(chars)))
	}

	widths := make([]int, len(l.runs))
	total := 0
	for i, cookie := range cookies {
		reply, err := cookie.Reply()
		if err != nil {
			return nil, 0, fmt.Errorf("measuring text: %w", err)
		}
		widths[i] = int(reply.OverallWidth)
		total += widths[i]
	}
	return widths, total, nil
}

// drawRun renders one run in request-sized chunks.
func (l *Layout) drawRun(d xproto.Drawable, gc xproto.Gcontext, x int16, s string) error {
	chunks := chunkRun(s)
	for i, chunk := range chunks {
		xproto.ImageText8(l.x, byte(len(chunk)), d, gc, x, l.ascent, chunk)
		if i == len(chunks)-1 {
			break
		}
		// Advance the pen by the chunk just drawn before continuing.
		chars := chars2b(chunk)
		reply, err := xproto.QueryTextExtents(l.x, xproto.Fontable(l.font), chars, uint16(len(chars))).Reply()
		if err != nil {
			return fmt.Errorf("measuring text: %w", err)
		}
		x += int16(reply.OverallWidth)
	}
	return nil
}

// chunkRun splits a run into pieces that fit the one-byte length field
// of the draw request.
func chunkRun(s string) []string {
	if s == "" {
		return nil
	}
	chunks := make([]string, 0, (len(s)+maxTextChunk-1)/maxTextChunk)
	for len(s) > maxTextChunk {
		chunks = append(chunks, s[:maxTextChunk])
		s = s[maxTextChunk:]
	}
	return append(chunks, s)
}

// chars2b widens a byte string into the two-byte characters the measure
// request takes. Core fonts index Latin-1 in the low byte.
func chars2b(s string) []xproto.Char2b {
	out := make([]xproto.Char2b, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = xproto.Char2b{Byte1: 0, Byte2: s[i]}
	}
	return out
}
