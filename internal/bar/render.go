package bar

import (
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/HarveyHunt/barney/internal/markup"
	"github.com/HarveyHunt/barney/internal/text"
)

// Renderer paints background and aligned text into the persistent back
// buffer and blits the result onto the window. Drawing requests are
// unchecked — a failure is a protocol error and surfaces through the
// event loop, where it is fatal anyway; only measurement can fail here.
type Renderer struct {
	x      *xgb.Conn
	pixmap xproto.Pixmap
	win    xproto.Window
	gc     xproto.Gcontext
	layout *text.Layout

	width, height uint16
	fg, bg        uint32
	separator     string
}

func newRenderer(b *Bar) *Renderer {
	return &Renderer{
		x:         b.x,
		pixmap:    b.pixmap,
		win:       b.win,
		gc:        b.gc,
		layout:    b.layout,
		width:     b.width,
		height:    b.height,
		fg:        b.cfg.Foreground.Pixel(),
		bg:        b.cfg.Background.Pixel(),
		separator: b.cfg.Separator,
	}
}

// Clear opaque-fills the back buffer with the background color so nothing
// from the previous frame survives into the next one.
func (r *Renderer) Clear() error {
	xproto.ChangeGC(r.x, r.gc, xproto.GcForeground, []uint32{r.bg})
	xproto.PolyFillRectangle(r.x, xproto.Drawable(r.pixmap), r.gc,
		[]xproto.Rectangle{{X: 0, Y: 0, Width: r.width, Height: r.height}})
	return nil
}

// DrawAligned joins segments with the configured separator, measures the
// result and renders it into the back buffer at the given alignment,
// then immediately blits the full buffer so the draw is visible. Callers
// skip empty segment lists; a degenerate empty render would still cost a
// blit.
func (r *Renderer) DrawAligned(segments []string, align markup.Align) error {
	r.layout.SetMarkup(strings.Join(segments, r.separator))
	textWidth, err := r.layout.PixelWidth()
	if err != nil {
		return err
	}

	var x int
	switch align {
	case markup.Center:
		x = (int(r.width) - textWidth) / 2
	case markup.Right:
		x = int(r.width) - textWidth
	}

	if err := r.layout.Render(xproto.Drawable(r.pixmap), r.gc, int16(x), r.fg, r.bg); err != nil {
		return err
	}
	return r.Present()
}

// Present blits the back buffer onto the window without repainting it.
// The back buffer is untouched, so repeated calls show the same frame.
func (r *Renderer) Present() error {
	xproto.CopyArea(r.x, xproto.Drawable(r.pixmap), xproto.Drawable(r.win), r.gc,
		0, 0, 0, 0, r.width, r.height)
	return nil
}
