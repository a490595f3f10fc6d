// Package bar owns the dock window and everything that keeps it on
// screen: EWMH panel hints, the double-buffered renderer and the event
// loop merging X events with stdin.
//
// Data flow:
//
//	stdin line → markup.Parse → Renderer.DrawAligned → back buffer → CopyArea → window
//	X Expose/ButtonPress → Loop → Renderer.Present / termination
//
// One Bar holds the process-lifetime X resources (connection, window,
// pixmap, graphics context, font). They are created once in New and torn
// down only at exit — there is no steady-state resource churn.
package bar

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/HarveyHunt/barney/internal/atom"
	"github.com/HarveyHunt/barney/internal/text"
)

// Bar is the bar's window, back buffer and renderer bound to one X
// connection.
type Bar struct {
	cfg    Config
	x      *xgb.Conn
	screen *xproto.ScreenInfo
	cache  *atom.Cache

	win    xproto.Window
	pixmap xproto.Pixmap
	gc     xproto.Gcontext

	width  uint16
	height uint16

	layout   *text.Layout
	renderer *Renderer
}

// New connects to the X server, creates the window/back-buffer/GC triple,
// programs the dock hints and maps the window. Any checked failure before
// mapping aborts setup: a half-configured dock is worse than no dock.
func New(cfg Config) (*Bar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	x, err := xgb.NewConnDisplay("")
	if err != nil {
		return nil, fmt.Errorf("connecting to X server: %w", err)
	}

	b := &Bar{
		cfg:    cfg,
		x:      x,
		screen: xproto.Setup(x).DefaultScreen(x),
		cache:  atom.NewCache(x),
		height: uint16(cfg.Height),
	}
	b.width = uint16(cfg.Width)
	if cfg.Width == 0 {
		b.width = b.screen.WidthInPixels
	}

	if err := b.createSurfaces(); err != nil {
		x.Close()
		return nil, err
	}
	if err := b.setDockHints(); err != nil {
		x.Close()
		return nil, fmt.Errorf("programming dock hints: %w", err)
	}

	layout, err := text.NewLayout(x, cfg.Font, cfg.FontSize)
	if err != nil {
		x.Close()
		return nil, err
	}
	b.layout = layout
	b.renderer = newRenderer(b)

	xproto.MapWindow(x, b.win)
	// Round-trip so every setup request has landed before the loop runs.
	x.Sync()
	return b, nil
}

// Run paints the initial empty frame and drives the event loop until a
// protocol error or, in the plain profile, a button press.
func (b *Bar) Run() error {
	if err := b.renderer.Clear(); err != nil {
		return err
	}
	if err := b.renderer.Present(); err != nil {
		return err
	}
	lines, err := newStdinSource(os.Stdin)
	if err != nil {
		return err
	}
	loop := newLoop(xEvents{x: b.x}, lines, b.renderer, b.cfg.Plain)
	return loop.Run()
}

// Close releases the bar's X resources and drops the connection.
func (b *Bar) Close() {
	if b.layout != nil {
		b.layout.Close()
	}
	xproto.FreeGC(b.x, b.gc)
	xproto.FreePixmap(b.x, b.pixmap)
	b.x.Close()
}

// origin computes the window position from the config and dock edge.
func (b *Bar) origin() (int16, int16) {
	y := b.cfg.Y
	if y == AutoY {
		y = 0
		if b.cfg.Bottom {
			y = int(b.screen.HeightInPixels) - int(b.height)
		}
	}
	return int16(b.cfg.X), int16(y)
}

// createSurfaces creates the window, its same-sized back buffer and the
// graphics context used for every draw and blit. The window's event
// interest is limited to exactly what the loop handles.
func (b *Bar) createSurfaces() error {
	win, err := xproto.NewWindowId(b.x)
	if err != nil {
		return fmt.Errorf("allocating window id: %w", err)
	}
	pixmap, err := xproto.NewPixmapId(b.x)
	if err != nil {
		return fmt.Errorf("allocating pixmap id: %w", err)
	}
	gc, err := xproto.NewGcontextId(b.x)
	if err != nil {
		return fmt.Errorf("allocating gcontext id: %w", err)
	}
	b.win, b.pixmap, b.gc = win, pixmap, gc

	ox, oy := b.origin()
	err = xproto.CreateWindowChecked(b.x, b.screen.RootDepth, win, b.screen.Root,
		ox, oy, b.width, b.height, 0,
		xproto.WindowClassInputOutput, b.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			b.cfg.Background.Pixel(),
			xproto.EventMaskButtonPress | xproto.EventMaskEnterWindow |
				xproto.EventMaskLeaveWindow | xproto.EventMaskExposure,
		}).Check()
	if err != nil {
		return fmt.Errorf("creating bar window: %w", err)
	}

	err = xproto.CreatePixmapChecked(b.x, b.screen.RootDepth, pixmap,
		xproto.Drawable(b.screen.Root), b.width, b.height).Check()
	if err != nil {
		return fmt.Errorf("creating back buffer: %w", err)
	}

	err = xproto.CreateGCChecked(b.x, gc, xproto.Drawable(pixmap),
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{b.cfg.Foreground.Pixel(), b.cfg.Background.Pixel()}).Check()
	if err != nil {
		return fmt.Errorf("creating graphics context: %w", err)
	}
	return nil
}
