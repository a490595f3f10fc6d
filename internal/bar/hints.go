package bar

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/HarveyHunt/barney/internal/atom"
)

const appName = "barney"

// atomRef names a property or type either as an already-resolved atom or
// as a name resolved through the cache at the call site.
type atomRef struct {
	id   xproto.Atom
	name string
}

func resolved(a xproto.Atom) atomRef { return atomRef{id: a} }
func named(n string) atomRef         { return atomRef{name: n} }

func (r atomRef) atom(cache *atom.Cache) (xproto.Atom, error) {
	if r.name != "" {
		return cache.Get(r.name)
	}
	return r.id, nil
}

func (r atomRef) String() string {
	if r.name != "" {
		return r.name
	}
	return fmt.Sprintf("atom %d", r.id)
}

// setDockHints declares the bar's panel semantics to the window manager:
// reserved screen space, always-above, sticky across desktops, on every
// desktop. Each write is checked and the first failure aborts setup.
func (b *Bar) setDockHints() error {
	for _, prop := range []string{"_NET_WM_NAME", "_NET_WM_ICON_NAME", "_NET_WM_CLASS"} {
		err := b.changeProp(xproto.PropModeReplace, named(prop), named("UTF8_STRING"),
			8, []byte(appName))
		if err != nil {
			return err
		}
	}

	if b.cfg.Opacity != 1.0 {
		opacity := uint32(math.Round(b.cfg.Opacity * 0xFFFFFFFF))
		err := b.changeProp(xproto.PropModeReplace, named("_NET_WM_WINDOW_OPACITY"),
			resolved(xproto.AtomCardinal), 32, cardinals(opacity))
		if err != nil {
			return err
		}
	}

	strut := strutFor(b.cfg.Bottom, b.height, b.width)
	err := b.changeProp(xproto.PropModeReplace, named("_NET_WM_STRUT_PARTIAL"),
		resolved(xproto.AtomCardinal), 32, cardinals(strut[:]...))
	if err != nil {
		return err
	}
	err = b.changeProp(xproto.PropModeReplace, named("_NET_WM_STRUT"),
		resolved(xproto.AtomCardinal), 32, cardinals(strut[:4]...))
	if err != nil {
		return err
	}

	dock, err := b.cache.Get("_NET_WM_WINDOW_TYPE_DOCK")
	if err != nil {
		return err
	}
	err = b.changeProp(xproto.PropModeReplace, named("_NET_WM_WINDOW_TYPE"),
		resolved(xproto.AtomAtom), 32, cardinals(uint32(dock)))
	if err != nil {
		return err
	}

	// Replace with ABOVE, then append STICKY: some window managers read
	// multi-value state lists additively, so the two values go in as two
	// separate writes.
	above, err := b.cache.Get("_NET_WM_STATE_ABOVE")
	if err != nil {
		return err
	}
	err = b.changeProp(xproto.PropModeReplace, named("_NET_WM_STATE"),
		resolved(xproto.AtomAtom), 32, cardinals(uint32(above)))
	if err != nil {
		return err
	}
	sticky, err := b.cache.Get("_NET_WM_STATE_STICKY")
	if err != nil {
		return err
	}
	err = b.changeProp(xproto.PropModeAppend, named("_NET_WM_STATE"),
		resolved(xproto.AtomAtom), 32, cardinals(uint32(sticky)))
	if err != nil {
		return err
	}

	return b.changeProp(xproto.PropModeReplace, named("_NET_WM_DESKTOP"),
		resolved(xproto.AtomCardinal), 32, cardinals(0xFFFFFFFF))
}

// changeProp is a checked property write with the identifier of the
// property and its type resolved through the atom cache as needed. The
// element count is derived from the format.
func (b *Bar) changeProp(mode byte, prop, typ atomRef, format byte, data []byte) error {
	p, err := prop.atom(b.cache)
	if err != nil {
		return err
	}
	t, err := typ.atom(b.cache)
	if err != nil {
		return err
	}
	units := uint32(len(data)) / uint32(format/8)
	if err := xproto.ChangePropertyChecked(b.x, mode, b.win, p, t, format, units, data).Check(); err != nil {
		return fmt.Errorf("setting %s: %w", prop, err)
	}
	return nil
}

// strutFor builds the 12-slot _NET_WM_STRUT_PARTIAL vector:
//
//	{left, right, top, bottom, left_start_y, left_end_y, right_start_y,
//	 right_end_y, top_start_x, top_end_x, bottom_start_x, bottom_end_x}
//
// Exactly one edge reserves space, and its occupied range spans the full
// bar width.
func strutFor(bottom bool, height, width uint16) [12]uint32 {
	var strut [12]uint32
	if bottom {
		strut[3] = uint32(height)
		strut[11] = uint32(width)
	} else {
		strut[2] = uint32(height)
		strut[9] = uint32(width)
	}
	return strut
}

// cardinals packs 32-bit values into property data, client byte order.
func cardinals(vals ...uint32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		xgb.Put32(buf[4*i:], v)
	}
	return buf
}
