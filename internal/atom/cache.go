// Package atom resolves and caches the fixed set of EWMH atom
// identifiers the dock hints need.
//
// All InternAtom requests are issued at construction so their round-trip
// latency overlaps across the whole set; replies are only taken the first
// time a name is actually used. Once resolved, an identifier never
// changes for the lifetime of the process.
package atom

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// ErrUnknown is returned when a name outside the preloaded set is looked
// up. That can only happen from a code defect, never from input, so it is
// surfaced instead of swallowed.
var ErrUnknown = errors.New("atom name not preloaded")

// Names is the fixed set of well-known property and type names the bar
// programs during hint setup.
var Names = []string{
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DOCK",
	"_NET_WM_DESKTOP",
	"_NET_WM_STRUT_PARTIAL",
	"_NET_WM_STRUT",
	"_NET_WM_STATE",
	"_NET_WM_STATE_ABOVE",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_NAME",
	"_NET_WM_ICON_NAME",
	"_NET_WM_CLASS",
	"_NET_WM_WINDOW_OPACITY",
	"UTF8_STRING",
}

// lookup blocks on a pending InternAtom reply.
type lookup func() (xproto.Atom, error)

// Cache maps well-known names to interned atoms. It is populated once at
// startup and read-only afterwards; the bar is single-threaded, so no
// locking is needed.
type Cache struct {
	atoms   map[string]xproto.Atom
	pending map[string]lookup
}

// NewCache issues one InternAtom request per well-known name on the given
// connection and returns a cache whose replies resolve lazily.
func NewCache(x *xgb.Conn) *Cache {
	c := newCache(nil)
	for _, name := range Names {
		cookie := xproto.InternAtom(x, false, uint16(len(name)), name)
		c.pending[name] = func() (xproto.Atom, error) {
			reply, err := cookie.Reply()
			if err != nil {
				return 0, err
			}
			return reply.Atom, nil
		}
	}
	return c
}

// newCache builds a cache from explicit lookups. Split out so tests can
// exercise resolution without an X server.
func newCache(pending map[string]lookup) *Cache {
	if pending == nil {
		pending = make(map[string]lookup, len(Names))
	}
	return &Cache{
		atoms:   make(map[string]xproto.Atom, len(Names)),
		pending: pending,
	}
}

// Get returns the atom for name, blocking on the pending reply the first
// time and answering from the cache afterwards. Unknown names fail with
// ErrUnknown.
func (c *Cache) Get(name string) (xproto.Atom, error) {
	if a, ok := c.atoms[name]; ok {
		return a, nil
	}
	look, ok := c.pending[name]
	if !ok {
		return 0, fmt.Errorf("resolving %q: %w", name, ErrUnknown)
	}
	a, err := look()
	if err != nil {
		return 0, fmt.Errorf("interning %q: %w", name, err)
	}
	c.atoms[name] = a
	return a, nil
}
