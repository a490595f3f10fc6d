package bar

import (
	"testing"

	"github.com/BurntSushi/xgb"
)

// TestStrutFor verifies the 12-slot strut vector per dock edge: exactly
// one edge reserves space and its occupied range spans the full width.
func TestStrutFor(t *testing.T) {
	const height, width = 24, 1920

	bottom := strutFor(true, height, width)
	if bottom[3] != height {
		t.Errorf("bottom strut slot 3 = %d, want %d", bottom[3], height)
	}
	if bottom[11] != width {
		t.Errorf("bottom strut slot 11 = %d, want %d", bottom[11], width)
	}
	for i, v := range bottom {
		if i != 3 && i != 11 && v != 0 {
			t.Errorf("bottom strut slot %d = %d, want 0", i, v)
		}
	}

	top := strutFor(false, height, width)
	if top[2] != height {
		t.Errorf("top strut slot 2 = %d, want %d", top[2], height)
	}
	if top[9] != width {
		t.Errorf("top strut slot 9 = %d, want %d", top[9], width)
	}
	for i, v := range top {
		if i != 2 && i != 9 && v != 0 {
			t.Errorf("top strut slot %d = %d, want 0", i, v)
		}
	}
}

// TestCardinals verifies 32-bit property packing round-trips through the
// protocol byte-order helpers.
func TestCardinals(t *testing.T) {
	data := cardinals(1, 0xFFFFFFFF, 0x0A0B0C0D)
	if len(data) != 12 {
		t.Fatalf("cardinals packed %d bytes, want 12", len(data))
	}
	for i, want := range []uint32{1, 0xFFFFFFFF, 0x0A0B0C0D} {
		if got := xgb.Get32(data[4*i:]); got != want {
			t.Errorf("cardinal %d = %#x, want %#x", i, got, want)
		}
	}
}

// TestConfigValidate pins the config invariants.
func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Height = 20
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	// Geometry that cannot survive the 16-bit wire conversions must be
	// rejected here rather than silently wrapped.
	bad := []func(*Config){
		func(c *Config) { c.Height = 0 },
		func(c *Config) { c.Height = -5 },
		func(c *Config) { c.Height = 100000 },
		func(c *Config) { c.Opacity = 1.5 },
		func(c *Config) { c.Opacity = -0.1 },
		func(c *Config) { c.Width = -1 },
		func(c *Config) { c.Width = 70000 },
		func(c *Config) { c.X = 40000 },
		func(c *Config) { c.Y = -40000 },
	}
	for i, mutate := range bad {
		c := DefaultConfig()
		c.Height = 20
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: invalid config accepted: %+v", i, c)
		}
	}
}
