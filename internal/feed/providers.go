// Package feed implements the status providers behind barney-feed.
//
// A provider samples one system fact (time, load, memory, battery) and
// returns it as a short markup field. Providers are composed into one
// bar input line per tick; a failing provider drops its field for that
// tick and is logged, never fatal — the feeder keeps running with
// whatever it can still read, mirroring the bar's own stance on
// malformed input.
package feed

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/HarveyHunt/barney/internal/markup"
)

// Provider supplies one field of the status line.
type Provider interface {
	// Name identifies the provider in warnings.
	Name() string
	// Collect returns the field's current markup text.
	Collect() (string, error)
}

// Entry pairs a provider with the bar region its output lands in.
type Entry struct {
	Provider Provider
	Align    markup.Align
}

// ComposeLine samples every provider and assembles one input line for
// the bar, fields grouped in left/center/right order.
func ComposeLine(entries []Entry) string {
	var b strings.Builder
	for _, align := range []markup.Align{markup.Left, markup.Center, markup.Right} {
		for _, e := range entries {
			if e.Align != align {
				continue
			}
			text, err := e.Provider.Collect()
			if err != nil {
				log.Printf("[WARN] %s: %v", e.Provider.Name(), err)
				continue
			}
			b.WriteString(tagFor(align))
			b.WriteString(text)
		}
	}
	return b.String()
}

func tagFor(a markup.Align) string {
	switch a {
	case markup.Center:
		return "^c"
	case markup.Right:
		return "^r"
	default:
		return "^l"
	}
}

// ============================================================
// Providers
// ============================================================

// Clock reports the local time.
type Clock struct {
	// Format is a time.Time layout string.
	Format string

	now func() time.Time
}

func NewClock(format string) *Clock {
	return &Clock{Format: format, now: time.Now}
}

func (c *Clock) Name() string { return "clock" }

func (c *Clock) Collect() (string, error) {
	return c.now().Format(c.Format), nil
}

// LoadAvg reports the 1/5/15 minute load averages.
type LoadAvg struct {
	// Path is the loadavg file, overridable in tests.
	Path string
}

func NewLoadAvg() *LoadAvg {
	return &LoadAvg{Path: "/proc/loadavg"}
}

func (l *LoadAvg) Name() string { return "loadavg" }

func (l *LoadAvg) Collect() (string, error) {
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", l.Path, err)
	}
	fields := strings.Fields(string(raw))
	if len(fields) < 3 {
		return "", fmt.Errorf("malformed loadavg %q", strings.TrimSpace(string(raw)))
	}
	return "load " + strings.Join(fields[:3], " "), nil
}

// Memory reports used memory as a percentage of total.
type Memory struct {
	// Path is the meminfo file, overridable in tests.
	Path string
}

func NewMemory() *Memory {
	return &Memory{Path: "/proc/meminfo"}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) Collect() (string, error) {
	raw, err := os.ReadFile(m.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", m.Path, err)
	}

	var total, avail int64 = -1, -1
	for _, line := range strings.Split(string(raw), "\n") {
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		kb, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			continue
		}
		switch name {
		case "MemTotal":
			total = kb
		case "MemAvailable":
			avail = kb
		}
	}
	if total <= 0 || avail < 0 {
		return "", fmt.Errorf("missing MemTotal/MemAvailable in %s", m.Path)
	}
	return fmt.Sprintf("mem %d%%", (total-avail)*100/total), nil
}

// Battery reports charge percentage and state from sysfs.
type Battery struct {
	// Dir is the power supply directory, overridable in tests.
	Dir string
}

func NewBattery(name string) *Battery {
	return &Battery{Dir: filepath.Join("/sys/class/power_supply", name)}
}

func (b *Battery) Name() string { return "battery" }

func (b *Battery) Collect() (string, error) {
	raw, err := os.ReadFile(filepath.Join(b.Dir, "capacity"))
	if err != nil {
		return "", fmt.Errorf("reading battery capacity: %w", err)
	}
	pct := strings.TrimSpace(string(raw))

	// A missing status file just means no charge indicator.
	if raw, err := os.ReadFile(filepath.Join(b.Dir, "status")); err == nil {
		if strings.EqualFold(strings.TrimSpace(string(raw)), "Charging") {
			return fmt.Sprintf("bat %s%%+", pct), nil
		}
	}
	return fmt.Sprintf("bat %s%%", pct), nil
}
