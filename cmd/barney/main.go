// Barney — a lightweight X11 status bar.
//
// Usage:
//
//	some-feeder | barney -height 20 [flags]
//
// Barney reads newline-terminated lines on stdin. Fields inside a line
// are delimited by '^' and begin with an alignment tag — ^l, ^c or ^r —
// followed by markup passed through to the text engine:
//
//	^lclock: 10:32^ccpu: 12%^rbattery: 91%
//
// With -plain, each line is rendered verbatim instead and a mouse click
// dismisses the bar.
package main

import (
	"flag"
	"log"

	"github.com/HarveyHunt/barney/internal/bar"
	"github.com/HarveyHunt/barney/pkg/colorutil"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("barney: ")

	cfg := bar.DefaultConfig()

	height := flag.Int("height", 0, "Bar height in pixels (required)")
	fg := flag.String("fg", "#FFFFFF", "Foreground color")
	bg := flag.String("bg", "#000000", "Background color")
	flag.BoolVar(&cfg.Bottom, "bottom", false, "Dock to the bottom screen edge")
	flag.Float64Var(&cfg.Opacity, "opacity", cfg.Opacity, "Window opacity in [0,1]")
	flag.StringVar(&cfg.Font, "font", cfg.Font, "Font family")
	flag.StringVar(&cfg.FontSize, "fontsize", cfg.FontSize, "Font pixel size")
	flag.StringVar(&cfg.Separator, "separator", cfg.Separator, "Separator between same-aligned segments")
	flag.IntVar(&cfg.Width, "width", 0, "Bar width in pixels (default: full screen width)")
	flag.IntVar(&cfg.X, "x", 0, "Left edge of a floating bar")
	flag.IntVar(&cfg.Y, "y", bar.AutoY, "Top edge of a floating bar (default: derived from the dock edge)")
	flag.BoolVar(&cfg.Plain, "plain", false, "Render lines verbatim and dismiss the bar on click")
	flag.Parse()

	cfg.Height = *height

	var err error
	if cfg.Foreground, err = colorutil.Parse(*fg); err != nil {
		log.Fatalf("Invalid foreground color: %v", err)
	}
	if cfg.Background, err = colorutil.Parse(*bg); err != nil {
		log.Fatalf("Invalid background color: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	b, err := bar.New(cfg)
	if err != nil {
		log.Fatalf("Failed to set up the bar: %v", err)
	}
	defer b.Close()

	if err := b.Run(); err != nil {
		log.Fatalf("Bar terminated: %v", err)
	}
}
