// Barney Feed — a status line generator for barney.
//
// Usage:
//
//	barney-feed [flags] | barney -height 20
//
// Flags:
//
//	--interval      Sampling interval (default: 5s)
//	--clock-format  time.Time layout for the clock field (default: 15:04)
//	--battery       Power supply name under /sys/class/power_supply
//	                (default: BAT0; empty disables the field)
//
// Every tick it prints one aligned markup line: clock on the left, load
// and memory in the center, battery on the right.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HarveyHunt/barney/internal/feed"
	"github.com/HarveyHunt/barney/internal/markup"
)

func main() {
	interval := flag.Duration("interval", 5*time.Second, "Sampling interval")
	clockFormat := flag.String("clock-format", "15:04", "Clock layout string")
	battery := flag.String("battery", "BAT0", "Power supply name (empty disables the battery field)")
	flag.Parse()

	entries := []feed.Entry{
		{Provider: feed.NewClock(*clockFormat), Align: markup.Left},
		{Provider: feed.NewLoadAvg(), Align: markup.Center},
		{Provider: feed.NewMemory(), Align: markup.Center},
	}
	if *battery != "" {
		entries = append(entries, feed.Entry{Provider: feed.NewBattery(*battery), Align: markup.Right})
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	// First line immediately so the bar has content before the first tick.
	fmt.Println(feed.ComposeLine(entries))
	for {
		select {
		case <-ticker.C:
			fmt.Println(feed.ComposeLine(entries))
		case <-sigChan:
			return
		}
	}
}
