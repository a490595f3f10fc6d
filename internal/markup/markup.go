// Package markup splits one input line into the three alignment buckets
// the bar draws from.
//
// A line uses '^' as a field delimiter. The first character of each field
// is an alignment tag — 'l', 'c' or 'r' — and the rest of the field is
// passed through untouched to the text engine. Fields with an unknown or
// missing tag are dropped silently: a bad field never takes the bar down.
package markup

import "strings"

// Align selects one of the three horizontal regions of the bar.
type Align int

const (
	Left Align = iota
	Center
	Right
)

// Segments holds the ordered markup fields of one input line, one slice
// per alignment. A Segments value is rebuilt from every line and never
// retained across renders.
type Segments struct {
	Left   []string
	Center []string
	Right  []string
}

// Parse splits line on '^' and buckets each tagged field, preserving
// input order within each bucket. Single linear pass over the line.
func Parse(line string) Segments {
	var segs Segments
	for _, field := range strings.Split(line, "^") {
		if field == "" {
			// Leading or doubled delimiter.
			continue
		}
		switch field[0] {
		case 'l':
			segs.Left = append(segs.Left, field[1:])
		case 'c':
			segs.Center = append(segs.Center, field[1:])
		case 'r':
			segs.Right = append(segs.Right, field[1:])
		}
	}
	return segs
}
