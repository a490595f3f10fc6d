package bar

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/sys/unix"

	"github.com/HarveyHunt/barney/internal/markup"
)

// loopState tracks the lifecycle of the event loop.
type loopState int

const (
	stateIdle loopState = iota
	stateDraining
	stateTerminated
)

// eventKind is the closed set of windowing events the loop reacts to.
// Everything else the connection delivers maps to eventOther and is
// ignored.
type eventKind int

const (
	eventNone eventKind = iota
	eventExpose
	eventButtonPress
	eventOther
)

// eventSource yields pending windowing events without blocking. A
// non-nil error is a protocol error: the connection is no longer
// trustworthy and the loop must stop.
type eventSource interface {
	Poll() (eventKind, error)
}

// lineSource yields complete input lines without blocking. ok is false
// when no full line is ready; io.EOF marks a closed stream.
type lineSource interface {
	Poll() (line string, ok bool, err error)
}

// canvas is the slice of the renderer the loop drives.
type canvas interface {
	Clear() error
	DrawAligned(segments []string, align markup.Align) error
	Present() error
}

// Loop merges the windowing connection and the input stream into one
// single-threaded poll cycle. Neither source is ever blocked on, so
// neither can starve the other, and within one iteration windowing
// events are always drained before the input stream is checked — visual
// repair is never stuck behind a busy feeder. All mutable render state
// is touched only from this loop, so no locks exist anywhere.
type Loop struct {
	events eventSource
	lines  lineSource
	canvas canvas
	plain  bool

	// settle is the pause after reading a line that lets a burst of
	// lines coalesce into a single render. Debounce, not correctness.
	settle time.Duration
	// idle is the pause when neither source had anything, keeping the
	// zero-timeout polls from spinning a core.
	idle  time.Duration
	sleep func(time.Duration)

	state loopState
	eof   bool
}

func newLoop(events eventSource, lines lineSource, canvas canvas, plain bool) *Loop {
	return &Loop{
		events: events,
		lines:  lines,
		canvas: canvas,
		plain:  plain,
		settle: 100 * time.Millisecond,
		idle:   10 * time.Millisecond,
		sleep:  time.Sleep,
	}
}

// Run drives the loop until a protocol error or, in the plain profile, a
// button press. A clean dismissal returns nil.
func (l *Loop) Run() error {
	for l.state != stateTerminated {
		if err := l.step(); err != nil {
			return err
		}
	}
	return nil
}

// step performs one poll cycle: drain windowing events, then check the
// input stream once.
func (l *Loop) step() error {
	busy := false

	for {
		kind, err := l.events.Poll()
		if err != nil {
			l.state = stateTerminated
			return fmt.Errorf("protocol error: %w", err)
		}
		if kind == eventNone {
			break
		}
		busy = true
		l.state = stateDraining
		switch kind {
		case eventExpose:
			// Re-present the last composed frame. No re-parse, no
			// re-render: the back buffer still holds it.
			if err := l.canvas.Present(); err != nil {
				l.state = stateTerminated
				return err
			}
		case eventButtonPress:
			if l.plain {
				l.state = stateTerminated
				return nil
			}
		}
	}

	if !l.eof {
		line, ok, err := l.pollLine()
		if err != nil {
			l.state = stateTerminated
			return err
		}
		if ok {
			busy = true
			l.state = stateDraining
			if err := l.render(line); err != nil {
				l.state = stateTerminated
				return err
			}
		}
	}

	if !busy {
		l.state = stateIdle
		l.sleep(l.idle)
	}
	return nil
}

// pollLine reads one line when the stream is ready, settles briefly, and
// then takes the newest line that arrived in the meantime so a rapid
// burst collapses into one render.
func (l *Loop) pollLine() (string, bool, error) {
	line, ok, err := l.lines.Poll()
	if err == io.EOF {
		l.eof = true
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading input: %w", err)
	}
	if !ok {
		return "", false, nil
	}

	l.sleep(l.settle)
	for {
		next, ok, err := l.lines.Poll()
		if err == io.EOF {
			l.eof = true
			break
		}
		if err != nil {
			return "", false, fmt.Errorf("reading input: %w", err)
		}
		if !ok {
			break
		}
		line = next
	}
	return line, true, nil
}

// render replaces the visible frame with the given line. An empty line
// leaves the current frame alone.
func (l *Loop) render(line string) error {
	if line == "" {
		return nil
	}
	if err := l.canvas.Clear(); err != nil {
		return err
	}

	if l.plain {
		return l.canvas.DrawAligned([]string{line}, markup.Left)
	}

	segs := markup.Parse(line)
	draws := []struct {
		segments []string
		align    markup.Align
	}{
		{segs.Left, markup.Left},
		{segs.Center, markup.Center},
		{segs.Right, markup.Right},
	}
	for _, d := range draws {
		if len(d.segments) == 0 {
			continue
		}
		if err := l.canvas.DrawAligned(d.segments, d.align); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================
// Source adapters
// ============================================================

// xEvents adapts the xgb connection to the loop's closed event set.
type xEvents struct {
	x *xgb.Conn
}

func (s xEvents) Poll() (eventKind, error) {
	ev, xerr := s.x.PollForEvent()
	if xerr != nil {
		return eventNone, xerr
	}
	if ev == nil {
		return eventNone, nil
	}
	switch ev.(type) {
	case xproto.ExposeEvent:
		return eventExpose, nil
	case xproto.ButtonPressEvent:
		return eventButtonPress, nil
	default:
		return eventOther, nil
	}
}

// stdinSource reads complete newline-terminated lines from a file
// descriptor. Available bytes are pulled into an internal buffer after
// a zero-timeout readiness poll, and a line is only surfaced once its
// terminator has been buffered. A feeder that stalls mid-line therefore
// never stalls the caller with it.
type stdinSource struct {
	fd     int
	buf    []byte
	closed bool
}

func newStdinSource(f *os.File) (*stdinSource, error) {
	fd := int(f.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("setting stdin non-blocking: %w", err)
	}
	return &stdinSource{fd: fd}, nil
}

// Poll returns a line when a complete one is already buffered or can be
// read without waiting on the stream. A readable descriptor holding only
// part of a line yields not-ready until the rest arrives.
func (s *stdinSource) Poll() (string, bool, error) {
	if line, ok := s.takeLine(); ok {
		return line, true, nil
	}
	if !s.closed {
		ready, err := fdReady(s.fd)
		if err != nil {
			return "", false, err
		}
		if !ready {
			return "", false, nil
		}
		if err := s.fill(); err != nil {
			return "", false, err
		}
		if line, ok := s.takeLine(); ok {
			return line, true, nil
		}
	}
	if s.closed {
		if len(s.buf) > 0 {
			// Final line with no terminator.
			line := strings.TrimRight(string(s.buf), "\r")
			s.buf = nil
			return line, true, nil
		}
		return "", false, io.EOF
	}
	return "", false, nil
}

// takeLine cuts one terminated line out of the buffer.
func (s *stdinSource) takeLine() (string, bool) {
	i := bytes.IndexByte(s.buf, '\n')
	if i < 0 {
		return "", false
	}
	line := strings.TrimRight(string(s.buf[:i]), "\r")
	s.buf = s.buf[i+1:]
	return line, true
}

// fill moves whatever the descriptor holds right now into the buffer.
// The descriptor is non-blocking, so the drain ends at EAGAIN or EOF
// instead of waiting for more.
func (s *stdinSource) fill() error {
	chunk := make([]byte, 4096)
	for {
		n, err := unix.Read(s.fd, chunk)
		switch {
		case n > 0:
			s.buf = append(s.buf, chunk[:n]...)
		case n == 0 && err == nil:
			s.closed = true
			return nil
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			return nil
		default:
			return fmt.Errorf("reading stdin: %w", err)
		}
	}
}

// fdReady is a zero-timeout readiness check on a file descriptor.
func fdReady(fd int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("polling stdin: %w", err)
		}
		// POLLHUP still needs a read to observe the EOF.
		return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0, nil
	}
}
