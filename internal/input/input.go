// Package input turns raw terminal bytes into per-frame game input.
package input

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"time"
)

// Mouse tracking escape sequences: button presses (1000) reported in SGR
// extended coordinates (1006).
const (
	mouseOn  = "\033[?1000h\033[?1006h"
	mouseOff = "\033[?1006l\033[?1000l"
)

// escapeTimeout is how long a lone ESC waits for the rest of an escape
// sequence before it counts as the Escape key.
const escapeTimeout = 50 * time.Millisecond

// Click is a left-button press at a 1-based terminal cell.
type Click struct {
	Col int
	Row int
}

// Input is everything the player did since the previous frame.
type Input struct {
	Quit    bool
	Start   bool // s, Space or Enter
	Stop    bool // x or Escape
	Clicks  []Click
	Pressed []byte // Raw bytes read this frame, used for inactivity tracking
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte    // Incomplete escape sequence carried into the next frame
	escAt   time.Time // When a pending lone ESC arrived
	now     func() time.Time
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The stream reports Quit once r is exhausted.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// EnableMouse asks the terminal to report mouse button presses.
func EnableMouse(w io.Writer) {
	io.WriteString(w, mouseOn)
}

// DisableMouse restores normal mouse behaviour.
func DisableMouse(w io.Writer) {
	io.WriteString(w, mouseOff)
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := parse(buf, s)
	if s.closed {
		in.Quit = true
	}
	return in
}

// parse decodes keys and SGR mouse reports. A trailing incomplete mouse
// report, or a trailing ESC younger than escapeTimeout, is stored back on
// the stream.
func parse(buf []byte, s *Stream) Input {
	in := Input{Pressed: buf}
	escAt := s.escAt
	s.escAt = time.Time{}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 == len(buf) && !s.closed {
			// Only a carried-over ESC keeps its arrival time
			now := s.clock()
			if i != 0 || escAt.IsZero() {
				escAt = now
			}
			if now.Sub(escAt) < escapeTimeout {
				s.pending = []byte{'\x1b'}
				s.escAt = escAt
				in.Pressed = buf[:i]
				return in
			}
		}

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if i+2 == len(buf) {
				s.pending = append([]byte(nil), buf[i:]...)
				in.Pressed = buf[:i]
				return in
			}
			if buf[i+2] == '<' {
				click, n, complete := parseSGRMouse(buf[i+3:])
				if !complete {
					s.pending = append([]byte(nil), buf[i:]...)
					in.Pressed = buf[:i]
					return in
				}
				if click != nil {
					in.Clicks = append(in.Clicks, *click)
				}
				i += 2 + n
				continue
			}
			// Other CSI sequences (arrow keys etc.) are not used
			i += 2
			continue
		}

		applyByte(&in, b)
	}
	return in
}

// clock returns the stream's current time.
func (s *Stream) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// parseSGRMouse parses "Cb;Cx;Cy" followed by M (press) or m (release).
// It returns the click for a left-button press, the number of bytes consumed
// and whether the sequence was complete.
func parseSGRMouse(b []byte) (*Click, int, bool) {
	end := bytes.IndexAny(b, "Mm")
	if end < 0 {
		// Only digits and separators may follow while the report is in flight
		for _, c := range b {
			if (c < '0' || c > '9') && c != ';' {
				return nil, len(b), true
			}
		}
		return nil, 0, false
	}

	fields := bytes.Split(b[:end], []byte{';'})
	if len(fields) != 3 {
		return nil, end + 1, true
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil {
			return nil, end + 1, true
		}
		nums[i] = n
	}

	button, col, row := nums[0], nums[1], nums[2]
	const (
		motionFlag = 32
		wheelFlag  = 64
	)
	if b[end] != 'M' || button&3 != 0 || button&(motionFlag|wheelFlag) != 0 {
		return nil, end + 1, true
	}
	return &Click{Col: col, Row: row}, end + 1, true
}

// applyByte maps a single key byte onto the input.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 's', 'S':
		in.Start = true
	case 'x', 'X':
		in.Stop = true
	case ' ', '\n', '\r':
		in.Start = true
	case '\x1b':
		in.Stop = true
	}
}
