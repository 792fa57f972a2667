package input

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestStream(data string) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	feed(s, data)
	return s
}

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestReadInputKeys(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Input
	}{
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c", "\x03", Input{Quit: true}},
		{"start", "s", Input{Start: true}},
		{"space starts", " ", Input{Start: true}},
		{"enter starts", "\r", Input{Start: true}},
		{"stop", "x", Input{Stop: true}},
		{"escape then key stops", "\x1bs", Input{Stop: true, Start: true}},
		{"arrow ignored", "\x1b[A", Input{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadInput(newTestStream(tt.data))
			if got.Quit != tt.want.Quit || got.Start != tt.want.Start || got.Stop != tt.want.Stop {
				t.Fatalf("ReadInput(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
			if len(got.Clicks) != 0 {
				t.Fatalf("unexpected clicks %v", got.Clicks)
			}
		})
	}
}

func TestReadInputMouse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []Click
	}{
		{"left press", "\x1b[<0;12;7M", []Click{{Col: 12, Row: 7}}},
		{"left release ignored", "\x1b[<0;12;7m", nil},
		{"right press ignored", "\x1b[<2;12;7M", nil},
		{"wheel ignored", "\x1b[<64;12;7M", nil},
		{"drag ignored", "\x1b[<32;12;7M", nil},
		{"two presses", "\x1b[<0;1;2M\x1b[<0;1;2m\x1b[<0;30;4M", []Click{{Col: 1, Row: 2}, {Col: 30, Row: 4}}},
		{"malformed", "\x1b[<0;xx;4M", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadInput(newTestStream(tt.data))
			if len(got.Clicks) != len(tt.want) {
				t.Fatalf("clicks=%v, want %v", got.Clicks, tt.want)
			}
			for i := range tt.want {
				if got.Clicks[i] != tt.want[i] {
					t.Fatalf("clicks=%v, want %v", got.Clicks, tt.want)
				}
			}
			if got.Stop || got.Quit {
				t.Fatalf("mouse report decoded as keys: %+v", got)
			}
		})
	}
}

func TestReadInputMouseAcrossFrames(t *testing.T) {
	s := newTestStream("s\x1b[<0;4")
	first := ReadInput(s)
	if !first.Start || len(first.Clicks) != 0 || first.Stop {
		t.Fatalf("first frame = %+v", first)
	}

	feed(s, "0;9M")
	second := ReadInput(s)
	if len(second.Clicks) != 1 || second.Clicks[0] != (Click{Col: 40, Row: 9}) {
		t.Fatalf("second frame clicks = %v", second.Clicks)
	}
}

func TestReadInputSplitAfterBracket(t *testing.T) {
	s := newTestStream("\x1b[")
	if in := ReadInput(s); in.Stop {
		t.Fatalf("partial CSI treated as escape: %+v", in)
	}
	feed(s, "<0;2;3M")
	in := ReadInput(s)
	if len(in.Clicks) != 1 {
		t.Fatalf("clicks = %v", in.Clicks)
	}
}

// fakeClock is a manually advanced time source for streams.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestReadInputSplitAfterEscape(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	s := newTestStream("\x1b")
	s.now = clock.now

	if in := ReadInput(s); in.Stop {
		t.Fatalf("lone ESC at end of frame treated as escape: %+v", in)
	}
	clock.t = clock.t.Add(10 * time.Millisecond)
	feed(s, "[<0;12;7M")
	in := ReadInput(s)
	if in.Stop {
		t.Fatalf("mouse report split after ESC stopped the game: %+v", in)
	}
	if len(in.Clicks) != 1 || in.Clicks[0] != (Click{Col: 12, Row: 7}) {
		t.Fatalf("clicks = %v", in.Clicks)
	}
}

func TestReadInputLoneEscapeAfterTimeout(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	s := newTestStream("\x1b")
	s.now = clock.now

	if in := ReadInput(s); in.Stop {
		t.Fatalf("ESC reported before timeout")
	}
	clock.t = clock.t.Add(escapeTimeout / 2)
	if in := ReadInput(s); in.Stop {
		t.Fatalf("ESC reported before timeout")
	}
	clock.t = clock.t.Add(escapeTimeout)
	in := ReadInput(s)
	if !in.Stop {
		t.Fatalf("lone ESC not reported after timeout: %+v", in)
	}
	if len(in.Pressed) != 1 {
		t.Fatalf("pressed = %q", in.Pressed)
	}
	if in := ReadInput(s); in.Stop {
		t.Fatalf("ESC reported twice")
	}
}

func TestReadInputEmpty(t *testing.T) {
	in := ReadInput(newTestStream(""))
	if in.Quit || in.Start || len(in.Pressed) != 0 {
		t.Fatalf("empty frame = %+v", in)
	}
}

func TestStreamQuitsAtEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("s")))

	deadline := time.Now().Add(2 * time.Second)
	sawStart := false
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		sawStart = sawStart || in.Start
		if in.Quit {
			if !sawStart {
				t.Fatalf("stream closed before delivering input")
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("stream never reported quit")
}

func TestMouseTracking(t *testing.T) {
	var buf bytes.Buffer
	EnableMouse(&buf)
	DisableMouse(&buf)
	if buf.String() != mouseOn+mouseOff {
		t.Fatalf("unexpected escapes %q", buf.String())
	}
}
