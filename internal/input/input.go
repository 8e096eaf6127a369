package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit      bool
	Left      bool
	Right     bool
	Up        bool
	Down      bool
	Fire      bool
	Shield    bool // Edge-triggered: true only on the frame the key arrived
	Enter     bool
	Backspace bool
	Plus      bool
	Minus     bool
	Typed     []byte // Printable bytes received this frame, escape sequences removed
	Pressed   []byte // Raw bytes received this frame
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
	enter time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
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

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool { return s.closed }

// Reset forgets held keys, e.g. when switching screens.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// drain collects every byte currently buffered without blocking.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Arrow keys arrive as CSI sequences. Movement and fire keys stay held for
// keyHoldDuration so simultaneous presses combine.
func ReadInput(s *Stream) Input {
	return parse(s, s.drain(), time.Now())
}

func parse(s *Stream, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		applyByte(s, &in, b, now)
		if b >= ' ' && b < 0x7f {
			in.Typed = append(in.Typed, b)
		}
	}

	in.Quit = now.Sub(s.state.quit) < keyHoldDuration
	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	in.Fire = now.Sub(s.state.fire) < keyHoldDuration
	in.Enter = now.Sub(s.state.enter) < keyHoldDuration
	return in
}

// applyByte updates held key timestamps and one-shot flags for b.
func applyByte(s *Stream, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		s.state.quit = now
	case 'a', 'A', 'h', 'H':
		s.state.left = now
	case 'd', 'D', 'l', 'L':
		s.state.right = now
	case 'w', 'W', 'k', 'K':
		s.state.up = now
	case 's', 'S', 'j', 'J':
		s.state.down = now
	case ' ', 'f', 'F':
		s.state.fire = now
	case 'e', 'E', 'x', 'X', '\t':
		in.Shield = true
	case '\n', '\r':
		s.state.enter = now
	case '\b', '\x7f':
		in.Backspace = true
	case '+', '=':
		in.Plus = true
	case '-', '_':
		in.Minus = true
	}
}

// Axis converts the held direction keys into a movement step. Up is
// positive y.
func (in Input) Axis() (dx, dy float64) {
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy++
	}
	if in.Down {
		dy--
	}
	return dx, dy
}

// HexDigits returns the hexadecimal characters in typed, upper-cased.
func HexDigits(typed []byte) []byte {
	var out []byte
	for _, b := range typed {
		switch {
		case b >= '0' && b <= '9', b >= 'A' && b <= 'F':
			out = append(out, b)
		case b >= 'a' && b <= 'f':
			out = append(out, b-'a'+'A')
		}
	}
	return out
}
