// Package input turns the raw terminal byte stream into per-frame controls.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its last press.
// Terminals only report key repeats, never releases.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
// Movement keys are level-triggered (held); the rest are edge-triggered and
// only set on the frame their byte arrived.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool // Space
	Start bool // Enter or space
	Pause bool // P or Escape
	Quit  bool // Q or Ctrl-C

	Pressed []byte // Raw bytes received this frame
}

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	closed bool
	state  keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error (e.g. the session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
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

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the controls for this frame.
func ReadInput(s *Stream) Input {
	var buf []byte

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

	return parse(buf, time.Now(), &s.state)
}

// ResetKeyInput forgets held movement keys, e.g. when a new game starts.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// parse applies the bytes received this frame to the key state and builds the frame's Input.
func parse(buf []byte, now time.Time, state *keyState) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'B':
				state.down = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			}
		}

		switch b {
		case 'w', 'W', 'k', 'K':
			state.up = now
		case 's', 'S', 'j', 'J':
			state.down = now
		case 'a', 'A', 'h', 'H':
			state.left = now
		case 'd', 'D', 'l', 'L':
			state.right = now
		case ' ':
			in.Fire = true
			in.Start = true
		case '\r', '\n':
			in.Start = true
		case 'p', 'P', '\x1b':
			in.Pause = true
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}

	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	return in
}
