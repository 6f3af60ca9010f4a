// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/raycaster/internal/config"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = time.Duration(config.KeyHoldSeconds * float64(time.Second))

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Longer  bool
	Shorter bool
	Space   bool
	// Toggle is set only on frames in which space arrived, so holding it
	// does not repeat.
	Toggle bool
	Enter  bool
	Escape bool
	// Number is the last digit pressed within the hold time, or -1.
	Number int
	// Closed is set once the underlying reader has ended.
	Closed  bool
	Pressed []byte
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
	buf    []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
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

// ReadInput drains all available bytes from the stream without blocking and
// returns the keys held at this moment.
func ReadInput(s *Stream) Input {
	s.buf = s.buf[:0]
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				continue
			}
			s.buf = append(s.buf, b)
			continue
		default:
		}
		break
	}

	in := s.state.apply(s.buf, time.Now())
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets all held keys, so a key pressed before a mode change
// does not carry over into the next one.
func ResetKeyInput(s *Stream) {
	s.state = keyState{numberVal: -1}
}
