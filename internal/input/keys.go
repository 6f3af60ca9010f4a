package input

import "time"

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	longer    time.Time
	shorter   time.Time
	space     time.Time
	enter     time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// apply records the bytes received at now and builds the input for this
// frame. Keys count as pressed if seen within the hold duration.
func (ks *keyState) apply(buf []byte, now time.Time) Input {
	toggle := false
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if ks.applyArrow(buf[i+2], now) {
				i += 2
				continue
			}
		}

		if b == ' ' {
			toggle = true
		}
		ks.applyByte(b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in := Input{
		Quit:    held(ks.quit),
		Left:    held(ks.left),
		Right:   held(ks.right),
		Up:      held(ks.up),
		Down:    held(ks.down),
		Longer:  held(ks.longer),
		Shorter: held(ks.shorter),
		Space:   held(ks.space),
		Toggle:  toggle,
		Enter:   held(ks.enter),
		Escape:  held(ks.escape),
		Number:  -1,
		Pressed: buf,
	}
	if held(ks.number) {
		in.Number = ks.numberVal
	}
	return in
}

func (ks *keyState) applyArrow(code byte, now time.Time) bool {
	switch code {
	case 'A':
		ks.up = now
	case 'B':
		ks.down = now
	case 'C':
		ks.right = now
	case 'D':
		ks.left = now
	default:
		return false
	}
	return true
}

// applyByte updates the key state timestamps based on the pressed byte.
func (ks *keyState) applyByte(b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		ks.quit = now
	case 'a', 'A', 'j', 'J':
		ks.left = now
	case 'd', 'D', 'l', 'L':
		ks.right = now
	case 'w', 'W', 'i', 'I':
		ks.up = now
	case 's', 'S', 'k', 'K':
		ks.down = now
	case '+', '=':
		ks.longer = now
	case '-', '_':
		ks.shorter = now
	case ' ':
		ks.space = now
	case '\n', '\r':
		ks.enter = now
	case '\x1b':
		ks.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		ks.number = now
		ks.numberVal = int(b - '0')
	}
}
