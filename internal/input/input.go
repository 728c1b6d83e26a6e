package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so a key stays down for this window.
const keyHoldDuration = 60 * time.Millisecond

// Input is one player's resolved control flags for a frame.
type Input struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool
	Fire        bool
	Hyperspace  bool
}

// Frame is the full input snapshot for a frame: both players plus the
// shared scene controls.
type Frame struct {
	Players [2]Input
	Confirm bool
	Quit    bool
	Pressed []byte
}

// action indexes the per-player key timestamps.
type action int

const (
	actThrust action = iota
	actLeft
	actRight
	actFire
	actHyperspace
	actionCount
)

// keyState tracks the last time each binding was pressed.
type keyState struct {
	players [2][actionCount]time.Time
	confirm time.Time
	quit    time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool

	done      chan struct{}
	closeOnce sync.Once
	exited    chan struct{} // Closed when the reader goroutine returns
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// Call Close once the stream is no longer read so the goroutine can exit.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.exited)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:     make(chan byte, 128),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Close stops delivery. A reader goroutine blocked on a full buffer returns
// at once; one blocked in a read returns after its next byte. Safe to call
// more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// ReadFrame drains all available bytes from the stream (non-blocking) and
// resolves which bindings are held at now.
func ReadFrame(s *Stream, now time.Time) Frame {
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

	applyBytes(&s.state, buf, now)

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }

	frame := Frame{
		Confirm: held(s.state.confirm),
		Quit:    held(s.state.quit),
		Pressed: buf,
	}
	for p := range frame.Players {
		keys := &s.state.players[p]
		frame.Players[p] = Input{
			Thrust:      held(keys[actThrust]),
			RotateLeft:  held(keys[actLeft]),
			RotateRight: held(keys[actRight]),
			Fire:        held(keys[actFire]),
			Hyperspace:  held(keys[actHyperspace]),
		}
	}
	return frame
}

// Closed reports whether the underlying reader has ended. Only valid after
// ReadFrame has drained the stream.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets all held keys, so a key used to confirm a scene
// change does not leak into the next scene.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// applyBytes parses raw terminal bytes, including CSI arrow sequences,
// and stamps the matching bindings.
func applyBytes(state *keyState, buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code> - arrows drive player B
			keys := &state.players[1]
			switch buf[i+2] {
			case 'A':
				keys[actThrust] = now
			case 'B':
				keys[actHyperspace] = now
			case 'C':
				keys[actRight] = now
			case 'D':
				keys[actLeft] = now
			default:
				continue
			}
			i += 2
			continue
		}

		applyByteToState(state, b, now)
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	a := &state.players[0]
	p := &state.players[1]

	switch b {
	case 'q', 'Q':
		state.quit = now
	case '\n', '\r', ' ':
		state.confirm = now

	// Player A
	case 'w', 'W':
		a[actThrust] = now
	case 'a', 'A':
		a[actLeft] = now
	case 'd', 'D':
		a[actRight] = now
	case 's', 'S':
		a[actHyperspace] = now
	case 'e', 'E', 'f', 'F':
		a[actFire] = now

	// Player B
	case 'i', 'I':
		p[actThrust] = now
	case 'j', 'J':
		p[actLeft] = now
	case 'l', 'L':
		p[actRight] = now
	case 'k', 'K':
		p[actHyperspace] = now
	case 'o', 'O', '/':
		p[actFire] = now
	}
}
