// Package timer provides the countdown used for cooldowns, hyperspace jumps,
// burst emitters and scene transitions.
package timer

import (
	"fmt"
	"time"
)

// State is the lifecycle phase of a Timer.
type State int

const (
	Idle    State = iota // Not started (or reset)
	Running              // Counting toward Duration
	Done                 // Duration reached
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Timer counts elapsed time toward a fixed duration. It only advances
// when ticked, so the owner decides which frames it runs in.
// The zero value is an idle timer with zero duration.
type Timer struct {
	Duration time.Duration
	elapsed  time.Duration
	state    State
}

// New returns an idle timer for the given duration.
func New(d time.Duration) Timer {
	return Timer{Duration: d}
}

// Start begins counting if the timer is idle. A running or finished
// timer is left untouched; use Restart to rewind it.
func (t *Timer) Start() {
	if t.state != Idle {
		return
	}
	t.elapsed = 0
	t.state = Running
	if t.Duration <= 0 {
		t.state = Done
	}
}

// Restart rewinds the timer to zero and starts it.
func (t *Timer) Restart() {
	t.state = Idle
	t.Start()
}

// Reset rewinds the timer to zero and leaves it idle.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.state = Idle
}

// Clear marks the countdown as already finished.
func (t *Timer) Clear() {
	t.elapsed = t.Duration
	t.state = Done
}

// Tick advances a running timer by dt.
func (t *Timer) Tick(dt time.Duration) {
	if t.state != Running {
		return
	}
	t.elapsed += dt
	if t.elapsed >= t.Duration {
		t.elapsed = t.Duration
		t.state = Done
	}
}

// IsDone reports whether the duration has been reached.
func (t *Timer) IsDone() bool {
	return t.state == Done
}

// IsRunning reports whether the timer is counting.
func (t *Timer) IsRunning() bool {
	return t.state == Running
}

// State returns the current lifecycle phase.
func (t *Timer) State() State {
	return t.state
}

// Elapsed returns the time counted so far.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Remaining returns the time left until Done.
func (t *Timer) Remaining() time.Duration {
	return t.Duration - t.elapsed
}

// Progress returns the completed fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.state == Done {
		return 1
	}
	if t.Duration <= 0 {
		return 0
	}
	p := float64(t.elapsed) / float64(t.Duration)
	if p > 1 {
		p = 1
	}
	return p
}

// Passed reports whether at least fraction of the duration has elapsed.
// fraction must lie in [0, 1]; anything else is a programming error.
func (t *Timer) Passed(fraction float64) bool {
	if fraction < 0 || fraction > 1 {
		panic(fmt.Sprintf("timer: fraction %v outside [0, 1]", fraction))
	}
	if t.state == Idle {
		return false
	}
	return t.Progress() >= fraction
}
