package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer_Lifecycle(t *testing.T) {
	tm := New(time.Second)
	assert.Equal(t, Idle, tm.State())
	assert.False(t, tm.IsDone())

	// Idle timers do not advance.
	tm.Tick(500 * time.Millisecond)
	assert.Equal(t, time.Duration(0), tm.Elapsed())

	tm.Start()
	assert.True(t, tm.IsRunning())

	tm.Tick(400 * time.Millisecond)
	assert.InDelta(t, 0.4, tm.Progress(), 1e-9)
	assert.Equal(t, 600*time.Millisecond, tm.Remaining())

	tm.Tick(700 * time.Millisecond)
	assert.True(t, tm.IsDone())
	assert.Equal(t, time.Second, tm.Elapsed())
	assert.InDelta(t, 1.0, tm.Progress(), 1e-9)
}

func TestTimer_StartDoesNotRewind(t *testing.T) {
	tm := New(time.Second)
	tm.Start()
	tm.Tick(300 * time.Millisecond)
	tm.Start()
	assert.Equal(t, 300*time.Millisecond, tm.Elapsed())
}

func TestTimer_RestartResetClear(t *testing.T) {
	tm := New(time.Second)
	tm.Start()
	tm.Tick(2 * time.Second)
	assert.True(t, tm.IsDone())

	tm.Restart()
	assert.True(t, tm.IsRunning())
	assert.Equal(t, time.Duration(0), tm.Elapsed())

	tm.Tick(100 * time.Millisecond)
	tm.Reset()
	assert.Equal(t, Idle, tm.State())
	assert.Equal(t, time.Duration(0), tm.Elapsed())

	tm.Clear()
	assert.True(t, tm.IsDone())
	assert.Equal(t, time.Duration(0), tm.Remaining())
}

func TestTimer_ZeroDurationFinishesImmediately(t *testing.T) {
	tm := New(0)
	tm.Start()
	assert.True(t, tm.IsDone())
	assert.InDelta(t, 1.0, tm.Progress(), 1e-9)
}

func TestTimer_Passed(t *testing.T) {
	tm := New(2 * time.Second)
	assert.False(t, tm.Passed(0), "idle timer has passed nothing")

	tm.Start()
	tm.Tick(time.Second)
	assert.True(t, tm.Passed(0.5))
	assert.False(t, tm.Passed(0.75))

	assert.Panics(t, func() { tm.Passed(-0.1) })
	assert.Panics(t, func() { tm.Passed(1.5) })
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "unknown", State(9).String())
}
