// Package loop runs a two-player match: the simulation context, its scene
// state machine and collision rules, and the terminal loop that drives it.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/starduel/internal/draw"
	"github.com/tomz197/starduel/internal/input"
	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/object"
)

// EventHandler consumes the intents a match raises each frame (e.g. audio).
type EventHandler interface {
	Handle(ev object.Event)
}

// SessionOptions configures a terminal session.
type SessionOptions struct {
	Match        Options
	TermSizeFunc draw.TermSizeFunc // nil uses the local terminal
	Events       EventHandler      // Optional
}

// Run plays a match on the local terminal until the player quits.
func Run(r *bufio.Reader, w io.Writer, opts SessionOptions) error {
	return RunSession(context.Background(), r, w, opts)
}

// RunSession plays a match with the standard Input → Update → Draw cycle
// at the fixed tick rate. It returns when the player quits, the input ends
// or ctx is cancelled.
func RunSession(ctx context.Context, r *bufio.Reader, w io.Writer, opts SessionOptions) error {
	match := NewMatch(opts.Match)
	stream := input.StartStream(r)
	defer stream.Close()
	renderer := NewRenderer(w, opts.TermSizeFunc)

	if err := renderer.Open(); err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	defer renderer.Close()

	lastTime := time.Now()
	var lastDraw time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		frame := input.ReadFrame(stream, frameStart)
		if frame.Quit || stream.Closed() {
			break
		}

		// ===== UPDATE PHASE =====
		prevScene := match.Scene
		events := match.Update(dt, frame)
		if match.Scene != prevScene {
			// Keys that confirmed a scene change must not leak into the next one
			input.ResetKeyInput(stream)
		}
		if opts.Events != nil {
			for _, ev := range events {
				opts.Events.Handle(ev)
			}
		}

		// ===== DRAW PHASE =====
		if frameStart.Sub(lastDraw) >= config.RenderInterval {
			if err := renderer.Draw(match); err != nil {
				return fmt.Errorf("draw frame: %w", err)
			}
			lastDraw = frameStart
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}

	return nil
}
