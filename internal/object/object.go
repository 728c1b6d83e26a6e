package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/starduel/internal/input"
	"github.com/tomz197/starduel/internal/physics"
)

// Input is an alias for the input package's per-player Input type.
type Input = input.Input

// UpdateContext provides all the information a ship needs during update.
type UpdateContext struct {
	Delta     time.Duration
	Now       time.Duration // Match clock, used to stamp torpedoes
	Input     Input
	Owner     PlayerID
	Bounds    physics.Bounds
	Gravity   physics.Gravity
	Star      *Star
	Torpedoes *Torpedoes
	Rand      *rand.Rand
	Events    EventSink
}

func (ctx UpdateContext) emit(ev Event) {
	if ctx.Events != nil {
		ctx.Events.Emit(ev)
	}
}

// EventType identifies an intent emitted by the simulation for the
// presentation layer (audio, effects, HUD).
type EventType int

const (
	EventTorpedoFired EventType = iota
	EventTorpedoEmpty
	EventThrustStart
	EventThrustStop
	EventHyperspaceEnter
	EventHyperspaceExit
	EventShipDestroyed
	EventRoundOver   // A destruction ended the round
	EventRoundEndCue // One-shot cue halfway through the end-of-round display
	EventRoundStart
	EventMatchOver
)

func (t EventType) String() string {
	switch t {
	case EventTorpedoFired:
		return "torpedo_fired"
	case EventTorpedoEmpty:
		return "torpedo_empty"
	case EventThrustStart:
		return "thrust_start"
	case EventThrustStop:
		return "thrust_stop"
	case EventHyperspaceEnter:
		return "hyperspace_enter"
	case EventHyperspaceExit:
		return "hyperspace_exit"
	case EventShipDestroyed:
		return "ship_destroyed"
	case EventRoundOver:
		return "round_over"
	case EventRoundEndCue:
		return "round_end_cue"
	case EventRoundStart:
		return "round_start"
	case EventMatchOver:
		return "match_over"
	default:
		return "unknown"
	}
}

// Event is a single intent. Fields that do not apply to the type are zero.
type Event struct {
	Type   EventType
	Player PlayerID
	Ship   ShipType
	Pos    physics.Vec2
}

// EventSink receives intents during update.
type EventSink interface {
	Emit(ev Event)
}

// Events is a reusable per-frame event buffer.
type Events []Event

// Emit appends ev to the buffer.
func (e *Events) Emit(ev Event) {
	*e = append(*e, ev)
}

// Reset empties the buffer, keeping its storage.
func (e *Events) Reset() {
	*e = (*e)[:0]
}
