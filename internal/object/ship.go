package object

import (
	"time"

	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/physics"
	"github.com/tomz197/starduel/internal/timer"
)

// ShipType selects a hull: its collision circles, mass and canonical length.
type ShipType int

const (
	Wedge ShipType = iota
	Needle
	ShipTypeCount
)

func (t ShipType) String() string {
	switch t {
	case Wedge:
		return "wedge"
	case Needle:
		return "needle"
	default:
		return "unknown"
	}
}

// MaxCircles is the most collision circles a hull may declare.
const MaxCircles = 8

// CircleSet is a fixed-size set of collision circles. Using a fixed array
// avoids allocations in the per-frame collision path.
type CircleSet struct {
	Circles [MaxCircles]physics.Circle
	Count   int
}

// Slice returns the populated circles.
func (c *CircleSet) Slice() []physics.Circle {
	return c.Circles[:c.Count]
}

func newCircleSet(circles ...physics.Circle) CircleSet {
	var set CircleSet
	set.Count = copy(set.Circles[:], circles)
	return set
}

// Hull describes a ship type. Circles and Outline are ship-local, with the
// nose pointing along +X.
type Hull struct {
	Length  float64 // Canonical length r: nose and tail offsets, emitter placement
	Mass    float64
	Circles CircleSet
	Outline []physics.Vec2 // For rendering only
}

var hulls = [ShipTypeCount]Hull{
	Wedge: {
		Length: 3,
		Mass:   1.0,
		Circles: newCircleSet(
			physics.Circle{Center: physics.Vec2{X: 1.8}, Radius: 0.9},
			physics.Circle{Center: physics.Vec2{X: 0}, Radius: 1.3},
			physics.Circle{Center: physics.Vec2{X: -1.6, Y: -1.4}, Radius: 0.9},
			physics.Circle{Center: physics.Vec2{X: -1.6, Y: 1.4}, Radius: 0.9},
		),
		Outline: []physics.Vec2{
			{X: 3, Y: 0},
			{X: -2.4, Y: 2.2},
			{X: -1.4, Y: 0},
			{X: -2.4, Y: -2.2},
		},
	},
	Needle: {
		Length: 3.5,
		Mass:   0.8,
		Circles: newCircleSet(
			physics.Circle{Center: physics.Vec2{X: 2.8}, Radius: 0.6},
			physics.Circle{Center: physics.Vec2{X: 1.4}, Radius: 0.8},
			physics.Circle{Center: physics.Vec2{X: 0}, Radius: 0.9},
			physics.Circle{Center: physics.Vec2{X: -1.4}, Radius: 0.9},
			physics.Circle{Center: physics.Vec2{X: -2.8}, Radius: 0.8},
		),
		Outline: []physics.Vec2{
			{X: 3.5, Y: 0},
			{X: 0.5, Y: 0.9},
			{X: -3.2, Y: 1.4},
			{X: -3.2, Y: -1.4},
			{X: 0.5, Y: -0.9},
		},
	},
}

// HullFor returns the hull for a ship type. Unknown types get the Wedge hull.
func HullFor(t ShipType) Hull {
	if t < 0 || t >= ShipTypeCount {
		return hulls[Wedge]
	}
	return hulls[t]
}

// Ship is a player's ship. It is re-initialized at every round start and
// never removed; Destroyed is a logical flag.
type Ship struct {
	Type     ShipType
	Pos      physics.Vec2
	Vel      physics.Vec2
	Mass     float64
	Rotation float64 // Radians, 0 = pointing right
	Length   float64
	Circles  CircleSet // Ship-local, unrotated

	Fuel      float64
	Torpedoes int
	Jumps     int // Hyperspace jumps this round

	Thrusting    bool
	Hyperspacing bool
	Firing       bool
	Destroyed    bool

	TorpedoCooldown    timer.Timer
	HyperspaceDuration timer.Timer
	HyperspaceCooldown timer.Timer
}

// NewShip creates a fresh ship of the given type at pos facing rotation.
// Torpedoes are ready immediately; hyperspace has to charge first.
func NewShip(t ShipType, pos physics.Vec2, rotation float64) Ship {
	hull := HullFor(t)
	s := Ship{
		Type:               t,
		Pos:                pos,
		Mass:               hull.Mass,
		Rotation:           rotation,
		Length:             hull.Length,
		Circles:            hull.Circles,
		Fuel:               config.ShipMaxFuel,
		Torpedoes:          config.InitialTorpedoes,
		TorpedoCooldown:    timer.New(config.TorpedoCooldown),
		HyperspaceDuration: timer.New(config.HyperspaceDuration),
		HyperspaceCooldown: timer.New(config.HyperspaceCooldown),
	}
	s.TorpedoCooldown.Clear()
	s.HyperspaceCooldown.Start()
	return s
}

// Heading returns the unit vector the nose points along.
func (s *Ship) Heading() physics.Vec2 {
	return physics.FromAngle(s.Rotation, 1)
}

// Nose returns the world position dist units ahead of the ship origin.
func (s *Ship) Nose(dist float64) physics.Vec2 {
	return s.Pos.Add(physics.FromAngle(s.Rotation, dist))
}

// Tail returns the world position one canonical length behind the origin.
func (s *Ship) Tail() physics.Vec2 {
	return s.Pos.Sub(physics.FromAngle(s.Rotation, s.Length))
}

// WorldCircles returns the collision circles rotated and translated into
// world space.
func (s *Ship) WorldCircles() CircleSet {
	world := CircleSet{Count: s.Circles.Count}
	for i := 0; i < s.Circles.Count; i++ {
		world.Circles[i] = s.Circles.Circles[i].Transform(s.Pos, s.Rotation)
	}
	return world
}

// Collidable reports whether the ship can currently be hit.
func (s *Ship) Collidable() bool {
	return !s.Destroyed && !s.Hyperspacing
}

// Destroy marks the ship destroyed and silences its continuous effects.
// Position and rotation stay frozen where it died.
func (s *Ship) Destroy() {
	s.Destroyed = true
	s.Thrusting = false
	s.Firing = false
	s.Hyperspacing = false
	s.Vel = physics.Vec2{}
}

// Update runs one frame of control and physics: rotation, thrust, gravity,
// integration, wraparound, firing and hyperspace, in that order.
// Destroyed ships are frozen.
func (s *Ship) Update(ctx UpdateContext) {
	if s.Destroyed {
		return
	}
	dt := ctx.Delta.Seconds()
	in := ctx.Input

	// Rotation - right wins when both are held
	if !s.Hyperspacing {
		if in.RotateRight {
			s.Rotation += config.ShipRotationRate * dt
		} else if in.RotateLeft {
			s.Rotation -= config.ShipRotationRate * dt
		}
	}

	s.updateThrust(ctx, dt)

	// Gravity
	if !s.Hyperspacing && ctx.Star != nil {
		accel := ctx.Gravity.Accel(s.Pos, ctx.Star.Pos, ctx.Star.Mass)
		s.Vel = s.Vel.Add(accel.Scale(dt))
	}

	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
	s.Pos = ctx.Bounds.Wrap(s.Pos)

	s.updateFiring(ctx)
	s.updateHyperspace(ctx)
}

// updateThrust accelerates along the heading. Fuel burns down to zero but
// an empty tank does not cut the engine.
func (s *Ship) updateThrust(ctx UpdateContext, dt float64) {
	was := s.Thrusting
	s.Thrusting = ctx.Input.Thrust && !s.Hyperspacing

	if s.Thrusting {
		accel := s.Heading().Scale(config.ShipThrustForce / s.Mass)
		s.Vel = s.Vel.Add(accel.Scale(dt))
		s.Fuel -= config.ShipFuelBurnRate * dt
		if s.Fuel < 0 {
			s.Fuel = 0
		}
	}

	switch {
	case s.Thrusting && !was:
		ctx.emit(Event{Type: EventThrustStart, Player: ctx.Owner, Ship: s.Type, Pos: s.Pos})
	case !s.Thrusting && was:
		ctx.emit(Event{Type: EventThrustStop, Player: ctx.Owner, Ship: s.Type, Pos: s.Pos})
	}
}

// updateFiring ticks the cooldown and launches a torpedo from the nose.
func (s *Ship) updateFiring(ctx UpdateContext) {
	s.TorpedoCooldown.Tick(ctx.Delta)
	s.Firing = ctx.Input.Fire

	if !s.Firing || !s.TorpedoCooldown.IsDone() {
		return
	}

	if s.Torpedoes <= 0 {
		ctx.emit(Event{Type: EventTorpedoEmpty, Player: ctx.Owner, Ship: s.Type, Pos: s.Pos})
		return
	}

	if ctx.Torpedoes == nil {
		return
	}
	torpedo := Torpedo{
		Pos:       s.Nose(s.Length * config.TorpedoNoseSpacing),
		Vel:       s.Vel.Add(s.Heading().Scale(config.TorpedoSpeed)),
		Radius:    config.TorpedoRadius,
		CreatedAt: ctx.Now,
		Lifespan:  config.TorpedoLifespan,
		Owner:     ctx.Owner,
	}
	if !ctx.Torpedoes.Spawn(torpedo) {
		return // Pool full, request dropped
	}
	s.Torpedoes--
	s.TorpedoCooldown.Restart()
	ctx.emit(Event{Type: EventTorpedoFired, Player: ctx.Owner, Ship: s.Type, Pos: torpedo.Pos})
}

// updateHyperspace runs the jump state machine: the cooldown charges while
// in normal space; a jump lasts HyperspaceDuration and ends with a teleport
// to a random point inside the inset playfield.
func (s *Ship) updateHyperspace(ctx UpdateContext) {
	if s.Hyperspacing {
		s.HyperspaceDuration.Tick(ctx.Delta)
		if !s.HyperspaceDuration.IsDone() {
			return
		}
		s.Pos = ctx.Bounds.Inset(config.HyperspaceInset).RandomPoint(ctx.Rand)
		s.Vel = physics.Vec2{}
		s.Hyperspacing = false
		s.HyperspaceCooldown.Restart()
		ctx.emit(Event{Type: EventHyperspaceExit, Player: ctx.Owner, Ship: s.Type, Pos: s.Pos})
		return
	}

	s.HyperspaceCooldown.Tick(ctx.Delta)
	if !ctx.Input.Hyperspace || !s.HyperspaceCooldown.IsDone() {
		return
	}
	s.Hyperspacing = true
	s.Jumps++
	s.HyperspaceDuration.Restart()
	if s.Thrusting {
		s.Thrusting = false
		ctx.emit(Event{Type: EventThrustStop, Player: ctx.Owner, Ship: s.Type, Pos: s.Pos})
	}
	ctx.emit(Event{Type: EventHyperspaceEnter, Player: ctx.Owner, Ship: s.Type, Pos: s.Pos})
}

// HyperspaceReady reports whether a jump could start this frame.
func (s *Ship) HyperspaceReady() bool {
	return !s.Hyperspacing && s.HyperspaceCooldown.IsDone()
}

// FuelFraction returns remaining fuel in [0, 1] for the HUD.
func (s *Ship) FuelFraction() float64 {
	return s.Fuel / config.ShipMaxFuel
}

// HyperspaceRemaining returns how long the current jump has left.
func (s *Ship) HyperspaceRemaining() time.Duration {
	if !s.Hyperspacing {
		return 0
	}
	return s.HyperspaceDuration.Remaining()
}
