package object

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/physics"
)

func testBounds() physics.Bounds {
	return physics.CenteredBounds(config.PlayfieldWidth, config.PlayfieldHeight)
}

func testGravity() physics.Gravity {
	return physics.Gravity{
		G:             config.GravityConstant,
		MetersPerUnit: config.MetersPerUnit,
		MaxAccel:      config.MaxGravityAccel,
	}
}

// newTestContext returns a context without a star so gravity stays out of
// the way unless a test adds one.
func newTestContext(in Input) (UpdateContext, *Events) {
	events := &Events{}
	return UpdateContext{
		Delta:     config.TickTime,
		Input:     in,
		Owner:     PlayerA,
		Bounds:    testBounds(),
		Gravity:   testGravity(),
		Torpedoes: NewTorpedoes(config.TorpedoCapacity),
		Rand:      rand.New(rand.NewSource(1)),
		Events:    events,
	}, events
}

func eventTypes(events Events) []EventType {
	types := make([]EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func TestNewShip_InitialState(t *testing.T) {
	for st := Wedge; st < ShipTypeCount; st++ {
		t.Run(st.String(), func(t *testing.T) {
			s := NewShip(st, physics.Vec2{X: 1, Y: 2}, 0.5)
			hull := HullFor(st)

			assert.Equal(t, physics.Vec2{X: 1, Y: 2}, s.Pos)
			assert.Equal(t, hull.Length, s.Length)
			assert.Equal(t, hull.Mass, s.Mass)
			assert.LessOrEqual(t, s.Circles.Count, MaxCircles)
			assert.Positive(t, s.Circles.Count)
			assert.Equal(t, config.ShipMaxFuel, s.Fuel)
			assert.Equal(t, config.InitialTorpedoes, s.Torpedoes)
			assert.True(t, s.TorpedoCooldown.IsDone(), "torpedoes ready at spawn")
			assert.True(t, s.HyperspaceCooldown.IsRunning(), "hyperspace charges at spawn")
			assert.False(t, s.Destroyed)
		})
	}
}

func TestShip_RotationRightWins(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		sign float64
	}{
		{"left", Input{RotateLeft: true}, -1},
		{"right", Input{RotateRight: true}, 1},
		{"both", Input{RotateLeft: true, RotateRight: true}, 1},
		{"none", Input{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(tt.in)
			s := NewShip(Wedge, physics.Vec2{}, 0)
			s.Update(ctx)
			want := tt.sign * config.ShipRotationRate * ctx.Delta.Seconds()
			assert.InDelta(t, want, s.Rotation, 1e-12)
		})
	}
}

func TestShip_ThrustAcceleratesAlongHeading(t *testing.T) {
	ctx, events := newTestContext(Input{Thrust: true})
	s := NewShip(Needle, physics.Vec2{}, 0)
	s.Update(ctx)

	dt := ctx.Delta.Seconds()
	assert.InDelta(t, config.ShipThrustForce/s.Mass*dt, s.Vel.X, 1e-9)
	assert.InDelta(t, 0, s.Vel.Y, 1e-9)
	assert.InDelta(t, config.ShipMaxFuel-config.ShipFuelBurnRate*dt, s.Fuel, 1e-9)
	assert.True(t, s.Thrusting)
	assert.Equal(t, []EventType{EventThrustStart}, eventTypes(*events))

	events.Reset()
	ctx.Input = Input{}
	s.Update(ctx)
	assert.False(t, s.Thrusting)
	assert.Equal(t, []EventType{EventThrustStop}, eventTypes(*events))
}

func TestShip_FuelClampsButThrustContinues(t *testing.T) {
	ctx, _ := newTestContext(Input{Thrust: true})
	s := NewShip(Wedge, physics.Vec2{}, 0)
	s.Fuel = 0.01

	s.Update(ctx)
	assert.Equal(t, 0.0, s.Fuel)

	before := s.Vel.X
	s.Update(ctx)
	assert.Equal(t, 0.0, s.Fuel)
	assert.Greater(t, s.Vel.X, before, "an empty tank still accelerates")
}

func TestShip_GravityPullsTowardStar(t *testing.T) {
	ctx, _ := newTestContext(Input{})
	star := NewStar()
	ctx.Star = &star

	start := physics.Vec2{X: 40, Y: 0}
	s := NewShip(Wedge, start, 0)
	s.Update(ctx)

	want := ctx.Gravity.Accel(start, star.Pos, star.Mass).Scale(ctx.Delta.Seconds())
	assert.InDelta(t, want.X, s.Vel.X, 1e-12)
	assert.InDelta(t, want.Y, s.Vel.Y, 1e-12)
	assert.Negative(t, s.Vel.X)
}

func TestShip_WrapsAroundPlayfield(t *testing.T) {
	ctx, _ := newTestContext(Input{})
	bounds := ctx.Bounds
	s := NewShip(Wedge, physics.Vec2{X: bounds.Max.X - 0.01}, 0)
	s.Vel = physics.Vec2{X: 10}

	s.Update(ctx)
	assert.True(t, bounds.Contains(s.Pos))
	assert.Less(t, s.Pos.X, 0.0)
}

func TestShip_FireSpawnsTorpedoAtNose(t *testing.T) {
	ctx, events := newTestContext(Input{Fire: true})
	ctx.Now = 3 * time.Second
	s := NewShip(Wedge, physics.Vec2{}, 0)
	s.Vel = physics.Vec2{X: 2, Y: 1}

	s.Update(ctx)

	require.Equal(t, 1, ctx.Torpedoes.Len())
	torp := ctx.Torpedoes.At(0)
	assert.Equal(t, PlayerA, torp.Owner)
	assert.Equal(t, 3*time.Second, torp.CreatedAt)
	assert.Equal(t, config.TorpedoLifespan, torp.Lifespan)
	assert.InDelta(t, 2+config.TorpedoSpeed, torp.Vel.X, 1e-9)
	assert.InDelta(t, 1, torp.Vel.Y, 1e-9)
	// The torpedo leaves from the nose of the already integrated ship.
	assert.InDelta(t, s.Pos.X+s.Length*config.TorpedoNoseSpacing, torp.Pos.X, 1e-9)

	assert.Equal(t, config.InitialTorpedoes-1, s.Torpedoes)
	assert.True(t, s.TorpedoCooldown.IsRunning())
	assert.Equal(t, []EventType{EventTorpedoFired}, eventTypes(*events))

	// Held fire during the cooldown does nothing.
	s.Update(ctx)
	assert.Equal(t, 1, ctx.Torpedoes.Len())
	assert.Equal(t, config.InitialTorpedoes-1, s.Torpedoes)
}

func TestShip_FireRespectsCooldown(t *testing.T) {
	ctx, _ := newTestContext(Input{Fire: true})
	s := NewShip(Wedge, physics.Vec2{}, 0)

	frames := int(time.Second / ctx.Delta)
	for i := 0; i < frames; i++ {
		s.Update(ctx)
	}

	shots := ctx.Torpedoes.Len()
	maxShots := int(time.Second/config.TorpedoCooldown) + 1
	assert.LessOrEqual(t, shots, maxShots)
	assert.GreaterOrEqual(t, shots, maxShots-1)
}

func TestShip_FireWithNoAmmoEmitsEmpty(t *testing.T) {
	ctx, events := newTestContext(Input{Fire: true})
	s := NewShip(Wedge, physics.Vec2{}, 0)
	s.Torpedoes = 0

	s.Update(ctx)

	assert.Equal(t, 0, ctx.Torpedoes.Len())
	assert.Equal(t, 0, s.Torpedoes)
	assert.Equal(t, []EventType{EventTorpedoEmpty}, eventTypes(*events))
}

func TestShip_FireDroppedWhenPoolFull(t *testing.T) {
	ctx, events := newTestContext(Input{Fire: true})
	ctx.Torpedoes = NewTorpedoes(0)
	s := NewShip(Wedge, physics.Vec2{}, 0)

	s.Update(ctx)

	assert.Equal(t, config.InitialTorpedoes, s.Torpedoes)
	assert.Empty(t, *events)
}

func TestShip_HyperspaceJump(t *testing.T) {
	ctx, events := newTestContext(Input{Hyperspace: true})
	star := NewStar()
	ctx.Star = &star

	s := NewShip(Wedge, physics.Vec2{X: 30, Y: 10}, 0)
	s.HyperspaceCooldown.Clear()
	s.Vel = physics.Vec2{X: 5, Y: 0}

	s.Update(ctx)
	require.True(t, s.Hyperspacing)
	assert.Equal(t, 1, s.Jumps)
	assert.Equal(t, []EventType{EventHyperspaceEnter}, eventTypes(*events))
	assert.False(t, s.Collidable())

	// No rotation, thrust or gravity while jumping; the ship keeps drifting
	// and can still shoot.
	events.Reset()
	ctx.Input = Input{Thrust: true, RotateRight: true, Fire: true}
	vel, rot, pos := s.Vel, s.Rotation, s.Pos
	s.Update(ctx)
	assert.Equal(t, vel, s.Vel)
	assert.Equal(t, rot, s.Rotation)
	assert.NotEqual(t, pos, s.Pos)
	assert.False(t, s.Thrusting)
	assert.Equal(t, []EventType{EventTorpedoFired}, eventTypes(*events))
	assert.Equal(t, 1, ctx.Torpedoes.Len())

	// Finish the jump.
	ctx.Input = Input{}
	ctx.Delta = config.HyperspaceDuration
	s.Update(ctx)

	assert.False(t, s.Hyperspacing)
	assert.Equal(t, physics.Vec2{}, s.Vel)
	assert.True(t, ctx.Bounds.Inset(config.HyperspaceInset).Contains(s.Pos))
	assert.True(t, s.HyperspaceCooldown.IsRunning())
	assert.Equal(t, config.HyperspaceCooldown, s.HyperspaceCooldown.Remaining())
	assert.Equal(t, []EventType{EventHyperspaceExit}, eventTypes(*events))
}

func TestShip_FiresWhileHyperspacing(t *testing.T) {
	ctx, events := newTestContext(Input{Fire: true})
	s := NewShip(Needle, physics.Vec2{X: -10, Y: 5}, 0)
	s.Hyperspacing = true
	s.HyperspaceDuration.Restart()
	s.Torpedoes = 12
	s.TorpedoCooldown.Clear()

	s.Update(ctx)

	require.True(t, s.Hyperspacing)
	assert.True(t, s.Firing)
	require.Equal(t, 1, ctx.Torpedoes.Len())
	assert.Equal(t, 11, s.Torpedoes)
	assert.Equal(t, PlayerA, ctx.Torpedoes.At(0).Owner)
	assert.Equal(t, []EventType{EventTorpedoFired}, eventTypes(*events))
}

func TestShip_HyperspaceBlockedWhileCharging(t *testing.T) {
	ctx, events := newTestContext(Input{Hyperspace: true})
	s := NewShip(Wedge, physics.Vec2{}, 0)

	s.Update(ctx)
	assert.False(t, s.Hyperspacing)
	assert.Zero(t, s.Jumps)
	assert.Empty(t, *events)
}

func TestShip_HyperspaceExitIsUniform(t *testing.T) {
	ctx, _ := newTestContext(Input{})
	ctx.Rand = rand.New(rand.NewSource(42))
	ctx.Delta = config.HyperspaceDuration
	inset := ctx.Bounds.Inset(config.HyperspaceInset)

	const jumps = 2000
	var sum physics.Vec2
	for i := 0; i < jumps; i++ {
		s := NewShip(Needle, physics.Vec2{}, 0)
		s.Hyperspacing = true
		s.HyperspaceDuration.Restart()
		s.Update(ctx)

		require.True(t, inset.Contains(s.Pos))
		sum = sum.Add(s.Pos)
	}

	mean := sum.Scale(1.0 / jumps)
	assert.InDelta(t, 0, mean.X, inset.Width()*0.05)
	assert.InDelta(t, 0, mean.Y, inset.Height()*0.05)
}

func TestShip_DestroyedIsFrozen(t *testing.T) {
	ctx, events := newTestContext(Input{Thrust: true, Fire: true, RotateLeft: true})
	s := NewShip(Wedge, physics.Vec2{X: 3, Y: 4}, 1)
	s.Thrusting = true
	s.Destroy()

	s.Update(ctx)
	assert.Equal(t, physics.Vec2{X: 3, Y: 4}, s.Pos)
	assert.Equal(t, 1.0, s.Rotation)
	assert.False(t, s.Thrusting)
	assert.False(t, s.Collidable())
	assert.Empty(t, *events)
}

func TestShip_WorldCircles(t *testing.T) {
	s := NewShip(Needle, physics.Vec2{X: 10, Y: -5}, math.Pi/2)
	world := s.WorldCircles()

	require.Equal(t, s.Circles.Count, world.Count)
	nose := s.Circles.Circles[0]
	got := world.Circles[0]
	// Rotating a quarter turn maps +X to +Y.
	assert.InDelta(t, 10, got.Center.X, 1e-9)
	assert.InDelta(t, -5+nose.Center.X, got.Center.Y, 1e-9)
	assert.Equal(t, nose.Radius, got.Radius)
	// Ship-local circles stay untouched.
	assert.Equal(t, HullFor(Needle).Circles, s.Circles)
}

func TestShip_TailOpposesHeading(t *testing.T) {
	s := NewShip(Wedge, physics.Vec2{}, 0)
	tail := s.Tail()
	assert.InDelta(t, -s.Length, tail.X, 1e-9)
	assert.InDelta(t, 0, tail.Y, 1e-9)
}

func TestPlayer_Respawn(t *testing.T) {
	p := NewPlayer(PlayerB, Needle)
	p.Ship.Destroy()
	p.Ship.Torpedoes = 0
	p.Input = Input{Fire: true}

	p.Respawn()
	assert.False(t, p.Ship.Destroyed)
	assert.Equal(t, config.InitialTorpedoes, p.Ship.Torpedoes)
	assert.Equal(t, config.SpawnPositions[PlayerB], p.Ship.Pos)
	assert.Equal(t, Input{}, p.Input)
	assert.Equal(t, PlayerA, PlayerB.Other())
}
