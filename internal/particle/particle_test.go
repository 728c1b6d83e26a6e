package particle

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/object"
	"github.com/tomz197/starduel/internal/physics"
	"github.com/tomz197/starduel/internal/timer"
)

func TestContinuous_RateConverges(t *testing.T) {
	const rate = 90.0
	const seconds = 20

	steps := []time.Duration{
		time.Millisecond,
		config.TickTime,
		16667 * time.Microsecond,
		33 * time.Millisecond,
		70 * time.Millisecond,
	}

	for _, dt := range steps {
		t.Run(dt.String(), func(t *testing.T) {
			c := &Continuous{Rate: rate}
			total := 0
			var elapsed time.Duration
			for elapsed+dt <= seconds*time.Second {
				total += c.due(dt)
				elapsed += dt
			}
			want := rate * elapsed.Seconds()
			assert.InDelta(t, want, float64(total), 1)
		})
	}
}

func TestContinuous_KeepsRemainder(t *testing.T) {
	c := &Continuous{Rate: 10}
	// 0.05s per frame: half a particle each, one every other frame.
	got := []int{}
	for i := 0; i < 4; i++ {
		got = append(got, c.due(50*time.Millisecond))
	}
	assert.Equal(t, 2, got[0]+got[1]+got[2]+got[3])
	assert.LessOrEqual(t, got[0], 1)
}

func TestBurst_Schedule(t *testing.T) {
	tests := []struct {
		name         string
		onFirstFrame bool
		first        int
	}{
		{"first frame batch", true, 5},
		{"waits for timer", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Burst{Timer: timer.New(100 * time.Millisecond), PerBurst: 5, OnFirstFrame: tt.onFirstFrame}
			assert.Equal(t, tt.first, b.due(10*time.Millisecond))
			assert.Equal(t, 0, b.due(50*time.Millisecond))
			assert.Equal(t, 5, b.due(50*time.Millisecond))
			assert.Equal(t, 0, b.due(50*time.Millisecond))
			assert.Equal(t, 5, b.due(60*time.Millisecond))
		})
	}
}

func TestParticle_AlphaLaw(t *testing.T) {
	tests := []struct {
		name string
		p    Particle
		want float64
	}{
		{"explosion fresh", Particle{Kind: KindExplosion, MaxLifetime: 1}, 1},
		{"explosion halfway", Particle{Kind: KindExplosion, Lifetime: 0.5, MaxLifetime: 1}, 1 - math.Pow(0.5, kindTraits[KindExplosion].fade)},
		{"explosion dead", Particle{Kind: KindExplosion, Lifetime: 1, MaxLifetime: 1}, 0},
		{"sparkle crest", Particle{Kind: KindSparkle, Lifetime: 0.25, MaxLifetime: 1, Param: 0.6}, 1 - math.Pow(0.25, kindTraits[KindSparkle].fade)},
		{"sparkle trough", Particle{Kind: KindSparkle, Lifetime: 0.25, MaxLifetime: 1, Phase: math.Pi, Param: 0.6}, (1 - math.Pow(0.25, kindTraits[KindSparkle].fade)) * 0.4},
		{"no lifetime", Particle{Kind: KindThrust}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.p.Alpha(), 1e-9)
		})
	}
}

func TestParticle_UpdateDampsAndAges(t *testing.T) {
	p := Particle{Kind: KindExplosion, Vel: physics.Vec2{X: 10}, MaxLifetime: 0.5}
	p.Update(0.25)
	assert.InDelta(t, 0.25, p.Lifetime, 1e-12)
	assert.Less(t, p.Vel.X, 10.0)
	assert.Greater(t, p.Pos.X, 0.0)
	assert.False(t, p.Dead())

	p.Update(0.25)
	assert.True(t, p.Dead())
}

func newTestSystem(particleCap, emitterCap int) *System {
	return NewSystemWithCapacity(particleCap, emitterCap, rand.New(rand.NewSource(7)), nil)
}

func TestSystem_CapacityIsNeverExceeded(t *testing.T) {
	s := newTestSystem(50, 2)

	assert.True(t, s.SpawnBurst(EmitterShipDestruction, physics.Vec2{}))
	assert.True(t, s.SpawnBurst(EmitterHyperspace, physics.Vec2{}))
	assert.False(t, s.SpawnBurst(EmitterHyperspace, physics.Vec2{}))
	assert.Len(t, s.Emitters(), 2)

	for i := 0; i < 30; i++ {
		s.Update(config.TickTime)
		assert.LessOrEqual(t, len(s.Particles()), 50)
	}
}

func TestSystem_TransientEmittersSelfDestruct(t *testing.T) {
	s := newTestSystem(config.ParticleCapacity, 4)
	s.SpawnBurst(EmitterHyperspace, physics.Vec2{X: 5})

	s.Update(config.TickTime)
	require.Len(t, s.Emitters(), 1)
	assert.Len(t, s.Particles(), config.HyperspacePerBurst)
	for _, p := range s.Particles() {
		assert.Equal(t, KindSparkle, p.Kind)
	}

	var elapsed time.Duration
	for elapsed <= config.HyperspaceEmitterLifetime {
		s.Update(config.TickTime)
		elapsed += config.TickTime
	}
	assert.Empty(t, s.Emitters())

	// Particles outlive their emitter, then fade out too.
	for i := 0; i < int(time.Second/config.TickTime); i++ {
		s.Update(config.TickTime)
	}
	assert.Empty(t, s.Particles())
}

func TestSystem_ExplosionRepeatsBursts(t *testing.T) {
	s := newTestSystem(config.ParticleCapacity, 4)
	s.SpawnBurst(EmitterShipDestruction, physics.Vec2{})

	batches := 0
	for len(s.Emitters()) > 0 {
		before := len(s.Particles())
		s.Update(config.TickTime)
		if len(s.Particles())-before > config.ExplosionPerBurst/2 {
			batches++
		}
	}
	// First frame plus one batch per elapsed interval within the lifetime.
	maxBatches := 1 + int(config.ExplosionEmitterLifetime/config.ExplosionBurstInterval)
	assert.Greater(t, batches, 1)
	assert.LessOrEqual(t, batches, maxBatches)
}

func TestSystem_SyncThrust(t *testing.T) {
	s := newTestSystem(config.ParticleCapacity, 4)
	wedge := object.NewShip(object.Wedge, physics.Vec2{X: 10, Y: 10}, 0)
	needle := object.NewShip(object.Needle, physics.Vec2{X: -10, Y: -10}, math.Pi)
	wedge.Thrusting = true

	s.SyncThrust([]*object.Ship{&wedge, &needle})

	e := s.ThrustEmitter(object.Wedge)
	assert.True(t, e.Active)
	assert.Equal(t, wedge.Tail(), e.Pos)
	assert.False(t, s.ThrustEmitter(object.Needle).Active)

	for i := 0; i < int(time.Second/config.TickTime); i++ {
		s.Update(config.TickTime)
	}
	require.NotEmpty(t, s.Particles())
	for _, p := range s.Particles() {
		assert.Equal(t, KindThrust, p.Kind)
		// Exhaust trails behind a ship facing +X.
		assert.Less(t, p.Vel.X, 0.0)
	}

	wedge.Destroy()
	s.SyncThrust([]*object.Ship{&wedge, &needle})
	assert.False(t, e.Active)
}

func TestSystem_SyncThrustMissingShipLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	s := NewSystemWithCapacity(16, 2, rand.New(rand.NewSource(1)), logger)

	wedge := object.NewShip(object.Wedge, physics.Vec2{}, 0)
	other := object.NewShip(object.Wedge, physics.Vec2{X: 20}, 0)
	ships := []*object.Ship{&wedge, &other}

	s.SyncThrust(ships)
	s.SyncThrust(ships)

	assert.Equal(t, 1, strings.Count(buf.String(), "no ship for thrust emitter"))
	assert.False(t, s.ThrustEmitter(object.Needle).Active)
}

func TestSystem_SyncThrustSharedTypeFollowsBurningShip(t *testing.T) {
	s := newTestSystem(config.ParticleCapacity, 4)
	a := object.NewShip(object.Needle, physics.Vec2{X: -20}, 0)
	b := object.NewShip(object.Needle, physics.Vec2{X: 20, Y: 5}, math.Pi)
	b.Thrusting = true
	ships := []*object.Ship{&a, &b}

	for i := 0; i < 30; i++ {
		s.SyncThrust(ships)
		s.Update(config.TickTime)
	}

	e := s.ThrustEmitter(object.Needle)
	assert.True(t, e.Active)
	assert.Equal(t, b.Tail(), e.Pos)
	assert.Equal(t, b.Rotation, e.Rotation)
	assert.NotEmpty(t, s.Particles())

	b.Thrusting = false
	s.SyncThrust(ships)
	assert.False(t, e.Active)
	assert.Equal(t, a.Tail(), e.Pos)
}

func TestSystem_Reset(t *testing.T) {
	s := newTestSystem(config.ParticleCapacity, 4)
	s.SpawnBurst(EmitterShipDestruction, physics.Vec2{})
	s.ThrustEmitter(object.Needle).Active = true
	s.Update(config.TickTime)
	require.NotEmpty(t, s.Particles())

	s.Reset()
	assert.Empty(t, s.Particles())
	assert.Empty(t, s.Emitters())
	assert.False(t, s.ThrustEmitter(object.Needle).Active)
}
