package particle

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/physics"
	"github.com/tomz197/starduel/internal/timer"
)

// EmitterKind selects which particles an emitter produces.
type EmitterKind int

const (
	EmitterThrust EmitterKind = iota
	EmitterShipDestruction
	EmitterHyperspace
)

func (k EmitterKind) String() string {
	switch k {
	case EmitterThrust:
		return "thrust"
	case EmitterShipDestruction:
		return "ship_destruction"
	case EmitterHyperspace:
		return "hyperspace"
	default:
		return "unknown"
	}
}

// Mode is an emitter's spawn policy: either *Continuous or *Burst.
type Mode interface {
	// due returns how many particles to spawn for a frame of length dt.
	due(dt time.Duration) int
}

// Continuous spawns Rate particles per second. The fractional remainder
// carries over between frames so the long-run rate does not depend on dt.
type Continuous struct {
	Rate float64
	acc  float64
}

func (c *Continuous) due(dt time.Duration) int {
	c.acc += c.Rate * dt.Seconds()
	n := math.Floor(c.acc)
	c.acc -= n
	return int(n)
}

// Burst spawns PerBurst particles each time Timer elapses. With
// OnFirstFrame set, the first batch goes out as soon as the emitter runs.
type Burst struct {
	Timer        timer.Timer
	PerBurst     int
	OnFirstFrame bool
	started      bool
}

func (b *Burst) due(dt time.Duration) int {
	if !b.started {
		b.started = true
		b.Timer.Restart()
		if b.OnFirstFrame {
			return b.PerBurst
		}
		return 0
	}
	b.Timer.Tick(dt)
	if !b.Timer.IsDone() {
		return 0
	}
	b.Timer.Restart()
	return b.PerBurst
}

// Emitter is a particle source. Thrust emitters are permanent and only
// toggle Active; transient emitters die once Lifetime exceeds MaxLifetime.
type Emitter struct {
	Kind        EmitterKind
	Active      bool
	Pos         physics.Vec2
	Rotation    float64 // Heading of the owner; thrust sprays the other way
	Mode        Mode
	Lifetime    time.Duration
	MaxLifetime time.Duration
}

// NewThrustEmitter returns an inactive continuous thrust emitter.
func NewThrustEmitter() Emitter {
	return Emitter{
		Kind: EmitterThrust,
		Mode: &Continuous{Rate: config.ThrustParticleRate},
	}
}

// NewBurstEmitter returns an active transient emitter of the given kind at pos.
func NewBurstEmitter(kind EmitterKind, pos physics.Vec2) Emitter {
	e := Emitter{Kind: kind, Active: true, Pos: pos}
	switch kind {
	case EmitterHyperspace:
		e.Mode = &Burst{
			Timer:        timer.New(config.HyperspaceBurstInterval),
			PerBurst:     config.HyperspacePerBurst,
			OnFirstFrame: true,
		}
		e.MaxLifetime = config.HyperspaceEmitterLifetime
	default:
		e.Kind = EmitterShipDestruction
		e.Mode = &Burst{
			Timer:        timer.New(config.ExplosionBurstInterval),
			PerBurst:     config.ExplosionPerBurst,
			OnFirstFrame: true,
		}
		e.MaxLifetime = config.ExplosionEmitterLifetime
	}
	return e
}

// Expired reports whether a transient emitter has outlived MaxLifetime.
// Emitters without a MaxLifetime never expire.
func (e *Emitter) Expired() bool {
	return e.MaxLifetime > 0 && e.Lifetime > e.MaxLifetime
}

var (
	thrustColor    = color.NRGBA{R: 255, G: 170, B: 60, A: 255}
	explosionColor = color.NRGBA{R: 255, G: 90, B: 40, A: 255}
	sparkleColor   = color.NRGBA{R: 180, G: 220, B: 255, A: 255}
)

// spawn builds the i-th particle of a batch for this emitter.
func (e *Emitter) spawn(rng *rand.Rand, i int) Particle {
	switch e.Kind {
	case EmitterThrust:
		spread := (rng.Float64() - 0.5) * 0.6
		speed := 10 + rng.Float64()*6
		return Particle{
			Kind:        KindThrust,
			Pos:         e.Pos,
			Vel:         physics.FromAngle(e.Rotation+math.Pi+spread, speed),
			Color:       thrustColor,
			MaxLifetime: 0.25 + rng.Float64()*0.2,
			Phase:       rng.Float64() * 2 * math.Pi,
			Param:       0.4,
		}

	case EmitterHyperspace:
		angle := rng.Float64() * 2 * math.Pi
		return Particle{
			Kind:        KindSparkle,
			Pos:         e.Pos,
			Vel:         physics.FromAngle(angle, 12+rng.Float64()*6),
			Color:       sparkleColor,
			MaxLifetime: config.HyperspaceLifetime.Seconds() * (0.6 + rng.Float64()*0.4),
			Phase:       rng.Float64() * 2 * math.Pi,
			Param:       0.7,
		}

	default:
		angle := rng.Float64() * 2 * math.Pi
		life := config.ExplosionLifetime.Seconds() * (0.5 + rng.Float64()*0.5)
		// Every fourth particle is a slower, longer-lived spark
		if i%4 == 3 {
			return Particle{
				Kind:        KindSparkle,
				Pos:         e.Pos,
				Vel:         physics.FromAngle(angle, 4+rng.Float64()*8),
				Color:       sparkleColor,
				MaxLifetime: life * 1.5,
				Phase:       rng.Float64() * 2 * math.Pi,
				Param:       0.5,
			}
		}
		return Particle{
			Kind:        KindExplosion,
			Pos:         e.Pos,
			Vel:         physics.FromAngle(angle, 8+rng.Float64()*22),
			Color:       explosionColor,
			MaxLifetime: life,
		}
	}
}
