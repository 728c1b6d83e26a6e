package particle

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/object"
	"github.com/tomz197/starduel/internal/physics"
	"github.com/tomz197/starduel/internal/pool"
)

// System owns every particle and emitter of a match: one permanent thrust
// emitter per ship type and a fixed-capacity pool of transient emitters.
// Spawning past either capacity is silently dropped.
type System struct {
	particles *pool.Dense[Particle]
	emitters  *pool.Dense[Emitter]
	thrust    [object.ShipTypeCount]Emitter
	missing   [object.ShipTypeCount]bool // Thrust binding failed last frame

	rng    *rand.Rand
	logger *log.Logger
}

// NewSystem creates a system with the default capacities.
func NewSystem(rng *rand.Rand, logger *log.Logger) *System {
	return NewSystemWithCapacity(config.ParticleCapacity, config.TransientEmitterCapacity, rng, logger)
}

// NewSystemWithCapacity creates a system holding at most particleCap
// particles and emitterCap transient emitters.
func NewSystemWithCapacity(particleCap, emitterCap int, rng *rand.Rand, logger *log.Logger) *System {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &System{
		particles: pool.New[Particle](particleCap),
		emitters:  pool.New[Emitter](emitterCap),
		rng:       rng,
		logger:    logger,
	}
	s.Reset()
	return s
}

// Reset drops every particle and transient emitter and turns the thrust
// emitters off.
func (s *System) Reset() {
	s.particles.Clear()
	s.emitters.Clear()
	for i := range s.thrust {
		s.thrust[i] = NewThrustEmitter()
	}
	s.missing = [object.ShipTypeCount]bool{}
}

// Particles returns the live particles. The slice aliases pool storage.
func (s *System) Particles() []Particle { return s.particles.Items() }

// Emitters returns the live transient emitters.
func (s *System) Emitters() []Emitter { return s.emitters.Items() }

// ThrustEmitter returns the permanent thrust emitter for a ship type.
func (s *System) ThrustEmitter(t object.ShipType) *Emitter {
	return &s.thrust[t]
}

// Spawn adds a single particle. Returns false when the pool is full.
func (s *System) Spawn(p Particle) bool {
	return s.particles.Push(p)
}

// SpawnBurst starts a transient emitter of the given kind at pos.
// Returns false when the emitter pool is full.
func (s *System) SpawnBurst(kind EmitterKind, pos physics.Vec2) bool {
	return s.emitters.Push(NewBurstEmitter(kind, pos))
}

// SyncThrust binds each thrust emitter to the ship of its type: the
// emitter mirrors the ship's thrust flag and sits at its tail. When two
// ships share a type, whichever one is thrusting drives the emitter. A type
// with no ship is logged once and skipped until a ship shows up.
func (s *System) SyncThrust(ships []*object.Ship) {
	for t := range s.thrust {
		shipType := object.ShipType(t)
		ship := findShip(ships, shipType)
		if ship == nil {
			if !s.missing[t] {
				s.logger.Error("no ship for thrust emitter", "type", shipType)
				s.missing[t] = true
			}
			continue
		}
		s.missing[t] = false

		e := &s.thrust[t]
		e.Active = burning(ship)
		e.Pos = ship.Tail()
		e.Rotation = ship.Rotation
	}
}

// findShip returns the first burning ship of type t, falling back to the
// first ship of that type.
func findShip(ships []*object.Ship, t object.ShipType) *object.Ship {
	var first *object.Ship
	for _, ship := range ships {
		if ship == nil || ship.Type != t {
			continue
		}
		if burning(ship) {
			return ship
		}
		if first == nil {
			first = ship
		}
	}
	return first
}

func burning(ship *object.Ship) bool {
	return ship.Thrusting && !ship.Destroyed
}

// Update ages and moves particles, then lets every emitter spawn its
// share for the frame. Expired transient emitters are removed.
func (s *System) Update(dt time.Duration) {
	secs := dt.Seconds()
	s.particles.RemoveFunc(func(p *Particle) bool {
		p.Update(secs)
		return p.Dead()
	})

	for i := range s.thrust {
		e := &s.thrust[i]
		if e.Active {
			s.emit(e, e.Mode.due(dt))
		}
	}

	s.emitters.RemoveFunc(func(e *Emitter) bool {
		e.Lifetime += dt
		if e.Expired() {
			return true
		}
		if e.Active {
			s.emit(e, e.Mode.due(dt))
		}
		return false
	})
}

func (s *System) emit(e *Emitter, n int) {
	for i := 0; i < n; i++ {
		if !s.particles.Push(e.spawn(s.rng, i)) {
			return
		}
	}
}
