// Package config centralizes all tunable game parameters.
package config

import (
	"math"
	"time"

	"github.com/tomz197/starduel/internal/physics"
)

// Playfield - logical units, centered on the star at the origin.
const (
	PlayfieldWidth  = 160.0
	PlayfieldHeight = 100.0 // In canvas sub-pixels, so 50 terminal rows at 1:1
)

// Terminal render limits. Larger terminals get a centered, bordered canvas.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Star and gravity
const (
	GravityConstant = 6.674e-11
	StarMass        = 4.8e15 // G·M ≈ 3.2e5, so ~8 units/s² at 40 units out
	MetersPerUnit   = 1000.0
	MaxGravityAccel = 60.0 // Units/s²
	StarRadius      = 3.5
	StarRotation    = 0.8 // Radians per second
)

// Ships
const (
	ShipRotationRate = 3.6  // Radians per second
	ShipThrustForce  = 28.0 // Divided by ship mass
	ShipMaxFuel      = 100.0
	ShipFuelBurnRate = 12.0 // Fuel per second of thrust
)

// Spawn positions (rotation 0 points right, positive rotation turns clockwise on screen).
var (
	SpawnPositions = [2]physics.Vec2{{X: -50, Y: 30}, {X: 50, Y: -30}}
	SpawnRotations = [2]float64{-math.Pi / 2, math.Pi / 2}
)

// Torpedoes
const (
	InitialTorpedoes   = 12
	TorpedoCapacity    = 2 * InitialTorpedoes
	TorpedoSpeed       = 55.0 // Units per second, added to ship velocity
	TorpedoRadius      = 0.5
	TorpedoLifespan    = 2 * time.Second
	TorpedoCooldown    = 250 * time.Millisecond
	TorpedoNoseSpacing = 1.25 // Multiplier on the ship's canonical length
)

// Hyperspace
const (
	HyperspaceDuration = 900 * time.Millisecond
	HyperspaceCooldown = 4 * time.Second
	HyperspaceInset    = 0.8 // Fraction of the playfield used for re-entry
)

// Particles
const (
	ParticleCapacity         = 8192
	TransientEmitterCapacity = 32
	ThrustParticleRate       = 90.0 // Particles per second while thrusting

	ExplosionPerBurst      = 120
	ExplosionBurstInterval = 120 * time.Millisecond
	ExplosionLifetime      = 400 * time.Millisecond

	ExplosionEmitterLifetime = 3 * ExplosionBurstInterval

	HyperspacePerBurst      = 48
	HyperspaceBurstInterval = 150 * time.Millisecond
	HyperspaceLifetime      = 300 * time.Millisecond

	HyperspaceEmitterLifetime = HyperspaceBurstInterval
)

// Match
const (
	TargetScore      = 10
	EndRoundDuration = 3 * time.Second
	EndMatchDuration = 6 * time.Second
	RoundEndCueAt    = 0.5 // Fraction of the end-round timer
)

// Simulation and render rates
const (
	TickRate     = 120
	TickTime     = time.Second / TickRate
	MaxFrameStep = 50 * time.Millisecond // Clamp for long stalls

	RenderRate     = 60
	RenderInterval = time.Second / RenderRate
)
