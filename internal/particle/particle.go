// Package particle implements the visual effects engine: a fixed-capacity
// particle pool fed by thrust, explosion and hyperspace emitters.
package particle

import (
	"image/color"
	"math"

	"github.com/tomz197/starduel/internal/physics"
)

// Kind selects a particle's per-frame behavior.
type Kind int

const (
	KindThrust Kind = iota
	KindExplosion
	KindSparkle
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindThrust:
		return "thrust"
	case KindExplosion:
		return "explosion"
	case KindSparkle:
		return "sparkle"
	default:
		return "unknown"
	}
}

// traits are the per-kind update constants.
type traits struct {
	damping     float64 // Fraction of velocity kept per second
	fade        float64 // Exponent of the lifetime fade curve
	oscillation float64 // Phase advance in radians per second, 0 for none
}

var kindTraits = [kindCount]traits{
	KindThrust:    {damping: 0.08, fade: 1.5, oscillation: 40},
	KindExplosion: {damping: 0.25, fade: 2.5},
	KindSparkle:   {damping: 0.6, fade: 0.8, oscillation: 25},
}

// Particle is a short-lived visual effect. Lifetime counts up from zero;
// the particle is dead once it reaches MaxLifetime.
type Particle struct {
	Kind        Kind
	Pos         physics.Vec2
	Vel         physics.Vec2
	Color       color.NRGBA
	Lifetime    float64 // Seconds lived so far
	MaxLifetime float64 // Seconds
	Phase       float64 // Oscillation phase for flickering kinds
	Param       float64 // Flicker depth in [0, 1]
}

// Update advances the particle by dt seconds.
func (p *Particle) Update(dt float64) {
	tr := kindTraits[p.Kind]
	p.Lifetime += dt
	if tr.damping < 1 {
		p.Vel = p.Vel.Scale(math.Pow(tr.damping, dt))
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Phase += tr.oscillation * dt
}

// Dead reports whether the particle has used up its lifetime.
func (p *Particle) Dead() bool {
	return p.Lifetime >= p.MaxLifetime
}

// Alpha returns the particle opacity in [0, 1]: the lifetime fade
// 1 - (lifetime/max)^fade scaled by the kind's flicker modulation.
func (p *Particle) Alpha() float64 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	t := p.Lifetime / p.MaxLifetime
	if t >= 1 {
		return 0
	}
	if t < 0 {
		t = 0
	}
	return (1 - math.Pow(t, kindTraits[p.Kind].fade)) * p.modulation()
}

func (p *Particle) modulation() float64 {
	if kindTraits[p.Kind].oscillation == 0 {
		return 1
	}
	// Dips by Param at the trough of the cosine
	return 1 - p.Param*(0.5-0.5*math.Cos(p.Phase))
}
