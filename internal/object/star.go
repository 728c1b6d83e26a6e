package object

import (
	"time"

	"github.com/tomz197/starduel/internal/loop/config"
	"github.com/tomz197/starduel/internal/physics"
)

// Star is the gravity well at the center of the playfield. It never moves
// and is never destroyed; only its rotation advances.
type Star struct {
	Pos          physics.Vec2
	Mass         float64
	Radius       float64
	Rotation     float64
	RotationRate float64 // Radians per second
}

// NewStar creates the star at the origin.
func NewStar() Star {
	return Star{
		Mass:         config.StarMass,
		Radius:       config.StarRadius,
		RotationRate: config.StarRotation,
	}
}

// Update advances the star's rotation.
func (s *Star) Update(dt time.Duration) {
	s.Rotation += s.RotationRate * dt.Seconds()
}

// Circle returns the star's collision circle.
func (s *Star) Circle() physics.Circle {
	return physics.Circle{Center: s.Pos, Radius: s.Radius}
}
