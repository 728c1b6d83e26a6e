// Package physics provides the vector math, circle intersection, playfield
// wraparound and star gravity used by the simulation.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec2) float64 {
	return b.Sub(a).LenSq()
}

// Circle is a collision circle.
type Circle struct {
	Center Vec2
	Radius float64
}

// Transform places a ship-local circle into world space: rotated by
// rotation about the local origin, then translated to origin.
func (c Circle) Transform(origin Vec2, rotation float64) Circle {
	return Circle{
		Center: origin.Add(c.Center.Rotate(rotation)),
		Radius: c.Radius,
	}
}

// CirclesOverlap reports whether two circles intersect. Touching circles
// do not count.
func CirclesOverlap(a, b Circle) bool {
	minDist := a.Radius + b.Radius
	return DistanceSquared(a.Center, b.Center) < minDist*minDist
}

// AnyOverlap reports whether any circle of as intersects any circle of bs.
func AnyOverlap(as, bs []Circle) bool {
	for _, a := range as {
		for _, b := range bs {
			if CirclesOverlap(a, b) {
				return true
			}
		}
	}
	return false
}
