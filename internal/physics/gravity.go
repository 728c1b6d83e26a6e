package physics

// Gravity describes the pull of the central star.
type Gravity struct {
	G             float64 // Gravitational constant
	MetersPerUnit float64 // Playfield units to meters
	MaxAccel      float64 // Magnitude cap, in playfield units/s²
}

// Accel returns the acceleration a body at pos feels toward a source of
// the given mass at center. The magnitude is G·mass over the distance in
// meters, capped at MaxAccel. A body sitting exactly on the source feels
// nothing.
func (g Gravity) Accel(pos, center Vec2, mass float64) Vec2 {
	toward := center.Sub(pos)
	dist := toward.Len() * g.MetersPerUnit
	if dist == 0 {
		return Vec2{}
	}
	magnitude := g.G * mass / dist
	if magnitude > g.MaxAccel {
		magnitude = g.MaxAccel
	}
	return toward.Normalize().Scale(magnitude)
}
