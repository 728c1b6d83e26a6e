package physics

import "math/rand"

// Bounds is an axis-aligned playfield rectangle. Objects leaving one edge
// re-enter at the opposite edge.
type Bounds struct {
	Min, Max Vec2
}

// CenteredBounds returns bounds of the given size centered on the origin.
func CenteredBounds(width, height float64) Bounds {
	return Bounds{
		Min: Vec2{X: -width / 2, Y: -height / 2},
		Max: Vec2{X: width / 2, Y: height / 2},
	}
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies within the bounds (edges inclusive).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Wrap moves p across to the opposite edge on every axis where it has left
// the playfield. A point that is already inside is returned unchanged.
func (b Bounds) Wrap(p Vec2) Vec2 {
	if p.X < b.Min.X {
		p.X += b.Width()
	} else if p.X > b.Max.X {
		p.X -= b.Width()
	}
	if p.Y < b.Min.Y {
		p.Y += b.Height()
	} else if p.Y > b.Max.Y {
		p.Y -= b.Height()
	}
	return p
}

// Inset returns the bounds shrunk around their center to fraction of the
// original width and height.
func (b Bounds) Inset(fraction float64) Bounds {
	cx := (b.Min.X + b.Max.X) / 2
	cy := (b.Min.Y + b.Max.Y) / 2
	hw := b.Width() * fraction / 2
	hh := b.Height() * fraction / 2
	return Bounds{
		Min: Vec2{X: cx - hw, Y: cy - hh},
		Max: Vec2{X: cx + hw, Y: cy + hh},
	}
}

// RandomPoint returns a point drawn uniformly from the bounds.
func (b Bounds) RandomPoint(rng *rand.Rand) Vec2 {
	return Vec2{
		X: b.Min.X + rng.Float64()*b.Width(),
		Y: b.Min.Y + rng.Float64()*b.Height(),
	}
}
