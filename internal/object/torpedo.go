package object

import (
	"time"

	"github.com/tomz197/starduel/internal/physics"
	"github.com/tomz197/starduel/internal/pool"
)

// Torpedo is a projectile fired by a ship.
type Torpedo struct {
	Pos       physics.Vec2
	Vel       physics.Vec2
	Radius    float64
	CreatedAt time.Duration // Match clock at launch
	Lifespan  time.Duration
	Owner     PlayerID // Player that fired it, for score attribution
}

// Circle returns the torpedo's collision circle.
func (t *Torpedo) Circle() physics.Circle {
	return physics.Circle{Center: t.Pos, Radius: t.Radius}
}

// Expired reports whether the torpedo has outlived its lifespan at now.
// A torpedo is still alive at exactly CreatedAt+Lifespan.
func (t *Torpedo) Expired(now time.Duration) bool {
	return now-t.CreatedAt > t.Lifespan
}

// Torpedoes is the fixed-capacity store of live torpedoes shared by both
// players. Order is not preserved across removals.
type Torpedoes struct {
	pool    *pool.Dense[Torpedo]
	expired []int
}

// NewTorpedoes allocates a store for at most capacity torpedoes.
func NewTorpedoes(capacity int) *Torpedoes {
	return &Torpedoes{
		pool:    pool.New[Torpedo](capacity),
		expired: make([]int, 0, capacity),
	}
}

// Spawn adds t. At capacity the request is dropped and false is returned.
func (ts *Torpedoes) Spawn(t Torpedo) bool {
	return ts.pool.Push(t)
}

func (ts *Torpedoes) Len() int { return ts.pool.Len() }
func (ts *Torpedoes) Cap() int { return ts.pool.Cap() }

// At returns the live torpedo at index i.
func (ts *Torpedoes) At(i int) *Torpedo { return ts.pool.At(i) }

// Items returns the live torpedoes. The slice aliases pool storage.
func (ts *Torpedoes) Items() []Torpedo { return ts.pool.Items() }

// Remove swap-removes the torpedo at index i.
func (ts *Torpedoes) Remove(i int) { ts.pool.SwapRemove(i) }

// Clear removes every torpedo.
func (ts *Torpedoes) Clear() { ts.pool.Clear() }

// Update moves every torpedo, wraps it around the playfield and removes the
// ones that have expired at now.
func (ts *Torpedoes) Update(dt time.Duration, now time.Duration, bounds physics.Bounds) {
	secs := dt.Seconds()
	items := ts.pool.Items()
	ts.expired = ts.expired[:0]

	for i := range items {
		t := &items[i]
		t.Pos = bounds.Wrap(t.Pos.Add(t.Vel.Scale(secs)))
		if t.Expired(now) {
			ts.expired = append(ts.expired, i)
		}
	}

	// Highest index first so earlier indices stay valid under swap-remove
	for i := len(ts.expired) - 1; i >= 0; i-- {
		ts.pool.SwapRemove(ts.expired[i])
	}
}
