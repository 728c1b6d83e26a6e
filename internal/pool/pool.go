// Package pool provides a fixed-capacity dense array with O(1) swap-remove.
//
// Entity pools (torpedoes, particles, transient emitters) are allocated once
// and never grow. Pushing into a full pool is a no-op: callers treat "full"
// as an expected condition and simply drop the item.
package pool

// Dense stores up to Cap items contiguously. Removal overwrites the removed
// slot with the last item, so order is not preserved.
type Dense[T any] struct {
	items []T
	n     int
}

// New allocates a pool that holds at most capacity items.
func New[T any](capacity int) *Dense[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Dense[T]{items: make([]T, capacity)}
}

// Len returns the number of live items.
func (d *Dense[T]) Len() int { return d.n }

// Cap returns the fixed capacity.
func (d *Dense[T]) Cap() int { return len(d.items) }

// Full reports whether another Push would be dropped.
func (d *Dense[T]) Full() bool { return d.n >= len(d.items) }

// Push appends v. Returns false (and leaves the pool untouched) when full.
func (d *Dense[T]) Push(v T) bool {
	if d.Full() {
		return false
	}
	d.items[d.n] = v
	d.n++
	return true
}

// At returns a pointer to the live item at index i. The pointer is only
// valid until the next removal.
func (d *Dense[T]) At(i int) *T {
	if i < 0 || i >= d.n {
		panic("pool: index out of range")
	}
	return &d.items[i]
}

// Items returns the live items. The slice aliases pool storage.
func (d *Dense[T]) Items() []T {
	return d.items[:d.n]
}

// SwapRemove removes the item at index i by moving the last item into its
// slot. Out-of-range indices are ignored.
func (d *Dense[T]) SwapRemove(i int) {
	if i < 0 || i >= d.n {
		return
	}
	last := d.n - 1
	d.items[i] = d.items[last]
	var zero T
	d.items[last] = zero
	d.n--
}

// RemoveFunc swap-removes every item for which drop returns true and
// returns how many were removed. Each item is visited exactly once.
func (d *Dense[T]) RemoveFunc(drop func(*T) bool) int {
	removed := 0
	for i := 0; i < d.n; {
		if drop(&d.items[i]) {
			d.SwapRemove(i)
			removed++
			continue // re-check the item swapped into slot i
		}
		i++
	}
	return removed
}

// Clear removes all items without releasing storage.
func (d *Dense[T]) Clear() {
	clear(d.items[:d.n])
	d.n = 0
}
