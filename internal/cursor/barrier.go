package cursor

import "math"

// MaxForce makes a barrier impassable
const MaxForce = math.MaxInt32

// BarrierKind says which direction a barrier blocks
type BarrierKind int

const (
	// Lower barriers (left, top) block decreasing coordinates
	Lower BarrierKind = iota
	// Upper barriers (right, bottom) block increasing coordinates
	Upper
)

// Barrier is a one sided threshold on one axis.
//
// For an upper barrier Edge is the exclusive screen bound, so the last
// coordinate still inside the screen is Edge-1.
type Barrier struct {
	Kind     BarrierKind
	Enabled  bool
	Edge     int
	MinForce int

	force int
}

// Change re-targets the barrier and forgets any accumulated push
func (b *Barrier) Change(enabled bool, edge, minForce int) {
	b.Enabled = enabled
	b.Edge = edge
	b.MinForce = minForce
	b.force = 0
}

// limit is the furthest coordinate that is still inside
func (b *Barrier) limit() int {
	if b.Kind == Upper {
		return b.Edge - 1
	}
	return b.Edge
}

// overshoot returns how far v lies beyond the barrier, zero when inside
func (b *Barrier) overshoot(v int) int {
	lim := b.limit()
	if b.Kind == Upper {
		if v > lim {
			return v - lim
		}
		return 0
	}
	if v < lim {
		return lim - v
	}
	return 0
}

// Outside reports whether v lies beyond an enabled barrier
func (b *Barrier) Outside(v int) bool {
	return b.Enabled && b.overshoot(v) > 0
}

// Force returns the push accumulated against the barrier so far
func (b *Barrier) Force() int {
	return b.force
}

// BrokenThrough applies the barrier to *v. While the accumulated push
// stays within MinForce the coordinate is pinned to the edge. Once it is
// exceeded the barrier breaks, *v is left alone and true is returned.
func (b *Barrier) BrokenThrough(v *int) bool {
	if !b.Enabled {
		return false
	}
	over := b.overshoot(*v)
	if over == 0 {
		b.force = 0
		return false
	}
	if b.MinForce >= MaxForce {
		*v = b.limit()
		return false
	}

	if b.force > MaxForce-over {
		b.force = MaxForce
	} else {
		b.force += over
	}
	if b.force > b.MinForce {
		b.force = 0
		return true
	}
	*v = b.limit()
	return false
}
