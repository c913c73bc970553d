package collision

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/core"
)

// Obstacles is the set of static blockers of a world.
type Obstacles struct {
	items  []Obstacle
	nextID int
}

// NewObstacles creates an empty set.
func NewObstacles() *Obstacles {
	return &Obstacles{nextID: 1}
}

// Add registers an obstacle and returns its ID.
func (o *Obstacles) Add(ob Obstacle) int {
	ob.ID = o.nextID
	o.nextID++
	o.items = append(o.items, ob)
	return ob.ID
}

// Remove drops the obstacle with the given ID.
func (o *Obstacles) Remove(id int) bool {
	for i, ob := range o.items {
		if ob.ID == id {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return true
		}
	}
	return false
}

// All returns the registered obstacles in insertion order.
func (o *Obstacles) All() []Obstacle {
	return o.items
}

// Len returns the number of obstacles.
func (o *Obstacles) Len() int {
	return len(o.items)
}

// Blocked reports whether b overlaps any collider.
func (o *Obstacles) Blocked(b core.Bounds) bool {
	_, hit := o.Hit(b)
	return hit
}

// Hit returns the first obstacle whose collider overlaps b.
func (o *Obstacles) Hit(b core.Bounds) (Obstacle, bool) {
	for _, ob := range o.items {
		if ob.Collider.Overlaps(b) {
			return ob, true
		}
	}
	return Obstacle{}, false
}

// Colliding reports whether a circle at pos with radius overlaps a collider.
func (o *Obstacles) Colliding(pos r2.Vec, radius float64) bool {
	return o.Blocked(CircleBounds(pos, radius))
}

// Slide resolves a move from -> to for a body of the given radius. The full
// move is taken when clear; otherwise the body slides along whichever axis
// is still free, and stays put when both are blocked.
func (o *Obstacles) Slide(from, to r2.Vec, radius float64) r2.Vec {
	if !o.Colliding(to, radius) {
		return to
	}
	if xOnly := (r2.Vec{X: to.X, Y: from.Y}); !o.Colliding(xOnly, radius) {
		return xOnly
	}
	if yOnly := (r2.Vec{X: from.X, Y: to.Y}); !o.Colliding(yOnly, radius) {
		return yOnly
	}
	return from
}

// LineOfSight samples the segment a-b every step units and reports whether
// a body of the given radius could travel it unobstructed.
func (o *Obstacles) LineOfSight(a, b r2.Vec, radius, step float64) bool {
	if step <= 0 {
		step = math.Max(radius, 1)
	}
	dist := core.Distance(a, b)
	n := int(math.Ceil(dist / step))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		p := r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
		if o.Colliding(p, radius) {
			return false
		}
	}
	return true
}
