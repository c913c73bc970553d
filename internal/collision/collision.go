// Package collision holds the overlap tests used by the arena, the static
// obstacle set, and the generator that lays obstacles out at world start.
package collision

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/core"
)

// CirclesOverlap reports whether two circles touch or overlap.
func CirclesOverlap(a r2.Vec, ra float64, b r2.Vec, rb float64) bool {
	reach := ra + rb
	return r2.Norm2(r2.Sub(a, b)) <= reach*reach
}

// InRange reports whether b is within dist of a.
func InRange(a, b r2.Vec, dist float64) bool {
	return r2.Norm2(r2.Sub(a, b)) <= dist*dist
}

// CircleBounds returns the box enclosing a circle.
func CircleBounds(center r2.Vec, radius float64) core.Bounds {
	return core.BoundsAround(center.X, center.Y, radius)
}

// Kind is an obstacle variety.
type Kind string

const (
	KindTree     Kind = "tree"
	KindRock     Kind = "rock"
	KindBuilding Kind = "building"
)

// Obstacle is a static blocker. Bounds is the full footprint used for
// drawing; Collider is the part that blocks movement.
type Obstacle struct {
	ID       int
	Kind     Kind
	Bounds   core.Bounds
	Collider core.Bounds
}

// trunkSize is the edge of a tree's square trunk collider.
const trunkSize = 16

// NewObstacle creates an obstacle with the collider of its kind: trees
// only block at the trunk, centred at the bottom of the footprint; rocks
// and buildings block their whole footprint.
func NewObstacle(kind Kind, b core.Bounds) Obstacle {
	collider := b
	if kind == KindTree {
		collider = core.Bounds{
			X: b.X + b.W/2 - trunkSize/2,
			Y: b.Bottom() - trunkSize,
			W: trunkSize,
			H: trunkSize,
		}
	}
	return Obstacle{Kind: kind, Bounds: b, Collider: collider}
}
