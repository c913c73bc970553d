// Package core provides the shared building blocks of the arena: screen
// buffer, geometry, input frames and runtime configuration. It has no
// Bubble Tea dependency so the simulation stays pure and testable.
package core

// Rect is an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Bounds is a world-space axis-aligned box anchored at its top-left corner.
type Bounds struct {
	X, Y float64
	W, H float64
}

// BoundsAround returns the square of half-size radius centered on (x, y).
func BoundsAround(x, y, radius float64) Bounds {
	return Bounds{X: x - radius, Y: y - radius, W: radius * 2, H: radius * 2}
}

// Right returns the x-coordinate of the right edge.
func (b Bounds) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Y + b.H }

// Center returns the center point of the box.
func (b Bounds) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Overlaps reports whether two boxes overlap. Touching edges count as overlap.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.X <= o.Right() && b.Right() >= o.X &&
		b.Y <= o.Bottom() && b.Bottom() >= o.Y
}

// ContainsPoint reports whether (x, y) lies inside or on the box.
func (b Bounds) ContainsPoint(x, y float64) bool {
	return x >= b.X && x <= b.Right() && y >= b.Y && y <= b.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
