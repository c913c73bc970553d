package pathfind

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cache remembers the route a mover is following and when it needs a new one.
type Cache struct {
	Waypoints []r2.Vec
	Index     int
	Target    r2.Vec        // Target position when the path was computed
	Age       time.Duration // Time since the path was computed
}

// Set stores a freshly computed path toward target.
func (c *Cache) Set(path []r2.Vec, target r2.Vec) {
	c.Waypoints = path
	c.Index = 0
	c.Target = target
	c.Age = 0
}

// Reset forgets the current path.
func (c *Cache) Reset() {
	c.Waypoints = nil
	c.Index = 0
	c.Age = 0
}

// Tick ages the cached path.
func (c *Cache) Tick(dt time.Duration) {
	c.Age += dt
}

// Valid reports whether the path may still be followed: it exists, has
// waypoints left, is younger than maxAge and the target has moved no
// further than repathDist since it was computed.
func (c *Cache) Valid(target r2.Vec, repathDist float64, maxAge time.Duration) bool {
	if c.Index >= len(c.Waypoints) {
		return false
	}
	if maxAge > 0 && c.Age > maxAge {
		return false
	}
	d := r2.Sub(target, c.Target)
	return r2.Norm2(d) <= repathDist*repathDist
}

// Next returns the waypoint to steer toward from pos, advancing past the
// current waypoint once within arrival distance. ok is false when the path
// is exhausted.
func (c *Cache) Next(pos r2.Vec, arrival float64) (r2.Vec, bool) {
	for c.Index < len(c.Waypoints) {
		wp := c.Waypoints[c.Index]
		if r2.Norm2(r2.Sub(wp, pos)) >= arrival*arrival {
			return wp, true
		}
		c.Index++
	}
	return pos, false
}
