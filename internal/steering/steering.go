// Package steering computes flocking forces for enemy movement.
//
// Each force is computed independently from a neighbour list, then Apply
// weights and sums them, adds the sum to the current velocity and rescales
// the result so its magnitude never exceeds the speed cap.
package steering

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/core"
)

// Neighbor is a nearby enemy as seen by the steering computation.
type Neighbor struct {
	Pos r2.Vec
	Vel r2.Vec
	// SameArchetype marks neighbours that take part in alignment and cohesion.
	SameArchetype bool
}

// Weights scale each force before summation.
type Weights struct {
	Separation float64
	Alignment  float64
	Cohesion   float64
	Seek       float64
}

// Forces are the raw, unweighted steering contributions of one tick.
type Forces struct {
	Separation r2.Vec
	Alignment  r2.Vec
	Cohesion   r2.Vec
	Seek       r2.Vec
}

// Separation pushes away from every neighbour closer than radius. Each
// contribution points away from the neighbour and grows linearly from 0 at
// radius to 1 at contact; the total is averaged over the contributors.
// Neighbours at exactly the same position contribute nothing.
func Separation(self r2.Vec, neighbors []Neighbor, radius float64) r2.Vec {
	var sum r2.Vec
	count := 0
	for _, n := range neighbors {
		away := r2.Sub(self, n.Pos)
		d := r2.Norm(away)
		if d <= 0 || d >= radius {
			continue
		}
		sum = r2.Add(sum, r2.Scale((radius-d)/radius/d, away))
		count++
	}
	if count == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/float64(count), sum)
}

// Alignment is the normalised average velocity of same-archetype neighbours.
func Alignment(neighbors []Neighbor) r2.Vec {
	var sum r2.Vec
	count := 0
	for _, n := range neighbors {
		if !n.SameArchetype {
			continue
		}
		sum = r2.Add(sum, n.Vel)
		count++
	}
	if count == 0 {
		return r2.Vec{}
	}
	return core.SafeUnit(sum)
}

// Cohesion pulls toward the centroid of same-archetype neighbours, scaled
// by how far away the centroid is relative to radius. A centroid at or
// beyond radius, or exactly on self, yields no force.
func Cohesion(self r2.Vec, neighbors []Neighbor, radius float64) r2.Vec {
	var sum r2.Vec
	count := 0
	for _, n := range neighbors {
		if !n.SameArchetype {
			continue
		}
		sum = r2.Add(sum, n.Pos)
		count++
	}
	if count == 0 {
		return r2.Vec{}
	}
	toCenter := r2.Sub(r2.Scale(1/float64(count), sum), self)
	d := r2.Norm(toCenter)
	if d <= 0 || d >= radius {
		return r2.Vec{}
	}
	return r2.Scale(1/radius, toCenter) // unit(toCenter) * d/radius
}

// SeekProfile shapes the raw seek force of an archetype.
type SeekProfile struct {
	Intensity float64
	// CloseRange switches to CloseIntensity when the target is nearer.
	CloseRange     float64
	CloseIntensity float64
	// ScaleJitterMin/Max multiply the force by a uniform random factor.
	ScaleJitterMin float64
	ScaleJitterMax float64
	// AxisJitter adds uniform noise in [-AxisJitter, AxisJitter] per axis.
	AxisJitter float64
}

// Seek returns a force toward target. rng may be nil when the profile has
// no jitter.
func Seek(self, target r2.Vec, p SeekProfile, rng *rand.Rand) r2.Vec {
	delta := r2.Sub(target, self)
	d := r2.Norm(delta)
	if d <= 0 {
		return r2.Vec{}
	}

	intensity := p.Intensity
	if p.CloseRange > 0 && d < p.CloseRange {
		intensity = p.CloseIntensity
	}
	if rng != nil && p.ScaleJitterMax > p.ScaleJitterMin {
		intensity *= p.ScaleJitterMin + rng.Float64()*(p.ScaleJitterMax-p.ScaleJitterMin)
	}

	force := r2.Scale(intensity/d, delta)
	if rng != nil && p.AxisJitter > 0 {
		force.X += (rng.Float64()*2 - 1) * p.AxisJitter
		force.Y += (rng.Float64()*2 - 1) * p.AxisJitter
	}
	return force
}

// Combine returns the weighted sum of the forces.
func Combine(f Forces, w Weights) r2.Vec {
	sum := r2.Scale(w.Separation, f.Separation)
	sum = r2.Add(sum, r2.Scale(w.Alignment, f.Alignment))
	sum = r2.Add(sum, r2.Scale(w.Cohesion, f.Cohesion))
	return r2.Add(sum, r2.Scale(w.Seek, f.Seek))
}

// Apply adds the weighted forces to vel and clamps the magnitude of the
// result to maxSpeed by rescaling.
func Apply(vel r2.Vec, f Forces, w Weights, maxSpeed float64) r2.Vec {
	return core.ClampLength(r2.Add(vel, Combine(f, w)), maxSpeed)
}
