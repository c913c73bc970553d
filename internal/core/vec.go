package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

// IsZero reports whether v has (near) zero length.
func IsZero(v r2.Vec) bool {
	return r2.Norm2(v) < Epsilon*Epsilon
}

// SafeUnit returns the unit vector of v, or the zero vector when v has no
// length. r2.Unit yields NaN components for the zero vector.
func SafeUnit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n < Epsilon {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// ClampLength rescales v so its length does not exceed max. The direction
// is preserved.
func ClampLength(v r2.Vec, max float64) r2.Vec {
	if max <= 0 {
		return r2.Vec{}
	}
	n := r2.Norm(v)
	if n <= max {
		return v
	}
	return r2.Scale(max/n, v)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Bearing returns the angle of v in radians, measured from the +X axis.
func Bearing(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// FromBearing returns the unit vector pointing along angle radians.
func FromBearing(angle float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
