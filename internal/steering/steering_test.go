package steering

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

const tolerance = 1e-9

func TestSeparationPointsAwayAndFallsOff(t *testing.T) {
	self := r2.Vec{}
	near := Separation(self, []Neighbor{{Pos: r2.Vec{X: 20}}}, 80)
	far := Separation(self, []Neighbor{{Pos: r2.Vec{X: 60}}}, 80)

	assert.Less(t, near.X, 0.0, "force should point away from the neighbour")
	assert.InDelta(t, 0.75, -near.X, tolerance)
	assert.InDelta(t, 0.25, -far.X, tolerance)
	assert.Zero(t, near.Y)
}

func TestSeparationAveragesContributors(t *testing.T) {
	got := Separation(r2.Vec{}, []Neighbor{
		{Pos: r2.Vec{X: 40}},
		{Pos: r2.Vec{X: -40}},
		{Pos: r2.Vec{Y: 500}}, // outside radius
	}, 80)
	assert.InDelta(t, 0, r2.Norm(got), tolerance)
}

func TestSeparationIgnoresCoincidentNeighbour(t *testing.T) {
	got := Separation(r2.Vec{X: 3, Y: 3}, []Neighbor{{Pos: r2.Vec{X: 3, Y: 3}}}, 80)
	assert.Equal(t, r2.Vec{}, got)
	assert.False(t, math.IsNaN(got.X))
}

func TestAlignmentUsesSameArchetypeOnly(t *testing.T) {
	got := Alignment([]Neighbor{
		{Vel: r2.Vec{X: 2}, SameArchetype: true},
		{Vel: r2.Vec{X: 4}, SameArchetype: true},
		{Vel: r2.Vec{Y: 100}},
	})
	assert.InDelta(t, 1, got.X, tolerance)
	assert.InDelta(t, 0, got.Y, tolerance)

	assert.Equal(t, r2.Vec{}, Alignment([]Neighbor{
		{Vel: r2.Vec{X: 1}, SameArchetype: true},
		{Vel: r2.Vec{X: -1}, SameArchetype: true},
	}))
}

func TestCohesionScalesWithDistance(t *testing.T) {
	neighbors := []Neighbor{
		{Pos: r2.Vec{X: 60, Y: 10}, SameArchetype: true},
		{Pos: r2.Vec{X: 60, Y: -10}, SameArchetype: true},
	}
	got := Cohesion(r2.Vec{}, neighbors, 150)
	assert.InDelta(t, 60.0/150, got.X, tolerance)
	assert.InDelta(t, 0, got.Y, tolerance)

	beyond := []Neighbor{{Pos: r2.Vec{X: 200}, SameArchetype: true}}
	assert.Equal(t, r2.Vec{}, Cohesion(r2.Vec{}, beyond, 150))

	other := []Neighbor{{Pos: r2.Vec{X: 60}}}
	assert.Equal(t, r2.Vec{}, Cohesion(r2.Vec{}, other, 150))
}

func TestSeekProfiles(t *testing.T) {
	target := r2.Vec{X: 100}

	base := Seek(r2.Vec{}, target, SeekProfile{Intensity: 0.8}, nil)
	assert.InDelta(t, 0.8, base.X, tolerance)

	grunt := SeekProfile{Intensity: 0.6, CloseRange: 50, CloseIntensity: 0.3}
	assert.InDelta(t, 0.6, Seek(r2.Vec{}, target, grunt, nil).X, tolerance)
	assert.InDelta(t, 0.3, Seek(r2.Vec{X: 70}, target, grunt, nil).X, tolerance)

	rng := rand.New(rand.NewSource(1))
	fast := SeekProfile{Intensity: 1.2, ScaleJitterMin: 0.8, ScaleJitterMax: 1.2}
	for range 100 {
		f := Seek(r2.Vec{}, target, fast, rng)
		assert.GreaterOrEqual(t, f.X, 1.2*0.8-tolerance)
		assert.LessOrEqual(t, f.X, 1.2*1.2+tolerance)
	}

	boss := SeekProfile{Intensity: 0.9, AxisJitter: 0.2}
	for range 100 {
		f := Seek(r2.Vec{}, target, boss, rng)
		assert.InDelta(t, 0.9, f.X, 0.2+tolerance)
		assert.InDelta(t, 0, f.Y, 0.2+tolerance)
	}

	assert.Equal(t, r2.Vec{}, Seek(target, target, boss, rng), "no force when already on target")
}

func TestApplyClampsMagnitude(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	weights := Weights{Separation: 15, Alignment: 0.3, Cohesion: 0.05, Seek: 1.5}
	profile := SeekProfile{Intensity: 0.9, AxisJitter: 0.2}

	random := func() r2.Vec {
		return r2.Vec{X: rng.Float64()*400 - 200, Y: rng.Float64()*400 - 200}
	}

	for i := 0; i < 1000; i++ {
		self := random()
		vel := r2.Scale(rng.Float64()*20, random())
		maxSpeed := rng.Float64()*5 + 0.1

		neighbors := make([]Neighbor, rng.Intn(8))
		for j := range neighbors {
			neighbors[j] = Neighbor{
				Pos:           r2.Add(self, r2.Scale(0.3, random())),
				Vel:           random(),
				SameArchetype: rng.Intn(2) == 0,
			}
		}

		forces := Forces{
			Separation: Separation(self, neighbors, 80),
			Alignment:  Alignment(neighbors),
			Cohesion:   Cohesion(self, neighbors, 150),
			Seek:       Seek(self, random(), profile, rng),
		}
		got := Apply(vel, forces, weights, maxSpeed)
		require.LessOrEqual(t, r2.Norm(got), maxSpeed+tolerance, "iteration %d", i)
		require.False(t, math.IsNaN(got.X) || math.IsNaN(got.Y), "iteration %d produced NaN", i)
	}
}

func TestApplyWithoutNeighbours(t *testing.T) {
	got := Apply(r2.Vec{X: 10, Y: 0}, Forces{}, Weights{Seek: 1}, 3)
	assert.InDelta(t, 3, got.X, tolerance)
	assert.InDelta(t, 0, got.Y, tolerance)
}
