package spatial

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCellOfFloorsNegativeCoordinates(t *testing.T) {
	g := NewGrid[int](55)

	tests := []struct {
		pos  r2.Vec
		want Cell
	}{
		{r2.Vec{X: 0, Y: 0}, Cell{0, 0}},
		{r2.Vec{X: 54.9, Y: 55}, Cell{0, 1}},
		{r2.Vec{X: -0.1, Y: -55}, Cell{-1, -1}},
		{r2.Vec{X: -55.1, Y: 110}, Cell{-2, 2}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, g.CellOf(tc.pos), "pos %v", tc.pos)
	}
}

func TestQueryReturnsThreeByThreeBlock(t *testing.T) {
	g := NewGrid[string](10)
	g.Insert("self", r2.Vec{X: 5, Y: 5})
	g.Insert("east", r2.Vec{X: 15, Y: 5})
	g.Insert("southwest", r2.Vec{X: -5, Y: 15})
	g.Insert("far", r2.Vec{X: 25, Y: 5})

	got := g.Query(r2.Vec{X: 5, Y: 5})
	assert.ElementsMatch(t, []string{"self", "east", "southwest"}, got)
	assert.Equal(t, 4, g.Len())
}

func TestClearEmptiesGrid(t *testing.T) {
	g := NewGrid[int](10)
	for i := range 20 {
		g.Insert(i, r2.Vec{X: float64(i * 3), Y: 0})
	}
	g.Clear()

	assert.Zero(t, g.Len())
	assert.Empty(t, g.Query(r2.Vec{X: 10, Y: 0}))

	// A second clear drops the buckets that stayed empty.
	g.Clear()
	assert.Empty(t, g.cells)
}

func TestQueryHasNoFalseNegatives(t *testing.T) {
	const cellSize = 55.0
	rng := rand.New(rand.NewSource(7))
	g := NewGrid[int](cellSize)

	positions := make([]r2.Vec, 400)
	for i := range positions {
		positions[i] = r2.Vec{X: rng.Float64()*1000 - 500, Y: rng.Float64()*1000 - 500}
		g.Insert(i, positions[i])
	}

	for trial := 0; trial < 200; trial++ {
		p := r2.Vec{X: rng.Float64()*1000 - 500, Y: rng.Float64()*1000 - 500}
		found := make(map[int]bool)
		for _, id := range g.Query(p) {
			found[id] = true
		}
		for i, pos := range positions {
			if r2.Norm(r2.Sub(pos, p)) <= cellSize {
				require.True(t, found[i], "item %d at %v within cell size of %v was missed", i, pos, p)
			}
		}
	}
}

func TestNewGridRejectsNonPositiveCellSize(t *testing.T) {
	g := NewGrid[int](0)
	assert.Equal(t, 1.0, g.CellSize())
}
