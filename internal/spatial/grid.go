// Package spatial provides a uniform-grid spatial hash for neighbour queries.
//
// The grid is unbounded: cells are keyed by their integer coordinates, so
// the world may extend into negative space. It is rebuilt every tick with
// Clear followed by Insert for each live entity.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cell identifies one bucket of the grid.
type Cell struct {
	X, Y int
}

// Grid buckets items by the cell their position falls in.
type Grid[T any] struct {
	cellSize float64
	cells    map[Cell][]T
	count    int
}

// NewGrid creates a grid with the given cell size. The size is fixed for
// the lifetime of the grid; a non-positive size is replaced by 1.
func NewGrid[T any](cellSize float64) *Grid[T] {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid[T]{
		cellSize: cellSize,
		cells:    make(map[Cell][]T),
	}
}

// CellSize returns the grid cell edge length.
func (g *Grid[T]) CellSize() float64 {
	return g.cellSize
}

// CellOf returns the cell containing pos.
func (g *Grid[T]) CellOf(pos r2.Vec) Cell {
	return Cell{
		X: int(math.Floor(pos.X / g.cellSize)),
		Y: int(math.Floor(pos.Y / g.cellSize)),
	}
}

// Clear empties all buckets while keeping their capacity. Buckets that
// stayed empty for a whole tick are dropped so a roaming crowd does not
// leave an ever-growing map behind.
func (g *Grid[T]) Clear() {
	for c, items := range g.cells {
		if len(items) == 0 {
			delete(g.cells, c)
			continue
		}
		clear(items)
		g.cells[c] = items[:0]
	}
	g.count = 0
}

// Insert adds item at pos.
func (g *Grid[T]) Insert(item T, pos r2.Vec) {
	c := g.CellOf(pos)
	g.cells[c] = append(g.cells[c], item)
	g.count++
}

// Len returns the number of items inserted since the last Clear.
func (g *Grid[T]) Len() int {
	return g.count
}

// Query returns every item in the 3x3 block of cells around pos, the
// item's own cell included. The result contains every item within one
// cell size of pos and may contain items further away; callers filter.
func (g *Grid[T]) Query(pos r2.Vec) []T {
	return g.QueryInto(nil, pos)
}

// QueryInto appends the Query result to dst and returns it. Reuse dst
// across calls to avoid allocations.
func (g *Grid[T]) QueryInto(dst []T, pos r2.Vec) []T {
	center := g.CellOf(pos)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			dst = append(dst, g.cells[Cell{X: center.X + dx, Y: center.Y + dy}]...)
		}
	}
	return dst
}

// Bucket returns the items in a single cell. The slice is owned by the grid
// and is only valid until the next Clear.
func (g *Grid[T]) Bucket(c Cell) []T {
	return g.cells[c]
}
