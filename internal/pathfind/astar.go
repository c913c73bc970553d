// Package pathfind finds obstacle-avoiding routes with A* over a uniform
// grid laid on the unbounded world.
//
// Walkability is not precomputed: a cell is walkable when a square test box
// of the mover's radius around the cell center is clear of obstacles, so
// the same grid serves movers of any size.
package pathfind

import (
	"container/heap"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/core"
)

// Blocker reports whether a box intersects an obstacle.
type Blocker interface {
	Blocked(b core.Bounds) bool
}

// Options tune the search.
type Options struct {
	CellSize       float64
	GoalSearchMax  float64 // Largest ring radius tried when the goal is blocked
	GoalSearchStep float64 // Ring radius increment
	MaxExpansions  int     // Nodes expanded before giving up
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{CellSize: 32, GoalSearchMax: 80, GoalSearchStep: 10, MaxExpansions: 4000}
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Pathfinder runs A* searches against a Blocker.
type Pathfinder struct {
	opts    Options
	blocker Blocker

	// Reused between searches.
	open     nodeHeap
	closed   map[Cell]struct{}
	cameFrom map[Cell]Cell
	gScore   map[Cell]float64
	found    map[Cell]int // Discovery order of every cell seen this search
	seq      int
}

// New creates a pathfinder over blocker.
func New(blocker Blocker, opts Options) *Pathfinder {
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultOptions().CellSize
	}
	if opts.GoalSearchStep <= 0 {
		opts.GoalSearchStep = DefaultOptions().GoalSearchStep
	}
	if opts.MaxExpansions <= 0 {
		opts.MaxExpansions = DefaultOptions().MaxExpansions
	}
	return &Pathfinder{
		opts:     opts,
		blocker:  blocker,
		closed:   make(map[Cell]struct{}, 256),
		cameFrom: make(map[Cell]Cell, 256),
		gScore:   make(map[Cell]float64, 256),
		found:    make(map[Cell]int, 256),
	}
}

// CellSize returns the grid cell edge length.
func (p *Pathfinder) CellSize() float64 {
	return p.opts.CellSize
}

// WorldToCell returns the cell containing pos.
func (p *Pathfinder) WorldToCell(pos r2.Vec) Cell {
	return Cell{
		X: int(math.Floor(pos.X / p.opts.CellSize)),
		Y: int(math.Floor(pos.Y / p.opts.CellSize)),
	}
}

// CellCenter returns the world position of the center of c.
func (p *Pathfinder) CellCenter(c Cell) r2.Vec {
	half := p.opts.CellSize / 2
	return r2.Vec{
		X: float64(c.X)*p.opts.CellSize + half,
		Y: float64(c.Y)*p.opts.CellSize + half,
	}
}

// PositionBlocked reports whether a mover of the given radius at pos would
// overlap an obstacle.
func (p *Pathfinder) PositionBlocked(pos r2.Vec, radius float64) bool {
	if p.blocker == nil {
		return false
	}
	return p.blocker.Blocked(core.BoundsAround(pos.X, pos.Y, radius))
}

// NearestWalkable searches rings around target, from twice the radius up to
// GoalSearchMax, eight points per ring, and returns the first clear point.
func (p *Pathfinder) NearestWalkable(target r2.Vec, radius float64) (r2.Vec, bool) {
	const points = 8
	for ring := radius * 2; ring <= p.opts.GoalSearchMax; ring += p.opts.GoalSearchStep {
		for i := 0; i < points; i++ {
			angle := float64(i) / points * 2 * math.Pi
			candidate := r2.Add(target, r2.Scale(ring, core.FromBearing(angle)))
			if !p.PositionBlocked(candidate, radius) {
				return candidate, true
			}
		}
	}
	return r2.Vec{}, false
}

// neighborOffsets lists the 8-connected moves. Diagonals cost sqrt(2).
var neighborOffsets = [8]struct {
	dx, dy int
	cost   float64
}{
	{-1, -1, math.Sqrt2}, {0, -1, 1}, {1, -1, math.Sqrt2},
	{-1, 0, 1}, {1, 0, 1},
	{-1, 1, math.Sqrt2}, {0, 1, 1}, {1, 1, math.Sqrt2},
}

// FindPath returns cell-center waypoints from the start cell to the goal
// cell for a mover of the given radius, or nil when no route exists. A
// blocked goal is replaced by the nearest walkable point around it.
func (p *Pathfinder) FindPath(start, goal r2.Vec, radius float64) []r2.Vec {
	if p.PositionBlocked(goal, radius) {
		alt, ok := p.NearestWalkable(goal, radius)
		if !ok {
			return nil
		}
		goal = alt
	}

	from := p.WorldToCell(start)
	to := p.WorldToCell(goal)
	if from == to {
		return []r2.Vec{p.CellCenter(to)}
	}

	p.reset()
	p.gScore[from] = 0
	heap.Push(&p.open, &node{cell: from, f: heuristic(from, to), seq: p.discover(from)})

	for expansions := 0; p.open.Len() > 0 && expansions < p.opts.MaxExpansions; {
		current := heap.Pop(&p.open).(*node)
		if _, done := p.closed[current.cell]; done {
			continue // stale entry superseded by a cheaper push
		}
		if current.cell == to {
			return p.reconstruct(from, to)
		}
		p.closed[current.cell] = struct{}{}
		expansions++

		for _, off := range neighborOffsets {
			next := Cell{X: current.cell.X + off.dx, Y: current.cell.Y + off.dy}
			if _, done := p.closed[next]; done {
				continue
			}
			if p.PositionBlocked(p.CellCenter(next), radius) {
				continue
			}
			g := p.gScore[current.cell] + off.cost
			if old, seen := p.gScore[next]; seen && g >= old {
				continue
			}
			p.cameFrom[next] = current.cell
			p.gScore[next] = g
			heap.Push(&p.open, &node{cell: next, f: g + heuristic(next, to), seq: p.discover(next)})
		}
	}
	return nil
}

func (p *Pathfinder) reset() {
	p.open = p.open[:0]
	clear(p.closed)
	clear(p.cameFrom)
	clear(p.gScore)
	clear(p.found)
	p.seq = 0
}

// discover returns the order in which c was first reached. A cell pushed
// again with a cheaper score keeps its first position among equal f.
func (p *Pathfinder) discover(c Cell) int {
	if n, ok := p.found[c]; ok {
		return n
	}
	p.seq++
	p.found[c] = p.seq
	return p.seq
}

func (p *Pathfinder) reconstruct(from, to Cell) []r2.Vec {
	cells := []Cell{to}
	for c := to; c != from; {
		c = p.cameFrom[c]
		cells = append(cells, c)
	}
	path := make([]r2.Vec, len(cells))
	for i, c := range cells {
		path[len(cells)-1-i] = p.CellCenter(c)
	}
	return path
}

// heuristic is the Euclidean distance in cells.
func heuristic(a, b Cell) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Length returns the travelled length of a polyline.
func Length(path []r2.Vec) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += core.Distance(path[i-1], path[i])
	}
	return total
}

type node struct {
	cell Cell
	f    float64
	seq  int // Discovery order; earlier cells win ties
}

// nodeHeap implements heap.Interface for the open set.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
