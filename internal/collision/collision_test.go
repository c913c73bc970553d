package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/core"
)

func TestCirclesOverlap(t *testing.T) {
	assert.True(t, CirclesOverlap(r2.Vec{}, 5, r2.Vec{X: 20}, 15), "touching circles overlap")
	assert.False(t, CirclesOverlap(r2.Vec{}, 5, r2.Vec{X: 20.01}, 15))
	assert.True(t, InRange(r2.Vec{X: 3, Y: 4}, r2.Vec{}, 5))
	assert.False(t, InRange(r2.Vec{X: 3, Y: 4}, r2.Vec{}, 4.99))
}

func TestTreeColliderIsTrunk(t *testing.T) {
	tree := NewObstacle(KindTree, core.Bounds{X: 100, Y: 100, W: 40, H: 60})
	assert.Equal(t, core.Bounds{X: 112, Y: 144, W: 16, H: 16}, tree.Collider)

	rock := NewObstacle(KindRock, core.Bounds{X: 0, Y: 0, W: 30, H: 20})
	assert.Equal(t, rock.Bounds, rock.Collider)
}

func TestObstaclesAddRemove(t *testing.T) {
	set := NewObstacles()
	a := set.Add(NewObstacle(KindRock, core.Bounds{X: 0, Y: 0, W: 10, H: 10}))
	b := set.Add(NewObstacle(KindRock, core.Bounds{X: 50, Y: 0, W: 10, H: 10}))
	require.NotEqual(t, a, b)

	assert.True(t, set.Blocked(core.Bounds{X: 5, Y: 5, W: 1, H: 1}))
	assert.True(t, set.Remove(a))
	assert.False(t, set.Remove(a))
	assert.False(t, set.Blocked(core.Bounds{X: 5, Y: 5, W: 1, H: 1}))
	assert.Equal(t, 1, set.Len())
}

func TestSlideAlongWall(t *testing.T) {
	set := NewObstacles()
	// Vertical wall at x in [100, 120].
	set.Add(NewObstacle(KindBuilding, core.Bounds{X: 100, Y: -500, W: 20, H: 1000}))

	from := r2.Vec{X: 80, Y: 0}
	to := r2.Vec{X: 97, Y: 10}
	got := set.Slide(from, to, 5)
	assert.Equal(t, r2.Vec{X: 80, Y: 10}, got, "should keep the free vertical component")

	clear := r2.Vec{X: 60, Y: 5}
	assert.Equal(t, clear, set.Slide(from, clear, 5))
}

func TestSlideCornerStops(t *testing.T) {
	set := NewObstacles()
	set.Add(NewObstacle(KindRock, core.Bounds{X: 10, Y: -100, W: 10, H: 200}))
	set.Add(NewObstacle(KindRock, core.Bounds{X: -100, Y: 10, W: 200, H: 10}))

	from := r2.Vec{}
	assert.Equal(t, from, set.Slide(from, r2.Vec{X: 8, Y: 8}, 4))
}

func TestLineOfSight(t *testing.T) {
	set := NewObstacles()
	set.Add(NewObstacle(KindRock, core.Bounds{X: 40, Y: -10, W: 20, H: 20}))

	assert.False(t, set.LineOfSight(r2.Vec{}, r2.Vec{X: 100}, 5, 5))
	assert.True(t, set.LineOfSight(r2.Vec{}, r2.Vec{Y: 100}, 5, 5))
	assert.True(t, set.LineOfSight(r2.Vec{}, r2.Vec{}, 5, 0))
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := config.DefaultArenaConfig().Obstacles

	a, b := NewObstacles(), NewObstacles()
	na := NewGenerator(cfg, 99).Generate(r2.Vec{}, a)
	nb := NewGenerator(cfg, 99).Generate(r2.Vec{}, b)

	require.Equal(t, na, nb)
	assert.Equal(t, a.All(), b.All())
	assert.Positive(t, na)
}

func TestGenerateKeepsStartClear(t *testing.T) {
	cfg := config.DefaultArenaConfig().Obstacles
	for seed := int64(1); seed <= 20; seed++ {
		set := NewObstacles()
		NewGenerator(cfg, seed).Generate(r2.Vec{}, set)
		assert.False(t, set.Colliding(r2.Vec{}, cfg.ClearRadius), "seed %d blocks the start area", seed)
	}
}

func TestGenerateBuildingGrid(t *testing.T) {
	cfg := config.ObstaclesConfig{
		Clusters: []config.ClusterConfig{{
			Kind: "building", Layout: "grid", Count: 5, Columns: 3, SpacingX: 80, SpacingY: 60,
			OffsetX: 300, OffsetY: 200,
			Size: config.SizeRange{MinW: 10, MaxW: 10, MinH: 10, MaxH: 10},
		}},
	}
	set := NewObstacles()
	require.Equal(t, 5, NewGenerator(cfg, 1).Generate(r2.Vec{}, set))

	got := set.All()
	assert.Equal(t, 220.0, got[0].Bounds.X)
	assert.Equal(t, 300.0, got[1].Bounds.X)
	assert.Equal(t, 380.0, got[2].Bounds.X)
	assert.Equal(t, 260.0, got[4].Bounds.Y)
	for _, ob := range got {
		assert.Equal(t, KindBuilding, ob.Kind)
	}
}
