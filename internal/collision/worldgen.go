package collision

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/core"
)

// Perlin parameters for the scatter density field.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = int32(3)

	// scatterAttempts bounds the re-rolls of one scattered candidate.
	scatterAttempts = 8
)

// Generator lays out the static obstacles of a world.
type Generator struct {
	cfg   config.ObstaclesConfig
	rng   *rand.Rand
	noise *perlin.Perlin
}

// NewGenerator creates a generator. The same seed yields the same layout.
func NewGenerator(cfg config.ObstaclesConfig, seed int64) *Generator {
	return &Generator{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// Generate creates the clusters and scattered obstacles around center and
// adds them to set. Obstacles whose collider would intrude on the clear
// radius around center are skipped.
func (g *Generator) Generate(center r2.Vec, set *Obstacles) int {
	added := 0
	place := func(kind Kind, b core.Bounds) {
		ob := NewObstacle(kind, b)
		if g.cfg.ClearRadius > 0 && ob.Collider.Overlaps(CircleBounds(center, g.cfg.ClearRadius)) {
			return
		}
		set.Add(ob)
		added++
	}

	for _, cl := range g.cfg.Clusters {
		origin := r2.Add(center, r2.Vec{X: cl.OffsetX, Y: cl.OffsetY})
		for i := 0; i < cl.Count; i++ {
			var pos r2.Vec
			switch cl.Layout {
			case "grid":
				cols := max(cl.Columns, 1)
				pos = r2.Vec{
					X: origin.X + float64(i%cols)*cl.SpacingX - cl.SpacingX,
					Y: origin.Y + float64(i/cols)*cl.SpacingY,
				}
			default:
				pos = r2.Add(origin, g.ringPoint(0, cl.Spread))
			}
			w, h := g.size(cl.Size)
			place(Kind(cl.Kind), core.Bounds{X: pos.X, Y: pos.Y, W: w, H: h})
		}
	}

	sc := g.cfg.Scattered
	for i := 0; i < sc.Count && len(sc.Kinds) > 0; i++ {
		pos := g.scatterPoint(center, sc)
		kind := sc.Kinds[g.rng.Intn(len(sc.Kinds))]
		w, h := g.size(sc.Sizes[kind])
		place(Kind(kind), core.Bounds{X: pos.X, Y: pos.Y, W: w, H: h})
	}

	return added
}

// scatterPoint picks a point in the scatter ring, preferring places where
// the noise field is above the threshold.
func (g *Generator) scatterPoint(center r2.Vec, sc config.ScatteredConfig) r2.Vec {
	var pos r2.Vec
	for attempt := 0; attempt < scatterAttempts; attempt++ {
		pos = r2.Add(center, g.ringPoint(sc.MinDistance, sc.Range))
		if g.Density(pos, sc.NoiseScale) >= sc.NoiseThreshold {
			return pos
		}
	}
	return pos
}

// Density samples the scatter noise field at pos, roughly in [-1, 1].
func (g *Generator) Density(pos r2.Vec, scale float64) float64 {
	return g.noise.Noise2D(pos.X*scale, pos.Y*scale)
}

// ringPoint returns a random offset at a distance in [min, max).
func (g *Generator) ringPoint(min, max float64) r2.Vec {
	angle := g.rng.Float64() * 2 * math.Pi
	dist := min + g.rng.Float64()*(max-min)
	return r2.Scale(dist, core.FromBearing(angle))
}

func (g *Generator) size(s config.SizeRange) (float64, float64) {
	w := s.MinW + g.rng.Float64()*(s.MaxW-s.MinW)
	if s.Square {
		return w, w
	}
	h := s.MinH + g.rng.Float64()*(s.MaxH-s.MinH)
	return w, h
}
