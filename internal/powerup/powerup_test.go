package powerup

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/weapon"
)

func newCatalog() (*Catalog, config.ArenaConfig) {
	cfg := config.DefaultArenaConfig()
	return NewCatalog(cfg.PowerUps, nil), cfg
}

func TestParseFallsBackToDefault(t *testing.T) {
	c, _ := newCatalog()
	assert.Equal(t, KindWhip, c.Parse("whip"))
	assert.Equal(t, c.Default(), c.Parse("laser"))
	assert.Equal(t, KindBow, c.Default())
}

func TestWeightedFollowsWeights(t *testing.T) {
	c, _ := newCatalog()
	rng := rand.New(rand.NewSource(42))

	counts := map[Kind]int{}
	const draws = 14000
	for i := 0; i < draws; i++ {
		counts[c.Weighted(rng)]++
	}

	// Default weights total 14: health 4/14, whip 1/14.
	assert.InDelta(t, 4000, counts[KindHealth], 400)
	assert.InDelta(t, 1000, counts[KindWhip], 250)
	assert.Greater(t, counts[KindHealth], counts[KindWhip])
	for _, k := range Kinds {
		assert.Positive(t, counts[k], "kind %s never drawn", k)
	}
}

func TestWeightedWithoutWeightsUsesDefault(t *testing.T) {
	c := NewCatalog(config.PowerUpsConfig{Default: "staff"}, nil)
	assert.Equal(t, KindStaff, c.Weighted(rand.New(rand.NewSource(1))))
}

func TestForWaveRules(t *testing.T) {
	c, _ := newCatalog()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		assert.Equal(t, KindBow, c.ForWave(2, rng))
	}
	for i := 0; i < 200; i++ {
		k := c.ForWave(4, rng)
		assert.Contains(t, []Kind{KindBow, KindWand, KindSpeed}, k)
	}
}

func TestApplyEffects(t *testing.T) {
	c, cfg := newCatalog()
	weapons := weapon.NewCatalog(cfg.Weapons, nil)
	p := entity.NewPlayer(cfg.Player, weapons.Get("bow"), r2.Vec{})

	p.Health = 50
	require.True(t, c.Apply(KindHealth, p, weapons))
	assert.Equal(t, 75.0, p.Health)

	p.Health = p.MaxHealth - 5
	c.Apply(KindHealth, p, weapons)
	assert.Equal(t, p.MaxHealth, p.Health, "healing caps at max health")

	speed := p.Player.Speed
	require.True(t, c.Apply(KindSpeed, p, weapons))
	assert.Equal(t, speed+cfg.PowerUps.SpeedBoost, p.Player.Speed)

	p.Player.Speed = p.Player.MaxSpeed
	assert.False(t, c.Apply(KindSpeed, p, weapons), "speed is capped")

	p.Player.Cooldown = time.Second
	require.True(t, c.Apply(KindWhip, p, weapons))
	assert.Equal(t, "whip", p.Player.Weapon.Stats().Name)
	assert.Zero(t, p.Player.Cooldown)
}

func TestSpawnerInterval(t *testing.T) {
	c, cfg := newCatalog()
	s := NewSpawner(cfg.PowerUps, c, nil)
	rng := rand.New(rand.NewSource(9))
	interval := time.Duration(cfg.PowerUps.IntervalMs) * time.Millisecond

	_, ok := s.Update(interval-time.Millisecond, 1, 0, r2.Vec{}, rng)
	assert.False(t, ok)

	d, ok := s.Update(time.Millisecond, 1, 0, r2.Vec{}, rng)
	require.True(t, ok)
	assert.Equal(t, KindBow, d.Kind)
	dist := r2.Norm(d.Pos)
	assert.GreaterOrEqual(t, dist, cfg.PowerUps.MinDistance-1e-9)
	assert.LessOrEqual(t, dist, cfg.PowerUps.MaxDistance+1e-9)

	_, ok = s.Update(interval, 1, cfg.PowerUps.MaxOnScreen, r2.Vec{}, rng)
	assert.False(t, ok, "no drop while the arena is full")

	_, ok = s.Update(interval/2, 1, 0, r2.Vec{}, rng)
	assert.False(t, ok, "a skipped drop still restarts the timer")
}
