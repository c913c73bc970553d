package powerup

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/core"
)

// Drop is a spawn request produced by the Spawner.
type Drop struct {
	Kind Kind
	Pos  r2.Vec
}

// Spawner drops a power-up near the player every interval, unless the
// arena already holds MaxOnScreen of them.
type Spawner struct {
	cfg     config.PowerUpsConfig
	catalog *Catalog
	logger  *log.Logger

	interval time.Duration
	timer    time.Duration
}

// NewSpawner creates a spawner with an empty timer.
func NewSpawner(cfg config.PowerUpsConfig, catalog *Catalog, logger *log.Logger) *Spawner {
	return &Spawner{
		cfg:      cfg,
		catalog:  catalog,
		logger:   logger,
		interval: time.Duration(cfg.IntervalMs) * time.Millisecond,
	}
}

// Update advances the timer. When the interval elapses the timer restarts
// and, if fewer than MaxOnScreen power-ups are live, a drop is returned.
func (s *Spawner) Update(dt time.Duration, wave, onScreen int, player r2.Vec, rng *rand.Rand) (Drop, bool) {
	if s.interval <= 0 {
		return Drop{}, false
	}
	s.timer += dt
	if s.timer < s.interval {
		return Drop{}, false
	}
	s.timer = 0

	if s.cfg.MaxOnScreen > 0 && onScreen >= s.cfg.MaxOnScreen {
		if s.logger != nil {
			s.logger.Debug("power-up skipped, arena full", "on_screen", onScreen)
		}
		return Drop{}, false
	}
	d := Drop{Kind: s.catalog.ForWave(wave, rng), Pos: s.Place(player, rng)}
	if s.logger != nil {
		s.logger.Debug("power-up dropped", "kind", d.Kind, "wave", wave)
	}
	return d, true
}

// Place returns a random point between MinDistance and MaxDistance from
// player.
func (s *Spawner) Place(player r2.Vec, rng *rand.Rand) r2.Vec {
	lo, hi := s.cfg.MinDistance, s.cfg.MaxDistance
	if hi < lo {
		lo, hi = hi, lo
	}
	angle := rng.Float64() * 2 * math.Pi
	dist := lo + rng.Float64()*(hi-lo)
	return r2.Add(player, r2.Scale(dist, core.FromBearing(angle)))
}
