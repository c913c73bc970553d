// Package wave schedules enemy waves: how many of each archetype, how
// strong they are, when the next wave starts and when the run is won.
package wave

import (
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/entity"
)

// Bonus drops of a power-up wave.
var bonusKinds = []string{"health", "speed"}

// Spawner is the world the director populates.
type Spawner interface {
	SpawnEnemy(arch entity.Archetype, cfg entity.EnemyConfig, pos r2.Vec)
	SpawnPowerUp(kind string)
	PlayerPosition() r2.Vec
}

// Observer receives wave lifecycle events.
type Observer interface {
	WaveStarted(c Composition)
	WaveCompleted(wave int, elapsed time.Duration)
}

// Composition is the plan of one wave.
type Composition struct {
	Wave    int
	Grunts  int
	Fast    int
	Boss    bool
	PowerUp bool
}

// Total returns how many enemies the wave spawns. A boss wave spawns the
// boss alone.
func (c Composition) Total() int {
	if c.Boss {
		return 1
	}
	return c.Grunts + c.Fast
}

// Factors are per-wave growth factors, applied as factor^(wave-1).
type Factors struct {
	Health float64
	Damage float64
	Speed  float64
}

// FactorsFrom converts a scaling section of the configuration.
func FactorsFrom(c config.ScalingConfig) Factors {
	return Factors{Health: c.Health, Damage: c.Damage, Speed: c.Speed}
}

// Boosted multiplies f by boost component-wise.
func (f Factors) Boosted(boost Factors) Factors {
	return Factors{
		Health: f.Health * boost.Health,
		Damage: f.Damage * boost.Damage,
		Speed:  f.Speed * boost.Speed,
	}
}

// Scale returns cfg grown for wave n. Health and damage are floored to
// whole numbers; speed is not.
func Scale(cfg entity.EnemyConfig, n int, f Factors) entity.EnemyConfig {
	if n <= 1 {
		return cfg
	}
	exp := float64(n - 1)
	cfg.Health = math.Floor(cfg.Health * math.Pow(f.Health, exp))
	cfg.Damage = math.Floor(cfg.Damage * math.Pow(f.Damage, exp))
	cfg.Speed *= math.Pow(f.Speed, exp)
	return cfg
}

// Director runs the wave progression. It is driven by the host once per
// tick: CheckCompletion with the live enemy count, then Update.
type Director struct {
	cfg      config.WavesConfig
	enemies  config.EnemiesConfig
	spawner  Spawner
	rng      *rand.Rand
	logger   *log.Logger
	observer Observer

	wave     int
	started  bool
	pending  bool          // Wave completed, next one not yet started
	nextIn   time.Duration // Countdown to the pending wave
	bonusIn  time.Duration // Countdown to the bonus drop
	bonus    bool          // Bonus drop armed
	victory  bool
	endless  bool
	inWave   time.Duration
	spawned  int
	complete int
}

// NewDirector creates a director positioned before wave 1. Call Start to
// spawn the first wave.
func NewDirector(cfg config.WavesConfig, enemies config.EnemiesConfig, spawner Spawner, rng *rand.Rand, logger *log.Logger) *Director {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Director{
		cfg:     cfg,
		enemies: enemies,
		spawner: spawner,
		rng:     rng,
		logger:  logger,
		wave:    1,
	}
}

// SetEndless disables the victory wave.
func (d *Director) SetEndless(endless bool) {
	d.endless = endless
}

// SetObserver registers an observer; nil removes it.
func (d *Director) SetObserver(o Observer) {
	d.observer = o
}

// Wave returns the current wave number. While a wave is pending it is the
// number of the wave about to start.
func (d *Director) Wave() int { return d.wave }

// Pending reports whether the next wave is counting down.
func (d *Director) Pending() bool { return d.pending }

// NextWaveIn returns the remaining countdown of a pending wave.
func (d *Director) NextWaveIn() time.Duration {
	if !d.pending {
		return 0
	}
	return d.nextIn
}

// Victory reports whether the terminal wave has been cleared.
func (d *Director) Victory() bool { return d.victory }

// Endless reports whether the victory wave is disabled.
func (d *Director) Endless() bool { return d.endless }

// Spawned returns the number of enemies spawned so far.
func (d *Director) Spawned() int { return d.spawned }

// Elapsed returns the time spent in the current wave.
func (d *Director) Elapsed() time.Duration { return d.inWave }

// Completed returns the number of cleared waves.
func (d *Director) Completed() int { return d.complete }

// Plan returns the composition of wave n.
func (d *Director) Plan(n int) Composition {
	return Composition{
		Wave:    n,
		Grunts:  d.cfg.GruntBase + (n-1)*d.cfg.GruntMultiplier,
		Fast:    d.cfg.FastBase + (n-1)*d.cfg.FastMultiplier,
		Boss:    slices.Contains(d.cfg.BossWaves, n),
		PowerUp: slices.Contains(d.cfg.PowerUpWaves, n),
	}
}

// ScaledConfig returns the configuration an enemy of arch spawns with in
// wave n. Bosses grow by the regular factors times the boss boost.
func (d *Director) ScaledConfig(arch entity.Archetype, n int) entity.EnemyConfig {
	f := FactorsFrom(d.cfg.Scaling)
	switch arch {
	case entity.ArchetypeFast:
		return Scale(entity.EnemyConfigFrom(d.enemies.Fast), n, f)
	case entity.ArchetypeBoss:
		return Scale(entity.EnemyConfigFrom(d.enemies.Boss), n, f.Boosted(FactorsFrom(d.cfg.BossBoost)))
	default:
		return Scale(entity.EnemyConfigFrom(d.enemies.Grunt), n, f)
	}
}

// Start spawns the first wave. Later calls do nothing.
func (d *Director) Start() {
	if d.started {
		return
	}
	d.started = true
	d.StartWave(d.wave)
}

// StartWave spawns wave n immediately.
func (d *Director) StartWave(n int) {
	d.started = true
	d.wave = n
	d.pending = false
	d.inWave = 0

	c := d.Plan(n)
	if c.Boss {
		d.spawn(entity.ArchetypeBoss, 1)
		if d.logger != nil {
			d.logger.Info("boss wave", "wave", n)
		}
	} else {
		d.spawn(entity.ArchetypeGrunt, c.Grunts)
		d.spawn(entity.ArchetypeFast, c.Fast)
		if d.logger != nil {
			d.logger.Info("wave started", "wave", n, "grunts", c.Grunts, "fast", c.Fast)
		}
	}

	if c.PowerUp {
		d.bonus = true
		d.bonusIn = time.Duration(d.cfg.PowerUpDelayMs) * time.Millisecond
	}
	if d.observer != nil {
		d.observer.WaveStarted(c)
	}
}

func (d *Director) spawn(arch entity.Archetype, count int) {
	if count <= 0 {
		return
	}
	cfg := d.ScaledConfig(arch, d.wave)
	center := d.spawner.PlayerPosition()
	for i := 0; i < count; i++ {
		d.spawner.SpawnEnemy(arch, cfg, d.spawnPoint(center))
		d.spawned++
	}
}

// spawnPoint picks a random point on the spawn ring around center.
func (d *Director) spawnPoint(center r2.Vec) r2.Vec {
	lo, hi := d.enemies.SpawnMinDistance, d.enemies.SpawnMaxDistance
	if hi < lo {
		lo, hi = hi, lo
	}
	angle := d.rng.Float64() * 2 * math.Pi
	dist := lo + d.rng.Float64()*(hi-lo)
	return r2.Add(center, r2.Scale(dist, core.FromBearing(angle)))
}

// CheckCompletion completes the current wave when no enemy is alive and no
// wave start is already pending.
func (d *Director) CheckCompletion(live int) {
	if !d.started || d.pending || d.victory || live > 0 {
		return
	}
	d.completeWave()
}

func (d *Director) completeWave() {
	d.pending = true
	d.complete++
	if d.logger != nil {
		d.logger.Info("wave completed", "wave", d.wave, "elapsed", d.inWave.Round(time.Millisecond))
	}
	if d.observer != nil {
		d.observer.WaveCompleted(d.wave, d.inWave)
	}

	d.wave++
	if !d.endless && d.cfg.VictoryWave > 0 && d.wave > d.cfg.VictoryWave {
		d.victory = true
		if d.logger != nil {
			d.logger.Info("victory", "waves", d.complete)
		}
		return
	}
	d.nextIn = time.Duration(d.cfg.CompletionDelayMs) * time.Millisecond
}

// Update advances the next-wave and bonus-drop countdowns.
func (d *Director) Update(dt time.Duration) {
	if !d.started {
		return
	}
	d.inWave += dt

	if d.bonus {
		d.bonusIn -= dt
		if d.bonusIn <= 0 {
			d.bonus = false
			for _, kind := range bonusKinds {
				d.spawner.SpawnPowerUp(kind)
			}
			if d.logger != nil {
				d.logger.Debug("bonus drop", "wave", d.wave)
			}
		}
	}

	if d.pending && !d.victory {
		d.nextIn -= dt
		if d.nextIn <= 0 {
			d.StartWave(d.wave)
		}
	}
}
