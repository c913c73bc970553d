// Package weapon implements the player's interchangeable fire patterns.
//
// A Strategy turns one trigger pull into a set of Shots. Strategies are
// stateless: the owner enforces the cooldown between pulls and schedules
// delayed shots on its own countdowns.
package weapon

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/core"
)

// Config is the tuning of one weapon.
type Config struct {
	Name              string
	Damage            float64
	Cooldown          time.Duration
	ProjectileCount   int
	SpreadDegrees     float64
	BurstInterval     time.Duration // Delay between consecutive shots of one pull
	InaccuracyDegrees float64       // Total width of the random aim error
}

// FromConfig converts the YAML form.
func FromConfig(c config.WeaponConfig) Config {
	return Config{
		Name:              c.Name,
		Damage:            c.Damage,
		Cooldown:          time.Duration(c.CooldownMs) * time.Millisecond,
		ProjectileCount:   max(c.ProjectileCount, 1),
		SpreadDegrees:     c.SpreadDegrees,
		BurstInterval:     time.Duration(c.BurstIntervalMs) * time.Millisecond,
		InaccuracyDegrees: c.InaccuracyDegrees,
	}
}

// Shot is one projectile request produced by a trigger pull.
type Shot struct {
	Dir     r2.Vec        // Unit direction
	Bearing float64       // Radians
	Delay   time.Duration // Zero for immediate shots
	Damage  float64
}

// Strategy is a fire pattern.
type Strategy interface {
	Stats() Config
	// Fire returns the shots of one trigger pull from origin toward target.
	Fire(origin, target r2.Vec, rng *rand.Rand) []Shot
}

// New picks the strategy matching the shape of cfg: burst weapons stagger
// their shots, inaccurate weapons jitter their aim, multi-projectile
// weapons fan out and everything else fires a single straight shot.
func New(cfg Config) Strategy {
	switch {
	case cfg.BurstInterval > 0 && cfg.ProjectileCount > 1:
		return Burst{cfg}
	case cfg.InaccuracyDegrees > 0:
		return Scatter{cfg}
	case cfg.ProjectileCount > 1:
		return Spread{cfg}
	default:
		return Single{cfg}
	}
}

// Bearings returns count bearings (radians) evenly spaced across
// spreadDegrees and symmetric about base. A single projectile flies
// straight along base.
func Bearings(base float64, count int, spreadDegrees float64) []float64 {
	if count <= 1 {
		return []float64{base}
	}
	step := core.Radians(spreadDegrees) / float64(count-1)
	mid := float64(count-1) / 2
	out := make([]float64, count)
	for i := range out {
		out[i] = base + (float64(i)-mid)*step
	}
	return out
}

func aim(origin, target r2.Vec) float64 {
	return core.Bearing(r2.Sub(target, origin))
}

func shotsAlong(bearings []float64, damage float64) []Shot {
	shots := make([]Shot, len(bearings))
	for i, b := range bearings {
		shots[i] = Shot{Dir: core.FromBearing(b), Bearing: b, Damage: damage}
	}
	return shots
}

// Single fires one projectile straight at the target.
type Single struct{ Config }

func (w Single) Stats() Config { return w.Config }

func (w Single) Fire(origin, target r2.Vec, _ *rand.Rand) []Shot {
	return shotsAlong([]float64{aim(origin, target)}, w.Damage)
}

// Spread fires a simultaneous fan of projectiles.
type Spread struct{ Config }

func (w Spread) Stats() Config { return w.Config }

func (w Spread) Fire(origin, target r2.Vec, _ *rand.Rand) []Shot {
	return shotsAlong(Bearings(aim(origin, target), w.ProjectileCount, w.SpreadDegrees), w.Damage)
}

// Scatter fires the fan with each bearing perturbed by up to half the
// inaccuracy either way.
type Scatter struct{ Config }

func (w Scatter) Stats() Config { return w.Config }

func (w Scatter) Fire(origin, target r2.Vec, rng *rand.Rand) []Shot {
	bearings := Bearings(aim(origin, target), w.ProjectileCount, w.SpreadDegrees)
	if rng != nil {
		width := core.Radians(w.InaccuracyDegrees)
		for i := range bearings {
			bearings[i] += (rng.Float64() - 0.5) * width
		}
	}
	return shotsAlong(bearings, w.Damage)
}

// Burst fires the fan one projectile at a time, BurstInterval apart.
type Burst struct{ Config }

func (w Burst) Stats() Config { return w.Config }

func (w Burst) Fire(origin, target r2.Vec, _ *rand.Rand) []Shot {
	shots := shotsAlong(Bearings(aim(origin, target), w.ProjectileCount, w.SpreadDegrees), w.Damage)
	for i := range shots {
		shots[i].Delay = time.Duration(i) * w.BurstInterval
	}
	return shots
}

// Span returns the angular width in degrees covered by a set of shots.
func Span(shots []Shot) float64 {
	if len(shots) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range shots {
		lo = math.Min(lo, s.Bearing)
		hi = math.Max(hi, s.Bearing)
	}
	return core.Degrees(hi - lo)
}
