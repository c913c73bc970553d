// Package powerup implements pickups: the kinds, how a kind is chosen for
// a drop, what picking one up does, and the interval spawner.
package powerup

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/weapon"
)

// Kind names a power-up.
type Kind string

const (
	KindBow    Kind = "bow"
	KindWand   Kind = "wand"
	KindStaff  Kind = "staff"
	KindWhip   Kind = "whip"
	KindHealth Kind = "health"
	KindSpeed  Kind = "speed"
)

// Kinds lists every kind in a fixed order. Weighted selection walks this
// order so a seeded RNG always picks the same kind.
var Kinds = []Kind{KindBow, KindWand, KindStaff, KindWhip, KindHealth, KindSpeed}

// IsWeapon reports whether picking k up swaps the player's weapon.
func (k Kind) IsWeapon() bool {
	switch k {
	case KindBow, KindWand, KindStaff, KindWhip:
		return true
	}
	return false
}

// Glyph is the rune a pickup of kind k is drawn with.
func (k Kind) Glyph() rune {
	switch k {
	case KindHealth:
		return '+'
	case KindSpeed:
		return '>'
	case KindBow:
		return 'B'
	case KindWand:
		return 'W'
	case KindStaff:
		return 'S'
	case KindWhip:
		return 'J'
	}
	return '?'
}

// Catalog holds the drop weights and the pickup effects.
type Catalog struct {
	cfg     config.PowerUpsConfig
	weights []int // Indexed like Kinds
	total   int
	def     Kind
	logger  *log.Logger
}

// NewCatalog builds a catalog from configuration. Kinds missing from the
// weights table never drop at random.
func NewCatalog(cfg config.PowerUpsConfig, logger *log.Logger) *Catalog {
	c := &Catalog{
		cfg:     cfg,
		weights: make([]int, len(Kinds)),
		def:     KindBow,
		logger:  logger,
	}
	for i, k := range Kinds {
		if w := cfg.Weights[string(k)]; w > 0 {
			c.weights[i] = w
			c.total += w
		}
	}
	if d := Kind(cfg.Default); isKnown(d) {
		c.def = d
	}
	return c
}

func isKnown(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Default returns the fallback kind.
func (c *Catalog) Default() Kind { return c.def }

// Parse resolves a kind name. Unknown names fall back to the default kind
// with a warning.
func (c *Catalog) Parse(name string) Kind {
	k := Kind(name)
	if isKnown(k) {
		return k
	}
	if c.logger != nil {
		c.logger.Warn("unknown power-up, using default", "powerup", name, "default", c.def)
	}
	return c.def
}

// Weighted picks a kind at random in proportion to its weight.
func (c *Catalog) Weighted(rng *rand.Rand) Kind {
	if c.total <= 0 {
		return c.def
	}
	r := rng.Intn(c.total)
	for i, w := range c.weights {
		if r < w {
			return Kinds[i]
		}
		r -= w
	}
	return c.def
}

// ForWave picks the kind of a timed drop. The first two waves only drop
// bows; up to wave five drops are bow, wand or speed; later waves use the
// weights.
func (c *Catalog) ForWave(wave int, rng *rand.Rand) Kind {
	switch {
	case wave <= 2:
		return KindBow
	case wave <= 5:
		r := rng.Float64()
		switch {
		case r < 0.5:
			return KindBow
		case r < 0.8:
			return KindWand
		default:
			return KindSpeed
		}
	default:
		return c.Weighted(rng)
	}
}

// Apply gives the effect of kind k to player. Weapon kinds swap the
// weapon through weapons; health heals up to max health; speed raises the
// speed up to the player's cap. It reports whether anything changed.
func (c *Catalog) Apply(k Kind, player *entity.Entity, weapons *weapon.Catalog) bool {
	p := player.Player
	if p == nil {
		return false
	}
	switch {
	case k.IsWeapon():
		if weapons == nil {
			return false
		}
		p.Weapon = weapons.Get(string(k))
		p.Cooldown = 0
		p.Pending = p.Pending[:0]
	case k == KindHealth:
		before := player.Health
		player.Heal(c.cfg.HealAmount)
		return player.Health != before
	case k == KindSpeed:
		before := p.Speed
		p.Speed += c.cfg.SpeedBoost
		if p.MaxSpeed > 0 {
			p.Speed = min(p.Speed, p.MaxSpeed)
		}
		return p.Speed != before
	default:
		return false
	}
	return true
}
