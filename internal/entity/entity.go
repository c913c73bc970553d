// Package entity defines the single entity type of the arena and the
// registry that owns live entities.
//
// An Entity carries the fields every participant shares plus exactly one
// payload pointer matching its Tag. Behaviour is attached through the
// payload (an enemy's state machine, the player's weapon) rather than by
// type hierarchy.
package entity

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/collision"
	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/fsm"
	"github.com/vovakirdan/wave-arena/internal/pathfind"
	"github.com/vovakirdan/wave-arena/internal/steering"
	"github.com/vovakirdan/wave-arena/internal/weapon"
)

// ID identifies an entity for its whole life. IDs are never reused.
type ID uint64

// Tag is the capability of an entity.
type Tag uint8

const (
	TagNone Tag = iota
	TagPlayer
	TagEnemy
	TagProjectile
	TagPowerUp
)

func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagEnemy:
		return "enemy"
	case TagProjectile:
		return "projectile"
	case TagPowerUp:
		return "powerup"
	default:
		return "none"
	}
}

// Archetype distinguishes enemy kinds.
type Archetype string

const (
	ArchetypeGrunt Archetype = "grunt"
	ArchetypeFast  Archetype = "fast"
	ArchetypeBoss  Archetype = "boss"
)

// Brain is the state machine type driving players and enemies. The actor
// is the entity being reacted to (the player, for enemies).
type Brain = fsm.Machine[*Entity, *Entity]

// Entity is one participant of the simulation.
type Entity struct {
	ID        ID
	Tag       Tag
	Archetype Archetype

	Pos    r2.Vec
	Vel    r2.Vec // World units per reference frame
	Radius float64

	Health    float64
	MaxHealth float64

	// Intent is the animation the entity wants shown. The host forwards
	// changes to the presenter.
	Intent string

	removed bool

	Enemy      *EnemyData
	Player     *PlayerData
	Projectile *ProjectileData
	PowerUp    *PowerUpData
}

func (e *Entity) String() string {
	if e.Archetype != "" {
		return fmt.Sprintf("%s#%d(%s)", e.Tag, e.ID, e.Archetype)
	}
	return fmt.Sprintf("%s#%d", e.Tag, e.ID)
}

// Alive reports whether the entity has health left and is not queued for
// removal.
func (e *Entity) Alive() bool {
	return !e.removed && e.Health > 0
}

// Removed reports whether the entity is queued for removal.
func (e *Entity) Removed() bool {
	return e.removed
}

// SetIntent records the animation the entity wants shown.
func (e *Entity) SetIntent(name string) {
	e.Intent = name
}

// Heal restores health up to MaxHealth.
func (e *Entity) Heal(amount float64) {
	e.Health = min(e.Health+amount, e.MaxHealth)
}

// TakeDamage subtracts amount from health. A player inside its
// invincibility window ignores the hit; a hit that lands opens a new
// window. It reports whether the damage was applied.
func (e *Entity) TakeDamage(amount float64) bool {
	if amount <= 0 || e.Health <= 0 {
		return false
	}
	if p := e.Player; p != nil {
		if p.Invincible > 0 {
			return false
		}
		p.Invincible = p.InvincibilityWindow
	}
	e.Health = max(e.Health-amount, 0)
	return true
}

// AttackProfile shapes one entry into the attack state.
type AttackProfile struct {
	Duration    time.Duration
	Windup      time.Duration // No hit lands before this much time in the state
	MaxHits     int           // 0 means unlimited
	HitInterval time.Duration // Minimum gap between hits of one entry
}

// EnemyConfig is the tuning of one enemy. It is copied into each enemy at
// spawn and only changed by per-wave scaling.
type EnemyConfig struct {
	Speed          float64
	Health         float64
	Damage         float64
	AttackCooldown time.Duration
	AttackRange    float64
	Radius         float64
	Score          int
	Weights        steering.Weights
	Seek           steering.SeekProfile
	Attack         AttackProfile
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// EnemyConfigFrom converts an archetype section of the configuration.
func EnemyConfigFrom(c config.ArchetypeConfig) EnemyConfig {
	return EnemyConfig{
		Speed:          c.Speed,
		Health:         c.Health,
		Damage:         c.Damage,
		AttackCooldown: ms(c.AttackCooldownMs),
		AttackRange:    c.AttackRange,
		Radius:         c.Radius,
		Score:          c.Score,
		Weights: steering.Weights{
			Separation: c.Weights.Separation,
			Alignment:  c.Weights.Alignment,
			Cohesion:   c.Weights.Cohesion,
			Seek:       c.Weights.Seek,
		},
		Seek: steering.SeekProfile{
			Intensity:      c.Seek.Intensity,
			CloseRange:     c.Seek.CloseRange,
			CloseIntensity: c.Seek.CloseIntensity,
			ScaleJitterMin: c.Seek.ScaleJitterMin,
			ScaleJitterMax: c.Seek.ScaleJitterMax,
			AxisJitter:     c.Seek.AxisJitter,
		},
		Attack: AttackProfile{
			Duration:    ms(c.Attack.DurationMs),
			Windup:      ms(c.Attack.WindupMs),
			MaxHits:     c.Attack.MaxHits,
			HitInterval: ms(c.Attack.HitIntervalMs),
		},
	}
}

// EnemyData is the enemy payload.
type EnemyData struct {
	Config EnemyConfig
	// SinceLastAttack accumulates tick time; an attack needs it to reach
	// the cooldown and resets it.
	SinceLastAttack time.Duration
	Brain           *Brain
	Path            pathfind.Cache
}

// PendingShot is a delayed projectile of a burst.
type PendingShot struct {
	Shot      weapon.Shot
	Remaining time.Duration
}

// PlayerData is the player payload.
type PlayerData struct {
	Speed               float64
	MaxSpeed            float64
	Invincible          time.Duration // Remaining invincibility
	InvincibilityWindow time.Duration
	Weapon              weapon.Strategy
	Cooldown            time.Duration // Remaining weapon cooldown
	Pending             []PendingShot
	Aim                 r2.Vec // Last aim direction, unit length
	Brain               *Brain
}

// ProjectileData is the projectile payload.
type ProjectileData struct {
	Damage   float64
	Age      time.Duration
	Lifetime time.Duration
}

// PowerUpData is the power-up payload.
type PowerUpData struct {
	Kind string
}

// NewEnemy creates an enemy at pos. The attack timer starts full so the
// first attack is not delayed.
func NewEnemy(arch Archetype, cfg EnemyConfig, pos r2.Vec) *Entity {
	return &Entity{
		Tag:       TagEnemy,
		Archetype: arch,
		Pos:       pos,
		Radius:    cfg.Radius,
		Health:    cfg.Health,
		MaxHealth: cfg.Health,
		Enemy: &EnemyData{
			Config:          cfg,
			SinceLastAttack: cfg.AttackCooldown,
		},
	}
}

// NewPlayer creates the player at pos armed with w.
func NewPlayer(cfg config.PlayerConfig, w weapon.Strategy, pos r2.Vec) *Entity {
	return &Entity{
		Tag:       TagPlayer,
		Pos:       pos,
		Radius:    cfg.Radius,
		Health:    cfg.Health,
		MaxHealth: max(cfg.MaxHealth, cfg.Health),
		Player: &PlayerData{
			Speed:               cfg.Speed,
			MaxSpeed:            cfg.MaxSpeed,
			InvincibilityWindow: ms(cfg.InvincibilityMs),
			Weapon:              w,
			Aim:                 r2.Vec{X: 1},
		},
	}
}

// NewProjectile creates a projectile.
func NewProjectile(pos, vel r2.Vec, radius, damage float64, lifetime time.Duration) *Entity {
	return &Entity{
		Tag:        TagProjectile,
		Pos:        pos,
		Vel:        vel,
		Radius:     radius,
		Health:     1,
		MaxHealth:  1,
		Projectile: &ProjectileData{Damage: damage, Lifetime: lifetime},
	}
}

// NewPowerUp creates a power-up pickup.
func NewPowerUp(kind string, pos r2.Vec, radius float64) *Entity {
	return &Entity{
		Tag:       TagPowerUp,
		Pos:       pos,
		Radius:    radius,
		Health:    1,
		MaxHealth: 1,
		PowerUp:   &PowerUpData{Kind: kind},
	}
}

// Tick advances the entity's countdowns and accumulators by dt.
func (e *Entity) Tick(dt time.Duration) {
	if en := e.Enemy; en != nil {
		en.SinceLastAttack += dt
		en.Path.Tick(dt)
	}
	if p := e.Player; p != nil {
		p.Invincible = max(p.Invincible-dt, 0)
		p.Cooldown = max(p.Cooldown-dt, 0)
	}
	if pr := e.Projectile; pr != nil {
		pr.Age += dt
	}
}

// InAttackRange reports whether target is within this enemy's attack range.
func (e *Entity) InAttackRange(target *Entity) bool {
	if e.Enemy == nil || target == nil {
		return false
	}
	return collision.InRange(e.Pos, target.Pos, e.Enemy.Config.AttackRange)
}

// AttackReady reports whether the attack cooldown has elapsed.
func (e *Entity) AttackReady() bool {
	return e.Enemy != nil && e.Enemy.SinceLastAttack >= e.Enemy.Config.AttackCooldown
}

// AttackResult is the outcome of an attack attempt.
type AttackResult int

const (
	AttackNotReady   AttackResult = iota // Cooldown still running
	AttackOutOfReach                     // Target dead or beyond attack range
	AttackAbsorbed                       // Swing made, target invincible
	AttackLanded                         // Damage applied
)

// Swung reports whether the attempt used up the cooldown.
func (r AttackResult) Swung() bool {
	return r == AttackAbsorbed || r == AttackLanded
}

// TryAttack is the attack contract between an enemy and its target. The
// attack needs a finished cooldown, a living target and the target within
// attack range. A swing restarts the cooldown even if the target shrugs
// the hit off.
func (e *Entity) TryAttack(target *Entity) AttackResult {
	if !e.AttackReady() {
		return AttackNotReady
	}
	if target == nil || !target.Alive() || !e.InAttackRange(target) {
		return AttackOutOfReach
	}
	e.Enemy.SinceLastAttack = 0
	if target.TakeDamage(e.Enemy.Config.Damage) {
		return AttackLanded
	}
	return AttackAbsorbed
}
