package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/weapon"
)

func newGrunt(pos r2.Vec) *Entity {
	cfg := EnemyConfigFrom(config.DefaultArenaConfig().Enemies.Grunt)
	return NewEnemy(ArchetypeGrunt, cfg, pos)
}

func newPlayer() *Entity {
	cfg := config.DefaultArenaConfig()
	w := weapon.NewCatalog(cfg.Weapons, nil).Get("bow")
	return NewPlayer(cfg.Player, w, r2.Vec{})
}

func TestEnemyConfigFrom(t *testing.T) {
	cfg := EnemyConfigFrom(config.DefaultArenaConfig().Enemies.Boss)
	assert.Equal(t, 600*time.Millisecond, cfg.AttackCooldown)
	assert.Equal(t, 400*time.Millisecond, cfg.Attack.Duration)
	assert.Equal(t, 2, cfg.Attack.MaxHits)
	assert.Equal(t, 1.8, cfg.Weights.Seek)
	assert.Equal(t, 0.2, cfg.Seek.AxisJitter)
}

func TestTryAttackRespectsCooldownAndRange(t *testing.T) {
	enemy := newGrunt(r2.Vec{X: 30})
	player := newPlayer()
	player.Player.InvincibilityWindow = 0

	require.True(t, enemy.AttackReady(), "first attack is not delayed")
	require.Equal(t, AttackLanded, enemy.TryAttack(player))
	assert.Equal(t, 75.0, player.Health)

	assert.Equal(t, AttackNotReady, enemy.TryAttack(player), "cooldown not elapsed")
	enemy.Tick(999 * time.Millisecond)
	assert.Equal(t, AttackNotReady, enemy.TryAttack(player))
	enemy.Tick(time.Millisecond)
	assert.Equal(t, AttackLanded, enemy.TryAttack(player))
	assert.Equal(t, 50.0, player.Health)

	enemy.Tick(time.Second)
	enemy.Pos = r2.Vec{X: 51}
	assert.Equal(t, AttackOutOfReach, enemy.TryAttack(player), "out of range")
	assert.True(t, enemy.AttackReady(), "a failed range check keeps the cooldown")
}

func TestPlayerInvincibilityWindow(t *testing.T) {
	player := newPlayer()
	require.Equal(t, time.Second, player.Player.InvincibilityWindow)

	assert.True(t, player.TakeDamage(10))
	assert.False(t, player.TakeDamage(10), "invincible right after a hit")
	assert.Equal(t, 90.0, player.Health)

	player.Tick(time.Second)
	assert.True(t, player.TakeDamage(10))
	assert.Equal(t, 80.0, player.Health)
}

func TestInvincibleTargetStillConsumesCooldown(t *testing.T) {
	enemy := newGrunt(r2.Vec{X: 10})
	player := newPlayer()
	player.Player.Invincible = time.Second

	result := enemy.TryAttack(player)
	assert.Equal(t, AttackAbsorbed, result)
	assert.True(t, result.Swung())
	assert.False(t, enemy.AttackReady())
	assert.Equal(t, 100.0, player.Health)
}

func TestHealAndDeath(t *testing.T) {
	player := newPlayer()
	player.Player.InvincibilityWindow = 0

	player.TakeDamage(30)
	player.Heal(25)
	assert.Equal(t, 95.0, player.Health)
	player.Heal(25)
	assert.Equal(t, 100.0, player.Health, "heal caps at max health")

	player.TakeDamage(500)
	assert.Zero(t, player.Health)
	assert.False(t, player.Alive())
	assert.False(t, player.TakeDamage(1), "dead entities take no damage")
}

func TestRegistryDeferredRemoval(t *testing.T) {
	r := NewRegistry()
	player := newPlayer()
	a := newGrunt(r2.Vec{X: 100})
	b := newGrunt(r2.Vec{X: 200})

	r.Add(player)
	idA := r.Add(a)
	r.Add(b)
	require.Equal(t, 2, r.Count(TagEnemy))

	for _, e := range r.ByCapability(TagEnemy) {
		r.Remove(e)
		r.Remove(e) // idempotent
	}
	assert.Zero(t, r.Count(TagEnemy), "removed entities vanish from queries at once")
	assert.Equal(t, 3, r.Len(), "but stay registered until flushed")
	_, ok := r.Get(idA)
	assert.True(t, ok)

	flushed := r.Flush()
	assert.Len(t, flushed, 2)
	assert.Equal(t, 1, r.Len())
	_, ok = r.Get(idA)
	assert.False(t, ok)
	assert.Nil(t, r.Flush())

	c := newGrunt(r2.Vec{})
	assert.Greater(t, r.Add(c), idA, "IDs are never reused")
}

func TestRegistryEachInInsertionOrder(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		r.Add(newGrunt(r2.Vec{X: float64(i)}))
	}
	var xs []float64
	r.Each(func(e *Entity) { xs = append(xs, e.Pos.X) })
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, xs)
}
