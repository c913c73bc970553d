package behavior

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/weapon"
)

const frame = time.Second / 60

func newPlayer(pos r2.Vec) *entity.Entity {
	cfg := config.DefaultArenaConfig()
	w := weapon.New(weapon.FromConfig(cfg.Weapons.Catalog[0]))
	return entity.NewPlayer(cfg.Player, w, pos)
}

func gruntConfig() entity.EnemyConfig {
	return entity.EnemyConfigFrom(config.DefaultArenaConfig().Enemies.Grunt)
}

func TestFacing(t *testing.T) {
	tests := []struct {
		name string
		v    r2.Vec
		want Direction
	}{
		{"right", r2.Vec{X: 3, Y: 1}, DirRight},
		{"left", r2.Vec{X: -3, Y: -1}, DirLeft},
		{"down", r2.Vec{X: 1, Y: 3}, DirDown},
		{"up", r2.Vec{X: 1, Y: -3}, DirUp},
		{"tie goes vertical", r2.Vec{X: 2, Y: -2}, DirUp},
		{"zero faces down", r2.Vec{}, DirDown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Facing(tc.v); got != tc.want {
				t.Errorf("Facing(%v) = %s, expected %s", tc.v, got, tc.want)
			}
		})
	}
}

func TestSplitIntent(t *testing.T) {
	verb, dir, ok := SplitIntent("attackLeft")
	if !ok || verb != VerbAttack || dir != DirLeft {
		t.Errorf("SplitIntent(attackLeft) = %q, %q, %v", verb, dir, ok)
	}
	if _, _, ok := SplitIntent("dance"); ok {
		t.Error("unknown intents should not split")
	}
}

func TestPlayerIdleWalkCycle(t *testing.T) {
	p := newPlayer(r2.Vec{})
	brain := NewPlayerBrain(p)

	if brain.CurrentName() != "idle" || p.Intent != "idleDown" {
		t.Fatalf("initial state = %s/%s", brain.CurrentName(), p.Intent)
	}

	p.Vel = r2.Vec{X: -4}
	brain.Update(frame)
	if brain.CurrentName() != "walk" || p.Intent != "walkLeft" {
		t.Fatalf("after moving left = %s/%s", brain.CurrentName(), p.Intent)
	}

	p.Vel = r2.Vec{Y: -4}
	brain.Update(frame)
	if p.Intent != "walkUp" {
		t.Errorf("walk should follow velocity, intent = %s", p.Intent)
	}

	p.Vel = r2.Vec{}
	brain.Update(frame)
	if brain.CurrentName() != "idle" || p.Intent != "idleUp" {
		t.Errorf("after stopping = %s/%s", brain.CurrentName(), p.Intent)
	}
}

func TestEnemyChasesThenAttacks(t *testing.T) {
	p := newPlayer(r2.Vec{X: 200})
	e := entity.NewEnemy(entity.ArchetypeGrunt, gruntConfig(), r2.Vec{})
	brain := NewEnemyBrain(e)

	brain.UpdateWithActor(frame, p)
	if brain.CurrentName() != "walk" || e.Intent != "walkRight" {
		t.Fatalf("far away = %s/%s", brain.CurrentName(), e.Intent)
	}

	e.Pos = r2.Vec{X: 170}
	brain.UpdateWithActor(frame, p)
	if brain.CurrentName() != "attack" {
		t.Fatalf("in range state = %s, expected attack", brain.CurrentName())
	}
}

func TestAttackHonoursWindupAndHitBudget(t *testing.T) {
	p := newPlayer(r2.Vec{X: 30})
	cfg := gruntConfig()
	cfg.Attack = entity.AttackProfile{Duration: 2 * time.Second, Windup: 100 * time.Millisecond, MaxHits: 1}
	cfg.AttackCooldown = 0
	e := entity.NewEnemy(entity.ArchetypeGrunt, cfg, r2.Vec{})

	brain := NewEnemyBrain(e)
	attack := NewAttack(cfg.Attack)
	brain.SetState(attack)

	brain.UpdateWithActor(50*time.Millisecond, p)
	if p.Health != p.MaxHealth {
		t.Fatal("no hit may land during the wind-up")
	}
	if e.Intent != "attackRight" {
		t.Errorf("intent = %s, expected attackRight", e.Intent)
	}

	brain.UpdateWithActor(60*time.Millisecond, p)
	if p.Health != p.MaxHealth-cfg.Damage {
		t.Fatalf("health = %v after wind-up, expected one hit", p.Health)
	}

	// The player is invincible now, and the budget of one swing is spent.
	p.Player.Invincible = 0
	for i := 0; i < 30; i++ {
		brain.UpdateWithActor(frame, p)
	}
	if attack.Swings() != 1 {
		t.Errorf("swings = %d, expected 1", attack.Swings())
	}
	if p.Health != p.MaxHealth-cfg.Damage {
		t.Errorf("health = %v, expected a single hit", p.Health)
	}
}

func TestAttackCountsAbsorbedSwings(t *testing.T) {
	p := newPlayer(r2.Vec{X: 30})
	p.Player.Invincible = time.Hour
	cfg := gruntConfig()
	cfg.Attack = entity.AttackProfile{Duration: time.Second, MaxHits: 2, HitInterval: 100 * time.Millisecond}
	cfg.AttackCooldown = 0
	e := entity.NewEnemy(entity.ArchetypeBoss, cfg, r2.Vec{})

	brain := NewEnemyBrain(e)
	attack := NewAttack(cfg.Attack)
	brain.SetState(attack)

	for i := 0; i < 20; i++ {
		brain.UpdateWithActor(frame, p)
	}
	if attack.Swings() != 2 {
		t.Errorf("swings = %d, expected the budget of 2 used on an invincible target", attack.Swings())
	}
	if p.Health != p.MaxHealth {
		t.Error("an invincible target must not lose health")
	}
}

func TestAttackEndsWhenDurationExpires(t *testing.T) {
	p := newPlayer(r2.Vec{X: 30})
	cfg := gruntConfig()
	e := entity.NewEnemy(entity.ArchetypeGrunt, cfg, r2.Vec{})
	brain := NewEnemyBrain(e)
	brain.SetState(NewAttack(cfg.Attack))

	var elapsed time.Duration
	for brain.CurrentName() == "attack" && elapsed < 10*time.Second {
		brain.UpdateWithActor(frame, p)
		elapsed += frame
	}
	if brain.CurrentName() != "walk" {
		t.Fatalf("state = %s, expected chase after the attack", brain.CurrentName())
	}
	if elapsed < cfg.Attack.Duration {
		t.Errorf("attack lasted %v, expected at least %v", elapsed, cfg.Attack.Duration)
	}
}

func TestAttackLeavesWhenTargetEscapes(t *testing.T) {
	p := newPlayer(r2.Vec{X: 30})
	cfg := gruntConfig()
	e := entity.NewEnemy(entity.ArchetypeGrunt, cfg, r2.Vec{})
	brain := NewEnemyBrain(e)
	brain.SetState(NewAttack(cfg.Attack))

	p.Pos = r2.Vec{X: 500}
	brain.UpdateWithActor(frame, p)
	if brain.CurrentName() != "walk" {
		t.Errorf("state = %s, expected chase", brain.CurrentName())
	}
}

func TestEnemyIdlesWithoutTarget(t *testing.T) {
	e := entity.NewEnemy(entity.ArchetypeFast, gruntConfig(), r2.Vec{})
	brain := NewEnemyBrain(e)

	brain.UpdateWithActor(frame, nil)
	if brain.CurrentName() != "idle" {
		t.Fatalf("state = %s, expected idle", brain.CurrentName())
	}

	p := newPlayer(r2.Vec{X: 300})
	brain.UpdateWithActor(frame, p)
	if brain.CurrentName() != "walk" {
		t.Errorf("state = %s, expected chase once a target appears", brain.CurrentName())
	}
}
