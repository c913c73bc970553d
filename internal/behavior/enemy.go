package behavior

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/fsm"
)

// NewEnemyBrain creates an enemy's state machine, starting in pursuit.
func NewEnemyBrain(enemy *entity.Entity) *entity.Brain {
	b := fsm.NewMachine[*entity.Entity, *entity.Entity](enemy)
	b.SetState(Chase{})
	return b
}

// EnemyIdle waits for a living target.
type EnemyIdle struct{}

func (EnemyIdle) Name() string { return "idle" }

func (EnemyIdle) Enter(e *entity.Entity) {
	_, dir, ok := SplitIntent(e.Intent)
	if !ok {
		dir = DirDown
	}
	e.SetIntent(Intent(VerbIdle, dir))
}

func (EnemyIdle) Update(*entity.Entity, time.Duration) State { return nil }

func (EnemyIdle) UpdateWithActor(e, target *entity.Entity, _ time.Duration) State {
	if target != nil && target.Alive() {
		return Chase{}
	}
	return nil
}

func (EnemyIdle) Exit(*entity.Entity) {}

// Chase walks toward the target and switches to Attack once in range.
type Chase struct{}

func (Chase) Name() string { return "walk" }

func (Chase) Enter(*entity.Entity) {}

func (Chase) Update(*entity.Entity, time.Duration) State { return nil }

func (Chase) UpdateWithActor(e, target *entity.Entity, _ time.Duration) State {
	if target == nil || !target.Alive() {
		return EnemyIdle{}
	}
	e.SetIntent(Intent(VerbWalk, Facing(r2.Sub(target.Pos, e.Pos))))
	if e.InAttackRange(target) {
		return NewAttack(e.Enemy.Config.Attack)
	}
	return nil
}

func (Chase) Exit(*entity.Entity) {}

// Attack is one attack sequence. It shows the attack pose once on its first
// update, swings through the attack contract after the wind-up until the
// hit budget is spent, and hands back to Chase when its duration runs out
// or the target leaves range.
//
// Attack keeps per-entry counters, so every entry needs a fresh value from
// NewAttack.
type Attack struct {
	profile    entity.AttackProfile
	remaining  time.Duration
	elapsed    time.Duration
	sinceSwing time.Duration
	swings     int
	started    bool
}

// NewAttack creates an attack state for the given profile.
func NewAttack(profile entity.AttackProfile) *Attack {
	return &Attack{profile: profile}
}

func (a *Attack) Name() string { return "attack" }

// Enter resets the countdown. The duration is only ever reset here.
func (a *Attack) Enter(*entity.Entity) {
	a.remaining = a.profile.Duration
	a.elapsed = 0
	a.sinceSwing = 0
	a.swings = 0
	a.started = false
}

func (a *Attack) Update(*entity.Entity, time.Duration) State { return nil }

func (a *Attack) UpdateWithActor(e, target *entity.Entity, dt time.Duration) State {
	if target == nil || !target.Alive() {
		return EnemyIdle{}
	}
	if !a.started {
		e.SetIntent(Intent(VerbAttack, Facing(r2.Sub(target.Pos, e.Pos))))
		a.started = true
	}

	a.elapsed += dt
	a.remaining -= dt
	a.sinceSwing += dt

	if a.canSwing() && e.TryAttack(target).Swung() {
		a.swings++
		a.sinceSwing = 0
	}

	if a.remaining <= 0 || !e.InAttackRange(target) {
		return Chase{}
	}
	return nil
}

func (a *Attack) canSwing() bool {
	if a.elapsed < a.profile.Windup {
		return false
	}
	if a.profile.MaxHits > 0 && a.swings >= a.profile.MaxHits {
		return false
	}
	return a.swings == 0 || a.sinceSwing >= a.profile.HitInterval
}

// Swings returns how many swings this entry has made.
func (a *Attack) Swings() int { return a.swings }

func (a *Attack) Exit(*entity.Entity) {}
