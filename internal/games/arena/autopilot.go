package arena

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/powerup"
)

// ScriptedInput is an Input built in code rather than from a device.
type ScriptedInput struct {
	Frame  core.InputFrame
	Aim    r2.Vec
	HasAim bool
}

func (s ScriptedInput) ActionDown(a core.Action) bool { return s.Frame.Has(a) }

func (s ScriptedInput) PointerWorld() (r2.Vec, bool) { return s.Aim, s.HasAim }

func (s ScriptedInput) PrimaryPressed() bool { return s.Frame.Has(core.ActionFire) }

// Autopilot steers the player in headless runs: it keeps its distance
// from the nearest enemy, circles it while firing, and walks to power-ups
// when nothing threatens.
type Autopilot struct {
	world *World
	// Keep is the distance the autopilot tries to hold from enemies.
	Keep float64
}

// NewAutopilot creates an autopilot for w.
func NewAutopilot(w *World) *Autopilot {
	return &Autopilot{world: w, Keep: 220}
}

// Next returns the input for the coming tick.
func (a *Autopilot) Next() ScriptedInput {
	in := ScriptedInput{Frame: core.NewInputFrame()}
	p := a.world.Player()
	if !p.Alive() {
		return in
	}

	var dir r2.Vec
	if e, ok := a.world.NearestEnemy(p.Pos); ok {
		in.Aim, in.HasAim = e.Pos, true
		in.Frame.Set(core.ActionFire)

		away := r2.Sub(p.Pos, e.Pos)
		dist := r2.Norm(away)
		away = core.SafeUnit(away)
		tangent := r2.Vec{X: -away.Y, Y: away.X}
		switch {
		case dist < a.Keep:
			dir = r2.Add(away, r2.Scale(0.5, tangent))
		case dist > 2*a.Keep:
			dir = r2.Add(tangent, r2.Scale(-0.3, away))
		default:
			dir = tangent
		}
	} else if pu, ok := a.wantedPowerUp(p); ok {
		dir = r2.Sub(pu.Pos, p.Pos)
	}

	const dead = 0.35
	dir = core.SafeUnit(dir)
	if dir.X > dead {
		in.Frame.Set(core.ActionRight)
	} else if dir.X < -dead {
		in.Frame.Set(core.ActionLeft)
	}
	if dir.Y > dead {
		in.Frame.Set(core.ActionDown)
	} else if dir.Y < -dead {
		in.Frame.Set(core.ActionUp)
	}
	return in
}

// wantedPowerUp picks the pickup to walk to. Health when hurt and the
// weapon recommended for the wave count as half as far away.
func (a *Autopilot) wantedPowerUp(p *entity.Entity) (*entity.Entity, bool) {
	rec := a.world.Weapons().Recommended(a.world.Director().Wave())
	held := p.Player.Weapon.Stats().Name
	hurt := p.Health < p.MaxHealth/2

	var best *entity.Entity
	bestD := math.Inf(1)
	for _, pu := range a.world.Registry().ByCapability(entity.TagPowerUp) {
		d := r2.Norm(r2.Sub(pu.Pos, p.Pos))
		kind := powerup.Kind(pu.PowerUp.Kind)
		if (hurt && kind == powerup.KindHealth) || (string(kind) == rec && held != rec) {
			d /= 2
		}
		if d < bestD {
			best, bestD = pu, d
		}
	}
	return best, best != nil
}
