package behavior

import (
	"strings"
	"time"

	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/fsm"
)

// NewPlayerBrain creates the player's state machine, starting idle.
func NewPlayerBrain(player *entity.Entity) *entity.Brain {
	b := fsm.NewMachine[*entity.Entity, *entity.Entity](player)
	b.SetState(PlayerIdle{})
	return b
}

// PlayerIdle holds the idle pose until the player moves.
type PlayerIdle struct{}

func (PlayerIdle) Name() string { return "idle" }

// Enter turns a walk pose into the idle pose of the same direction.
func (PlayerIdle) Enter(p *entity.Entity) {
	if strings.HasPrefix(p.Intent, VerbWalk) {
		p.SetIntent(strings.Replace(p.Intent, VerbWalk, VerbIdle, 1))
	}
	if p.Intent == "" {
		p.SetIntent(Intent(VerbIdle, DirDown))
	}
}

func (PlayerIdle) Update(p *entity.Entity, _ time.Duration) State {
	if !core.IsZero(p.Vel) {
		return PlayerWalk{}
	}
	return nil
}

func (PlayerIdle) Exit(*entity.Entity) {}

// PlayerWalk shows the walk pose facing the velocity.
type PlayerWalk struct{}

func (PlayerWalk) Name() string { return "walk" }

func (PlayerWalk) Enter(p *entity.Entity) {
	p.SetIntent(Intent(VerbWalk, Facing(p.Vel)))
}

func (PlayerWalk) Update(p *entity.Entity, _ time.Duration) State {
	if core.IsZero(p.Vel) {
		return PlayerIdle{}
	}
	p.SetIntent(Intent(VerbWalk, Facing(p.Vel)))
	return nil
}

func (PlayerWalk) Exit(*entity.Entity) {}
