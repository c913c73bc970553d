// Package behavior holds the state machine states of the player and the
// enemies, and the animation intents they emit.
package behavior

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/fsm"
)

// State is a behaviour state of a player or enemy. The actor is the entity
// an enemy reacts to; players ignore it.
type State = fsm.State[*entity.Entity, *entity.Entity]

// Animation verbs combined with a Direction to form an intent name.
const (
	VerbIdle   = "idle"
	VerbWalk   = "walk"
	VerbAttack = "attack"
)

// Direction is one of the four facing directions.
type Direction string

const (
	DirUp    Direction = "Up"
	DirDown  Direction = "Down"
	DirLeft  Direction = "Left"
	DirRight Direction = "Right"
)

// Facing returns the dominant direction of d. Horizontal wins only when
// strictly larger; ties and the zero vector face vertically. Positive Y
// points down the screen.
func Facing(d r2.Vec) Direction {
	if math.Abs(d.X) > math.Abs(d.Y) {
		if d.X > 0 {
			return DirRight
		}
		return DirLeft
	}
	if d.Y > 0 || (d.Y == 0 && d.X == 0) {
		return DirDown
	}
	return DirUp
}

// Intent joins a verb and a direction, e.g. "walkLeft".
func Intent(verb string, dir Direction) string {
	return verb + string(dir)
}

// SplitIntent is the inverse of Intent. Unknown names return ok false.
func SplitIntent(name string) (verb string, dir Direction, ok bool) {
	for _, v := range []string{VerbIdle, VerbWalk, VerbAttack} {
		if rest, found := strings.CutPrefix(name, v); found {
			switch d := Direction(rest); d {
			case DirUp, DirDown, DirLeft, DirRight:
				return v, d, true
			}
		}
	}
	return "", "", false
}
