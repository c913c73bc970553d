package arena

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/entity"
)

// Presenter shows animations. SetAnimationIntent is only called when an
// entity's intent changes; an error keeps the previous animation.
type Presenter interface {
	SetAnimationIntent(id entity.ID, name string) error
}

// Sound cues emitted by the world.
const (
	CueProjectileFired = "projectile_fired"
	CueEnemyDied       = "enemy_died"
	CuePlayerDamaged   = "player_damaged"
	CuePowerUpPicked   = "powerup_picked"
	CueWaveStarted     = "wave_started"
)

// Audio plays sound cues. Calls are fire-and-forget.
type Audio interface {
	PlaySound(cue string)
}

// NopPresenter accepts every intent.
type NopPresenter struct{}

func (NopPresenter) SetAnimationIntent(entity.ID, string) error { return nil }

// NopAudio discards cues.
type NopAudio struct{}

func (NopAudio) PlaySound(string) {}

// Input is the per-tick input query of the world.
type Input interface {
	ActionDown(a core.Action) bool
	// PointerWorld returns the pointer in world coordinates, if known.
	PointerWorld() (r2.Vec, bool)
	PrimaryPressed() bool
}

// Camera maps screen cells to world positions. The anchor sits at the
// center of the screen.
type Camera struct {
	Anchor       r2.Vec
	ScreenW      int
	ScreenH      int
	CellW, CellH float64
}

// ToWorld converts a screen cell to the world position of its center.
func (c Camera) ToWorld(x, y int) r2.Vec {
	return r2.Vec{
		X: c.Anchor.X + (float64(x-c.ScreenW/2)+0.5)*c.CellW,
		Y: c.Anchor.Y + (float64(y-c.ScreenH/2)+0.5)*c.CellH,
	}
}

// ToScreen converts a world position to a screen cell.
func (c Camera) ToScreen(p r2.Vec) (int, int) {
	dx := (p.X - c.Anchor.X) / c.CellW
	dy := (p.Y - c.Anchor.Y) / c.CellH
	return c.ScreenW/2 + int(math.Floor(dx)), c.ScreenH/2 + int(math.Floor(dy))
}

// HalfExtent returns half the visible world width and height.
func (c Camera) HalfExtent() r2.Vec {
	return r2.Vec{X: float64(c.ScreenW) * c.CellW / 2, Y: float64(c.ScreenH) * c.CellH / 2}
}

// FrameInput adapts a core.InputFrame to Input.
type FrameInput struct {
	Frame  core.InputFrame
	Camera Camera
}

func (f FrameInput) ActionDown(a core.Action) bool {
	return f.Frame.Has(a)
}

func (f FrameInput) PointerWorld() (r2.Vec, bool) {
	if !f.Frame.Pointer.Valid {
		return r2.Vec{}, false
	}
	return f.Camera.ToWorld(f.Frame.Pointer.X, f.Frame.Pointer.Y), true
}

func (f FrameInput) PrimaryPressed() bool {
	return f.Frame.Has(core.ActionFire)
}
