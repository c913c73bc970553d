package arena

import (
	"math"

	"github.com/vovakirdan/wave-arena/internal/entity"
)

// Snapshot captures the observable state of a run for determinism tests.
type Snapshot struct {
	Tick         uint64
	Wave         int
	Score        int
	Kills        int
	PlayerX      float64
	PlayerY      float64
	PlayerHealth float64
	Weapon       string
	Enemies      int
	Projectiles  int
	PowerUps     int
	State        string
	// Positions holds X, Y of every entity in registry order.
	Positions []float64
}

// Snapshot returns the current state of the world.
func (w *World) Snapshot() Snapshot {
	state := "playing"
	switch {
	case w.victory:
		state = "victory"
	case w.over:
		state = "game_over"
	case w.director.Pending():
		state = "between_waves"
	}
	s := Snapshot{
		Tick:         w.tick,
		Wave:         w.director.Wave(),
		Score:        w.score,
		Kills:        w.kills,
		PlayerX:      w.player.Pos.X,
		PlayerY:      w.player.Pos.Y,
		PlayerHealth: w.player.Health,
		Weapon:       w.player.Player.Weapon.Stats().Name,
		Enemies:      w.registry.Count(entity.TagEnemy),
		Projectiles:  w.registry.Count(entity.TagProjectile),
		PowerUps:     w.registry.Count(entity.TagPowerUp),
		State:        state,
	}
	w.registry.Each(func(e *entity.Entity) {
		s.Positions = append(s.Positions, e.Pos.X, e.Pos.Y)
	})
	return s
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := s.Tick
	h = h*31 + uint64(s.Wave)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Kills) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(s.PlayerX)
	h = h*31 + math.Float64bits(s.PlayerY)
	h = h*31 + math.Float64bits(s.PlayerHealth)
	h = h*31 + uint64(s.Enemies)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Projectiles) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.PowerUps)    //#nosec G115 -- hash computation
	for _, v := range s.Positions {
		h = h*31 + math.Float64bits(v)
	}
	for _, c := range s.Weapon + s.State {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	return h
}
