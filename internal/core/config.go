package core

// RuntimeConfig is passed to a game at creation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for deterministic runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means the platform layer picks a time-based seed
	}
}

// GameState is the externally visible status of a run.
type GameState struct {
	Score    int  // Enemies killed, weighted by archetype
	Wave     int  // Current wave number
	GameOver bool // Player died or the terminal wave was cleared
	Victory  bool // Terminal wave cleared
	Paused   bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
