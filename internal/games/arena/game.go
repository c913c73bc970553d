package arena

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/registry"
	"github.com/vovakirdan/wave-arena/internal/telemetry"
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Win after the victory wave
	ModeEndless                  // Waves never end
)

// hudRows is the number of screen rows above the arena.
const hudRows = 1

// Minimum playable screen.
const (
	minScreenW = 40
	minScreenH = 12
)

// Settings applied by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           *log.Logger
	audio            Audio
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the
// configuration as loaded.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to new worlds.
func SetLogger(l *log.Logger) {
	logger = l
}

// SetAudio sets the audio sink handed to new worlds.
func SetAudio(a Audio) {
	audio = a
}

// Game adapts a World to registry.Game.
type Game struct {
	mode    GameMode
	world   *World
	runtime core.RuntimeConfig
	cfg     config.ArenaConfig
	dt      time.Duration
	camera  Camera
	preset  config.DifficultyPreset

	paused   bool
	debug    bool
	tooSmall bool
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "arena_endless"
	}
	return "arena"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Wave Arena (Endless)"
	}
	return "Wave Arena"
}

// SetDifficulty overrides the package preset for this game. It takes
// effect on the next Reset.
func (g *Game) SetDifficulty(name string) error {
	p, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// LoadConfig loads the configuration the CLI selected, with the preset
// applied. Load errors fall back to the defaults with a warning.
func LoadConfig() config.ArenaConfig {
	return loadConfig(difficultyPreset)
}

func loadConfig(preset config.DifficultyPreset) config.ArenaConfig {
	cfg, err := config.Load(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("config not loaded, using defaults", "path", configPath, "err", err)
		}
		cfg = config.DefaultArenaConfig()
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	return cfg
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	g.cfg = loadConfig(preset)

	rate := runtime.TickRate
	if rate <= 0 {
		rate = g.cfg.World.ReferenceFPS
	}
	g.dt = time.Second / time.Duration(max(rate, 1))

	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.camera = Camera{
		ScreenW: runtime.ScreenW,
		ScreenH: max(runtime.ScreenH-hudRows, 1),
		CellW:   g.cfg.Render.CellWidth,
		CellH:   g.cfg.Render.CellHeight,
	}
	g.paused = false

	g.world = NewWorld(Options{
		Config:   g.cfg,
		Seed:     runtime.Seed,
		Endless:  g.mode == ModeEndless,
		Viewport: r2.Scale(2, g.camera.HalfExtent()),
		Audio:    audio,
		Logger:   logger,
	})
	g.camera.Anchor = g.world.Player().Pos
}

// World returns the running world.
func (g *Game) World() *World {
	return g.world
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.world.Over() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}
	if in.Has(core.ActionPause) && !g.world.Over() {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall || g.world.Over() {
		return core.StepResult{State: g.State()}
	}

	if in.Pointer.Valid {
		in.Pointer.Y -= hudRows
	}
	g.camera.Anchor = g.world.Player().Pos
	g.world.Step(FrameInput{Frame: in, Camera: g.camera}, g.dt)
	g.camera.Anchor = g.world.Player().Pos

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.world.Score(),
		Wave:     g.world.Director().Wave(),
		GameOver: g.world.Over(),
		Victory:  g.world.Victory(),
		Paused:   g.paused,
	}
}

// Snapshot returns the world snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.world.Snapshot()
}

// Records returns the per-wave statistics of the run, including the wave in
// progress.
func (g *Game) Records() []telemetry.WaveRecord {
	if g.world == nil {
		return nil
	}
	recs := slices.Clone(g.world.Stats().Records())
	if cur, ok := g.world.Stats().Current(); ok {
		recs = append(recs, cur)
	}
	return recs
}

func init() {
	registry.Register("arena", func() registry.Game {
		return New()
	})
	registry.Register("arena_endless", func() registry.Game {
		return NewEndless()
	})
}
