package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/games/arena"
	"github.com/vovakirdan/wave-arena/internal/platform/tui"
	"github.com/vovakirdan/wave-arena/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing. The mode is a registered mode ID or comes from --mode:
"arena" (campaign, ends after the victory wave) or "arena_endless".

Controls:
  WASD/Arrows    - Move
  Space/F/Click  - Fire (aims at the mouse, or the nearest enemy)
  P              - Pause
  R              - Restart (after game over)
  Tab            - Run summary (after game over)
  Esc/B          - Back to menu (paused or game over)
  F3             - Debug overlay
  Q/Ctrl+C       - Quit

Examples:
  arena play
  arena play arena_endless
  arena play --mode endless --bell
  arena play --difficulty hard --config ./my-arena.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var flagBell bool

func init() {
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell when hit and when a wave starts")
	menuCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell when hit and when a wave starts")
}

// setupAudio installs the bell when --bell is set.
func setupAudio() {
	if flagBell {
		arena.SetAudio(tui.NewBell(os.Stdout, 250*time.Millisecond, arena.CuePlayerDamaged, arena.CueWaveStarted))
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	id, err := modeID()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return fmt.Errorf("unknown mode %q, run 'arena list' to see modes", id)
	}

	setupAudio()
	cfg := runtimeConfig()
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	state, _, err := tui.Run(game, cfg)
	if err != nil {
		return err
	}
	logger.Info("run finished", "mode", id, "wave", state.Wave, "score", state.Score, "victory", state.Victory)
	if state.GameOver {
		fmt.Printf("Reached wave %d with %d points.\n", state.Wave, state.Score)
	}
	return nil
}

// runtimeConfig sizes the run to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
