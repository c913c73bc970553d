package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wave-arena/internal/platform/tui"
	"github.com/vovakirdan/wave-arena/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty, then play",
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	setupAudio()
	cfg := runtimeConfig()
	difficulty := flagDifficulty

	for {
		res, err := tui.RunMenu(cfg, difficulty)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
		cfg, difficulty = res.Config, res.Difficulty

		game, err := registry.Create(res.GameID)
		if err != nil {
			return err
		}
		if t, ok := game.(tui.Tunable); ok {
			if err := t.SetDifficulty(difficulty); err != nil {
				return err
			}
		}
		state, back, err := tui.Run(game, cfg)
		if err != nil {
			return err
		}
		logger.Info("run finished", "mode", res.GameID, "difficulty", difficulty, "wave", state.Wave, "score", state.Score)
		if !back {
			return nil
		}
	}
}
