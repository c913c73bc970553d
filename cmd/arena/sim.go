package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wave-arena/internal/games/arena"
	"github.com/vovakirdan/wave-arena/internal/telemetry"
)

var (
	flagTicks     int
	flagOutputDir string
	flagAutopilot bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the arena without a terminal. The autopilot steers and shoots for
the player; without it the player stands still. Per-wave statistics go to
waves.csv in --output-dir together with the config.yaml used.

Examples:
  arena sim --ticks 36000 --seed 7
  arena sim --output-dir ./runs/hard --difficulty hard
  arena sim --autopilot=false --ticks 3600
  arena sim --mode endless --ticks 200000`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 36000, "Maximum ticks to simulate")
	simCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory for waves.csv and config.yaml (empty = no files)")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", true, "Let the autopilot play")
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg := arena.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := telemetry.NewOutputManager(flagOutputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		return err
	}

	id, err := modeID()
	if err != nil {
		return err
	}
	s := seed()
	w := arena.NewWorld(arena.Options{
		Config:  cfg,
		Seed:    s,
		Endless: id == "arena_endless",
		Logger:  logger,
	})
	w.Stats().SetSink(out)
	logger.Info("simulation started", "seed", s, "ticks", flagTicks, "run", w.Stats().RunID())

	var pilot *arena.Autopilot
	if flagAutopilot {
		pilot = arena.NewAutopilot(w)
	}
	dt := time.Second / time.Duration(max(flagFPS, 1))
	started := time.Now()
	for i := 0; i < flagTicks && !w.Over(); i++ {
		if pilot != nil {
			w.Step(pilot.Next(), dt)
		} else {
			w.Step(nil, dt)
		}
	}
	if !w.Over() {
		w.Stats().Finish(w.Director().Elapsed())
	}
	if err := w.Stats().Err(); err != nil {
		return err
	}

	outcome := "timeout"
	switch {
	case w.Victory():
		outcome = "victory"
	case w.Over():
		outcome = "death"
	}
	logger.Info("simulation finished",
		"outcome", outcome,
		"ticks", w.Tick(),
		"wave", w.Director().Wave(),
		"score", w.Score(),
		"wall", time.Since(started).Round(time.Millisecond),
	)

	fmt.Println(recordsTable(w.Stats().Records()))
	fmt.Printf("Outcome: %s at wave %d, score %d, kills %d, %s simulated\n",
		outcome, w.Director().Wave(), w.Score(), w.Kills(), w.Clock().Round(time.Second))
	if dir := out.Dir(); dir != "" {
		fmt.Printf("Telemetry written to %s\n", dir)
	}
	return nil
}
