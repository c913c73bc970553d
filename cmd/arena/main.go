// arena is a top-down wave survival game for the terminal, with a
// headless simulator for balancing.
//
// Usage:
//
//	arena list               - List game modes
//	arena play [mode]        - Play a mode (default: arena)
//	arena menu               - Pick mode and difficulty interactively
//	arena serve              - Start SSH server for remote play
//	arena sim                - Run a headless simulation and record telemetry
//	arena waves              - Print the wave plan and enemy scaling
//	arena report <dir|csv>   - Show the wave table of a recorded run
//	arena config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--config <path>       - Custom arena.yaml
//	--difficulty <preset> - easy, normal or hard
//	--log-file <path>     - Write logs to a file
//	--debug               - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/games/arena"
)

var (
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
	flagMode       string

	logger  *log.Logger
	logFile *os.File
)

func main() {
	defer closeLog()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Wave Arena - survive waves of enemies in your terminal",
	Long: `Wave Arena is a top-down survival game. Enemies arrive in growing
waves, flock around obstacles and hunt you down; you pick up weapons and
keep them at bay until the final wave.

Available commands:
  list     - Show game modes
  play     - Play a mode directly
  menu     - Interactive mode and difficulty picker
  serve    - Start SSH server for remote play
  sim      - Headless simulation with CSV telemetry
  waves    - Print the wave plan
  report   - Show a recorded run
  config   - Print the effective configuration

Examples:
  arena play
  arena play arena_endless --difficulty hard
  arena sim --ticks 36000 --output-dir ./runs/1 --seed 7
  arena waves --count 20`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		if _, err := modeID(); err != nil {
			return err
		}
		if err := setupLogger(cmd.Name()); err != nil {
			return err
		}
		arena.SetConfigPath(flagConfig)
		arena.SetDifficultyPreset(flagDifficulty)
		arena.SetLogger(logger)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom arena.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")
	pf.StringVar(&flagMode, "mode", "campaign", "Game mode: campaign or endless")

	rootCmd.AddCommand(listCmd, playCmd, menuCmd, serveCmd, simCmd, wavesCmd, reportCmd, configCmd)
}

// setupLogger builds the shared logger. Interactive commands own the
// terminal, so they log to ~/.arena/arena.log unless --log-file is set.
func setupLogger(command string) error {
	var out io.Writer = os.Stderr
	path := flagLogFile
	if path == "" && (command == "play" || command == "menu") {
		home, err := os.UserHomeDir()
		if err != nil {
			out = io.Discard
		} else {
			path = filepath.Join(home, ".arena", "arena.log")
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating log directory: %w", err)
			}
		}
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "arena",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

func closeLog() {
	if logFile != nil {
		//nolint:errcheck // Nothing left to report to
		logFile.Close()
		logFile = nil
	}
}

// modeID maps --mode to a registered mode ID.
func modeID() (string, error) {
	switch flagMode {
	case "", "campaign":
		return "arena", nil
	case "endless":
		return "arena_endless", nil
	default:
		return "", fmt.Errorf("unknown mode %q (want campaign or endless)", flagMode)
	}
}

// seed returns --seed, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
