package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wave-arena/internal/games/arena"
)

var flagWriteConfig string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after --config and
--difficulty are applied. With --write the YAML goes to a file, which makes
a starting point for ~/.arena/arena.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagWriteConfig, "write", "", "Write the YAML to this path instead of stdout")
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := arena.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if flagWriteConfig != "" {
		return cfg.WriteYAML(flagWriteConfig)
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
