package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/games/arena"
	"github.com/vovakirdan/wave-arena/internal/wave"
)

var flagWaveCount int

var wavesCmd = &cobra.Command{
	Use:   "waves",
	Short: "Print the wave plan and enemy scaling",
	Long: `Print how many enemies every wave spawns and how strong they are,
for the configuration and difficulty selected.

Examples:
  arena waves
  arena waves --count 30 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWaves,
}

func init() {
	wavesCmd.Flags().IntVar(&flagWaveCount, "count", 0, "Number of waves to print (0 = up to the victory wave)")
}

func runWaves(_ *cobra.Command, _ []string) error {
	cfg := arena.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	count := flagWaveCount
	if count <= 0 {
		count = max(cfg.Waves.VictoryWave, 10)
	}

	d := wave.NewDirector(cfg.Waves, cfg.Enemies, nil, nil, logger)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Wave", "Grunts", "Fast", "Boss", "Bonus", "Grunt HP/Dmg", "Fast HP/Dmg", "Boss HP/Dmg")

	for n := 1; n <= count; n++ {
		c := d.Plan(n)
		grunts, fast, boss := strconv.Itoa(c.Grunts), strconv.Itoa(c.Fast), ""
		if c.Boss {
			grunts, fast, boss = "-", "-", "1"
		}
		bonus := ""
		if c.PowerUp {
			bonus = "yes"
		}
		t.Row(
			strconv.Itoa(n), grunts, fast, boss, bonus,
			stats(d.ScaledConfig(entity.ArchetypeGrunt, n)),
			stats(d.ScaledConfig(entity.ArchetypeFast, n)),
			stats(d.ScaledConfig(entity.ArchetypeBoss, n)),
		)
	}
	fmt.Println(t.String())
	if v := cfg.Waves.VictoryWave; v > 0 {
		fmt.Printf("Campaign ends after wave %d.\n", v)
	}
	return nil
}

func stats(c entity.EnemyConfig) string {
	return fmt.Sprintf("%.0f/%.0f", c.Health, c.Damage)
}
