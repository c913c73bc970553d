package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wave-arena/internal/platform/tui"
	"github.com/vovakirdan/wave-arena/internal/telemetry"
)

var flagPlain bool

var reportCmd = &cobra.Command{
	Use:   "report <dir|waves.csv>",
	Short: "Show the wave table of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the table instead of opening the viewer")
}

func runReport(_ *cobra.Command, args []string) error {
	path := args[0]
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, "waves.csv")
	}
	recs, err := telemetry.ReadWaves(path)
	if err != nil {
		return err
	}

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(recordsTable(recs))
		return nil
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 80, 24
	}
	return tui.RunSummary(filepath.Base(filepath.Dir(path))+" run summary", recs, w, h)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// recordsTable renders wave records as a bordered table.
func recordsTable(recs []telemetry.WaveRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Wave", "Boss", "Spawned", "Kills", "Shots", "Acc", "Damage", "Pickups", "Time", "HP", "Score", "Cleared")

	for _, r := range recs {
		t.Row(
			strconv.Itoa(r.Wave),
			yesNo(r.Boss),
			strconv.Itoa(r.Spawned),
			strconv.Itoa(r.Kills),
			strconv.Itoa(r.ShotsFired),
			fmt.Sprintf("%.0f%%", 100*r.Accuracy()),
			fmt.Sprintf("%.0f", r.DamageTaken),
			strconv.Itoa(r.Pickups),
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
			fmt.Sprintf("%.0f", r.PlayerHealth),
			strconv.Itoa(r.Score),
			yesNo(r.Cleared),
		)
	}
	return t.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
