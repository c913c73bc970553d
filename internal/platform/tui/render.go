package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wave-arena/internal/core"
)

// arenaPalette holds the ANSI 256 code of every core.Color, indexed by the
// color value. Roles are the ones the arena renderer draws with.
var arenaPalette = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",   // grunts, enemy count
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",   // projectiles, pause banner
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",   // fast enemies
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",   // HUD text
	core.ColorBrightRed:     "9",   // boss, low health, game over
	core.ColorBrightGreen:   "10",  // health drops, victory
	core.ColorBrightYellow:  "11",  // weapon drops, score
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",  // player, wave counter
	core.ColorBrightWhite:   "15",  // player while invincible
	core.ColorOrange:        "208", // enemy mid-attack
	core.ColorGray:          "245", // rocks, reticle, debug overlay
	core.ColorBrown:         "130", // trunks, buildings
	core.ColorDarkGreen:     "22",  // tree canopies
}

// glyphStyles are built once from arenaPalette. The player and boss are
// drawn bold so they stand out of a crowd.
var glyphStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(arenaPalette))
	for c, code := range arenaPalette {
		st := lipgloss.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		switch core.Color(c) {
		case core.ColorBrightCyan, core.ColorBrightRed:
			st = st.Bold(true)
		}
		styles[c] = st
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(glyphStyles) {
		return glyphStyles[c]
	}
	return glyphStyles[core.ColorDefault]
}

// RenderScreen turns the arena frame into styled terminal output.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		writeRow(&sb, s, y)
	}
	return sb.String()
}

// writeRow emits one screen row, styling each run of equal color once.
// Blank default-colored runs are written raw.
func writeRow(sb *strings.Builder, s *core.Screen, y int) {
	var run []rune
	runColor := s.GetCell(0, y).Color
	flush := func() {
		if len(run) == 0 {
			return
		}
		text := string(run)
		if runColor == core.ColorDefault {
			sb.WriteString(text)
		} else {
			sb.WriteString(styleFor(runColor).Render(text))
		}
		run = run[:0]
	}
	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != runColor {
			flush()
			runColor = cell.Color
		}
		run = append(run, cell.Rune)
	}
	flush()
}
