package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wave-arena/internal/config"
	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/registry"
)

// MenuModel picks a mode and a difficulty.
type MenuModel struct {
	items      []registry.GameInfo
	cursor     int
	difficulty int
	width      int
	height     int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	quitting   bool
	selected   *registry.GameInfo
}

// NewMenuModel creates a menu over the registered modes, starting at the
// given difficulty.
func NewMenuModel(cfg core.RuntimeConfig, difficulty string) MenuModel {
	d := slices.Index(config.Presets, config.DifficultyPreset(difficulty))
	if d < 0 {
		d = slices.Index(config.Presets, config.DifficultyNormal)
	}
	return MenuModel{
		items:      registry.List(),
		difficulty: d,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(0),
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(config.Presets)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
	case MenuActionLeft:
		m.difficulty = (m.difficulty + n - 1) % n
	case MenuActionRight:
		m.difficulty = (m.difficulty + 1) % n
	case MenuActionSelect:
		if len(m.items) > 0 {
			sel := m.items[m.cursor]
			m.selected = &sel
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))

	b.WriteString("\n")
	b.WriteString(centerText(title.Render("  W A V E   A R E N A  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Survive the horde", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("< Difficulty: %s >", m.Difficulty()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Up/Down: mode  |  Left/Right: difficulty  |  Enter: play  |  Q: quit", m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen mode, or nil.
func (m MenuModel) Selected() *registry.GameInfo { return m.selected }

// Difficulty returns the chosen difficulty preset name.
func (m MenuModel) Difficulty() string { return string(config.Presets[m.difficulty]) }

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// MenuResult holds the outcome of RunMenu.
type MenuResult struct {
	GameID     string
	Difficulty string
	Config     core.RuntimeConfig
	Quit       bool
}

// RunMenu shows the menu and returns the selection.
func RunMenu(cfg core.RuntimeConfig, difficulty string) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, difficulty), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return MenuResult{
		GameID:     m.Selected().ID,
		Difficulty: m.Difficulty(),
		Config:     m.Config(),
	}, nil
}
