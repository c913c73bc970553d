package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/registry"
)

// Model runs one mode in the terminal.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	fixedSeed  bool
	keys       *KeyMapper
	frame      core.InputFrame
	state      core.GameState
	summary    *SummaryModel
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for game. A zero seed picks a time-based seed
// for every run; any other seed is reused on restart.
func NewModel(game registry.Game, cfg core.RuntimeConfig) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		fixedSeed: fixed,
		keys:      NewKeyMapper(0),
		frame:     core.NewInputFrame(),
	}
}

func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.summary != nil {
		return m.updateSummary(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keys.Mouse(msg)
		return m, nil
	case tea.BlurMsg:
		m.keys.Release()
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "tab":
		if rep, ok := m.game.(Reporter); ok && m.state.GameOver {
			s := NewSummaryModel(m.game.Title()+" run summary", rep.Records(), m.config.ScreenW, m.config.ScreenH)
			m.summary = &s
		}
		return m, nil
	}
	if a := m.keys.MapKeyToMenuAction(msg); a == MenuActionBack && (m.state.GameOver || m.state.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}
	if m.keys.Press(msg, time.Now()) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, tickCmd(m.config.TickRate)
	}
	next, cmd := m.summary.Update(msg)
	s, _ := next.(SummaryModel)
	switch {
	case s.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case s.IsGoingBack():
		m.summary = nil
		return m, nil
	}
	m.summary = &s
	return m, cmd
}

// handleResize restarts a running game at the new size. A finished run
// stays on screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if !m.state.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.keys.Fill(&m.frame, now)

	if m.frame.Has(core.ActionRestart) && m.state.GameOver {
		if !m.fixedSeed {
			m.config.Seed = now.UnixNano()
		}
		m.game.Reset(m.config)
		m.state = m.game.State()
		return m, tickCmd(m.config.TickRate)
	}

	m.state = m.game.Step(m.frame).State
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as text under ~/.arena.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arena", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, the game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.summary != nil {
		return m.summary.View()
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last game state.
func (m Model) State() core.GameState { return m.state }

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// ProgramOptions are the Bubble Tea options every game program uses.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
}

// Run plays game until the user quits or goes back. It returns the final
// state and whether the user asked for the menu.
func Run(game registry.Game, cfg core.RuntimeConfig) (core.GameState, bool, error) {
	p := tea.NewProgram(NewModel(game, cfg), ProgramOptions()...)
	final, err := p.Run()
	if err != nil {
		return core.GameState{}, false, err
	}
	m, ok := final.(Model)
	if !ok {
		return core.GameState{}, false, nil
	}
	return m.State(), m.BackToMenu(), nil
}
