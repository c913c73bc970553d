package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wave-arena/internal/telemetry"
)

// Reporter is implemented by modes that keep per-wave statistics.
type Reporter interface {
	Records() []telemetry.WaveRecord
}

// SummaryKeyMap defines the key bindings of the run summary.
type SummaryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k SummaryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

func (k SummaryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultSummaryKeyMap returns the default bindings.
func DefaultSummaryKeyMap() SummaryKeyMap {
	return SummaryKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Back: key.NewBinding(key.WithKeys("esc", "b", "tab"), key.WithHelp("esc/tab", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// SummaryModel shows one row per wave of a run.
type SummaryModel struct {
	title     string
	records   []telemetry.WaveRecord
	table     table.Model
	help      help.Model
	keys      SummaryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewSummaryModel creates a summary of records.
func NewSummaryModel(title string, records []telemetry.WaveRecord, width, height int) SummaryModel {
	m := SummaryModel{
		title:   title,
		records: records,
		help:    help.New(),
		keys:    DefaultSummaryKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateRows()
	return m
}

func (m *SummaryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Wave", Width: 5},
		{Title: "Enemies", Width: 8},
		{Title: "Kills", Width: 6},
		{Title: "Acc", Width: 5},
		{Title: "Dmg", Width: 6},
		{Title: "Pickups", Width: 8},
		{Title: "Time", Width: 7},
		{Title: "Score", Width: 7},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *SummaryModel) updateRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		wave := fmt.Sprintf("%d", r.Wave)
		if r.Boss {
			wave += "B"
		}
		if !r.Cleared {
			wave += "*"
		}
		rows[i] = table.Row{
			wave,
			fmt.Sprintf("%d", r.Spawned),
			fmt.Sprintf("%d", r.Kills),
			fmt.Sprintf("%.0f%%", 100*r.Accuracy()),
			fmt.Sprintf("%.0f", r.DamageTaken),
			fmt.Sprintf("%d", r.Pickups),
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
			fmt.Sprintf("%d", r.Score),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m SummaryModel) Init() tea.Cmd {
	return nil
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m SummaryModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText(m.title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	var content string
	if len(m.records) == 0 {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2).
			Render("No waves recorded.")
	} else {
		content = m.table.View() + "\n" + m.totalsLine()
	}
	b.WriteString(centerText(boxStyle.Render(content), m.width))

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

func (m SummaryModel) totalsLine() string {
	var kills, shots, hits int
	for _, r := range m.records {
		kills += r.Kills
		shots += r.ShotsFired
		hits += r.Hits
	}
	acc := 0.0
	if shots > 0 {
		acc = 100 * float64(hits) / float64(shots)
	}
	last := m.records[len(m.records)-1]
	return fmt.Sprintf("Total kills %d  accuracy %.0f%%  final score %d", kills, acc, last.Score)
}

// IsGoingBack reports whether the user closed the summary.
func (m SummaryModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the user asked to quit.
func (m SummaryModel) IsQuitting() bool { return m.quitting }

// RunSummary shows records in a standalone program.
func RunSummary(title string, records []telemetry.WaveRecord, width, height int) error {
	p := tea.NewProgram(NewSummaryModel(title, records, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// centerText pads every line of text to center it within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
