package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/telemetry"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(0)
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runeKey('w'), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey('d'), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{runeKey('p'), core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyF3}, core.ActionDebug, false},
		{runeKey('q'), core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}
	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%s) = (%v, %v), expected (%v, %v)", tc.msg, action, quit, tc.action, tc.quit)
		}
	}
}

func TestHeldActionsExpire(t *testing.T) {
	km := NewKeyMapper(100 * time.Millisecond)
	frame := core.NewInputFrame()
	t0 := time.Unix(0, 0)

	km.Press(runeKey('d'), t0)
	tests := []struct {
		at   time.Duration
		held bool
	}{
		{50 * time.Millisecond, true},
		{90 * time.Millisecond, true},
		{200 * time.Millisecond, false},
	}
	for _, tc := range tests {
		km.Fill(&frame, t0.Add(tc.at))
		if got := frame.Has(core.ActionRight); got != tc.held {
			t.Errorf("at %v right held = %v, expected %v", tc.at, got, tc.held)
		}
	}
}

func TestOneShotActionsFireOnce(t *testing.T) {
	km := NewKeyMapper(0)
	frame := core.NewInputFrame()
	now := time.Now()

	km.Press(runeKey('p'), now)
	km.Fill(&frame, now)
	if !frame.Has(core.ActionPause) {
		t.Fatal("pause should be set on the first frame")
	}

	km.Fill(&frame, now)
	if frame.Has(core.ActionPause) {
		t.Error("pause should not repeat on the next frame")
	}
}

func TestMouseAimAndFire(t *testing.T) {
	km := NewKeyMapper(0)
	frame := core.NewInputFrame()
	now := time.Now()

	km.Mouse(tea.MouseMsg{X: 12, Y: 7, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	km.Fill(&frame, now)
	if !frame.Pointer.Valid || frame.Pointer.X != 12 || frame.Pointer.Y != 7 {
		t.Fatalf("pointer = %+v, expected valid (12, 7)", frame.Pointer)
	}
	if frame.Has(core.ActionFire) {
		t.Error("motion alone should not fire")
	}

	km.Mouse(tea.MouseMsg{X: 12, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	km.Fill(&frame, now)
	if !frame.Has(core.ActionFire) {
		t.Error("left press should fire")
	}

	km.Mouse(tea.MouseMsg{X: 13, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	km.Fill(&frame, now)
	if frame.Has(core.ActionFire) {
		t.Error("release should stop firing")
	}
	if frame.Pointer.X != 13 {
		t.Errorf("pointer X = %d, expected 13", frame.Pointer.X)
	}
}

func TestReleaseDropsHeldKeys(t *testing.T) {
	km := NewKeyMapper(time.Second)
	frame := core.NewInputFrame()
	now := time.Now()

	km.Press(runeKey('w'), now)
	km.Release()
	km.Fill(&frame, now)
	if frame.Has(core.ActionUp) {
		t.Error("Release should drop held movement")
	}
}

func TestMenuDifficultyCycles(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "hard")
	steps := []struct {
		key      tea.KeyType
		expected string
	}{
		{tea.KeyRight, "easy"},
		{tea.KeyLeft, "hard"},
		{tea.KeyLeft, "normal"},
	}

	if m.Difficulty() != "hard" {
		t.Fatalf("Difficulty() = %q, expected hard", m.Difficulty())
	}
	for _, s := range steps {
		next, _ := m.Update(tea.KeyMsg{Type: s.key})
		m = next.(MenuModel)
		if m.Difficulty() != s.expected {
			t.Errorf("after %v Difficulty() = %q, expected %q", s.key, m.Difficulty(), s.expected)
		}
	}

	if d := NewMenuModel(core.DefaultConfig(), "").Difficulty(); d != "normal" {
		t.Errorf("default Difficulty() = %q, expected normal", d)
	}
}

func TestSummaryView(t *testing.T) {
	recs := []telemetry.WaveRecord{
		{Wave: 1, Spawned: 4, Kills: 4, ShotsFired: 8, Hits: 4, DurationMs: 12000, Score: 45, Cleared: true},
		{Wave: 2, Spawned: 7, Kills: 3, ShotsFired: 2, Hits: 2, DurationMs: 5000, Score: 75},
	}
	m := NewSummaryModel("Wave Arena run summary", recs, 100, 30)
	view := m.View()
	for _, want := range []string{"Wave Arena run summary", "Total kills 7", "final score 75", "2*"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view is missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(SummaryModel).IsGoingBack() {
		t.Error("esc should go back")
	}

	empty := NewSummaryModel("x", nil, 80, 24)
	if !strings.Contains(empty.View(), "No waves recorded.") {
		t.Error("empty summary should say so")
	}
}

func TestRenderScreenKeepsLayout(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColor(0, 0, "Wave 3", core.ColorBrightCyan)
	s.SetColor(5, 1, '@', core.ColorBrightCyan)
	s.SetColor(7, 1, 'g', core.ColorRed)
	s.SetColor(8, 1, 'T', core.ColorDarkGreen)
	s.SetColor(0, 2, '?', core.Color(200))

	rows := strings.Split(RenderScreen(s), "\n")
	if len(rows) != 3 {
		t.Fatalf("rendered %d rows, expected 3", len(rows))
	}
	for y, row := range rows {
		if w := lipgloss.Width(row); w != 12 {
			t.Errorf("row %d width = %d, expected 12", y, w)
		}
	}
	for _, glyph := range []string{"Wave 3", "@", "g", "T", "?"} {
		if !strings.Contains(RenderScreen(s), glyph) {
			t.Errorf("output is missing %q", glyph)
		}
	}
}

func TestBellRingsSelectedCuesWithGap(t *testing.T) {
	var out strings.Builder
	b := NewBell(&out, time.Second, "player_damaged")
	now := time.Unix(100, 0)
	b.now = func() time.Time { return now }

	b.PlaySound("enemy_died")
	if out.Len() != 0 {
		t.Errorf("unselected cue rang: %q", out.String())
	}

	b.PlaySound("player_damaged")
	b.PlaySound("player_damaged")
	if out.String() != "\a" {
		t.Errorf("output = %q, expected one bell inside the gap", out.String())
	}

	now = now.Add(2 * time.Second)
	b.PlaySound("player_damaged")
	if out.String() != "\a\a" {
		t.Errorf("output = %q, expected a second bell after the gap", out.String())
	}
}
