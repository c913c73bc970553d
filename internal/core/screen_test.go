package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(8, 3)
	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("dimensions = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if s.Row(y) != "        " {
			t.Errorf("row %d = %q, expected blanks", y, s.Row(y))
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColor(3, 4, 'g', ColorGreen)

	cell := s.GetCell(3, 4)
	if cell.Rune != 'g' || cell.Color != ColorGreen {
		t.Errorf("GetCell(3, 4) = %+v", cell)
	}

	// Out of bounds writes are ignored and reads return a blank cell.
	s.SetColor(-1, 0, 'x', ColorRed)
	s.SetColor(0, 10, 'x', ColorRed)
	if got := s.GetCell(-1, 0); got != blankCell {
		t.Errorf("out of bounds GetCell = %+v, expected blank", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColor(7, 0, "Wave", ColorYellow)

	if s.Row(0) != "       Wav" {
		t.Errorf("row 0 = %q, expected clipped text", s.Row(0))
	}
	if s.GetCell(8, 0).Color != ColorYellow {
		t.Error("DrawTextColor should color every written cell")
	}

	s.DrawTextCentered(1, "Hi")
	if s.Get(4, 1) != 'H' || s.Get(5, 1) != 'i' {
		t.Errorf("centered row = %q", s.Row(1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorGray)

	expected := strings.Join([]string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}, "\n")
	if s.String() != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), expected)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawRect(NewRect(1, 1, 2, 2), '#', ColorBrown)

	if s.Get(1, 1) != '#' || s.Get(2, 2) != '#' {
		t.Error("DrawRect should fill the rectangle")
	}
	if s.Get(3, 3) != ' ' {
		t.Error("DrawRect should not touch cells outside the rectangle")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawTextColor(0, 0, "Hello", ColorCyan)

	s.Resize(4, 2)
	if s.Row(0) != "Hell" {
		t.Errorf("after shrink row 0 = %q", s.Row(0))
	}

	s.Resize(12, 6)
	if !strings.HasPrefix(s.Row(0), "Hell ") {
		t.Errorf("after grow row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorCyan {
		t.Error("resize should keep cell colors")
	}
}
