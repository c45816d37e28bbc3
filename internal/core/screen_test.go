package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got, expected := s.String(), "      \n      \n      "; got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}

	empty := NewScreen(-1, 4)
	if empty.Width() != 0 || empty.String() != "\n\n\n" {
		t.Errorf("negative width gave %dx%d %q", empty.Width(), empty.Height(), empty.String())
	}
}

func TestScreenClipping(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"right", 4, 0},
		{"above", 0, -1},
		{"below", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(4, 3)
			s.SetColored(tt.x, tt.y, '#', ColorRed)
			if strings.ContainsRune(s.String(), '#') {
				t.Errorf("Set(%d, %d) drew inside the screen", tt.x, tt.y)
			}
			if c := s.GetCell(tt.x, tt.y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("GetCell(%d, %d) = %+v, expected a blank cell", tt.x, tt.y, c)
			}
		})
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(1, 2, ':', ColorCyan)

	cell := s.GetCell(1, 2)
	if cell.Rune != ':' || cell.Color != ColorCyan {
		t.Errorf("GetCell(1, 2) = %+v, expected {':' ColorCyan}", cell)
	}

	s.Set(1, 2, 'X')
	if cell := s.GetCell(1, 2); cell.Color != ColorDefault || s.Get(1, 2) != 'X' {
		t.Errorf("Set() left %+v, expected an uncoloured X", cell)
	}

	s.Clear()
	if cell := s.GetCell(1, 2); cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("after Clear() GetCell(1, 2) = %+v, expected blank", cell)
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
	}{
		{"inside", 1, "ab", " ab   "},
		{"clipped right", 4, "Score", "    Sc"},
		{"clipped left", -2, "Game", "me    "},
		{"multibyte", 0, "é|é", "é|é   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(6, 1)
			s.DrawText(tt.x, 0, tt.text)
			if got := s.Row(0); got != tt.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawHLine(0, 1, 8, '-')
	if got := s.Row(1); got != "--------" {
		t.Errorf("Row(1) = %q, expected a full rule", got)
	}
	s.DrawHLine(6, 0, 5, '=')
	if got := s.Row(0); got != "      ==" {
		t.Errorf("Row(0) = %q, expected the line clipped at the edge", got)
	}
}

func TestScreenDrawBoxAndRect(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(0, 0, 6, 4), '.')
	s.DrawRect(NewRect(1, 0, 4, 4), ' ')
	s.DrawBox(NewRect(1, 0, 4, 4))

	expected := ".┌──┐.\n.│  │.\n.│  │.\n.└──┘."
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}

	tiny := NewScreen(3, 3)
	tiny.DrawBox(NewRect(0, 0, 1, 3))
	if strings.TrimSpace(tiny.String()) != "" {
		t.Error("DrawBox() drew a box narrower than two cells")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 1, "Rect!")

	if got := s.Row(1); got != "Rect!" {
		t.Errorf("Row(1) = %q, expected %q", got, "Rect!")
	}
	for _, y := range []int{-1, 2} {
		if got := s.Row(y); got != "     " {
			t.Errorf("Row(%d) = %q, expected blanks", y, got)
		}
	}
}
