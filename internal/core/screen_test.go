package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorTree)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorTree {
		t.Errorf("GetCell(5, 5) = %+v, expected X/ColorTree", cell)
	}

	// Set keeps the existing color
	s.Set(5, 5, 'Y')
	if s.GetCell(5, 5).Color != ColorTree {
		t.Error("Set should not reset the cell color")
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetColored(0, -1, 'A', ColorTree)

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(2, 0, "felled", ColorHUD)

	if got := s.Row(0); got != "  felled  " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(2, 0).Color != ColorHUD {
		t.Error("DrawText should color the cells")
	}

	// Clipped at the edge
	s.DrawText(8, 1, "abcdef", ColorDefault)
	if got := s.Row(1); got != "        ab" {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "tree", ColorDefault)
	if got := s.Row(0); got != "   tree    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorHUD)

	expected := []string{
		"┌──┐",
		"│  │",
		"└──┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	if got := s.String(); got != "a  \n  b" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(1, 1, 'T', ColorTree)
	s.SetColored(4, 4, 'Z', ColorTree)

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("expected 3x3 after resize, got %dx%d", s.Width(), s.Height())
	}
	if s.GetCell(1, 1) != (ScreenCell{Rune: 'T', Color: ColorTree}) {
		t.Error("content inside the new bounds should survive a resize")
	}

	s.Resize(6, 6)
	if s.Get(4, 4) != ' ' {
		t.Error("content dropped by shrinking should not come back")
	}
	if !strings.HasPrefix(s.Row(1), " T") {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(4, 1)
	if got := s.Row(7); got != "    " {
		t.Errorf("Row(7) = %q, expected blanks", got)
	}
}
