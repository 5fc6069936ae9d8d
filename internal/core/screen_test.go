package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '●', ColorRed)
	if got := s.GetCell(5, 5); got.Rune != '●' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red ●", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(10, 0, 'A')
	s.Set(0, 10, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(1, 0, "Lv ▲", ColorYellow)

	if got := s.Row(0); got != " Lv ▲     " {
		t.Errorf("Row(0) = %q", got)
	}
	if c := s.GetCell(4, 0); c.Rune != '▲' || c.Color != ColorYellow {
		t.Errorf("multi-byte rune landed at wrong cell: %+v", c)
	}

	s.DrawText(8, 1, "overflow")
	if got := s.Row(1); got != "        ov" {
		t.Errorf("clipped row = %q", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "WIN")
	if got := s.Row(0); got != "   WIN    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	expected := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box should use the given color")
	}
}

func TestScreenResizeAndClear(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(1, 1, 'x')
	s.Resize(5, 2)

	if s.Width() != 5 || s.Height() != 2 {
		t.Fatalf("size after resize = %dx%d", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.String()) != "" {
		t.Error("resize should start from a blank screen")
	}

	s.Set(0, 0, 'y')
	s.Clear()
	if s.Get(0, 0) != ' ' {
		t.Error("Clear should blank the screen")
	}
	if s.Row(7) != "     " {
		t.Errorf("Row out of range = %q", s.Row(7))
	}
}
