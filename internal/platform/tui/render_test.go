package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestPainterRenderKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawStyledText(0, 0, "ab", core.Cell{Fg: core.ColorYellow, Bg: core.ColorBlack})
	s.DrawStyledText(2, 0, "cd", core.Cell{Fg: core.ColorBrightWhite, Bold: true})
	s.DrawText(0, 1, "efgh")

	out := NewPainter(nil).Render(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "efgh"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestPainterCachesStyles(t *testing.T) {
	p := NewPainter(nil)
	a := core.Cell{Rune: 'x', Fg: core.ColorRed}
	b := core.Cell{Rune: 'y', Fg: core.ColorRed}
	c := core.Cell{Rune: 'x', Fg: core.ColorRed, Bold: true}

	p.Style(a)
	p.Style(b)
	if len(p.styles) != 1 {
		t.Errorf("cells differing only in rune should share a style, got %d", len(p.styles))
	}
	p.Style(c)
	if len(p.styles) != 2 {
		t.Errorf("bold should be a separate style, got %d", len(p.styles))
	}
}

func TestSameStyle(t *testing.T) {
	base := core.Cell{Rune: 'a', Fg: core.ColorGreen, Bg: core.ColorBlack}

	tests := []struct {
		name  string
		other core.Cell
		want  bool
	}{
		{"different rune", core.Cell{Rune: 'b', Fg: core.ColorGreen, Bg: core.ColorBlack}, true},
		{"different fg", core.Cell{Rune: 'a', Fg: core.ColorRed, Bg: core.ColorBlack}, false},
		{"different bg", core.Cell{Rune: 'a', Fg: core.ColorGreen}, false},
		{"bold", core.Cell{Rune: 'a', Fg: core.ColorGreen, Bg: core.ColorBlack, Bold: true}, false},
		{"faint", core.Cell{Rune: 'a', Fg: core.ColorGreen, Bg: core.ColorBlack, Faint: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameStyle(base, tt.other); got != tt.want {
				t.Errorf("sameStyle() = %v, want %v", got, tt.want)
			}
		})
	}
}
