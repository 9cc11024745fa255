package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// styleKey is the part of a cell that decides its style.
type styleKey struct {
	fg, bg      core.Color
	bold, faint bool
}

// Painter converts screen buffers to styled strings. It caches one
// lipgloss style per distinct cell style. Not safe for concurrent use;
// each session owns one.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[styleKey]lipgloss.Style
}

// NewPainter creates a painter for the given renderer. A nil renderer uses
// the process default, which is right for a local terminal; SSH sessions
// pass a renderer bound to the client's terminal.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[styleKey]lipgloss.Style),
	}
}

// Style returns the lipgloss style for a cell.
func (p *Painter) Style(c core.Cell) lipgloss.Style {
	k := styleKey{fg: c.Fg, bg: c.Bg, bold: c.Bold, faint: c.Faint}
	if s, ok := p.styles[k]; ok {
		return s
	}

	s := p.renderer.NewStyle()
	if c.Fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(c.Fg))
	}
	if c.Bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(c.Bg))
	}
	if c.Bold {
		s = s.Bold(true)
	}
	if c.Faint {
		s = s.Faint(true)
	}
	p.styles[k] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !sameStyle(cell, start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.Style(start).Render(run.String()))
		}
	}
	return sb.String()
}

func sameStyle(a, b core.Cell) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Bold == b.Bold && a.Faint == b.Faint
}
