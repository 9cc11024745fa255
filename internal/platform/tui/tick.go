// Package tui runs the game in a terminal with Bubble Tea, locally or over
// SSH. It owns the frame loop, input mapping and the menu screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the game screen to simulate and redraw one frame.
// Gen identifies the tick chain; ticks from an abandoned chain are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickCmd returns a command that sends one tick after 1/tickRate seconds.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
