// Package tui runs blockbuster in a terminal with Bubble Tea: the frame
// loop, key bindings, name entry, the preset menu, the scoreboard and the
// SSH server that serves all of them per connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one frame of the game loop.
type TickMsg time.Time

// frameInterval is the wall time of one frame; non-positive rates mean 60.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
