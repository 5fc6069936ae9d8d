// Package tui runs games in the terminal with Bubble Tea: the fixed tick
// loop, key mapping, the mode picker, the scoreboard and the SSH front end.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick of the game model with the same id.
// Ticks still in flight when a session switches games are dropped.
type TickMsg struct {
	id int64
	At time.Time
}

var modelIDs atomic.Int64

// tickCmd schedules the next tick for model id at tickRate ticks per second.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{id: id, At: t}
	})
}
