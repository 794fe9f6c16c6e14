// Package tui provides the Bubble Tea front end for tui2048.
// It handles the terminal UI loop, key bindings, the variant menu, the
// leaderboard screen and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusDuration is how long a status message stays under the board.
const statusDuration = 3 * time.Second

// clearStatusMsg removes the status message with the matching id.
type clearStatusMsg struct {
	id int
}

// clearStatusAfter returns a command that expires status id after d.
func clearStatusAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
