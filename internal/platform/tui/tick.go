// Package tui provides the Bubble Tea integration for the scene preview.
// It handles the terminal UI loop, input mapping, and frame projection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the preview playhead.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the given frame rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
