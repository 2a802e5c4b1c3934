package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fallscene/internal/core"
)

// PreviewKeyMap defines the key bindings for the preview.
type PreviewKeyMap struct {
	Pause       key.Binding
	StepForward key.Binding
	StepBack    key.Binding
	SeekForward key.Binding
	SeekBack    key.Binding
	Restart     key.Binding
	Snapshot    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PreviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.StepForward, k.StepBack, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PreviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.StepForward, k.StepBack},
		{k.SeekForward, k.SeekBack, k.Restart},
		{k.Snapshot, k.Help, k.Quit},
	}
}

// DefaultPreviewKeyMap returns default key bindings.
func DefaultPreviewKeyMap() PreviewKeyMap {
	return PreviewKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pause"),
		),
		StepForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next frame"),
		),
		StepBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev frame"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("pgdown", "shift+right", "L"),
			key.WithHelp("pgdn/L", "+1s"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("pgup", "shift+left", "H"),
			key.WithHelp("pgup/H", "-1s"),
		),
		Restart: key.NewBinding(
			key.WithKeys("home", "r"),
			key.WithHelp("home/r", "restart"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "snapshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a preview action.
func (k PreviewKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Pause):
		return core.ActionTogglePause
	case key.Matches(msg, k.StepForward):
		return core.ActionStepForward
	case key.Matches(msg, k.StepBack):
		return core.ActionStepBack
	case key.Matches(msg, k.SeekForward):
		return core.ActionSeekForward
	case key.Matches(msg, k.SeekBack):
		return core.ActionSeekBack
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Snapshot):
		return core.ActionSnapshot
	}
	return core.ActionNone
}
