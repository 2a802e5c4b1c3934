package core

// Action represents a semantic preview action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionTogglePause        // Space, P
	ActionStepForward        // Right, L - one frame
	ActionStepBack           // Left, H - one frame
	ActionSeekForward        // PgDown, Shift+Right - one second
	ActionSeekBack           // PgUp, Shift+Left - one second
	ActionRestart            // Home, R - jump to frame 0
	ActionSnapshot           // Ctrl+S
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTogglePause:
		return "TogglePause"
	case ActionStepForward:
		return "StepForward"
	case ActionStepBack:
		return "StepBack"
	case ActionSeekForward:
		return "SeekForward"
	case ActionSeekBack:
		return "SeekBack"
	case ActionRestart:
		return "Restart"
	case ActionSnapshot:
		return "Snapshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// FrameDelta returns how many frames the action moves the playhead at the given fps.
// Actions that do not seek return 0.
func (a Action) FrameDelta(fps int) int {
	switch a {
	case ActionStepForward:
		return 1
	case ActionStepBack:
		return -1
	case ActionSeekForward:
		return fps
	case ActionSeekBack:
		return -fps
	default:
		return 0
	}
}
