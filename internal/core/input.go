package core

// Action represents a semantic input action, abstracted from physical key presses.
// Keyboard, touch and SSH input all map onto these.
type Action int

const (
	ActionNone        Action = iota
	ActionJump               // Space, Up, W - starts, jumps or restarts depending on state
	ActionMute               // M - toggle audio cues
	ActionLeaderboard        // Tab - show or hide the run ledger
	ActionHelp               // ? - expand the key help
	ActionQuit               // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionMute:
		return "Mute"
	case ActionLeaderboard:
		return "Leaderboard"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
