package climb

// Action is a device-independent player intent
type Action uint8

const (
	// ActionPrimary starts a game when idle, otherwise jumps
	ActionPrimary Action = iota
	// ActionPause toggles between playing and paused
	ActionPause
	// ActionRestart starts a fresh game from game over or pause
	ActionRestart
)

func (a Action) String() string {
	switch a {
	case ActionPause:
		return "pause"
	case ActionRestart:
		return "restart"
	default:
		return "primary"
	}
}

// HandleAction applies an action to the game-state machine
// Returns true when the action changed anything
func (w *World) HandleAction(a Action) bool {
	switch a {
	case ActionPrimary:
		switch w.State.Status {
		case StatusMenu, StatusGameOver:
			w.StartGame()
			return true
		case StatusPlaying:
			return w.Jump()
		}

	case ActionPause:
		switch w.State.Status {
		case StatusPlaying:
			w.State.Status = StatusPaused
			return true
		case StatusPaused:
			w.State.Status = StatusPlaying
			return true
		}

	case ActionRestart:
		if w.State.Status == StatusGameOver || w.State.Status == StatusPaused {
			w.StartGame()
			return true
		}
	}
	return false
}
