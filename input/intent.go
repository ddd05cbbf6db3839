package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Esc, Ctrl+C, closed terminal
	IntentResize     // Terminal resize event
	IntentToggleMute // m

	// Game intents
	IntentPrimary // Space, Up, Enter, left click: start, jump or toggle capture
	IntentPause   // p
	IntentRestart // r
)

func (t IntentType) String() string {
	for name, it := range actionRegistry {
		if it == t && name != "none" {
			return name
		}
	}
	return "none"
}

// Intent is a parsed input event
// X and Y carry the cell position for mouse intents
type Intent struct {
	Type IntentType
	X, Y int
}
