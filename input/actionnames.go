package input

import "sort"

// actionRegistry maps canonical action names used in keymap files to intents
var actionRegistry = map[string]IntentType{
	// Unbind sentinel
	"none": IntentNone,

	"quit":        IntentQuit,
	"toggle_mute": IntentToggleMute,
	"primary":     IntentPrimary,
	"pause":       IntentPause,
	"restart":     IntentRestart,
}

// ActionEntry resolves a canonical action name to its intent
// Returns IntentNone and false if name is unknown
func ActionEntry(name string) (IntentType, bool) {
	it, ok := actionRegistry[name]
	return it, ok
}

// IsActionName returns true if name is a registered action
func IsActionName(name string) bool {
	_, ok := actionRegistry[name]
	return ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
