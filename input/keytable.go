package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
// A binding to IntentNone unbinds the key
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Esc)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyUp:     IntentPrimary,
			tcell.KeyEnter:  IntentPrimary,
		},
		Runes: map[rune]IntentType{
			' ': IntentPrimary,
			'w': IntentPrimary,
			'k': IntentPrimary,
			'p': IntentPause,
			'P': IntentPause,
			'r': IntentRestart,
			'R': IntentRestart,
			'm': IntentToggleMute,
			'M': IntentToggleMute,
			'q': IntentQuit,
			'Q': IntentQuit,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: cloneMap(kt.SpecialKeys),
		Runes:       cloneMap(kt.Runes),
	}
}

func cloneMap[K comparable](m map[K]IntentType) map[K]IntentType {
	if m == nil {
		return nil
	}
	out := make(map[K]IntentType, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
