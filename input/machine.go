package input

import "github.com/gdamore/tcell/v2"

// Machine parses tcell events into semantic intents
// Mouse clicks fire on the press edge only, so held buttons do not repeat
type Machine struct {
	keyTable    *KeyTable
	lastButtons tcell.ButtonMask
}

// NewMachine creates a machine using kt, nil takes the default table
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// Process parses an event and returns an Intent, nil when the event maps to nothing
// A nil event means the screen was finalized and yields IntentQuit
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case nil:
		return &Intent{Type: IntentQuit}
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	return m.key(ev.Key(), ev.Rune())
}

func (m *Machine) key(k tcell.Key, r rune) *Intent {
	var it IntentType
	if k == tcell.KeyRune {
		it = m.keyTable.Runes[r]
	} else {
		it = m.keyTable.SpecialKeys[k]
	}
	if it == IntentNone {
		return nil
	}
	return &Intent{Type: it}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	return m.click(ev.Buttons(), x, y)
}

func (m *Machine) click(buttons tcell.ButtonMask, x, y int) *Intent {
	pressed := buttons&tcell.Button1 != 0 && m.lastButtons&tcell.Button1 == 0
	m.lastButtons = buttons
	if !pressed {
		return nil
	}
	return &Intent{Type: IntentPrimary, X: x, Y: y}
}
