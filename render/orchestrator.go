package render

import "github.com/gdamore/tcell/v2"

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator runs registered layers in priority order onto a tcell screen
type Orchestrator struct {
	screen   tcell.Screen
	layers   []layerEntry
	regCount int
}

// NewOrchestrator creates an orchestrator drawing to screen
func NewOrchestrator(screen tcell.Screen) *Orchestrator {
	return &Orchestrator{
		screen: screen,
		layers: make([]layerEntry, 0, 8),
	}
}

// Screen returns the target screen
func (o *Orchestrator) Screen() tcell.Screen {
	return o.screen
}

// Register adds a layer at the specified priority, keeping sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority Priority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// RenderFrame clears, renders all visible layers and shows the screen
func (o *Orchestrator) RenderFrame(ctx Context) {
	o.screen.Clear()
	for _, entry := range o.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Render(ctx, o.screen)
	}
	o.screen.Show()
}
