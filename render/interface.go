package render

import "github.com/gdamore/tcell/v2"

// Layer draws one slice of a frame
type Layer interface {
	Render(ctx Context, s tcell.Screen)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

// LayerFunc adapts a function to Layer
type LayerFunc func(ctx Context, s tcell.Screen)

func (f LayerFunc) Render(ctx Context, s tcell.Screen) { f(ctx, s) }
