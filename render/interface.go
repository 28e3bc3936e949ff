package render

import "github.com/gdamore/tcell/v2"

// Layer is one stage of the frame pipeline
type Layer interface {
	Render(ctx *RenderContext, scr tcell.Screen)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
