// Package ui holds the pane abstractions the terminal grid is composed of.
package ui

import (
	"github.com/ja-he/salonplan/internal/styling"
)

// Pane is a rectangle of the screen that draws itself.
//
// The root pane draws its subpanes in order, so overlays like the help are
// listed last.
type Pane interface {
	Draw()
	IsVisible() bool
	Dimensions() (x, y, w, h int)
}

// Renderer draws boxes and text in screen coordinates.
type Renderer interface {
	// DrawBox paints the background of the box.
	DrawBox(x, y, w, h int, style styling.DrawStyling)
	// DrawText writes the text into the box, wrapping at its right edge.
	DrawText(x, y, w, h int, style styling.DrawStyling, text string)
}

// ConstrainedRenderer is a Renderer clipping all draws to its Dimensions.
// Boxes and text reaching outside are cut to the part inside.
type ConstrainedRenderer interface {
	Renderer
	Dimensions() (x, y, w, h int)
}

// RenderOrchestratorControl frames a render cycle. Only the root pane uses it.
type RenderOrchestratorControl interface {
	Clear()
	Show()
}

// MouseCursorPos is the last known cell of the mouse cursor, 0,0 being the
// top left.
type MouseCursorPos struct {
	X, Y int
}
