package ui

import (
	"github.com/ja-he/salonplan/internal/styling"
)

// LeafPane is embedded by the panes that draw, as opposed to the root pane
// which only orders them. Renderer is clipped to Dims.
type LeafPane struct {
	BasePane
	Renderer   ConstrainedRenderer
	Dims       func() (x, y, w, h int)
	Stylesheet *styling.Stylesheet
}

// Dimensions returns the pane's current rectangle, which follows the
// terminal size.
func (p *LeafPane) Dimensions() (x, y, w, h int) {
	return p.Dims()
}
