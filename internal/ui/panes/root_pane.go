package panes

import (
	"sync"

	"github.com/ja-he/salonplan/internal/ui"
)

// RootPane acts as the root UI pane, wrapping all subpanes and managing the
// render cycle.
//
// Subpanes are drawn in the order they were given, so popups (help, log) go
// last.
type RootPane struct {
	renderer ui.RenderOrchestratorControl

	dimensions func() (x, y, w, h int)

	subpanesMtx sync.Mutex
	subpanes    []ui.Pane
}

// Dimensions gives the dimensions (x-axis offset, y-axis offset, width,
// height) for this pane.
func (p *RootPane) Dimensions() (x, y, w, h int) {
	return p.dimensions()
}

// IsVisible returns true; the root pane is always visible.
func (p *RootPane) IsVisible() bool { return true }

// Draw clears the screen, draws all visible subpanes and shows the result.
func (p *RootPane) Draw() {
	p.subpanesMtx.Lock()
	defer p.subpanesMtx.Unlock()

	p.renderer.Clear()
	for _, pane := range p.subpanes {
		if pane.IsVisible() {
			pane.Draw()
		}
	}
	p.renderer.Show()
}

// NewRootPane constructs and returns a new RootPane.
func NewRootPane(
	renderer ui.RenderOrchestratorControl,
	dimensions func() (x, y, w, h int),
	subpanes ...ui.Pane,
) *RootPane {
	return &RootPane{
		renderer:   renderer,
		dimensions: dimensions,
		subpanes:   subpanes,
	}
}
