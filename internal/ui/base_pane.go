package ui

// BasePane carries the visibility condition shared by all panes.
// A nil condition means always visible.
type BasePane struct {
	Visible func() bool
}

// IsVisible evaluates the pane's visibility condition.
func (p *BasePane) IsVisible() bool { return p.Visible == nil || p.Visible() }
