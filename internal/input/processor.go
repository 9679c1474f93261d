package input

// SimpleInputProcessor can process the input it is configured for and provide
// help information for that configuration. It can also "capture" input to
// ensure its precedence over other processors, e.g. when it has partial input.
type SimpleInputProcessor interface {
	CapturesInput() bool
	ProcessInput(key Key) bool
	GetHelp() Help
}

// Overlay is a processor which, while active, takes all input from a base
// processor, e.g. the help display taking input from the grid bindings.
type Overlay struct {
	base    SimpleInputProcessor
	overlay SimpleInputProcessor
}

// NewOverlay returns an overlay processor with the given base and no active
// overlay.
func NewOverlay(base SimpleInputProcessor) *Overlay {
	return &Overlay{base: base}
}

// Apply makes the given processor take all input until Pop is called.
func (o *Overlay) Apply(p SimpleInputProcessor) { o.overlay = p }

// Pop restores input to the base.
func (o *Overlay) Pop() { o.overlay = nil }

// Active returns whether an overlay is applied.
func (o *Overlay) Active() bool { return o.overlay != nil }

func (o *Overlay) applicable() SimpleInputProcessor {
	if o.overlay != nil {
		return o.overlay
	}
	return o.base
}

// CapturesInput returns true while an overlay is applied, else whether the
// base captures input.
func (o *Overlay) CapturesInput() bool {
	return o.overlay != nil || o.base.CapturesInput()
}

// ProcessInput hands the key to the overlay if one is applied, else to the
// base.
func (o *Overlay) ProcessInput(key Key) bool {
	return o.applicable().ProcessInput(key)
}

// GetHelp returns the help of the base, as the overlay is typically what
// displays it.
func (o *Overlay) GetHelp() Help {
	return o.base.GetHelp()
}
