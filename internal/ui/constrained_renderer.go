package ui

import "github.com/ja-he/salonplan/internal/styling"

// CR is a constrained renderer for a TUI.
// It only allows rendering using the underlying screen handler within the set
// dimension constraint.
//
// Non-conforming rendering requests are corrected to be within the bounds.
type CR struct {
	renderer Renderer

	constraint func() (x, y, w, h int)
}

// NewConstrainedRenderer returns a renderer drawing through the given one,
// but only within the (possibly changing) constraint.
func NewConstrainedRenderer(
	renderer Renderer,
	constraint func() (x, y, w, h int),
) *CR {
	return &CR{
		renderer:   renderer,
		constraint: constraint,
	}
}

// Dimensions returns the current constraint.
func (r *CR) Dimensions() (x, y, w, h int) {
	return r.constraint()
}

// DrawText draws the given text, within the given dimensions, constrained by
// the set constraint, in the given style.
func (r *CR) DrawText(x, y, w, h int, styling styling.DrawStyling, text string) {
	cx, cy, cw, ch := r.constrain(x, y, w, h)
	if cw <= 0 || ch <= 0 {
		return
	}

	// text starting left of the constraint loses its leading runes rather than
	// being shifted right
	if skip := cx - x; skip > 0 && h == 1 {
		runes := []rune(text)
		if skip >= len(runes) {
			return
		}
		text = string(runes[skip:])
	}

	r.renderer.DrawText(cx, cy, cw, ch, styling, text)
}

// DrawBox draws a box of the given dimensions, constrained by the set
// constraint, in the given style.
func (r *CR) DrawBox(x, y, w, h int, sty styling.DrawStyling) {
	cx, cy, cw, ch := r.constrain(x, y, w, h)
	if cw <= 0 || ch <= 0 {
		return
	}
	r.renderer.DrawBox(cx, cy, cw, ch, sty)
}

func (r *CR) constrain(rawX, rawY, rawW, rawH int) (constrainedX, constrainedY, constrainedW, constrainedH int) {
	xConstraint, yConstraint, wConstraint, hConstraint := r.constraint()

	constrainedX, constrainedW = constrainSpan(rawX, rawW, xConstraint, wConstraint)
	constrainedY, constrainedH = constrainSpan(rawY, rawH, yConstraint, hConstraint)

	return constrainedX, constrainedY, constrainedW, constrainedH
}

// constrainSpan moves the start of [start, start+length) into
// [lower, lower+extent) and shortens it to end within the same.
func constrainSpan(start, length, lower, extent int) (int, int) {
	if start < lower {
		length -= lower - start
		start = lower
	}
	if maxLength := extent - (start - lower); length > maxLength {
		length = maxLength
	}
	if length < 0 {
		length = 0
	}
	return start, length
}
