// Package util holds small helpers for drawing text into fixed-size cells.
package util

// Rect is an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y, W, H int
}

// Contains returns whether the position lies within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return (x >= r.X) && (x < r.X+r.W) &&
		(y >= r.Y) && (y < r.Y+r.H)
}

// TruncateAt shortens s to at most length runes, marking the cut with an
// ellipsis where there is room for one.
func TruncateAt(s string, length int) string {
	if length <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	if length <= 3 {
		return string(r[:length])
	}
	return string(append(r[:length-3], []rune("...")...))
}

// PadCenter centers s within width runes, truncating if it does not fit.
func PadCenter(s string, width int) string {
	r := []rune(TruncateAt(s, width))
	left := (width - len(r)) / 2
	right := width - len(r) - left
	out := make([]rune, 0, width)
	for i := 0; i < left; i++ {
		out = append(out, ' ')
	}
	out = append(out, r...)
	for i := 0; i < right; i++ {
		out = append(out, ' ')
	}
	return string(out)
}
