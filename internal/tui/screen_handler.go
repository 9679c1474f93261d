// Package tui owns the terminal the grid is drawn on.
package tui

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ja-he/salonplan/internal/styling"
)

// ScreenHandler draws onto a tcell.Screen and presents the result.
//
// A resize makes the terminal contents unreliable; after NeedsSync the next
// Show redraws every cell instead of only the changed ones. NeedsSync may be
// called from the event goroutine while another goroutine renders.
type ScreenHandler struct {
	screen    tcell.Screen
	needsSync atomic.Bool
}

// NewTUIScreenHandler takes over the terminal.
func NewTUIScreenHandler() (*ScreenHandler, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("could not create screen (%w)", err)
	}
	return NewScreenHandlerOn(screen)
}

// NewScreenHandlerOn initializes the given screen, e.g. a simulation screen
// in tests, with mouse reporting enabled.
func NewScreenHandlerOn(screen tcell.Screen) (*ScreenHandler, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize screen (%w)", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.EnableMouse()
	screen.Clear()
	return &ScreenHandler{screen: screen}, nil
}

// GetEventPollable returns the screen's event source.
func (s *ScreenHandler) GetEventPollable() EventPollable {
	return s.screen
}

// Fini restores the terminal. PollEvent returns nil afterwards.
func (s *ScreenHandler) Fini() {
	s.screen.Fini()
}

// NeedsSync marks the next Show as a full redraw.
func (s *ScreenHandler) NeedsSync() {
	s.needsSync.Store(true)
}

// Dimensions returns the size of the terminal, with the origin at 0,0.
func (s *ScreenHandler) Dimensions() (x, y, w, h int) {
	w, h = s.screen.Size()
	return 0, 0, w, h
}

// Clear empties the back buffer; cells not drawn before the next Show are
// blank.
func (s *ScreenHandler) Clear() {
	s.screen.Clear()
}

// Show presents the drawn contents.
func (s *ScreenHandler) Show() {
	if s.needsSync.CompareAndSwap(true, false) {
		s.screen.Sync()
		return
	}
	s.screen.Show()
}

// DrawText draws the text into the box, wrapping at its right edge and at
// newlines and cutting off at its bottom edge. Double-width runes (e.g. CJK
// customer names) take two cells and are moved to the next row rather than
// split.
func (s *ScreenHandler) DrawText(x, y, w, h int, style styling.DrawStyling, text string) {
	if w <= 0 || h <= 0 {
		return
	}
	tcellStyle := style.AsTcell()

	col, row := x, y
	for _, r := range text {
		if r == '\n' {
			col, row = x, row+1
			if row >= y+h {
				return
			}
			continue
		}

		width := runewidth.RuneWidth(r)
		if width == 0 {
			// combining characters and controls do not advance
			continue
		}
		if width > w {
			r, width = '?', 1
		}
		if col+width > x+w {
			col, row = x, row+1
		}
		if row >= y+h {
			return
		}
		s.screen.SetContent(col, row, r, nil, tcellStyle)
		col += width
	}
}

// DrawBox fills the box with blanks in the style, i.e. paints its
// background and erases whatever was drawn there before.
func (s *ScreenHandler) DrawBox(x, y, w, h int, style styling.DrawStyling) {
	tcellStyle := style.AsTcell()
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.screen.SetContent(col, row, ' ', nil, tcellStyle)
		}
	}
}

// EventPollable is the event side of a tcell.Screen.
type EventPollable interface {
	PollEvent() tcell.Event
}

// InitializedScreen can be finalized.
type InitializedScreen interface {
	Fini()
}

// ScreenSynchronizer can be told that the next presentation must redraw
// everything.
type ScreenSynchronizer interface {
	NeedsSync()
}
