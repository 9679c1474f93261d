package panes

import (
	"math"
	"strings"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/schedule"
	"github.com/ja-he/salonplan/internal/styling"
	"github.com/ja-he/salonplan/internal/ui"
	"github.com/ja-he/salonplan/internal/util"
)

// HeaderHeight is the number of rows above the time-aligned part of the grid,
// holding the partition headers.
const HeaderHeight = 1

// A GridPane draws a schedule.Grid: one column per partition with a header,
// the appointment blocks, and the current-time line.
// While the grid is loading, or when there is nothing to show, a placeholder
// is drawn instead.
type GridPane struct {
	ui.LeafPane

	grid          func() *schedule.Grid
	statusStyling *styling.StatusStyling

	// hover returns the mouse cursor position and whether the mouse is in
	// use, i.e. whether the appointment under it is highlighted.
	hover func() (ui.MouseCursorPos, bool)
}

// Draw draws this pane.
func (p *GridPane) Draw() {
	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)

	g := p.grid()
	switch {
	case g == nil || g.State == schedule.GridLoading:
		p.drawPlaceholder(x, y, w, h, "loading appointments ...")
		return
	case g.State == schedule.GridEmpty:
		p.drawPlaceholder(x, y, w, h, "no appointments for "+g.Range.String())
		return
	}

	n := len(g.Partitions)
	for i, partition := range g.Partitions {
		cx, cw := columnSpan(i, n, x, w)

		bodyStyle := p.Stylesheet.Normal
		if i%2 == 1 {
			bodyStyle = p.Stylesheet.NormalEmphasized
		}
		p.Renderer.DrawBox(cx, y+HeaderHeight, cw, h-HeaderHeight, bodyStyle)

		headerStyle := p.Stylesheet.Header
		if partition.IsUnassigned() {
			headerStyle = p.Stylesheet.HeaderUnassigned
		}
		p.Renderer.DrawBox(cx, y, cw, HeaderHeight, headerStyle)
		p.Renderer.DrawText(cx+1, y, cw-2, 1, headerStyle, util.TruncateAt(partition.Label, cw-2))
	}

	var hovered *schedule.PositionedAppointment
	if p.hover != nil {
		if pos, ok := p.hover(); ok {
			hovered = p.AppointmentAt(pos.X, pos.Y)
		}
	}

	for i := range g.Positioned {
		positioned := &g.Positioned[i]
		p.drawAppointment(g.Mode, positioned, p.rectFor(g, positioned), positioned == hovered)
	}

	if g.HasIndicator {
		row := y + HeaderHeight + int(g.Indicator)
		p.Renderer.DrawText(x, row, w, 1, p.Stylesheet.TimelineNow, strings.Repeat("─", w))
	}
}

func (p *GridPane) drawPlaceholder(x, y, w, h int, text string) {
	p.Renderer.DrawBox(x, y, w, HeaderHeight, p.Stylesheet.Header)
	p.Renderer.DrawText(x+(w-len([]rune(text)))/2, y+h/2, w, 1, p.Stylesheet.Placeholder.Italicized(), util.TruncateAt(text, w))
}

func (p *GridPane) drawAppointment(mode schedule.Mode, positioned *schedule.PositionedAppointment, rect util.Rect, hovered bool) {
	style := p.statusStyling.GetStyle(&positioned.Appointment)
	if hovered {
		style = style.DefaultEmphasized()
	}
	p.Renderer.DrawBox(rect.X, rect.Y, rect.W, rect.H, style)

	pad := 0
	if rect.W > 2 {
		pad = 1
	}
	textWidth := rect.W - pad
	for i, line := range appointmentLines(&positioned.Appointment, mode) {
		if i >= rect.H {
			break
		}
		lineStyle := style
		if i == 0 {
			lineStyle = style.Bolded()
		} else if i > 1 {
			lineStyle = style.Italicized()
		}
		p.Renderer.DrawText(rect.X+pad, rect.Y+i, textWidth, 1, lineStyle, util.TruncateAt(line, textWidth))
	}
}

// AppointmentAt returns the appointment drawn at the given position, if any.
// Where blocks overlap, the one drawn last (i.e. on top) is returned.
func (p *GridPane) AppointmentAt(x, y int) *schedule.PositionedAppointment {
	g := p.grid()
	if g == nil || g.State != schedule.GridPopulated {
		return nil
	}
	for i := len(g.Positioned) - 1; i >= 0; i-- {
		if p.rectFor(g, &g.Positioned[i]).Contains(x, y) {
			return &g.Positioned[i]
		}
	}
	return nil
}

func (p *GridPane) rectFor(g *schedule.Grid, positioned *schedule.PositionedAppointment) util.Rect {
	x, y, w, _ := p.Dimensions()
	cx, cw := columnSpan(positioned.Column, len(g.Partitions), x, w)
	return appointmentRect(positioned, cx, cw, y+HeaderHeight)
}

// columnSpan returns the x-offset and width of column i of n within the
// horizontal span [x, x+w). The last column takes up any remainder.
func columnSpan(i, n, x, w int) (int, int) {
	if n <= 0 {
		return x, 0
	}
	base := w / n
	cx := x + i*base
	if i == n-1 {
		return cx, w - i*base
	}
	return cx, base
}

// appointmentRect returns the screen rectangle of a positioned appointment in
// a column, leaving a one-cell gutter on the column's right. Offsets are
// rounded to rows and every appointment is at least one row high.
func appointmentRect(positioned *schedule.PositionedAppointment, cx, cw, bodyY int) util.Rect {
	top := bodyY + int(math.Round(positioned.Offset))
	bottom := bodyY + int(math.Round(positioned.Offset+positioned.Height))
	if bottom <= top {
		bottom = top + 1
	}

	usable := cw - 1
	if usable < 1 {
		usable = cw
	}
	lanes := positioned.Lanes
	if lanes < 1 {
		lanes = 1
	}
	laneW := usable / lanes
	if laneW < 1 {
		laneW = 1
	}
	lx := cx + positioned.Lane*laneW
	lw := laneW
	if positioned.Lane == lanes-1 {
		lw = usable - positioned.Lane*laneW
	}
	if lw < 1 {
		lw = 1
	}

	return util.Rect{X: lx, Y: top, W: lw, H: bottom - top}
}

// appointmentLines returns the text lines of an appointment block, most
// important first.
func appointmentLines(a *model.Appointment, mode schedule.Mode) []string {
	lines := []string{a.StartTime + " " + a.Label}
	if a.SecondaryLabel != "" {
		lines = append(lines, a.SecondaryLabel)
	}

	var reference string
	switch mode {
	case schedule.ModeStaff:
		reference = a.RoomID
	case schedule.ModeRoom, schedule.ModeSingleDay, schedule.ModeWeek:
		reference = a.StaffID
	}
	if reference != "" {
		lines = append(lines, reference)
	}

	lines = append(lines, string(a.Status))
	return lines
}

// NewGridPane constructs and returns a new GridPane.
func NewGridPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	grid func() *schedule.Grid,
	statusStyling *styling.StatusStyling,
	hover func() (ui.MouseCursorPos, bool),
) *GridPane {
	return &GridPane{
		LeafPane: ui.LeafPane{
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		grid:          grid,
		statusStyling: statusStyling,
		hover:         hover,
	}
}
