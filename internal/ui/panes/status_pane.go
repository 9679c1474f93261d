package panes

import (
	"fmt"
	"strings"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/potatolog"
	"github.com/ja-he/salonplan/internal/schedule"
	"github.com/ja-he/salonplan/internal/styling"
	"github.com/ja-he/salonplan/internal/ui"
	"github.com/ja-he/salonplan/internal/util"
)

// StatusPane is a status bar that displays the current date range, weekday
// and mode. Its second line describes the appointment under the mouse cursor
// or, failing that, the most recent warning or error from the log.
type StatusPane struct {
	ui.LeafPane

	grid      func() *schedule.Grid
	packLanes func() bool
	hovered   func() *schedule.PositionedAppointment
	logReader potatolog.LogReader
}

// Draw draws this pane.
func (p *StatusPane) Draw() {
	x, y, w, h := p.Dimensions()

	bgStyle := p.Stylesheet.Status
	bgStyleEmph := bgStyle.DefaultEmphasized()
	dateStyle := bgStyleEmph
	weekdayStyle := dateStyle.LightenedFG(60)

	p.Renderer.DrawBox(x, y, w, h, bgStyle)

	g := p.grid()
	if g == nil {
		return
	}

	// date box
	dateString := g.Range.String()
	dateWidth := len(dateString) + 2
	p.Renderer.DrawBox(x, y, dateWidth, h, bgStyleEmph)
	p.Renderer.DrawText(x+1, y, dateWidth-2, 1, dateStyle, dateString)
	if h > 1 {
		p.Renderer.DrawText(x+1, y+1, dateWidth-2, 1, weekdayStyle, util.TruncateAt(weekdayString(g.Range), dateWidth-2))
	}

	// mode string
	modeStr := "-- " + strings.ToUpper(g.Mode.String()) + " --"
	if p.packLanes != nil && p.packLanes() {
		modeStr = "[lanes] " + modeStr
	}
	p.Renderer.DrawText(x+w-len(modeStr)-2, y, len(modeStr), 1, bgStyleEmph.DarkenedBG(10).Italicized(), modeStr)

	// message line
	msgX := x + dateWidth + 1
	msgW := w - dateWidth - 2
	msgY := y + h - 1
	if h == 1 {
		msgW -= len(modeStr) + 2
	}
	msg, msgStyle := p.message(g, bgStyle)
	p.Renderer.DrawText(msgX, msgY, msgW, 1, msgStyle, util.TruncateAt(msg, msgW))
}

func (p *StatusPane) message(g *schedule.Grid, bgStyle styling.DrawStyling) (string, styling.DrawStyling) {
	if p.hovered != nil {
		if hovered := p.hovered(); hovered != nil {
			return describeAppointment(&hovered.Appointment), bgStyle
		}
	}

	if p.logReader != nil {
		if entry, ok := p.logReader.Last("error", "warn"); ok {
			style := p.Stylesheet.LogEntryTypeWarn
			if entry["level"] == "error" {
				style = p.Stylesheet.LogEntryTypeError
			}
			msg := fmt.Sprint(entry["message"])
			if errStr, ok := entry["error"]; ok {
				msg += ": " + fmt.Sprint(errStr)
			}
			return msg, style
		}
	}

	switch g.State {
	case schedule.GridPopulated:
		return fmt.Sprintf("%d appointments in %d columns", len(g.Positioned), len(g.Partitions)), bgStyle
	default:
		return g.State.String(), bgStyle
	}
}

func weekdayString(r model.DateRange) string {
	if r.Start == r.End {
		return r.Start.ToWeekday().String()
	}
	return r.Start.ToWeekday().String()[:3] + "-" + r.End.ToWeekday().String()[:3]
}

func describeAppointment(a *model.Appointment) string {
	var b strings.Builder
	b.WriteString(a.StartTime + "-" + a.EndTime + " " + a.Label)
	if a.SecondaryLabel != "" {
		b.WriteString(" (" + a.SecondaryLabel + ")")
	}
	if a.StaffID != "" {
		b.WriteString(" staff:" + a.StaffID)
	}
	if a.RoomID != "" {
		b.WriteString(" room:" + a.RoomID)
	}
	b.WriteString(" [" + string(a.Status) + "]")
	return b.String()
}

// NewStatusPane constructs and returns a new StatusPane.
func NewStatusPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	grid func() *schedule.Grid,
	packLanes func() bool,
	hovered func() *schedule.PositionedAppointment,
	logReader potatolog.LogReader,
) *StatusPane {
	return &StatusPane{
		LeafPane: ui.LeafPane{
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		grid:      grid,
		packLanes: packLanes,
		hovered:   hovered,
		logReader: logReader,
	}
}
