package panes

import (
	"strings"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/schedule"
	"github.com/ja-he/salonplan/internal/styling"
	"github.com/ja-he/salonplan/internal/ui"
)

// TimelinePane shows the time axis next to the grid, aligned with its rows.
// If provided with sun times, it will display those in dark and light on the
// timeline. While the grid has a current-time indicator, the current time is
// highlighted at the indicator's row.
type TimelinePane struct {
	ui.LeafPane

	grid        func() *schedule.Grid
	suntimes    func() *model.SunTimes
	currentTime func() model.Timestamp
}

// Draw draws this pane.
func (p *TimelinePane) Draw() {
	x, y, w, h := p.Dimensions()

	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)
	p.Renderer.DrawBox(x, y, w, HeaderHeight, p.Stylesheet.Header)

	g := p.grid()
	if g == nil {
		return
	}
	var suntimes *model.SunTimes
	if p.suntimes != nil {
		suntimes = p.suntimes()
	}

	timestampLength := 5
	lpadWidth := w - timestampLength - 1
	if lpadWidth < 0 {
		lpadWidth = 0
	}
	timestampLPad := strings.Repeat(" ", lpadWidth)
	timestampRPad := " "
	emptyTimestamp := strings.Repeat(" ", timestampLength)

	lastLabeledHour := -1
	for row := 0; row < h-HeaderHeight; row++ {
		minute := g.Window.MinuteAt(float64(row))
		if minute > g.Window.EndMinute() {
			break
		}
		timestamp := model.TimestampFromMinutes(minute)

		timestampString := emptyTimestamp
		if timestamp.Hour != lastLabeledHour {
			timestampString = model.Timestamp{Hour: timestamp.Hour}.ToString()
			lastLabeledHour = timestamp.Hour
		}

		var style styling.DrawStyling
		if suntimes != nil && suntimes.IsDark(timestamp) {
			style = p.Stylesheet.TimelineNight
		} else {
			style = p.Stylesheet.TimelineDay
		}

		p.Renderer.DrawText(x, y+HeaderHeight+row, w, 1, style, timestampLPad+timestampString+timestampRPad)
	}

	if g.HasIndicator && p.currentTime != nil {
		timeText := timestampLPad + p.currentTime().ToString() + timestampRPad
		p.Renderer.DrawText(x, y+HeaderHeight+int(g.Indicator), w, 1, p.Stylesheet.TimelineNow, timeText)
	}
}

// NewTimelinePane constructs and returns a new TimelinePane.
func NewTimelinePane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	grid func() *schedule.Grid,
	suntimes func() *model.SunTimes,
	currentTime func() model.Timestamp,
) *TimelinePane {
	return &TimelinePane{
		LeafPane: ui.LeafPane{
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		grid:        grid,
		suntimes:    suntimes,
		currentTime: currentTime,
	}
}
