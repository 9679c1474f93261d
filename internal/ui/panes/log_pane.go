package panes

import (
	"fmt"
	"sort"

	"github.com/ja-he/salonplan/internal/potatolog"
	"github.com/ja-he/salonplan/internal/styling"
	"github.com/ja-he/salonplan/internal/ui"
	"github.com/ja-he/salonplan/internal/util"
)

// LogPane shows the log, with the most recent log entries at the top.
type LogPane struct {
	ui.LeafPane

	logReader potatolog.LogReader

	titleString func() string
}

// Draw draws the log over top of all previously drawn contents.
func (p *LogPane) Draw() {
	x, y, w, h := p.Dimensions()

	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)
	title := p.titleString()
	p.Renderer.DrawBox(x, y, w, 1, p.Stylesheet.Header)
	p.Renderer.DrawText(x+(w/2-len(title)/2), y, len(title), 1, p.Stylesheet.Header, title)

	const levelLen = len(" error ")
	const extraDataIndentWidth = levelLen + 1
	metaStyle := p.Stylesheet.Normal.LightenedFG(40)

	entries := p.logReader.Get()
	row := 2
	for i := len(entries) - 1; i >= 0 && row < h; i-- {
		entry := entries[i]
		level := fmt.Sprint(entry["level"])

		p.Renderer.DrawText(x, y+row, levelLen, 1, p.levelStyle(level), util.PadCenter(level, levelLen))

		col := x + extraDataIndentWidth
		message := fmt.Sprint(entry["message"])
		p.Renderer.DrawText(col, y+row, w-(col-x), 1, p.Stylesheet.Normal, message)
		col += len([]rune(message)) + 1
		if timeStr, ok := entry["time"]; ok {
			p.Renderer.DrawText(col, y+row, w-(col-x), 1, metaStyle, fmt.Sprint(timeStr))
		}
		row++

		for _, k := range extraKeys(entry) {
			p.Renderer.DrawText(x+extraDataIndentWidth, y+row, w-extraDataIndentWidth, 1, metaStyle, k)
			p.Renderer.DrawText(x+extraDataIndentWidth+len(k)+2, y+row, w-extraDataIndentWidth-len(k)-2, 1, p.Stylesheet.Normal, fmt.Sprint(entry[k]))
			row++
		}
	}
}

func (p *LogPane) levelStyle(level string) styling.DrawStyling {
	switch level {
	case "error":
		return p.Stylesheet.LogEntryTypeError
	case "warn":
		return p.Stylesheet.LogEntryTypeWarn
	default:
		return p.Stylesheet.Normal.DefaultEmphasized()
	}
}

// extraKeys returns the keys of the entry's additional fields, sorted.
func extraKeys(entry potatolog.LogEntry) []string {
	keys := make([]string, 0, len(entry))
	for k := range entry {
		switch k {
		case "caller", "message", "time", "level":
		default:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// NewLogPane constructs and returns a new LogPane.
func NewLogPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	condition func() bool,
	titleString func() string,
	logReader potatolog.LogReader,
) *LogPane {
	return &LogPane{
		LeafPane: ui.LeafPane{
			BasePane: ui.BasePane{
				Visible: condition,
			},
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		titleString: titleString,
		logReader:   logReader,
	}
}
