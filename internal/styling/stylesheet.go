package styling

import (
	"github.com/ja-he/salonplan/internal/config"
)

// Stylesheet holds the styles of everything drawn except the appointments
// themselves, which are styled by status (see StatusStyling).
type Stylesheet struct {
	Normal           DrawStyling
	NormalEmphasized DrawStyling

	TimelineDay   DrawStyling
	TimelineNight DrawStyling
	TimelineNow   DrawStyling

	Header           DrawStyling
	HeaderUnassigned DrawStyling
	Placeholder      DrawStyling

	Status DrawStyling

	LogEntryTypeError DrawStyling
	LogEntryTypeWarn  DrawStyling

	Help DrawStyling

	AppointmentFallback DrawStyling
}

// NewStylesheetFromConfig converts the configured stylesheet.
// Malformed colors fall back as StyleFromConfig describes.
func NewStylesheetFromConfig(c config.Stylesheet) *Stylesheet {
	return &Stylesheet{
		Normal:              StyleFromConfig(c.Normal),
		NormalEmphasized:    StyleFromConfig(c.NormalEmphasized),
		TimelineDay:         StyleFromConfig(c.TimelineDay),
		TimelineNight:       StyleFromConfig(c.TimelineNight),
		TimelineNow:         StyleFromConfig(c.TimelineNow),
		Header:              StyleFromConfig(c.Header),
		HeaderUnassigned:    StyleFromConfig(c.HeaderUnassigned),
		Placeholder:         StyleFromConfig(c.Placeholder),
		Status:              StyleFromConfig(c.Status),
		LogEntryTypeError:   StyleFromConfig(c.LogEntryTypeError),
		LogEntryTypeWarn:    StyleFromConfig(c.LogEntryTypeWarn),
		Help:                StyleFromConfig(c.Help),
		AppointmentFallback: StyleFromConfig(c.AppointmentFallback),
	}
}
