package styling

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/salonplan/internal/config"
	"github.com/ja-he/salonplan/internal/model"
)

// StatusStyling resolves the styling an appointment is drawn with.
type StatusStyling struct {
	byStatus map[model.Status]DrawStyling
	fallback DrawStyling
}

// NewStatusStylingFromConfig builds the status styling from the configured
// status colors. Entries with unknown statuses or malformed colors are
// skipped (and logged); such appointments get the fallback styling.
func NewStatusStylingFromConfig(statuses []config.StatusColor, fallback DrawStyling) *StatusStyling {
	ss := &StatusStyling{
		byStatus: make(map[model.Status]DrawStyling),
		fallback: fallback,
	}
	for _, sc := range statuses {
		status, err := model.ParseStatus(sc.Status)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring styling for unknown status")
			continue
		}
		style, err := StyleFromBackgroundHex(sc.Color)
		if err != nil {
			log.Warn().Err(err).Str("status", string(status)).Msg("ignoring malformed status color")
			continue
		}
		var result DrawStyling = style
		if sc.Faded {
			result = result.DefaultDimmed().Struckthrough()
		}
		ss.byStatus[status] = result
	}
	return ss
}

// GetStyle returns the styling for the given appointment.
//
// An appointment's own color takes precedence over its status color; a
// cancelled appointment is struck through either way.
func (ss *StatusStyling) GetStyle(a *model.Appointment) DrawStyling {
	status, statusErr := model.ParseStatus(string(a.Status))

	if a.Color != "" {
		own, err := StyleFromBackgroundHex(a.Color)
		if err == nil {
			if statusErr == nil && status == model.StatusCancelled {
				return own.DefaultDimmed().Struckthrough()
			}
			return own
		}
		log.Debug().Err(err).Str("appointment", a.ID).Msg("appointment has malformed color, using status color")
	}

	if statusErr == nil {
		if style, ok := ss.byStatus[status]; ok {
			return style
		}
	}
	return ss.fallback
}
