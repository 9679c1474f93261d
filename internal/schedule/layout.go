package schedule

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/salonplan/internal/model"
)

// PositionedAppointment is an appointment annotated with the rectangle it
// occupies in the grid.
type PositionedAppointment struct {
	Appointment model.Appointment `yaml:"appointment"`

	// Column is the index into the partitions the layout was computed for.
	Column int `yaml:"column"`
	// Offset is the distance from the top of the window, in display units.
	Offset float64 `yaml:"offset"`
	// Height is the extent of the appointment, in display units.
	Height float64 `yaml:"height"`

	// StartMinute and EndMinute are the visible minutes of the day the
	// appointment covers, i.e. its times clipped to the window.
	StartMinute int `yaml:"start-minute"`
	EndMinute   int `yaml:"end-minute"`

	// Lane and Lanes subdivide the column when lanes were packed (see
	// PackLanes); otherwise they are 0 and 1.
	Lane  int `yaml:"lane"`
	Lanes int `yaml:"lanes"`
}

// Overlaps returns whether the two positioned appointments share a column and
// intersect in time.
func (p *PositionedAppointment) Overlaps(other *PositionedAppointment) bool {
	return p.Column == other.Column &&
		p.StartMinute < other.EndMinute &&
		other.StartMinute < p.EndMinute
}

// Layout maps each appointment to its column and vertical extent.
//
// Appointments which cannot be placed are omitted: those matching no
// partition, those with malformed date or times (or an end not after the
// start), and those lying entirely outside the window. Appointments partially
// outside the window are clipped to it, so offsets and heights are never
// negative. Overlapping appointments in a column are positioned independently
// and will overlap; see PackLanes.
//
// The result is ordered by column, then start, and otherwise keeps the input
// order.
func Layout(
	appointments []model.Appointment,
	partitions []Partition,
	mode Mode,
	window TimeWindow,
) ([]PositionedAppointment, error) {
	if err := mode.validate(); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	columnByID := make(map[string]int, len(partitions))
	for i, p := range partitions {
		if _, dup := columnByID[p.ID]; !dup {
			columnByID[p.ID] = i
		}
	}

	windowStart, windowEnd := window.StartMinute(), window.EndMinute()

	result := make([]PositionedAppointment, 0, len(appointments))
	for i := range appointments {
		a := &appointments[i]

		key, err := columnKey(a, mode)
		if err != nil {
			log.Debug().Err(err).Str("appointment", a.ID).Msg("omitting appointment without usable column key")
			continue
		}
		column, ok := columnByID[key]
		if !ok {
			continue
		}

		start, end, err := a.Times()
		if err != nil {
			log.Debug().Err(err).Str("appointment", a.ID).Msg("omitting appointment with unusable times")
			continue
		}

		startMinute, endMinute := start.Minutes(), end.Minutes()
		if endMinute <= windowStart || startMinute >= windowEnd {
			continue
		}
		if startMinute < windowStart {
			startMinute = windowStart
		}
		if endMinute > windowEnd {
			endMinute = windowEnd
		}

		result = append(result, PositionedAppointment{
			Appointment: *a,
			Column:      column,
			Offset:      window.unitsForMinutes(startMinute - windowStart),
			Height:      window.unitsForMinutes(endMinute - startMinute),
			StartMinute: startMinute,
			EndMinute:   endMinute,
			Lane:        0,
			Lanes:       1,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Column != result[j].Column {
			return result[i].Column < result[j].Column
		}
		return result[i].StartMinute < result[j].StartMinute
	})

	return result, nil
}

// columnKey returns the partition ID the appointment belongs to under the
// given mode.
func columnKey(a *model.Appointment, mode Mode) (string, error) {
	switch mode {
	case ModeStaff:
		if a.StaffID == "" {
			return UnassignedPartitionID, nil
		}
		return a.StaffID, nil
	case ModeRoom:
		if a.RoomID == "" {
			return UnassignedPartitionID, nil
		}
		return a.RoomID, nil
	case ModeSingleDay, ModeWeek:
		date, err := a.ParsedDate()
		if err != nil {
			return "", err
		}
		return date.String(), nil
	default:
		panic(fmt.Sprintf("unhandled mode %s", mode.String()))
	}
}

// ByColumn groups positioned appointments by column index, for n columns.
// Appointments with a column outside [0, n) are dropped.
func ByColumn(positioned []PositionedAppointment, n int) [][]PositionedAppointment {
	result := make([][]PositionedAppointment, n)
	for _, p := range positioned {
		if p.Column < 0 || p.Column >= n {
			continue
		}
		result[p.Column] = append(result[p.Column], p)
	}
	return result
}
