package schedule

import (
	"fmt"
	"time"

	"github.com/ja-he/salonplan/internal/model"
)

// GridState is the renderable state of a grid.
type GridState int

const (
	// GridLoading means the appointments are not available yet.
	GridLoading GridState = iota
	// GridEmpty means no partitions resolved; there are no columns to draw.
	GridEmpty
	// GridPopulated means there is at least one column.
	GridPopulated
)

func (s GridState) String() string {
	switch s {
	case GridLoading:
		return "loading"
	case GridEmpty:
		return "empty"
	case GridPopulated:
		return "populated"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Request is an input snapshot for Assemble.
type Request struct {
	Mode   Mode
	Range  model.DateRange
	Window TimeWindow

	Staff        []model.Resource
	Rooms        []model.Resource
	Appointments []model.Appointment

	// Loaded is false while the appointments are still being fetched.
	Loaded bool

	// Now is the instant to place the current-time indicator at. The zero
	// time means no indicator.
	Now time.Time

	PackLanes bool
}

// Grid is the fully computed content of a grid, ready to be drawn.
type Grid struct {
	State      GridState
	Mode       Mode
	Range      model.DateRange
	Window     TimeWindow
	Partitions []Partition
	Positioned []PositionedAppointment

	Indicator    float64
	HasIndicator bool
}

// Assemble resolves partitions, lays out the appointments and positions the
// indicator for the request.
//
// A request that is not loaded yields a GridLoading grid without any layout
// having been performed; only the window is validated.
func Assemble(req Request) (*Grid, error) {
	if err := req.Window.Validate(); err != nil {
		return nil, err
	}

	grid := &Grid{
		State:  GridLoading,
		Mode:   req.Mode,
		Range:  req.Range,
		Window: req.Window,
	}
	if !req.Now.IsZero() {
		grid.Indicator, grid.HasIndicator = IndicatorOffset(req.Now, req.Window)
	}

	if !req.Loaded {
		return grid, nil
	}

	partitions, err := Resolve(req.Mode, req.Range, req.Staff, req.Rooms, req.Appointments)
	if err != nil {
		return nil, fmt.Errorf("could not resolve partitions (%w)", err)
	}
	grid.Partitions = partitions
	if len(partitions) == 0 {
		grid.State = GridEmpty
		return grid, nil
	}

	positioned, err := Layout(req.Appointments, partitions, req.Mode, req.Window)
	if err != nil {
		return nil, fmt.Errorf("could not lay out appointments (%w)", err)
	}
	if req.PackLanes {
		positioned = PackLanes(positioned)
	}
	grid.Positioned = positioned
	grid.State = GridPopulated
	return grid, nil
}

// InColumn returns the positioned appointments of column i, in layout order.
func (g *Grid) InColumn(i int) []PositionedAppointment {
	var result []PositionedAppointment
	for _, p := range g.Positioned {
		if p.Column == i {
			result = append(result, p)
		}
	}
	return result
}
