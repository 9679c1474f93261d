package schedule

import (
	"fmt"

	"github.com/ja-he/salonplan/internal/model"
)

// UnassignedPartitionID is the ID of the sentinel partition collecting
// appointments without a staff (or room) reference.
const UnassignedPartitionID = "_unassigned"

// UnassignedPartitionLabel is the display label of the sentinel partition.
const UnassignedPartitionLabel = "Unassigned"

// Partition is a single column of the grid.
type Partition struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`

	// Date is set only for partitions of the date modes.
	Date *model.Date `yaml:"-"`
}

// IsUnassigned returns whether this is the sentinel partition.
func (p Partition) IsUnassigned() bool {
	return p.ID == UnassignedPartitionID
}

// Resolve produces the ordered list of partitions to render as columns.
//
// In the resource modes (staff, room) the directory of that resource is
// consulted in order and only entries referenced by at least one appointment
// are kept; the unassigned sentinel is appended if any appointment lacks the
// reference. In the date modes every date of the range becomes a partition,
// regardless of appointments.
func Resolve(
	mode Mode,
	dateRange model.DateRange,
	staff []model.Resource,
	rooms []model.Resource,
	appointments []model.Appointment,
) ([]Partition, error) {
	if err := mode.validate(); err != nil {
		return nil, err
	}

	switch mode {
	case ModeStaff:
		return resolveResources(staff, appointments, func(a *model.Appointment) string { return a.StaffID }), nil
	case ModeRoom:
		return resolveResources(rooms, appointments, func(a *model.Appointment) string { return a.RoomID }), nil
	case ModeSingleDay, ModeWeek:
		return resolveDates(dateRange)
	default:
		panic(fmt.Sprintf("unhandled mode %s", mode.String()))
	}
}

func resolveResources(
	directory []model.Resource,
	appointments []model.Appointment,
	reference func(*model.Appointment) string,
) []Partition {
	referenced := make(map[string]struct{})
	anyUnassigned := false
	for i := range appointments {
		ref := reference(&appointments[i])
		if ref == "" {
			anyUnassigned = true
		} else {
			referenced[ref] = struct{}{}
		}
	}

	result := make([]Partition, 0, len(referenced)+1)
	seen := make(map[string]struct{})
	for _, entry := range directory {
		if _, ok := referenced[entry.ID]; !ok {
			continue
		}
		// a directory listing the same id twice still yields one column
		if _, dup := seen[entry.ID]; dup {
			continue
		}
		seen[entry.ID] = struct{}{}

		label := entry.Name
		if label == "" {
			label = entry.ID
		}
		result = append(result, Partition{ID: entry.ID, Label: label})
	}
	if anyUnassigned {
		result = append(result, Partition{ID: UnassignedPartitionID, Label: UnassignedPartitionLabel})
	}
	return result
}

func resolveDates(dateRange model.DateRange) ([]Partition, error) {
	if !dateRange.Valid() {
		return nil, &ConfigurationError{
			Field:  "date-range",
			Reason: fmt.Sprintf("range %s..%s is not a valid inclusive range", dateRange.Start.String(), dateRange.End.String()),
		}
	}

	dates := dateRange.Dates()
	result := make([]Partition, 0, len(dates))
	for i := range dates {
		date := dates[i]
		result = append(result, Partition{
			ID:    date.String(),
			Label: date.ToWeekday().String()[:3] + " " + date.String(),
			Date:  &date,
		})
	}
	return result, nil
}

// RangeFor returns the date range a mode displays around the given date: the
// surrounding monday-to-sunday week for ModeWeek, the single date otherwise.
func RangeFor(mode Mode, date model.Date) model.DateRange {
	switch mode {
	case ModeWeek:
		return model.WeekOf(date)
	case ModeStaff, ModeRoom, ModeSingleDay:
		return model.SingleDay(date)
	default:
		panic(fmt.Sprintf("unhandled mode %s", mode.String()))
	}
}
