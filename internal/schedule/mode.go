// Package schedule lays appointments out on a two-dimensional grid: wall-clock
// time along one axis, partitions (staff, rooms, or days) along the other.
//
// Everything in here is pure computation over the given input snapshot; no
// clock is read and no I/O is performed.
package schedule

import (
	"fmt"
	"strings"
)

// Mode is the dimension by which the grid is partitioned into columns.
type Mode int

const (
	_ Mode = iota
	// ModeStaff has one column per staff member with appointments.
	ModeStaff
	// ModeRoom has one column per room with appointments.
	ModeRoom
	// ModeSingleDay has one column per date in the range, typically one.
	ModeSingleDay
	// ModeWeek has one column per date in the range, typically a week.
	ModeWeek
)

// AllModes lists the modes in the order a user would cycle through them.
func AllModes() []Mode {
	return []Mode{ModeStaff, ModeRoom, ModeSingleDay, ModeWeek}
}

// ParseMode parses a mode name as used in configuration and on the command
// line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "staff":
		return ModeStaff, nil
	case "room", "rooms":
		return ModeRoom, nil
	case "day", "single-day", "singleday":
		return ModeSingleDay, nil
	case "week":
		return ModeWeek, nil
	default:
		return 0, &ConfigurationError{Field: "mode", Reason: fmt.Sprintf("unknown mode '%s'", s)}
	}
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeStaff:
		return "staff"
	case ModeRoom:
		return "room"
	case ModeSingleDay:
		return "day"
	case ModeWeek:
		return "week"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Next returns the mode after the receiver, wrapping around.
func (m Mode) Next() Mode {
	modes := AllModes()
	for i := range modes {
		if modes[i] == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// IsResourceMode returns whether the mode partitions by a resource (staff or
// room) rather than by date.
func (m Mode) IsResourceMode() bool {
	return m == ModeStaff || m == ModeRoom
}

func (m Mode) validate() error {
	switch m {
	case ModeStaff, ModeRoom, ModeSingleDay, ModeWeek:
		return nil
	default:
		return &ConfigurationError{Field: "mode", Reason: fmt.Sprintf("invalid mode %d", int(m))}
	}
}
