package model

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCheckedIn Status = "checked-in"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// AllStatuses lists the known statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusCheckedIn, StatusCompleted, StatusCancelled}
}

// ParseStatus parses a status name, tolerating case and a few common
// spellings used by booking sources.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "booked", "confirmed", "tentative":
		return StatusPending, nil
	case "checked-in", "checkedin", "checked_in", "arrived":
		return StatusCheckedIn, nil
	case "completed", "done":
		return StatusCompleted, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown appointment status '%s'", s)
	}
}

// Appointment is a scheduled treatment session.
//
// Date and times are kept in their wire format ("YYYY-MM-DD", "HH:MM") and are
// only parsed when needed, so that malformed records can be skipped rather
// than rejected at load.
type Appointment struct {
	ID        string `yaml:"id"`
	Date      string `yaml:"date"`
	StartTime string `yaml:"start"`
	EndTime   string `yaml:"end"`

	// StaffID and RoomID are empty when unassigned.
	StaffID string `yaml:"staff,omitempty"`
	RoomID  string `yaml:"room,omitempty"`

	Label          string `yaml:"label"`
	SecondaryLabel string `yaml:"customer,omitempty"`
	Status         Status `yaml:"status"`
	Color          string `yaml:"color,omitempty"`
}

// ParsedDate returns the appointment's calendar date.
func (a *Appointment) ParsedDate() (Date, error) {
	return ParseDate(a.Date)
}

// Times returns the parsed start and end time of the appointment.
// It errors if either is malformed or if the end is not after the start.
func (a *Appointment) Times() (start, end Timestamp, err error) {
	start, err = ParseTimestamp(a.StartTime)
	if err != nil {
		return Timestamp{}, Timestamp{}, fmt.Errorf("bad start time (%w)", err)
	}
	end, err = ParseTimestamp(a.EndTime)
	if err != nil {
		return Timestamp{}, Timestamp{}, fmt.Errorf("bad end time (%w)", err)
	}
	if !end.IsAfter(start) {
		return Timestamp{}, Timestamp{}, fmt.Errorf("end time %s is not after start time %s", end.ToString(), start.ToString())
	}
	return start, end, nil
}

// Validate checks the appointment against the model invariants.
func (a *Appointment) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("appointment has no id")
	}
	if _, err := a.ParsedDate(); err != nil {
		return fmt.Errorf("appointment %s: %w", a.ID, err)
	}
	if _, _, err := a.Times(); err != nil {
		return fmt.Errorf("appointment %s: %w", a.ID, err)
	}
	if _, err := ParseStatus(string(a.Status)); err != nil {
		return fmt.Errorf("appointment %s: %w", a.ID, err)
	}
	return nil
}

func (a *Appointment) String() string {
	return a.ID + "|" + a.Date + "|" + a.StartTime + "-" + a.EndTime + "|" + a.Label
}

// Resource is an entry of a staff or room directory.
type Resource struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}
