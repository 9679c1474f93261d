// Package storage defines the record store the grid is fed from.
package storage

import (
	"context"
	"errors"

	"github.com/ja-he/salonplan/internal/model"
)

// DataProvider is the abstracted data provider, which can be implemented over
// various storage systems.
//
// Appointments are returned as stored; in particular malformed ones are not
// filtered out, as deciding what can be drawn is up to the layout.
type DataProvider interface {
	// GetAppointments returns all appointments on the dates of the range.
	GetAppointments(ctx context.Context, dateRange model.DateRange) ([]model.Appointment, error)

	// GetStaff returns the staff directory, in display order.
	GetStaff(ctx context.Context) ([]model.Resource, error)
	// GetRooms returns the room directory, in display order.
	GetRooms(ctx context.Context) ([]model.Resource, error)
}

// AppointmentWriter is implemented by providers that can store new
// appointments.
//
// Appointment IDs are unique across the whole store, not per date; adding an
// ID that is taken on any date fails with ErrDuplicate.
type AppointmentWriter interface {
	AddAppointment(ctx context.Context, a model.Appointment) error
}

// ErrReadOnly is returned when writing is attempted on a provider that does
// not support it.
var ErrReadOnly = errors.New("data provider is read-only")

// ErrDuplicate is returned when adding an appointment whose ID is already
// taken.
var ErrDuplicate = errors.New("appointment already exists")

// AsWriter returns the provider as an AppointmentWriter, or ErrReadOnly.
func AsWriter(p DataProvider) (AppointmentWriter, error) {
	w, ok := p.(AppointmentWriter)
	if !ok {
		return nil, ErrReadOnly
	}
	return w, nil
}
