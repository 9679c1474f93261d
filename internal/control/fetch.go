package control

import (
	"context"
	"fmt"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/storage"
)

// Fetch reads everything a grid over the given range needs from the provider.
// Any failure is reported in the result's Err.
func Fetch(ctx context.Context, p storage.DataProvider, dateRange model.DateRange) FetchResult {
	result := FetchResult{Range: dateRange}

	appointments, err := p.GetAppointments(ctx, dateRange)
	if err != nil {
		result.Err = fmt.Errorf("could not get appointments for %s (%w)", dateRange.String(), err)
		return result
	}
	staff, err := p.GetStaff(ctx)
	if err != nil {
		result.Err = fmt.Errorf("could not get staff directory (%w)", err)
		return result
	}
	rooms, err := p.GetRooms(ctx)
	if err != nil {
		result.Err = fmt.Errorf("could not get room directory (%w)", err)
		return result
	}

	result.Appointments = appointments
	result.Staff = staff
	result.Rooms = rooms
	return result
}
