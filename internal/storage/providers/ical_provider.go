package providers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/salonplan/internal/model"
)

// Non-standard properties an iCalendar event may carry to describe a salon
// appointment. The staff and room properties may name the resource in a CN
// parameter, e.g. 'X-SALON-STAFF;CN=Anna:s1'.
const (
	PropSalonStaff    = "X-SALON-STAFF"
	PropSalonRoom     = "X-SALON-ROOM"
	PropSalonStatus   = "X-SALON-STATUS"
	PropSalonCustomer = "X-SALON-CUSTOMER"
	PropColor         = "COLOR"
)

// ICalDataProvider reads appointments from an iCalendar file, e.g. one
// exported by an online booking system. The file is read anew on every call.
//
// Recurring events are expanded. Staff and room directories are derived from
// the references found in the file, in order of first appearance.
type ICalDataProvider struct {
	Path string
	// Location is the time zone the grid is shown in and floating times are
	// interpreted in.
	Location *time.Location
}

// NewICalDataProvider constructs an iCalendar data provider for the given
// file.
func NewICalDataProvider(path string, loc *time.Location) *ICalDataProvider {
	if loc == nil {
		loc = time.Local
	}
	return &ICalDataProvider{Path: path, Location: loc}
}

// GetAppointments returns the appointments (and occurrences of recurring
// ones) on the dates of the range, in file order.
func (p *ICalDataProvider) GetAppointments(ctx context.Context, dateRange model.DateRange) ([]model.Appointment, error) {
	if !dateRange.Valid() {
		return nil, fmt.Errorf("invalid date range %s", dateRange.String())
	}
	events, err := p.decodeEvents()
	if err != nil {
		return nil, err
	}

	overridden := p.overriddenOccurrences(events)

	result := []model.Appointment{}
	for _, comp := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result = append(result, p.appointmentsOf(comp, dateRange, overridden)...)
	}
	return result, nil
}

// overriddenOccurrences collects, per UID, the instants of occurrences that
// were moved or changed by an event carrying a RECURRENCE-ID.
func (p *ICalDataProvider) overriddenOccurrences(events []*ical.Component) map[string]map[int64]struct{} {
	result := make(map[string]map[int64]struct{})
	for _, comp := range events {
		uid, recurrenceID, ok := p.recurrenceIDOf(comp)
		if !ok {
			continue
		}
		if result[uid] == nil {
			result[uid] = make(map[int64]struct{})
		}
		result[uid][recurrenceID.Unix()] = struct{}{}
	}
	return result
}

// recurrenceIDOf returns the UID and the original start of the occurrence the
// event replaces, if it is such an override.
func (p *ICalDataProvider) recurrenceIDOf(comp *ical.Component) (string, time.Time, bool) {
	uidProp := comp.Props.Get(ical.PropUID)
	recurrenceIDProp := comp.Props.Get(ical.PropRecurrenceID)
	if uidProp == nil || uidProp.Value == "" || recurrenceIDProp == nil {
		return "", time.Time{}, false
	}
	recurrenceID, err := recurrenceIDProp.DateTime(p.Location)
	if err != nil {
		log.Warn().Err(err).Str("uid", uidProp.Value).Msg("ignoring malformed RECURRENCE-ID")
		return "", time.Time{}, false
	}
	return uidProp.Value, recurrenceID.In(p.Location), true
}

// GetStaff returns the staff referenced in the file.
func (p *ICalDataProvider) GetStaff(ctx context.Context) ([]model.Resource, error) {
	return p.getDirectory(PropSalonStaff)
}

// GetRooms returns the rooms referenced in the file.
func (p *ICalDataProvider) GetRooms(ctx context.Context) ([]model.Resource, error) {
	return p.getDirectory(PropSalonRoom)
}

func (p *ICalDataProvider) getDirectory(propName string) ([]model.Resource, error) {
	events, err := p.decodeEvents()
	if err != nil {
		return nil, err
	}

	result := []model.Resource{}
	seen := make(map[string]struct{})
	for _, comp := range events {
		prop := comp.Props.Get(propName)
		if prop == nil || prop.Value == "" {
			continue
		}
		if _, ok := seen[prop.Value]; ok {
			continue
		}
		seen[prop.Value] = struct{}{}
		result = append(result, model.Resource{ID: prop.Value, Name: prop.Params.Get(ical.ParamCommonName)})
	}
	return result, nil
}

func (p *ICalDataProvider) decodeEvents() ([]*ical.Component, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open calendar '%s' (%w)", p.Path, err)
	}
	defer f.Close()

	var events []*ical.Component
	decoder := ical.NewDecoder(f)
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar '%s' (%w)", p.Path, err)
		}
		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			events = append(events, comp)
		}
	}
	return events, nil
}

// appointmentsOf converts an event to the appointments it yields on the dates
// of the range: at most one for a single event, one per occurrence for a
// recurring one.
//
// An override of an occurrence (an event with a RECURRENCE-ID) gets the ID
// the occurrence would have had, and the occurrences listed in overridden are
// left out of the series' expansion.
func (p *ICalDataProvider) appointmentsOf(comp *ical.Component, dateRange model.DateRange, overridden map[string]map[int64]struct{}) []model.Appointment {
	base, start, duration, err := p.parseEvent(comp)
	if err != nil {
		log.Debug().Err(err).Str("uid", base.ID).Msg("skipping unusable calendar event")
		return nil
	}

	if uid, recurrenceID, ok := p.recurrenceIDOf(comp); ok {
		if !dateRange.Contains(model.DateFromGotime(start)) {
			return nil
		}
		a := withTimes(base, start, start.Add(duration))
		a.ID = occurrenceID(uid, recurrenceID)
		return []model.Appointment{a}
	}

	set, err := comp.RecurrenceSet(p.Location)
	if err != nil {
		log.Warn().Err(err).Str("uid", base.ID).Msg("could not expand recurring event, using first occurrence only")
		set = nil
	}
	if set == nil {
		a := withTimes(base, start, start.Add(duration))
		if !dateRange.Contains(model.DateFromGotime(start)) {
			return nil
		}
		return []model.Appointment{a}
	}

	from := dateRange.Start.ToGotime(p.Location)
	til := dateRange.End.Next().ToGotime(p.Location)

	var result []model.Appointment
	for _, occurrence := range set.Between(from, til, true) {
		occurrence = occurrence.In(p.Location)
		if !dateRange.Contains(model.DateFromGotime(occurrence)) {
			continue
		}
		if _, moved := overridden[base.ID][occurrence.Unix()]; moved {
			continue
		}
		a := withTimes(base, occurrence, occurrence.Add(duration))
		a.ID = occurrenceID(base.ID, occurrence)
		result = append(result, a)
	}
	return result
}

// occurrenceID identifies one occurrence of a series by the date it was
// originally scheduled on, so a moved occurrence keeps its ID.
func occurrenceID(uid string, originalStart time.Time) string {
	return uid + "@" + model.DateFromGotime(originalStart).String()
}

// parseEvent returns the appointment data of the event, apart from its times,
// along with its start and duration.
func (p *ICalDataProvider) parseEvent(comp *ical.Component) (model.Appointment, time.Time, time.Duration, error) {
	a := model.Appointment{Status: model.StatusPending}

	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		a.Label = textOf(summaryProp)
	}
	if customerProp := comp.Props.Get(PropSalonCustomer); customerProp != nil {
		a.SecondaryLabel = textOf(customerProp)
	} else if descProp := comp.Props.Get(ical.PropDescription); descProp != nil {
		// only the first line, the rest tends to be booking notes
		a.SecondaryLabel = strings.SplitN(textOf(descProp), "\n", 2)[0]
	}
	if staffProp := comp.Props.Get(PropSalonStaff); staffProp != nil {
		a.StaffID = staffProp.Value
	}
	if roomProp := comp.Props.Get(PropSalonRoom); roomProp != nil {
		a.RoomID = roomProp.Value
	}
	if colorProp := comp.Props.Get(PropColor); colorProp != nil {
		a.Color = colorProp.Value
	}
	a.Status = statusOf(comp)

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		a.ID = idOf(comp, time.Time{})
		return a, time.Time{}, 0, fmt.Errorf("event has no start")
	}
	start, err := startProp.DateTime(p.Location)
	if err != nil {
		a.ID = idOf(comp, time.Time{})
		return a, time.Time{}, 0, fmt.Errorf("bad start (%w)", err)
	}
	start = start.In(p.Location)
	a.ID = idOf(comp, start)

	var duration time.Duration
	if endProp := comp.Props.Get(ical.PropDateTimeEnd); endProp != nil {
		end, err := endProp.DateTime(p.Location)
		if err != nil {
			return a, start, 0, fmt.Errorf("bad end (%w)", err)
		}
		duration = end.Sub(start)
	} else if durationProp := comp.Props.Get(ical.PropDuration); durationProp != nil {
		duration, err = durationProp.Duration()
		if err != nil {
			return a, start, 0, fmt.Errorf("bad duration (%w)", err)
		}
	}
	return a, start, duration, nil
}

// withTimes sets date and times of the appointment. An end on the following
// day's midnight is expressed as 24:00; an end on any later time makes for an
// appointment the layout will omit.
func withTimes(a model.Appointment, start, end time.Time) model.Appointment {
	a.Date = model.DateFromGotime(start).String()
	a.StartTime = start.Format("15:04")
	endDate := model.DateFromGotime(end)
	switch {
	case endDate == model.DateFromGotime(start):
		a.EndTime = end.Format("15:04")
	case endDate == model.DateFromGotime(start).Next() && end.Hour() == 0 && end.Minute() == 0:
		a.EndTime = "24:00"
	default:
		log.Debug().Str("appointment", a.ID).Msg("calendar event spans midnight")
		a.EndTime = end.Format("15:04")
	}
	return a
}

// textOf returns the unescaped text value of the property, or its raw value if
// it cannot be unescaped.
func textOf(prop *ical.Prop) string {
	text, err := prop.Text()
	if err != nil {
		return prop.Value
	}
	return text
}

func statusOf(comp *ical.Component) model.Status {
	if statusProp := comp.Props.Get(PropSalonStatus); statusProp != nil {
		if status, err := model.ParseStatus(statusProp.Value); err == nil {
			return status
		}
	}
	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil {
		if strings.EqualFold(statusProp.Value, "CANCELLED") {
			return model.StatusCancelled
		}
	}
	return model.StatusPending
}

// idOf returns the event's UID or, for events lacking one, an ID derived from
// its summary and start, so that re-reading the file yields the same IDs.
func idOf(comp *ical.Component, start time.Time) string {
	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil && uidProp.Value != "" {
		return uidProp.Value
	}
	summary := ""
	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		summary = summaryProp.Value
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(summary+"|"+start.Format(time.RFC3339))).String()
}
