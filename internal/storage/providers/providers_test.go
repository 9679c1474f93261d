package providers_test

import (
	"context"
	"errors"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/storage"
	"github.com/ja-he/salonplan/internal/storage/providers"
)

var monday = model.Date{Year: 2024, Month: 5, Day: 13}

func TestFilesDataProvider(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	err := os.MkdirAll(path.Join(base, "days"), 0755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(path.Join(base, "days", "2024-05-13.yaml"), []byte(`
- id: a1
  start: "09:00"
  end: "09:30"
  staff: s1
  label: Haircut
  customer: Mrs. Smith
  status: pending
- id: a2
  start: "10:00"
  end: "11:00"
  label: Color
  status: checked-in
`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(path.Join(base, "staff.yaml"), []byte(`
- id: s1
  name: Anna
- id: s2
  name: Ben
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	p := providers.NewFilesDataProvider(base)

	t.Run("GetAppointments", func(t *testing.T) {
		appointments, err := p.GetAppointments(ctx, model.WeekOf(monday))
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(appointments) != 2 {
			t.Fatal("expected 2 appointments, got", len(appointments))
		}
		if appointments[0].Date != "2024-05-13" {
			t.Error("date not filled in from file name:", appointments[0].Date)
		}
		if appointments[0].SecondaryLabel != "Mrs. Smith" || appointments[1].StaffID != "" {
			t.Errorf("unexpected appointments %+v", appointments)
		}
	})

	t.Run("directories", func(t *testing.T) {
		staff, err := p.GetStaff(ctx)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(staff) != 2 || staff[1].Name != "Ben" {
			t.Errorf("unexpected staff %+v", staff)
		}
		rooms, err := p.GetRooms(ctx)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(rooms) != 0 {
			t.Error("expected no rooms without rooms file")
		}
	})

	t.Run("AddAppointment", func(t *testing.T) {
		w, err := storage.AsWriter(p)
		if err != nil {
			t.Fatal("files provider not writable:", err.Error())
		}
		a := model.Appointment{ID: "a3", Date: "2024-05-14", StartTime: "12:00", EndTime: "13:00", Label: "Nails", Status: model.StatusPending}
		if err := w.AddAppointment(ctx, a); err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if err := w.AddAppointment(ctx, a); !errors.Is(err, storage.ErrDuplicate) {
			t.Error("duplicate id not rejected as such:", err)
		}
		bad := a
		bad.ID, bad.EndTime = "a4", "11:00"
		if err := w.AddAppointment(ctx, bad); err == nil {
			t.Error("invalid appointment accepted")
		}

		// a fresh provider has to see it on disk
		fresh := providers.NewFilesDataProvider(base)
		appointments, err := fresh.GetAppointments(ctx, model.SingleDay(monday.Next()))
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(appointments) != 1 || appointments[0] != a {
			t.Errorf("unexpected appointments after write %+v", appointments)
		}
	})

	t.Run("AddAppointment id taken on another date", func(t *testing.T) {
		a := model.Appointment{ID: "a1", Date: "2024-05-15", StartTime: "12:00", EndTime: "13:00", Label: "Nails", Status: model.StatusPending}
		if err := p.AddAppointment(ctx, a); !errors.Is(err, storage.ErrDuplicate) {
			t.Error("id of 2024-05-13 accepted on 2024-05-15:", err)
		}
		if _, err := os.Stat(path.Join(base, "days", "2024-05-15.yaml")); err == nil {
			t.Error("day file written for rejected appointment")
		}
	})

	t.Run("AddAppointment failed write leaves no trace", func(t *testing.T) {
		dir := t.TempDir()
		q := providers.NewFilesDataProvider(dir)
		day := model.SingleDay(monday)
		if _, err := q.GetAppointments(ctx, day); err != nil {
			t.Fatal("unexpected error:", err.Error())
		}

		// a directory in place of the day file makes the write fail
		blocker := path.Join(dir, "days", "2024-05-13.yaml")
		if err := os.MkdirAll(blocker, 0755); err != nil {
			t.Fatal(err)
		}
		a := model.Appointment{ID: "w1", Date: "2024-05-13", StartTime: "12:00", EndTime: "13:00", Label: "Nails", Status: model.StatusPending}
		if err := q.AddAppointment(ctx, a); err == nil {
			t.Fatal("expected write error")
		}
		cached, err := q.GetAppointments(ctx, day)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(cached) != 0 {
			t.Errorf("unwritten appointment is cached: %+v", cached)
		}

		if err := os.Remove(blocker); err != nil {
			t.Fatal(err)
		}
		if err := q.AddAppointment(ctx, a); err != nil {
			t.Error("retry after failed write rejected:", err)
		}
	})

	t.Run("Reload", func(t *testing.T) {
		err := os.WriteFile(path.Join(base, "days", "2024-05-13.yaml"), []byte("[]\n"), 0644)
		if err != nil {
			t.Fatal(err)
		}
		cached, _ := p.GetAppointments(ctx, model.SingleDay(monday))
		if len(cached) != 2 {
			t.Error("expected cached appointments before reload")
		}
		p.Reload()
		reloaded, _ := p.GetAppointments(ctx, model.SingleDay(monday))
		if len(reloaded) != 0 {
			t.Error("expected no appointments after reload, got", len(reloaded))
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		err := os.WriteFile(path.Join(base, "days", "2024-05-19.yaml"), []byte("- id: [unterminated"), 0644)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.GetAppointments(ctx, model.SingleDay(model.Date{Year: 2024, Month: 5, Day: 19})); err == nil {
			t.Error("expected error for malformed day file")
		}
	})

	t.Run("WriteDirectories", func(t *testing.T) {
		dir := t.TempDir()
		q := providers.NewFilesDataProvider(dir)
		if err := q.WriteDirectories(nil, []model.Resource{{ID: "r1", Name: "Room 1"}}); err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		rooms, _ := q.GetRooms(ctx)
		if len(rooms) != 1 || rooms[0].Name != "Room 1" {
			t.Errorf("unexpected rooms %+v", rooms)
		}
		if _, err := os.Stat(path.Join(dir, "staff.yaml")); !errors.Is(err, os.ErrNotExist) {
			t.Error("nil staff directory was written")
		}
	})
}

const testCalendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//salonplan//test//EN
BEGIN:VEVENT
UID:evt-1
DTSTAMP:20240501T120000Z
DTSTART:20240513T090000
DTEND:20240513T093000
SUMMARY:Haircut
DESCRIPTION:Mrs. Smith\nprefers short
X-SALON-STAFF;CN=Anna:s1
X-SALON-ROOM:r1
END:VEVENT
BEGIN:VEVENT
UID:evt-2
DTSTAMP:20240501T120000Z
DTSTART:20240513T100000
DURATION:PT45M
SUMMARY:Color
STATUS:CANCELLED
COLOR:#aa5500
END:VEVENT
BEGIN:VEVENT
UID:evt-3
DTSTAMP:20240501T120000Z
DTSTART:20240506T140000
DTEND:20240506T150000
RRULE:FREQ=WEEKLY;COUNT=3
SUMMARY:Standing appointment
X-SALON-STAFF:s2
X-SALON-STATUS:checked-in
X-SALON-CUSTOMER:Mr. Jones
END:VEVENT
BEGIN:VEVENT
DTSTAMP:20240501T120000Z
DTSTART:20240514T110000
DTEND:20240514T113000
SUMMARY:Walk-in
X-SALON-STAFF:s1
END:VEVENT
END:VCALENDAR
`

const movedCalendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//salonplan//test//EN
BEGIN:VEVENT
UID:weekly-1
DTSTAMP:20240501T120000Z
DTSTART:20240513T090000
DTEND:20240513T100000
RRULE:FREQ=WEEKLY;COUNT=3
SUMMARY:Haircut
END:VEVENT
BEGIN:VEVENT
UID:weekly-1
DTSTAMP:20240501T120000Z
RECURRENCE-ID:20240520T090000
DTSTART:20240520T140000
DTEND:20240520T150000
SUMMARY:Haircut (moved)
END:VEVENT
END:VCALENDAR
`

func TestICalDataProvider(t *testing.T) {
	ctx := context.Background()
	file := path.Join(t.TempDir(), "salon.ics")
	err := os.WriteFile(file, []byte(strings.ReplaceAll(testCalendar, "\n", "\r\n")), 0644)
	if err != nil {
		t.Fatal(err)
	}
	p := providers.NewICalDataProvider(file, time.UTC)

	t.Run("single day", func(t *testing.T) {
		appointments, err := p.GetAppointments(ctx, model.SingleDay(monday))
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		byID := make(map[string]model.Appointment)
		for _, a := range appointments {
			byID[a.ID] = a
		}
		if len(appointments) != 3 {
			t.Fatalf("expected 3 appointments, got %d: %+v", len(appointments), appointments)
		}

		haircut := byID["evt-1"]
		if haircut.StartTime != "09:00" || haircut.EndTime != "09:30" || haircut.Date != "2024-05-13" {
			t.Errorf("unexpected times %+v", haircut)
		}
		if haircut.StaffID != "s1" || haircut.RoomID != "r1" || haircut.SecondaryLabel != "Mrs. Smith" {
			t.Errorf("unexpected references %+v", haircut)
		}

		color := byID["evt-2"]
		if color.EndTime != "10:45" || color.Status != model.StatusCancelled || color.Color != "#aa5500" {
			t.Errorf("unexpected appointment %+v", color)
		}

		standing, ok := byID["evt-3@2024-05-13"]
		if !ok {
			t.Fatal("occurrence of recurring event missing")
		}
		if standing.Status != model.StatusCheckedIn || standing.SecondaryLabel != "Mr. Jones" || standing.StartTime != "14:00" {
			t.Errorf("unexpected occurrence %+v", standing)
		}
	})

	t.Run("recurrence ends", func(t *testing.T) {
		appointments, err := p.GetAppointments(ctx, model.DateRange{Start: monday, End: monday.Forward(28)})
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		occurrences := 0
		for _, a := range appointments {
			if strings.HasPrefix(a.ID, "evt-3@") {
				occurrences++
			}
		}
		if occurrences != 2 {
			t.Error("expected 2 occurrences from the 13th on, got", occurrences)
		}
	})

	t.Run("stable generated ids", func(t *testing.T) {
		day := model.SingleDay(monday.Next())
		first, _ := p.GetAppointments(ctx, day)
		second, _ := p.GetAppointments(ctx, day)
		if len(first) != 1 || first[0].ID == "" || first[0].ID != second[0].ID {
			t.Errorf("walk-in ids not stable: %+v %+v", first, second)
		}
	})

	t.Run("directories", func(t *testing.T) {
		staff, err := p.GetStaff(ctx)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(staff) != 2 || staff[0].ID != "s1" || staff[0].Name != "Anna" || staff[1].ID != "s2" {
			t.Errorf("unexpected staff %+v", staff)
		}
		if _, err := storage.AsWriter(p); !errors.Is(err, storage.ErrReadOnly) {
			t.Error("ical provider claims to be writable")
		}
	})

	t.Run("moved occurrence replaces the original", func(t *testing.T) {
		movedFile := path.Join(t.TempDir(), "moved.ics")
		err := os.WriteFile(movedFile, []byte(strings.ReplaceAll(movedCalendar, "\n", "\r\n")), 0644)
		if err != nil {
			t.Fatal(err)
		}
		q := providers.NewICalDataProvider(movedFile, time.UTC)

		appointments, err := q.GetAppointments(ctx, model.SingleDay(monday.Forward(7)))
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(appointments) != 1 {
			t.Fatalf("expected only the moved occurrence, got %d: %+v", len(appointments), appointments)
		}
		moved := appointments[0]
		if moved.ID != "weekly-1@2024-05-20" || moved.StartTime != "14:00" || moved.Label != "Haircut (moved)" {
			t.Errorf("unexpected moved occurrence %+v", moved)
		}

		all, err := q.GetAppointments(ctx, model.DateRange{Start: monday, End: monday.Forward(14)})
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		ids := make(map[string]int)
		for _, a := range all {
			ids[a.ID]++
		}
		for _, id := range []string{"weekly-1@2024-05-13", "weekly-1@2024-05-20", "weekly-1@2024-05-27"} {
			if ids[id] != 1 {
				t.Errorf("expected %s exactly once, got %d", id, ids[id])
			}
		}
		if len(all) != 3 {
			t.Errorf("expected 3 appointments in the series, got %d: %+v", len(all), all)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		q := providers.NewICalDataProvider(path.Join(t.TempDir(), "nope.ics"), time.UTC)
		if _, err := q.GetAppointments(ctx, model.SingleDay(monday)); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestPostgresDataProvider(t *testing.T) {
	url := os.Getenv("SALONPLAN_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SALONPLAN_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	p, err := providers.NewPostgresDataProvider(ctx, url)
	if err != nil {
		t.Fatal("could not connect:", err.Error())
	}
	defer p.Close()
	if err := p.EnsureSchema(ctx); err != nil {
		t.Fatal("could not create schema:", err.Error())
	}

	a := model.Appointment{
		ID:        "test-" + time.Now().Format("150405.000000"),
		Date:      "2031-01-02",
		StartTime: "09:00",
		EndTime:   "09:45",
		Label:     "Haircut",
		Status:    model.StatusPending,
	}
	if err := p.AddAppointment(ctx, a); err != nil {
		t.Fatal("could not add appointment:", err.Error())
	}
	appointments, err := p.GetAppointments(ctx, model.SingleDay(model.Date{Year: 2031, Month: 1, Day: 2}))
	if err != nil {
		t.Fatal("could not get appointments:", err.Error())
	}
	found := false
	for _, got := range appointments {
		if got == a {
			found = true
		}
	}
	if !found {
		t.Errorf("added appointment not read back, got %+v", appointments)
	}
}
