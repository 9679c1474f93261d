package schedule_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/schedule"
)

var monday = model.Date{Year: 2024, Month: 5, Day: 13}

func appt(id, date, start, end, staff, room string) model.Appointment {
	return model.Appointment{
		ID:        id,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		StaffID:   staff,
		RoomID:    room,
		Label:     "Haircut",
		Status:    model.StatusPending,
	}
}

func partitionIDs(ps []schedule.Partition) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestParseMode(t *testing.T) {
	for _, m := range schedule.AllModes() {
		parsed, err := schedule.ParseMode(m.String())
		if err != nil {
			t.Errorf("unexpected error for '%s': %s", m.String(), err.Error())
		}
		if parsed != m {
			t.Errorf("'%s' parsed as %s", m.String(), parsed.String())
		}
	}
	_, err := schedule.ParseMode("month")
	var cfgErr *schedule.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Error("expected configuration error, got", err)
	}
	if schedule.ModeWeek.Next() != schedule.ModeStaff {
		t.Error("cycling does not wrap")
	}
}

func TestTimeWindow(t *testing.T) {

	t.Run("Validate", func(t *testing.T) {
		bad := []schedule.TimeWindow{
			{StartHour: 14, EndHour: 8, Scale: 80},
			{StartHour: -1, EndHour: 8, Scale: 80},
			{StartHour: 8, EndHour: 25, Scale: 80},
			{StartHour: 8, EndHour: 14, Scale: 0},
		}
		for _, w := range bad {
			var cfgErr *schedule.ConfigurationError
			if !errors.As(w.Validate(), &cfgErr) {
				t.Errorf("window %+v not rejected", w)
			}
		}
		if err := (schedule.TimeWindow{StartHour: 8, EndHour: 8, Scale: 1}).Validate(); err != nil {
			t.Error("zero-length window rejected:", err.Error())
		}
	})

	t.Run("Shifted", func(t *testing.T) {
		w := schedule.TimeWindow{StartHour: 8, EndHour: 14, Scale: 80}
		if s := w.Shifted(20); s.StartHour != 18 || s.EndHour != 24 {
			t.Errorf("shift past midnight gave %d-%d", s.StartHour, s.EndHour)
		}
		if s := w.Shifted(-10); s.StartHour != 0 || s.EndHour != 6 {
			t.Errorf("shift before midnight gave %d-%d", s.StartHour, s.EndHour)
		}
		if w.Height() != 480 {
			t.Error("height of 6h at 80 is", w.Height())
		}
		if w.MinuteAt(120) != 9*60+30 {
			t.Error("minute at offset 120 is", w.MinuteAt(120))
		}
	})
}

func TestResolve(t *testing.T) {
	staff := []model.Resource{{ID: "s1", Name: "Anna"}, {ID: "s2", Name: "Ben"}, {ID: "s3", Name: "Cleo"}}
	rooms := []model.Resource{{ID: "r1", Name: "Room 1"}, {ID: "r2"}}

	t.Run("staff keeps directory order and drops unreferenced", func(t *testing.T) {
		appointments := []model.Appointment{
			appt("a", "2024-05-13", "09:00", "10:00", "s3", ""),
			appt("b", "2024-05-13", "10:00", "11:00", "s1", ""),
			appt("c", "2024-05-13", "11:00", "12:00", "s3", ""),
		}
		ps, err := schedule.Resolve(schedule.ModeStaff, model.SingleDay(monday), staff, rooms, appointments)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if !reflect.DeepEqual(partitionIDs(ps), []string{"s1", "s3"}) {
			t.Error("unexpected partitions:", partitionIDs(ps))
		}
		if ps[0].Label != "Anna" {
			t.Error("label not taken from directory:", ps[0].Label)
		}
	})

	t.Run("room sentinel last, label falls back to id", func(t *testing.T) {
		appointments := []model.Appointment{
			appt("a", "2024-05-13", "09:00", "10:00", "", ""),
			appt("b", "2024-05-13", "10:00", "11:00", "", "r2"),
		}
		ps, err := schedule.Resolve(schedule.ModeRoom, model.SingleDay(monday), staff, rooms, appointments)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if !reflect.DeepEqual(partitionIDs(ps), []string{"r2", schedule.UnassignedPartitionID}) {
			t.Error("unexpected partitions:", partitionIDs(ps))
		}
		if ps[0].Label != "r2" || !ps[1].IsUnassigned() {
			t.Error("unexpected labels:", ps)
		}
	})

	t.Run("no sentinel when everything is assigned", func(t *testing.T) {
		appointments := []model.Appointment{appt("a", "2024-05-13", "09:00", "10:00", "s2", "")}
		ps, _ := schedule.Resolve(schedule.ModeStaff, model.SingleDay(monday), staff, rooms, appointments)
		for _, p := range ps {
			if p.IsUnassigned() {
				t.Error("sentinel present without unassigned appointment")
			}
		}
	})

	t.Run("empty directory and appointments", func(t *testing.T) {
		ps, err := schedule.Resolve(schedule.ModeStaff, model.SingleDay(monday), nil, nil, nil)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(ps) != 0 {
			t.Error("expected no partitions, got", len(ps))
		}
	})

	t.Run("week yields every day", func(t *testing.T) {
		ps, err := schedule.Resolve(schedule.ModeWeek, model.WeekOf(monday), staff, rooms, nil)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(ps) != 7 {
			t.Fatal("expected 7 partitions, got", len(ps))
		}
		if ps[0].ID != "2024-05-13" || ps[6].ID != "2024-05-19" {
			t.Error("unexpected partitions:", partitionIDs(ps))
		}
		if ps[0].Label != "Mon 2024-05-13" || ps[0].Date == nil || *ps[0].Date != monday {
			t.Error("unexpected first partition:", ps[0].Label)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		r := model.DateRange{Start: monday.Next(), End: monday}
		_, err := schedule.Resolve(schedule.ModeSingleDay, r, nil, nil, nil)
		var cfgErr *schedule.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Error("expected configuration error, got", err)
		}
	})
}

func TestLayout(t *testing.T) {
	window := schedule.TimeWindow{StartHour: 8, EndHour: 14, Scale: 80}
	day := []schedule.Partition{{ID: "2024-05-13", Label: "Mon"}}

	t.Run("offset and height", func(t *testing.T) {
		positioned, err := schedule.Layout(
			[]model.Appointment{appt("a", "2024-05-13", "09:00", "09:30", "", "")},
			day, schedule.ModeSingleDay, window,
		)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(positioned) != 1 {
			t.Fatal("expected 1 positioned appointment, got", len(positioned))
		}
		p := positioned[0]
		if p.Offset != 80 || p.Height != 40 {
			t.Errorf("expected offset 80 height 40, got %f %f", p.Offset, p.Height)
		}
		if p.Column != 0 || p.Lane != 0 || p.Lanes != 1 {
			t.Errorf("unexpected column/lane: %+v", p)
		}
	})

	t.Run("exclusion", func(t *testing.T) {
		appointments := []model.Appointment{
			appt("before", "2024-05-13", "06:00", "08:00", "", ""),
			appt("after", "2024-05-13", "14:00", "15:00", "", ""),
			appt("bad-time", "2024-05-13", "9:00", "10:00", "", ""),
			appt("zero", "2024-05-13", "10:00", "10:00", "", ""),
			appt("inverted", "2024-05-13", "11:00", "10:00", "", ""),
			appt("other-day", "2024-05-14", "10:00", "11:00", "", ""),
			appt("bad-date", "13.05.2024", "10:00", "11:00", "", ""),
			appt("ok", "2024-05-13", "13:00", "14:00", "", ""),
		}
		positioned, err := schedule.Layout(appointments, day, schedule.ModeSingleDay, window)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(positioned) != 1 || positioned[0].Appointment.ID != "ok" {
			t.Fatalf("expected only 'ok', got %+v", positioned)
		}
		if positioned[0].Offset+positioned[0].Height != window.Height() {
			t.Error("appointment ending at window end does not end at window height")
		}
	})

	t.Run("clipping", func(t *testing.T) {
		positioned, err := schedule.Layout(
			[]model.Appointment{
				appt("early", "2024-05-13", "07:00", "09:00", "", ""),
				appt("late", "2024-05-13", "13:30", "15:00", "", ""),
			},
			day, schedule.ModeSingleDay, window,
		)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(positioned) != 2 {
			t.Fatal("expected 2 positioned appointments, got", len(positioned))
		}
		if positioned[0].Offset != 0 || positioned[0].Height != 80 {
			t.Errorf("early clipped wrong: %f %f", positioned[0].Offset, positioned[0].Height)
		}
		if positioned[1].Offset != 440 || positioned[1].Height != 40 {
			t.Errorf("late clipped wrong: %f %f", positioned[1].Offset, positioned[1].Height)
		}
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := schedule.Layout(nil, day, schedule.ModeSingleDay, schedule.TimeWindow{StartHour: 14, EndHour: 8, Scale: 80})
		var cfgErr *schedule.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Error("expected configuration error, got", err)
		}
	})

	t.Run("overlaps are kept", func(t *testing.T) {
		positioned, _ := schedule.Layout(
			[]model.Appointment{
				appt("a", "2024-05-13", "09:00", "10:00", "", ""),
				appt("b", "2024-05-13", "09:30", "10:30", "", ""),
			},
			day, schedule.ModeSingleDay, window,
		)
		if len(positioned) != 2 || !positioned[0].Overlaps(&positioned[1]) {
			t.Error("overlapping appointments not both positioned")
		}
	})

	t.Run("ordering and determinism", func(t *testing.T) {
		staff := []model.Resource{{ID: "s1"}, {ID: "s2"}}
		appointments := []model.Appointment{
			appt("c", "2024-05-13", "11:00", "12:00", "s2", ""),
			appt("a", "2024-05-13", "10:00", "11:00", "s1", ""),
			appt("b", "2024-05-13", "09:00", "10:00", "s2", ""),
			appt("d", "2024-05-13", "09:00", "09:15", "s2", ""),
		}
		ps, _ := schedule.Resolve(schedule.ModeStaff, model.SingleDay(monday), staff, nil, appointments)
		first, err := schedule.Layout(appointments, ps, schedule.ModeStaff, window)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		var ids []string
		for _, p := range first {
			ids = append(ids, p.Appointment.ID)
		}
		if !reflect.DeepEqual(ids, []string{"a", "b", "d", "c"}) {
			t.Error("unexpected order:", ids)
		}
		second, _ := schedule.Layout(appointments, ps, schedule.ModeStaff, window)
		if !reflect.DeepEqual(first, second) {
			t.Error("layout is not deterministic")
		}
	})
}

func TestPackLanes(t *testing.T) {
	window := schedule.TimeWindow{StartHour: 8, EndHour: 20, Scale: 60}
	day := []schedule.Partition{{ID: "2024-05-13"}}
	appointments := []model.Appointment{
		appt("a", "2024-05-13", "09:00", "10:00", "", ""),
		appt("b", "2024-05-13", "09:30", "11:00", "", ""),
		appt("c", "2024-05-13", "10:00", "10:30", "", ""),
		appt("d", "2024-05-13", "12:00", "13:00", "", ""),
	}
	positioned, err := schedule.Layout(appointments, day, schedule.ModeSingleDay, window)
	if err != nil {
		t.Fatal("unexpected error:", err.Error())
	}
	packed := schedule.PackLanes(positioned)

	expected := map[string][2]int{
		"a": {0, 2},
		"b": {1, 2},
		"c": {0, 2},
		"d": {0, 1},
	}
	for _, p := range packed {
		if got := [2]int{p.Lane, p.Lanes}; got != expected[p.Appointment.ID] {
			t.Errorf("%s: got lane %d of %d, expected %v", p.Appointment.ID, p.Lane, p.Lanes, expected[p.Appointment.ID])
		}
	}
	for i := range packed {
		for j := i + 1; j < len(packed); j++ {
			if packed[i].Overlaps(&packed[j]) && packed[i].Lane == packed[j].Lane {
				t.Errorf("%s and %s overlap in the same lane", packed[i].Appointment.ID, packed[j].Appointment.ID)
			}
		}
	}
	for _, p := range positioned {
		if p.Lanes != 1 {
			t.Error("input was modified")
		}
	}
}

func TestIndicatorOffset(t *testing.T) {
	window := schedule.TimeWindow{StartHour: 8, EndHour: 14, Scale: 80}
	at := func(h, m int) time.Time { return time.Date(2024, 5, 13, h, m, 0, 0, time.UTC) }

	if offset, ok := schedule.IndicatorOffset(at(8, 0), window); !ok || offset != 0 {
		t.Errorf("at window start: %f %v", offset, ok)
	}
	if offset, ok := schedule.IndicatorOffset(at(9, 30), window); !ok || offset != 120 {
		t.Errorf("at 09:30: %f %v", offset, ok)
	}
	if offset, ok := schedule.IndicatorOffset(at(14, 0), window); !ok || offset != 480 {
		t.Errorf("at window end: %f %v", offset, ok)
	}
	for _, now := range []time.Time{at(7, 59), at(14, 1), at(23, 0)} {
		if _, ok := schedule.IndicatorOffset(now, window); ok {
			t.Error("indicator present at", now.Format("15:04"))
		}
	}
}

func TestAssemble(t *testing.T) {
	window := schedule.TimeWindow{StartHour: 8, EndHour: 14, Scale: 80}
	staff := []model.Resource{{ID: "s1", Name: "Anna"}, {ID: "s2", Name: "Ben"}}
	rooms := []model.Resource{{ID: "r1", Name: "Room 1"}}

	t.Run("loading", func(t *testing.T) {
		g, err := schedule.Assemble(schedule.Request{Mode: schedule.ModeStaff, Range: model.SingleDay(monday), Window: window})
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if g.State != schedule.GridLoading || len(g.Partitions) != 0 {
			t.Error("expected loading grid, got", g.State.String())
		}
	})

	t.Run("empty", func(t *testing.T) {
		g, err := schedule.Assemble(schedule.Request{Mode: schedule.ModeStaff, Range: model.SingleDay(monday), Window: window, Staff: staff, Loaded: true})
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if g.State != schedule.GridEmpty {
			t.Error("expected empty grid, got", g.State.String())
		}
	})

	t.Run("two staff members", func(t *testing.T) {
		g, err := schedule.Assemble(schedule.Request{
			Mode:   schedule.ModeStaff,
			Range:  model.SingleDay(monday),
			Window: window,
			Staff:  staff,
			Appointments: []model.Appointment{
				appt("a", "2024-05-13", "09:00", "10:00", "s1", ""),
				appt("b", "2024-05-13", "09:00", "10:00", "s2", ""),
			},
			Loaded: true,
			Now:    time.Date(2024, 5, 13, 9, 30, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if g.State != schedule.GridPopulated || len(g.Partitions) != 2 {
			t.Fatalf("expected 2 populated partitions, got %s with %d", g.State.String(), len(g.Partitions))
		}
		for i := range g.Partitions {
			if len(g.InColumn(i)) != 1 {
				t.Errorf("column %d has %d appointments", i, len(g.InColumn(i)))
			}
		}
		if !g.HasIndicator || g.Indicator != 120 {
			t.Error("unexpected indicator:", g.Indicator, g.HasIndicator)
		}
	})

	t.Run("week with two busy days", func(t *testing.T) {
		g, err := schedule.Assemble(schedule.Request{
			Mode:   schedule.ModeWeek,
			Range:  model.WeekOf(monday),
			Window: window,
			Appointments: []model.Appointment{
				appt("a", "2024-05-14", "09:00", "10:00", "s1", ""),
				appt("b", "2024-05-16", "11:00", "12:00", "", "r1"),
			},
			Loaded: true,
		})
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if len(g.Partitions) != 7 {
			t.Fatal("expected 7 partitions, got", len(g.Partitions))
		}
		empty := 0
		for i := range g.Partitions {
			if len(g.InColumn(i)) == 0 {
				empty++
			}
		}
		if empty != 5 {
			t.Error("expected 5 empty days, got", empty)
		}
		if g.HasIndicator {
			t.Error("indicator without now")
		}
	})

	t.Run("room without reference", func(t *testing.T) {
		g, err := schedule.Assemble(schedule.Request{
			Mode:   schedule.ModeRoom,
			Range:  model.SingleDay(monday),
			Window: window,
			Rooms:  rooms,
			Appointments: []model.Appointment{
				appt("a", "2024-05-13", "09:00", "10:00", "s1", "r1"),
				appt("b", "2024-05-13", "11:00", "12:00", "s2", ""),
			},
			Loaded: true,
		})
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		unassigned := 0
		for i, p := range g.Partitions {
			if p.IsUnassigned() {
				unassigned++
				col := g.InColumn(i)
				if len(col) != 1 || col[0].Appointment.ID != "b" {
					t.Error("unassigned column does not hold 'b'")
				}
			}
		}
		if unassigned != 1 {
			t.Error("expected exactly one unassigned partition, got", unassigned)
		}
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := schedule.Assemble(schedule.Request{Mode: schedule.ModeStaff, Window: schedule.TimeWindow{StartHour: 9, EndHour: 8, Scale: 1}})
		var cfgErr *schedule.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Error("expected configuration error, got", err)
		}
	})
}
