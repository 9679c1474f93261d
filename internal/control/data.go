package control

import (
	"sync"
	"time"

	"github.com/ja-he/salonplan/internal/model"
	"github.com/ja-he/salonplan/internal/schedule"
	"github.com/ja-he/salonplan/internal/ui"
)

// FetchResult is what a fetch of the record store yields for one date range.
type FetchResult struct {
	Range        model.DateRange
	Appointments []model.Appointment
	Staff        []model.Resource
	Rooms        []model.Resource
	Err          error
}

// ControlData is the state of the interactive grid.
//
// Fetches run concurrently with rendering; every fetch is tagged with a
// generation and only the result of the most recently begun fetch is kept, so
// a slow response for a date the user already navigated away from is
// dropped.
type ControlData struct {
	mtx sync.Mutex

	EnvData EnvData

	cursorPos ui.MouseCursorPos
	mouseMode bool

	CurrentDate model.Date
	Mode        schedule.Mode
	Window      schedule.TimeWindow
	PackLanes   bool

	ShowHelp bool
	ShowLog  bool

	Suntimes *model.SuntimesProvider

	generation uint64
	loaded     bool
	fetched    FetchResult
}

// NewControlData returns control data for the given initial view.
func NewControlData(envData EnvData, date model.Date, mode schedule.Mode, window schedule.TimeWindow, packLanes bool) *ControlData {
	return &ControlData{
		EnvData:     envData,
		CurrentDate: date,
		Mode:        mode,
		Window:      window,
		PackLanes:   packLanes,
	}
}

// Lock locks the control data for modification by the UI.
func (d *ControlData) Lock() { d.mtx.Lock() }

// Unlock unlocks the control data.
func (d *ControlData) Unlock() { d.mtx.Unlock() }

// SetMouseCursor records the mouse position and switches to mouse mode.
func (d *ControlData) SetMouseCursor(x, y int) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	d.mouseMode = true
	d.cursorPos = ui.MouseCursorPos{X: x, Y: y}
}

// SetKeyboardMode leaves mouse mode, e.g. on a key press.
func (d *ControlData) SetKeyboardMode() {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	d.mouseMode = false
}

// Hover returns the mouse position and whether mouse mode is on.
func (d *ControlData) Hover() (ui.MouseCursorPos, bool) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.cursorPos, d.mouseMode
}

// CurrentRange returns the date range the current mode shows around the
// current date. The caller must hold the lock.
func (d *ControlData) CurrentRange() model.DateRange {
	return schedule.RangeFor(d.Mode, d.CurrentDate)
}

// BeginFetch invalidates the fetched data and returns the generation and range
// of the fetch to perform.
func (d *ControlData) BeginFetch() (uint64, model.DateRange) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	d.generation++
	d.loaded = false
	return d.generation, d.CurrentRange()
}

// CompleteFetch stores the result of the fetch of the given generation, unless
// another fetch has been begun since. It returns whether the result was kept.
//
// A failed fetch is not stored; the grid stays loading until the next fetch.
func (d *ControlData) CompleteFetch(generation uint64, result FetchResult) bool {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if generation != d.generation || result.Err != nil {
		return false
	}
	d.fetched = result
	d.loaded = true
	return true
}

// Request returns the layout request for the current state at the given
// instant.
func (d *ControlData) Request(now time.Time) schedule.Request {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	r := d.CurrentRange()
	req := schedule.Request{
		Mode:      d.Mode,
		Range:     r,
		Window:    d.Window,
		Loaded:    d.loaded && d.fetched.Range == r,
		PackLanes: d.PackLanes,
	}
	if req.Loaded {
		req.Staff = d.fetched.Staff
		req.Rooms = d.fetched.Rooms
		req.Appointments = d.fetched.Appointments
	}
	if r.Contains(model.DateFromGotime(now)) {
		req.Now = now
	}
	return req
}

// CurrentSuntimes returns the sun times of the current date, if the salon's
// location is known.
func (d *ControlData) CurrentSuntimes() *model.SunTimes {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if d.Suntimes == nil {
		return nil
	}
	s := d.Suntimes.Get(d.CurrentDate)
	return &s
}
