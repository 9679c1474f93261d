package schedule

import "time"

// IndicatorOffset returns the offset of the current-time line for the given
// instant, or false if the instant is outside the window.
//
// Only the wall-clock hour and minute of now count (seconds are ignored), in
// now's own location; the caller is responsible for passing a time in the
// zone the grid is displayed in. An instant at exactly the end hour is still
// within the window.
func IndicatorOffset(now time.Time, window TimeWindow) (float64, bool) {
	h, m := now.Hour(), now.Minute()
	if h < window.StartHour || h > window.EndHour {
		return 0, false
	}
	if h == window.EndHour && m > 0 {
		return 0, false
	}
	return (float64(h) + float64(m)/60 - float64(window.StartHour)) * window.Scale, true
}
