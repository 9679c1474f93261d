package schedule

import (
	"fmt"
	"time"
)

// TimeWindow is the visible vertical extent of the grid.
type TimeWindow struct {
	// StartHour is the first visible hour (inclusive).
	StartHour int `yaml:"start-hour"`
	// EndHour is the last visible hour (inclusive); the grid ends at EndHour:00.
	EndHour int `yaml:"end-hour"`
	// Scale is the number of display units (pixels, terminal rows, ...) per
	// hour.
	Scale float64 `yaml:"scale"`
}

// Validate returns a ConfigurationError if the window is unusable.
func (w TimeWindow) Validate() error {
	switch {
	case w.StartHour < 0 || w.StartHour > 24:
		return &ConfigurationError{Field: "start-hour", Reason: fmt.Sprintf("%d not within 0..24", w.StartHour)}
	case w.EndHour < 0 || w.EndHour > 24:
		return &ConfigurationError{Field: "end-hour", Reason: fmt.Sprintf("%d not within 0..24", w.EndHour)}
	case w.StartHour > w.EndHour:
		return &ConfigurationError{Field: "end-hour", Reason: fmt.Sprintf("end hour %d before start hour %d", w.EndHour, w.StartHour)}
	case !(w.Scale > 0):
		return &ConfigurationError{Field: "scale", Reason: fmt.Sprintf("scale %f must be positive", w.Scale)}
	}
	return nil
}

// StartMinute returns the first visible minute of the day.
func (w TimeWindow) StartMinute() int { return w.StartHour * 60 }

// EndMinute returns the last visible minute of the day.
func (w TimeWindow) EndMinute() int { return w.EndHour * 60 }

// Height returns the total height of the window in display units.
func (w TimeWindow) Height() float64 {
	return w.unitsForMinutes(w.EndMinute() - w.StartMinute())
}

// HeightOfDuration returns the number of display units the duration spans.
func (w TimeWindow) HeightOfDuration(dur time.Duration) float64 {
	return w.Scale * (float64(dur) / float64(time.Hour))
}

// MinuteAt returns the minute of the day shown at the given display offset.
// The inverse of the offset computation, used e.g. for axis labels.
func (w TimeWindow) MinuteAt(offset float64) int {
	return w.StartMinute() + int(offset*60/w.Scale)
}

// Shifted returns the window moved by the given number of hours, kept within
// the day and preserving its span.
func (w TimeWindow) Shifted(hours int) TimeWindow {
	span := w.EndHour - w.StartHour
	start := w.StartHour + hours
	if start < 0 {
		start = 0
	}
	if start+span > 24 {
		start = 24 - span
	}
	return TimeWindow{StartHour: start, EndHour: start + span, Scale: w.Scale}
}

func (w TimeWindow) unitsForMinutes(minutes int) float64 {
	return float64(minutes) * w.Scale / 60
}
