package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Timestamp is a time of day with minute granularity.
//
// Hour 24 (with minute 0) is allowed to represent the end of a day.
type Timestamp struct {
	Hour, Minute int
}

// NewTimestampFromGotime returns the time-of-day of the given time.
func NewTimestampFromGotime(t time.Time) *Timestamp {
	return &Timestamp{Hour: t.Hour(), Minute: t.Minute()}
}

var timestampRegex = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// ParseTimestamp parses a string in the 24-hour "HH:MM" format.
func ParseTimestamp(s string) (Timestamp, error) {
	match := timestampRegex.FindStringSubmatch(s)
	if match == nil {
		return Timestamp{}, fmt.Errorf("given string '%s' which does not fit the HH:MM format", s)
	}
	h, _ := strconv.Atoi(match[1])
	m, _ := strconv.Atoi(match[2])
	ts := Timestamp{Hour: h, Minute: m}
	if !ts.Legal() {
		return Timestamp{}, fmt.Errorf("timestamp '%s' out of range", s)
	}
	return ts, nil
}

// Legal returns whether the timestamp lies within 00:00 and 24:00.
func (t Timestamp) Legal() bool {
	if t.Hour == 24 {
		return t.Minute == 0
	}
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// ToString returns the timestamp in "HH:MM" format.
func (t Timestamp) ToString() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// IsBefore returns whether the receiver is strictly earlier than b.
func (t Timestamp) IsBefore(b Timestamp) bool {
	return t.Minutes() < b.Minutes()
}

// IsAfter returns whether the receiver is strictly later than b.
func (t Timestamp) IsAfter(b Timestamp) bool {
	return t.Minutes() > b.Minutes()
}

// Minutes returns the number of minutes into the day (from 00:00) that this
// timestamp is.
func (t Timestamp) Minutes() int {
	return t.Hour*60 + t.Minute
}

// TimestampFromMinutes is the inverse of Minutes.
func TimestampFromMinutes(minutes int) Timestamp {
	return Timestamp{Hour: minutes / 60, Minute: minutes % 60}
}

// DurationInMinutesUntil returns the duration in minutes until a given
// timestamp t2.
// Does not check that t2 is in fact later!
func (t Timestamp) DurationInMinutesUntil(t2 Timestamp) int {
	return t2.Minutes() - t.Minutes()
}

// Snap rounds the timestamp to the nearest multiple of the given number of
// minutes.
func (t Timestamp) Snap(minutesModulus int) Timestamp {
	minutes := t.Minutes()

	before := minutes - minutes%minutesModulus
	after := before + minutesModulus

	if after-minutes <= minutes-before {
		return TimestampFromMinutes(after)
	}
	return TimestampFromMinutes(before)
}
