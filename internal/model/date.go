package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Date	represents a date, i.e. a year, month and day.
type Date struct {
	Year  int
	Month int
	Day   int
}

var dateRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ParseDate creates a date from a string in the format "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	parsed := dateRegex.FindStringSubmatch(s)
	if parsed == nil {
		return Date{}, fmt.Errorf("date string '%s' does not fit the YYYY-MM-DD format", s)
	}

	year, errY := strconv.Atoi(parsed[1])
	month, errM := strconv.Atoi(parsed[2])
	day, errD := strconv.Atoi(parsed[3])
	if errY != nil || errM != nil || errD != nil {
		return Date{}, fmt.Errorf("could not convert string '%s' (assuming YYYY-MM-DD format) to integers", s)
	}

	result := Date{Year: year, Month: month, Day: day}
	if !result.Valid() {
		return Date{}, fmt.Errorf("day %s (from string '%s') not valid", result.String(), s)
	}
	return result, nil
}

// DateFromGotime returns the date of the given time.Time in its location.
func DateFromGotime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// String returns the date as a string in the format "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid returns whether the date is valid.
// A date such as the 31st of February is invalid, for example.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= d.LastOfMonth().Day
}

// Next returns the next date.
func (d Date) Next() Date {
	return d.Forward(1)
}

// Prev returns the previous date.
func (d Date) Prev() Date {
	return d.Forward(-1)
}

// Forward returns a date that is `by`-many days after the receiver.
// Negative values go backward.
func (d Date) Forward(by int) Date {
	return DateFromGotime(d.toUTC().AddDate(0, 0, by))
}

// Backward returns a date that is `by`-many days before the receiver.
func (d Date) Backward(by int) Date {
	return d.Forward(-by)
}

// IsAfter returns whether the receiver is strictly after the other date.
func (d Date) IsAfter(other Date) bool {
	switch {
	case d.Year != other.Year:
		return d.Year > other.Year
	case d.Month != other.Month:
		return d.Month > other.Month
	default:
		return d.Day > other.Day
	}
}

// IsBefore returns whether the receiver is strictly before the other date.
func (d Date) IsBefore(other Date) bool {
	return other.IsAfter(d)
}

// DaysUntil returns the number of days from the receiver until `other` is
// reached (e.g. from 2021-12-14 until 2021-12-19 -> 5 days).
// The result is negative if `other` is before the receiver.
func (d Date) DaysUntil(other Date) int {
	return int(other.toUTC().Sub(d.toUTC()).Hours() / 24)
}

// LastOfMonth returns the last date of the month of the receiver.
func (d Date) LastOfMonth() Date {
	firstOfNext := time.Date(d.Year, time.Month(d.Month)+1, 1, 0, 0, 0, 0, time.UTC)
	return DateFromGotime(firstOfNext.AddDate(0, 0, -1))
}

// WeekBounds returns the monday and sunday of the week the receiver is in.
func (d Date) WeekBounds() (monday Date, sunday Date) {
	offset := (int(d.ToWeekday()) + 6) % 7
	monday = d.Backward(offset)
	return monday, monday.Forward(6)
}

// ToWeekday returns the weekday of the receiver.
func (d Date) ToWeekday() time.Weekday {
	return d.toUTC().Weekday()
}

// Is returns whether the receiver is the same date as the given time.
func (d Date) Is(t time.Time) bool {
	return DateFromGotime(t) == d
}

// ToGotime returns the date as a time.Time at midnight in the given location.
func (d Date) ToGotime(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

func (d Date) toUTC() time.Time {
	return d.ToGotime(time.UTC)
}

// DateRange is an inclusive range of dates.
type DateRange struct {
	Start Date
	End   Date
}

// SingleDay returns the range spanning only the given date.
func SingleDay(d Date) DateRange {
	return DateRange{Start: d, End: d}
}

// WeekOf returns the monday-to-sunday range of the week the given date is in.
func WeekOf(d Date) DateRange {
	monday, sunday := d.WeekBounds()
	return DateRange{Start: monday, End: sunday}
}

// Valid returns whether both ends are valid dates and the end is not before
// the start.
func (r DateRange) Valid() bool {
	return r.Start.Valid() && r.End.Valid() && !r.End.IsBefore(r.Start)
}

// Contains returns whether the date lies within the range (inclusive).
func (r DateRange) Contains(d Date) bool {
	return !d.IsBefore(r.Start) && !d.IsAfter(r.End)
}

// Dates returns every date of the range in chronological order.
// An inverted range yields no dates.
func (r DateRange) Dates() []Date {
	n := r.Start.DaysUntil(r.End) + 1
	if n <= 0 {
		return nil
	}
	result := make([]Date, 0, n)
	for current := r.Start; !current.IsAfter(r.End); current = current.Next() {
		result = append(result, current)
	}
	return result
}

func (r DateRange) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + ".." + r.End.String()
}
