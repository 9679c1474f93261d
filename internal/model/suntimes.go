package model

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// SunTimes represents the sunrise and sunset times of a date.
type SunTimes struct {
	Rise, Set Timestamp
}

// IsDark returns whether the given time of day lies before sunrise or after
// sunset.
func (s SunTimes) IsDark(t Timestamp) bool {
	return !t.IsAfter(s.Rise) || t.IsAfter(s.Set)
}

// SuntimesProvider computes sunrise and sunset for a fixed location, e.g. the
// salon's.
type SuntimesProvider struct {
	Latitude  float64
	Longitude float64
	Location  *time.Location
}

// Get returns the sunrise and sunset times for the given date at the
// provider's coordinates, expressed in the provider's time zone.
func (p *SuntimesProvider) Get(d Date) SunTimes {
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}

	// calculate sunrise sunset (UTC)
	sunriseTime, sunsetTime := sunrise.SunriseSunset(p.Latitude, p.Longitude, d.Year, time.Month(d.Month), d.Day)

	return SunTimes{
		Rise: *NewTimestampFromGotime(sunriseTime.In(loc)),
		Set:  *NewTimestampFromGotime(sunsetTime.In(loc)),
	}
}
