package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the configuration data as present in a config file at
// '${SALONPLAN_HOME}/config.yaml'.
type Config struct {
	Schedule   Schedule      `yaml:"schedule"`
	Storage    Storage       `yaml:"storage"`
	Location   Location      `yaml:"location"`
	Stylesheet Stylesheet    `yaml:"stylesheet"`
	Statuses   []StatusColor `yaml:"statuses"`
}

// Schedule holds the defaults of the grid shown on startup.
//
// Pointer fields are nil when not given, so that an explicit zero (e.g. a
// start hour of 0) can be told apart from an omission.
type Schedule struct {
	Mode      string   `yaml:"mode,omitempty"`
	StartHour *int     `yaml:"start-hour,omitempty"`
	EndHour   *int     `yaml:"end-hour,omitempty"`
	Scale     *float64 `yaml:"scale,omitempty"`
	PackLanes *bool    `yaml:"pack-lanes,omitempty"`
}

// Storage selects and configures the record store.
type Storage struct {
	// Backend is one of "files", "postgres", or "ical".
	Backend string `yaml:"backend,omitempty"`
	// Path is the base directory of the files backend; relative paths are
	// relative to ${SALONPLAN_HOME}.
	Path        string `yaml:"path,omitempty"`
	ICSFile     string `yaml:"ics-file,omitempty"`
	DatabaseURL string `yaml:"database-url,omitempty"`
}

// Location is the salon's position, used for the day/night shading of the
// timeline. Values are decimal degrees as strings; empty means unknown.
type Location struct {
	Latitude  string `yaml:"latitude,omitempty"`
	Longitude string `yaml:"longitude,omitempty"`
}

// A Stylesheet is the stylesheet contents defined in a config file.
type Stylesheet struct {
	Normal              Styling `yaml:"normal"`
	NormalEmphasized    Styling `yaml:"normal-emphasized"`
	TimelineDay         Styling `yaml:"timeline-day"`
	TimelineNight       Styling `yaml:"timeline-night"`
	TimelineNow         Styling `yaml:"timeline-now"`
	Header              Styling `yaml:"header"`
	HeaderUnassigned    Styling `yaml:"header-unassigned"`
	Placeholder         Styling `yaml:"placeholder"`
	Status              Styling `yaml:"status"`
	LogEntryTypeError   Styling `yaml:"log-entry-type-error"`
	LogEntryTypeWarn    Styling `yaml:"log-entry-type-warn"`
	Help                Styling `yaml:"help"`
	AppointmentFallback Styling `yaml:"appointment-fallback"`
}

// A Styling is a styling as defined in a config file.
// It must contain fore- and background colors and can optionally specify font
// style (bold, italic, underlined).
type Styling struct {
	Fg    string     `yaml:"fg"`
	Bg    string     `yaml:"bg"`
	Style *FontStyle `yaml:"style"`
}

// A FontStyle can be any combination of bold, italic, and underlined.
type FontStyle struct {
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underlined bool `yaml:"underlined,omitempty"`
}

// A StatusColor assigns the base color to appointments of a status.
// Appointments carrying their own color use that instead.
type StatusColor struct {
	Status string `yaml:"status"`
	Color  string `yaml:"color"`
	// Faded statuses are drawn with their colors washed out, e.g. cancelled
	// appointments.
	Faded bool `yaml:"faded,omitempty"`
}

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment a given default configuration.
func ParseConfigAugmentDefaults(defaultTheme ColorschemeType, yamlData []byte) (Config, error) {
	var defaultConfig Config
	switch defaultTheme {
	case Light:
		defaultConfig = Default(Light)
	default:
		defaultConfig = Default(Dark)
	}

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%w)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)

	return result, nil
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	result.Schedule = base.Schedule.augmentWith(augment.Schedule)
	result.Storage = base.Storage.augmentWith(augment.Storage)
	if augment.Location.Latitude != "" && augment.Location.Longitude != "" {
		result.Location = augment.Location
	}
	result.Stylesheet = base.Stylesheet.augmentWith(augment.Stylesheet)

	if len(augment.Statuses) > 0 {
		result.Statuses = augment.Statuses
	}

	return result
}

func (base Schedule) augmentWith(augment Schedule) Schedule {
	result := base
	if augment.Mode != "" {
		result.Mode = augment.Mode
	}
	if augment.StartHour != nil {
		result.StartHour = augment.StartHour
	}
	if augment.EndHour != nil {
		result.EndHour = augment.EndHour
	}
	if augment.Scale != nil {
		result.Scale = augment.Scale
	}
	if augment.PackLanes != nil {
		result.PackLanes = augment.PackLanes
	}
	return result
}

func (base Storage) augmentWith(augment Storage) Storage {
	result := base
	if augment.Backend != "" {
		result.Backend = augment.Backend
	}
	if augment.Path != "" {
		result.Path = augment.Path
	}
	if augment.ICSFile != "" {
		result.ICSFile = augment.ICSFile
	}
	if augment.DatabaseURL != "" {
		result.DatabaseURL = augment.DatabaseURL
	}
	return result
}

func (base Stylesheet) augmentWith(augment Stylesheet) Stylesheet {
	result := base

	result.Normal.overwriteIfDefined(augment.Normal)
	result.NormalEmphasized.overwriteIfDefined(augment.NormalEmphasized)
	result.TimelineDay.overwriteIfDefined(augment.TimelineDay)
	result.TimelineNight.overwriteIfDefined(augment.TimelineNight)
	result.TimelineNow.overwriteIfDefined(augment.TimelineNow)
	result.Header.overwriteIfDefined(augment.Header)
	result.HeaderUnassigned.overwriteIfDefined(augment.HeaderUnassigned)
	result.Placeholder.overwriteIfDefined(augment.Placeholder)
	result.Status.overwriteIfDefined(augment.Status)
	result.LogEntryTypeError.overwriteIfDefined(augment.LogEntryTypeError)
	result.LogEntryTypeWarn.overwriteIfDefined(augment.LogEntryTypeWarn)
	result.Help.overwriteIfDefined(augment.Help)
	result.AppointmentFallback.overwriteIfDefined(augment.AppointmentFallback)

	return result
}

func (s *Styling) overwriteIfDefined(augment Styling) {
	if augment.Fg != "" && augment.Bg != "" {
		s.Fg = augment.Fg
		s.Bg = augment.Bg
	}
	if augment.Style != nil {
		s.Style = &FontStyle{
			Bold:       augment.Style.Bold,
			Italic:     augment.Style.Italic,
			Underlined: augment.Style.Underlined,
		}
	}
}

// A ColorschemeType can either be light or dark.
type ColorschemeType = int

const (
	_ ColorschemeType = iota
	Dark
	Light
)

// ParseColorschemeType parses "dark" or "light".
func ParseColorschemeType(s string) (ColorschemeType, error) {
	switch s {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return 0, fmt.Errorf("unknown theme '%s' (want 'dark' or 'light')", s)
	}
}
