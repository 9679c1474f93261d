package config

// Default returns the default configuration for the given colorscheme type
// (light or dark).
func Default(colorschemeType ColorschemeType) Config {
	startHour, endHour := 8, 20
	scale := 4.0
	packLanes := true
	return Config{
		Schedule: Schedule{
			Mode:      "staff",
			StartHour: &startHour,
			EndHour:   &endHour,
			Scale:     &scale,
			PackLanes: &packLanes,
		},
		Storage: Storage{
			Backend: "files",
			Path:    "data",
		},
		Stylesheet: defaultStylesheet(colorschemeType),
		Statuses: []StatusColor{
			{Status: "pending", Color: "#ccebff"},
			{Status: "checked-in", Color: "#fff0cc"},
			{Status: "completed", Color: "#c2edab"},
			{Status: "cancelled", Color: "#cccccc", Faded: true},
		},
	}
}

func defaultStylesheet(colorschemeType ColorschemeType) Stylesheet {
	if colorschemeType == Light {
		return Stylesheet{
			Normal:              Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
			NormalEmphasized:    Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			TimelineDay:         Styling{Fg: "#c0c0c0", Bg: "#ffffff", Style: &FontStyle{}},
			TimelineNight:       Styling{Fg: "#f0f0f0", Bg: "#000000", Style: &FontStyle{}},
			TimelineNow:         Styling{Fg: "#ffffff", Bg: "#ff0000", Style: &FontStyle{Bold: true}},
			Header:              Styling{Fg: "#000000", Bg: "#e0e0e0", Style: &FontStyle{Bold: true}},
			HeaderUnassigned:    Styling{Fg: "#882222", Bg: "#ffdddd", Style: &FontStyle{Bold: true, Italic: true}},
			Placeholder:         Styling{Fg: "#808080", Bg: "#ffffff", Style: &FontStyle{Italic: true}},
			Status:              Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			LogEntryTypeError:   Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
			LogEntryTypeWarn:    Styling{Fg: "#cc8f00", Bg: "#fff0cc", Style: &FontStyle{Bold: true}},
			Help:                Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
			AppointmentFallback: Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{}},
		}
	}
	return Stylesheet{
		Normal:              Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
		NormalEmphasized:    Styling{Fg: "#ffffff", Bg: "#202020", Style: &FontStyle{}},
		TimelineDay:         Styling{Fg: "#f0f0f0", Bg: "#000000", Style: &FontStyle{}},
		TimelineNight:       Styling{Fg: "#f0f0f0", Bg: "#222255", Style: &FontStyle{}},
		TimelineNow:         Styling{Fg: "#ffffff", Bg: "#cc0000", Style: &FontStyle{Bold: true}},
		Header:              Styling{Fg: "#ffffff", Bg: "#303030", Style: &FontStyle{Bold: true}},
		HeaderUnassigned:    Styling{Fg: "#ffaaaa", Bg: "#442222", Style: &FontStyle{Bold: true, Italic: true}},
		Placeholder:         Styling{Fg: "#808080", Bg: "#000000", Style: &FontStyle{Italic: true}},
		Status:              Styling{Fg: "#f0f0f0", Bg: "#000000", Style: &FontStyle{}},
		LogEntryTypeError:   Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
		LogEntryTypeWarn:    Styling{Fg: "#fff0cc", Bg: "#cc8f00", Style: &FontStyle{Bold: true}},
		Help:                Styling{Fg: "#ffffff", Bg: "#404040", Style: &FontStyle{}},
		AppointmentFallback: Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{}},
	}
}
