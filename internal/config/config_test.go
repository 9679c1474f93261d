package config_test

import (
	"testing"

	"github.com/ja-he/salonplan/internal/config"
)

func TestParseConfigAugmentDefaults(t *testing.T) {

	t.Run("empty file yields defaults", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Dark, []byte{})
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		d := config.Default(config.Dark)
		if c.Schedule.Mode != d.Schedule.Mode || *c.Schedule.StartHour != *d.Schedule.StartHour {
			t.Error("schedule defaults not kept")
		}
		if c.Stylesheet.Normal.Bg != "#000000" {
			t.Error("dark stylesheet not used:", c.Stylesheet.Normal.Bg)
		}
		if len(c.Statuses) != 4 {
			t.Error("default statuses missing")
		}
	})

	t.Run("partial override", func(t *testing.T) {
		data := []byte(`
schedule:
  mode: week
  start-hour: 0
storage:
  backend: postgres
  database-url: postgres://localhost/salon
stylesheet:
  header:
    fg: "#111111"
    bg: "#eeeeee"
  status:
    fg: "#111111"
statuses:
  - status: pending
    color: "#abcdef"
`)
		c, err := config.ParseConfigAugmentDefaults(config.Light, data)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if c.Schedule.Mode != "week" {
			t.Error("mode not overridden:", c.Schedule.Mode)
		}
		if c.Schedule.StartHour == nil || *c.Schedule.StartHour != 0 {
			t.Error("explicit zero start hour not honored")
		}
		if c.Schedule.EndHour == nil || *c.Schedule.EndHour != 20 {
			t.Error("default end hour lost")
		}
		if c.Storage.Backend != "postgres" || c.Storage.Path != "data" {
			t.Errorf("unexpected storage %+v", c.Storage)
		}
		if c.Stylesheet.Header.Fg != "#111111" || c.Stylesheet.Header.Bg != "#eeeeee" {
			t.Error("header styling not overridden")
		}
		if c.Stylesheet.Status.Fg != config.Default(config.Light).Stylesheet.Status.Fg {
			t.Error("half-defined styling should not override")
		}
		if len(c.Statuses) != 1 || c.Statuses[0].Color != "#abcdef" {
			t.Error("statuses not replaced:", c.Statuses)
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := config.ParseConfigAugmentDefaults(config.Dark, []byte("schedule: [1, 2"))
		if err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

func TestParseColorschemeType(t *testing.T) {
	if c, err := config.ParseColorschemeType("light"); err != nil || c != config.Light {
		t.Error("'light' not parsed")
	}
	if _, err := config.ParseColorschemeType("solarized"); err == nil {
		t.Error("expected error for unknown theme")
	}
}
