package action_test

import (
	"testing"

	"github.com/ja-he/salonplan/internal/control/action"
)

func TestSimple(t *testing.T) {

	t.Run("Do", func(t *testing.T) {
		becomesTrue := false
		s := action.NewSimple(func() string { return "sets flag to true" }, func() { becomesTrue = true })
		s.Do()
		if !becomesTrue {
			t.Error("action was not executed properly (flag unchanged)")
		}
	})

	t.Run("Explain", func(t *testing.T) {
		e := "next day"
		s := action.NewSimple(func() string { return e }, func() {})
		if s.Explain() != "next day" {
			t.Error("initial explanation wrong:", s.Explain())
		}
		e = "next week"
		if s.Explain() != "next week" {
			t.Error("changed explanation wrong:", s.Explain())
		}
	})

	t.Run("Static", func(t *testing.T) {
		var a action.Action = action.Static("quit", func() {})
		if a.Explain() != "quit" {
			t.Error("static explanation wrong:", a.Explain())
		}
	})
}
