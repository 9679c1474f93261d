package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key is a single key press, as far as bindings are concerned.
type Key struct {
	Mod tcell.ModMask
	Key tcell.Key
	Ch  rune
}

// KeyFromEvent returns the key of the given tcell event.
//
// Shift is dropped for runes, as it is already reflected in the rune itself
// (e.g. '+' on many layouts).
func KeyFromEvent(e *tcell.EventKey) Key {
	if e.Key() == tcell.KeyRune {
		return Key{Key: tcell.KeyRune, Ch: e.Rune(), Mod: e.Modifiers() &^ tcell.ModShift}
	}
	return Key{Key: e.Key(), Mod: e.Modifiers()}
}

// ToDebugString returns a representation of the key for log output.
func (k *Key) ToDebugString() string {
	return fmt.Sprintf(
		"(%s (%d),'%s'(%d))",
		tcell.KeyNames[k.Key],
		int(k.Key),
		string(k.Ch),
		int(k.Ch),
	)
}

// Keyspec is a key sequence as written in configuration, e.g. "gg" or
// "<c-r>".
type Keyspec string

// Help maps key sequences (in Keyspec notation) to descriptions of what they
// do.
type Help = map[string]string
