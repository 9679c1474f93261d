// Package action holds what key bindings trigger.
package action

// Action is something a key binding can trigger, along with a description for
// the help display.
type Action interface {
	Do()
	Explain() string
}
