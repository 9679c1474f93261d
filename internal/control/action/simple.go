package action

// Simple is an Action backed by plain functions.
type Simple struct {
	do      func()
	explain func() string
}

// NewSimple returns an action calling do when triggered. The explanation is
// evaluated on every call to Explain, so it can follow state such as the
// current mode ("next day" vs "next week").
func NewSimple(explain func() string, do func()) *Simple {
	return &Simple{do: do, explain: explain}
}

// Static returns an action with a fixed explanation.
func Static(explanation string, do func()) *Simple {
	return NewSimple(func() string { return explanation }, do)
}

// Do triggers the action.
func (a *Simple) Do() { a.do() }

// Explain describes what Do does, for the help overlay.
func (a *Simple) Explain() string { return a.explain() }
