package input

import (
	"fmt"

	"github.com/ja-he/salonplan/internal/control/action"
)

// Tree represents an input tree, which can contain various input sequences
// that terminate in an action.
//
// Example:
//
//	tree:                       mapping:
//
//	g
//	+-g     -> action1          "gg"  -> action1
//	+-t     -> action2          "gt"  -> action2
//	q       -> action3          "q"   -> action3
type Tree struct {
	Root    *Node
	Current *Node
}

// ProcessInput attempts to process the provided input.
// Returns whether the provided input "applied", i.E. an action was performed
// or a sequence was continued.
func (t *Tree) ProcessInput(k Key) (applied bool) {
	next := t.Current.Child(k)
	switch {
	case next == nil:
		t.Current = t.Root
		return false
	case next.IsLeaf():
		t.Current = t.Root
		next.Action.Do()
		return true
	default:
		t.Current = next
		return true
	}
}

// CapturesInput returns whether the tree is in the middle of a sequence.
func (t *Tree) CapturesInput() bool {
	return t.Current != t.Root
}

// GetHelp returns the help for all sequences of the tree.
func (t *Tree) GetHelp() Help {
	return t.Root.GetHelp()
}

// Bind adds the sequence to the tree. It fails if the sequence is empty or if
// it is, or is a prefix of, a sequence already bound. Rebinding a sequence
// replaces its action.
func (t *Tree) Bind(spec Keyspec, a action.Action) error {
	sequence, err := ConfigKeyspecToKeys(spec)
	if err != nil {
		return fmt.Errorf("error converting config keyspec (%w)", err)
	}
	if len(sequence) == 0 {
		return fmt.Errorf("cannot bind empty sequence")
	}

	current := t.Root
	for i, key := range sequence {
		last := i == len(sequence)-1
		next, ok := current.Children[key]
		switch {
		case !ok && last:
			current.Children[key] = NewLeaf(a)
		case !ok:
			next = NewNode()
			current.Children[key] = next
		case last && next.IsLeaf():
			next.Action = a
		case last:
			return fmt.Errorf("'%s' is a prefix of other bound sequences", spec)
		case next.IsLeaf():
			return fmt.Errorf("a prefix of '%s' is bound already", spec)
		}
		current = next
	}
	return nil
}

// ConstructInputTree construct a Tree for the given mappings of input
// sequence strings to actions.
// If the given mapping is invalid, this returns an error.
func ConstructInputTree(spec map[Keyspec]action.Action) (*Tree, error) {
	tree := EmptyTree()
	for mapping, a := range spec {
		if err := tree.Bind(mapping, a); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// EmptyTree returns a pointer to an empty tree.
func EmptyTree() *Tree {
	root := NewNode()
	return &Tree{
		Root:    root,
		Current: root,
	}
}
