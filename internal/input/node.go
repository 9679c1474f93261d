package input

import (
	"github.com/ja-he/salonplan/internal/control/action"
)

// Node is a node in a Tree.
// It has either child nodes or an action, never both.
type Node struct {
	Children map[Key]*Node
	Action   action.Action
}

// Child returns the child node for the given Key, or nil if there is none.
func (n *Node) Child(k Key) *Node {
	return n.Children[k]
}

// IsLeaf returns whether the node holds an action.
func (n *Node) IsLeaf() bool {
	return n.Action != nil
}

// GetHelp returns the help for all sequences below this node, keyed by the
// sequence relative to it. A leaf yields its own explanation under the empty
// sequence.
func (n *Node) GetHelp() Help {
	help := Help{}
	n.collectHelp("", help)
	return help
}

func (n *Node) collectHelp(prefix string, help Help) {
	if n.Action != nil {
		help[prefix] = n.Action.Explain()
		return
	}
	for key, child := range n.Children {
		child.collectHelp(prefix+ToConfigIdentifierString(key), help)
	}
}

// NewNode returns a pointer to a new empty node Node with initialized children.
//
// NOTE: to construct a leaf with an action, prefer NewLeaf.
func NewNode() *Node {
	return &Node{
		Children: make(map[Key]*Node),
	}
}

// NewLeaf returns a pointer to a new action leaf Node without children.
func NewLeaf(action action.Action) *Node {
	return &Node{
		Action: action,
	}
}
