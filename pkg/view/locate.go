package view

import "strings"

// Location identifies a child slot inside a container.
type Location struct {
	Container *Node
	Index     int
}

// Node returns the node at the location.
func (l Location) Node() *Node {
	return l.Container.Child(l.Index)
}

// Next returns the sibling following the located node, or nil.
func (l Location) Next() *Node {
	return l.Container.Child(l.Index + 1)
}

// Locate finds the first leaf, in document order, whose binding path equals
// property. Only the first control bound to a property is ever reported. A
// miss is a normal outcome: rules may target properties the form does not
// show. A bound root with no container cannot be located.
func Locate(root *Node, property string) (Location, bool) {
	property = strings.TrimSpace(property)
	if property == "" {
		return Location{}, false
	}
	match := Find(root, func(n *Node) bool {
		path, ok := n.BoundProperty()
		return ok && path == property
	})
	if match == nil || match.parent == nil {
		return Location{}, false
	}
	return Location{Container: match.parent, Index: match.parent.IndexOf(match)}, true
}
