package view

// Walk visits root and its descendants depth-first in pre-order (document
// order). Returning false from fn stops the traversal; Walk reports whether
// it ran to completion.
func Walk(root *Node, fn func(*Node) bool) bool {
	if root == nil || fn == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	if root.kind != KindContainer {
		return true
	}
	for _, child := range root.Children() {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// Find returns the first node in document order satisfying match.
func Find(root *Node, match func(*Node) bool) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindRole returns every leaf carrying role, in document order.
func FindRole(root *Node, role Role) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.IsLeaf() && n.Role.Has(role) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Leaves returns every bound leaf in document order.
func Leaves(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if _, ok := n.BoundProperty(); ok {
			out = append(out, n)
		}
		return true
	})
	return out
}
