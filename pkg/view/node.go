package view

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotContainer is returned when a child operation targets a leaf.
	ErrNotContainer = errors.New("view: node is not a container")
	// ErrIndexOutOfRange is returned by InsertAt for an index outside [0, Len].
	ErrIndexOutOfRange = errors.New("view: index out of range")
	// ErrAttached is returned when inserting a node that already has a parent.
	ErrAttached = errors.New("view: node already attached")
)

// Kind tags a node as a container or a leaf.
type Kind int

const (
	KindLeaf Kind = iota
	KindContainer
)

func (k Kind) String() string {
	if k == KindContainer {
		return "container"
	}
	return "leaf"
}

// Orientation controls how a container lays out its children.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Facet names the bindable property of a control that carries the model
// value.
type Facet string

const (
	FacetText      Facet = "text"
	FacetSelection Facet = "selection"
	FacetToggle    Facet = "toggle"
	FacetDate      Facet = "date"
)

// Facets lists the recognised facets in the order they are consulted.
var Facets = []Facet{FacetText, FacetSelection, FacetToggle, FacetDate}

// Binding ties one facet of a leaf to a model property path.
type Binding struct {
	Facet Facet
	Path  string
}

// Role is a flag set marking leaves the engine treats specially.
type Role uint8

const (
	RoleNone Role = 0
	// RolePlaceholder marks an author-declared feedback label that directly
	// follows the field it reports on.
	RolePlaceholder Role = 1 << iota
	// RoleCustomFeedback marks the single label used by whole-model checks.
	RoleCustomFeedback
	// RoleCommitTrigger marks the control that starts a validation pass.
	RoleCommitTrigger
)

// Has reports whether every flag in flag is set.
func (r Role) Has(flag Role) bool {
	return flag != RoleNone && r&flag == flag
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	var parts []string
	if r.Has(RolePlaceholder) {
		parts = append(parts, "placeholder")
	}
	if r.Has(RoleCustomFeedback) {
		parts = append(parts, "customFeedback")
	}
	if r.Has(RoleCommitTrigger) {
		parts = append(parts, "commitTrigger")
	}
	return strings.Join(parts, "|")
}

// Style carries the presentation hints the engine sets on feedback labels.
type Style struct {
	Color  string
	Center bool
}

// Node is a container or a leaf in a form tree. Exported fields are plain
// data; structural changes go through the container methods so parent links
// stay consistent.
type Node struct {
	ID     string
	Widget string
	// Orientation applies to containers only.
	Orientation Orientation
	// Bindings apply to leaves only; at most one is expected.
	Bindings []Binding
	Role     Role
	Text     string
	Visible  bool
	Style    Style
	// Options holds the choices of selection controls.
	Options []string

	kind     Kind
	parent   *Node
	children []*Node
	handlers []*handler
}

type handler struct {
	fn func() error
}

// NewContainer builds a container with the given orientation and children.
// It panics if a child is already attached elsewhere.
func NewContainer(orientation Orientation, children ...*Node) *Node {
	n := &Node{kind: KindContainer, Widget: "stack", Orientation: orientation, Visible: true}
	for _, child := range children {
		if err := n.Append(child); err != nil {
			panic(err)
		}
	}
	return n
}

// NewLeaf builds a visible leaf for widget.
func NewLeaf(widget string) *Node {
	return &Node{kind: KindLeaf, Widget: widget, Visible: true}
}

// Kind returns the node tag.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindLeaf
	}
	return n.kind
}

// IsContainer reports whether n holds children.
func (n *Node) IsContainer() bool { return n != nil && n.kind == KindContainer }

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool { return n != nil && n.kind == KindLeaf }

// Parent returns the enclosing container, or nil for a root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// BoundProperty returns the path of the first non-empty binding, consulting
// facets in Facets order.
func (n *Node) BoundProperty() (string, bool) {
	if n == nil || n.kind != KindLeaf {
		return "", false
	}
	for _, facet := range Facets {
		for _, b := range n.Bindings {
			if b.Facet == facet && strings.TrimSpace(b.Path) != "" {
				return strings.TrimSpace(b.Path), true
			}
		}
	}
	return "", false
}

// Binding returns the first non-empty binding declared on the leaf.
func (n *Node) Binding() (Binding, bool) {
	path, ok := n.BoundProperty()
	if !ok {
		return Binding{}, false
	}
	for _, facet := range Facets {
		for _, b := range n.Bindings {
			if b.Facet == facet && strings.TrimSpace(b.Path) == path {
				return b, true
			}
		}
	}
	return Binding{}, false
}

// Bind declares a binding on the leaf and returns it for chaining.
func (n *Node) Bind(facet Facet, path string) *Node {
	n.Bindings = append(n.Bindings, Binding{Facet: facet, Path: path})
	return n
}

// WithRole adds role flags and returns the node for chaining.
func (n *Node) WithRole(role Role) *Node {
	n.Role |= role
	return n
}

// WithID sets the node identifier and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// Hidden marks the node invisible and returns it for chaining.
func (n *Node) Hidden() *Node {
	n.Visible = false
	return n
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Children returns a copy of the child slice.
func (n *Node) Children() []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	return append([]*Node(nil), n.children...)
}

// Child returns the child at index, or nil when out of range.
func (n *Node) Child(index int) *Node {
	if n == nil || index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// IndexOf returns the position of child, or -1.
func (n *Node) IndexOf(child *Node) int {
	if n == nil {
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// NextSibling returns the node immediately after n in its parent.
func (n *Node) NextSibling() *Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	return parent.Child(parent.IndexOf(n) + 1)
}

// Append adds children at the end of the container.
func (n *Node) Append(children ...*Node) error {
	for _, child := range children {
		if err := n.InsertAt(n.Len(), child); err != nil {
			return err
		}
	}
	return nil
}

// InsertAt places child at index, shifting later children right.
func (n *Node) InsertAt(index int, child *Node) error {
	if !n.IsContainer() {
		return ErrNotContainer
	}
	if child == nil {
		return fmt.Errorf("view: insert nil child")
	}
	if child.parent != nil {
		return ErrAttached
	}
	if index < 0 || index > len(n.children) {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrIndexOutOfRange, index, len(n.children))
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	return nil
}

// Remove detaches child from the container. It reports whether child was
// found.
func (n *Node) Remove(child *Node) bool {
	idx := n.IndexOf(child)
	if idx < 0 {
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	child.parent = nil
	return true
}

// OnActivate registers fn to run when the node is activated (button press,
// menu selection). The returned func detaches the handler.
func (n *Node) OnActivate(fn func() error) (detach func()) {
	if n == nil || fn == nil {
		return func() {}
	}
	h := &handler{fn: fn}
	n.handlers = append(n.handlers, h)
	return func() {
		for i, existing := range n.handlers {
			if existing == h {
				n.handlers = append(n.handlers[:i], n.handlers[i+1:]...)
				return
			}
		}
	}
}

// Activate runs the registered handlers in registration order.
func (n *Node) Activate() error {
	if n == nil {
		return nil
	}
	handlers := append([]*handler(nil), n.handlers...)
	var errs []error
	for _, h := range handlers {
		if err := h.fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.kind == KindContainer {
		return fmt.Sprintf("%s(%s, %d children)", n.Widget, n.Orientation, len(n.children))
	}
	if path, ok := n.BoundProperty(); ok {
		return fmt.Sprintf("%s[%s]", n.Widget, path)
	}
	if n.Text != "" {
		return fmt.Sprintf("%s(%q)", n.Widget, n.Text)
	}
	return n.Widget
}
