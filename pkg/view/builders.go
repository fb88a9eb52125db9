package view

// Widget names used by the builders below. The layout loader and the hosts
// share them through pkg/widgets.
const (
	WidgetStack       = "stack"
	WidgetEntry       = "entry"
	WidgetEditor      = "editor"
	WidgetPicker      = "picker"
	WidgetSwitch      = "switch"
	WidgetCheckbox    = "checkbox"
	WidgetDatePicker  = "datepicker"
	WidgetLabel       = "label"
	WidgetButton      = "button"
	WidgetMenuItem    = "menuitem"
	WidgetPlaceholder = WidgetLabel
)

// VStack builds a vertical container.
func VStack(children ...*Node) *Node { return NewContainer(Vertical, children...) }

// HStack builds a horizontal container.
func HStack(children ...*Node) *Node { return NewContainer(Horizontal, children...) }

// Entry builds a single-line text control bound to path.
func Entry(path string) *Node { return NewLeaf(WidgetEntry).Bind(FacetText, path) }

// Editor builds a multi-line text control bound to path.
func Editor(path string) *Node { return NewLeaf(WidgetEditor).Bind(FacetText, path) }

// Picker builds a selection control bound to path.
func Picker(path string, options ...string) *Node {
	n := NewLeaf(WidgetPicker).Bind(FacetSelection, path)
	n.Options = append([]string(nil), options...)
	return n
}

// Switch builds a toggle control bound to path.
func Switch(path string) *Node { return NewLeaf(WidgetSwitch).Bind(FacetToggle, path) }

// DatePicker builds a date control bound to path.
func DatePicker(path string) *Node { return NewLeaf(WidgetDatePicker).Bind(FacetDate, path) }

// Label builds a static text leaf.
func Label(text string) *Node {
	n := NewLeaf(WidgetLabel)
	n.Text = text
	return n
}

// Placeholder builds a hidden label reserved for the feedback of the field
// placed right before it.
func Placeholder() *Node {
	return NewLeaf(WidgetPlaceholder).WithRole(RolePlaceholder).Hidden()
}

// CustomFeedback builds the hidden label used by whole-model checks.
func CustomFeedback() *Node {
	return NewLeaf(WidgetLabel).WithRole(RoleCustomFeedback).Hidden()
}

// Button builds a pressable leaf.
func Button(text string) *Node {
	n := NewLeaf(WidgetButton)
	n.Text = text
	return n
}

// CommitButton builds the button that starts a validation pass.
func CommitButton(text string) *Node {
	return Button(text).WithRole(RoleCommitTrigger)
}
