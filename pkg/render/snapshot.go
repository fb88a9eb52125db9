package render

import (
	"github.com/goliatone/go-formcheck/pkg/binding"
	"github.com/goliatone/go-formcheck/pkg/view"
)

// Element is a read-only copy of a view node with its bound value resolved,
// shaped for templates and text output.
type Element struct {
	ID          string
	Widget      string
	Container   bool
	Horizontal  bool
	Path        string
	Facet       string
	Value       string
	Checked     bool
	Text        string
	Options     []string
	Roles       string
	Placeholder bool
	Feedback    bool
	Commit      bool
	Visible     bool
	Color       string
	Center      bool
	Children    []Element
}

// Snapshot copies root into an Element tree, reading bound values from model.
// A nil root yields the zero Element.
func Snapshot(root *view.Node, model any) Element {
	if root == nil {
		return Element{}
	}
	el := Element{
		ID:          root.ID,
		Widget:      root.Widget,
		Container:   root.IsContainer(),
		Horizontal:  root.IsContainer() && root.Orientation == view.Horizontal,
		Text:        root.Text,
		Options:     append([]string(nil), root.Options...),
		Placeholder: root.Role.Has(view.RolePlaceholder),
		Feedback:    root.Role.Has(view.RoleCustomFeedback),
		Commit:      root.Role.Has(view.RoleCommitTrigger),
		Visible:     root.Visible,
		Color:       root.Style.Color,
		Center:      root.Style.Center,
	}
	if root.Role != view.RoleNone {
		el.Roles = root.Role.String()
	}
	if b, ok := root.Binding(); ok {
		el.Path = b.Path
		el.Facet = string(b.Facet)
		if b.Facet == view.FacetToggle {
			value, _ := binding.Get(model, b.Path)
			el.Checked = truthy(value)
		} else {
			el.Value = binding.GetString(model, b.Path)
		}
	}
	for _, child := range root.Children() {
		el.Children = append(el.Children, Snapshot(child, model))
	}
	return el
}

// Messages lists the visible, non-empty texts of feedback labels in tree
// order: engine labels, adopted placeholders and the custom feedback element.
func (e Element) Messages() []string {
	var out []string
	e.walk(func(el Element) {
		if !el.Visible || el.Text == "" {
			return
		}
		if el.Placeholder || el.Feedback || el.Color != "" || el.Center {
			out = append(out, el.Text)
		}
	})
	return out
}

func (e Element) walk(fn func(Element)) {
	fn(e)
	for _, child := range e.Children {
		child.walk(fn)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	case string:
		return v == "true"
	}
	return false
}
