package form

import (
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/view"
)

// CustomValidator is implemented by models that carry a whole-model check
// beyond their declared rules. ValidateForm returns an empty string when the
// model is valid and the message to show otherwise. It only runs once every
// declared rule holds.
type CustomValidator interface {
	ValidateForm() string
}

// customFeedback is the single label whole-model messages are shown in.
type customFeedback struct {
	label        *view.Node
	priorVisible bool
}

func findCustomFeedback(root *view.Node) (*view.Node, error) {
	found := view.FindRole(root, view.RoleCustomFeedback)
	switch len(found) {
	case 0:
		return nil, ErrNoCustomFeedback
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleCustomFeedback, len(found))
	}
}

func (c *customFeedback) show(message string) {
	c.label.Text = message
	c.label.Visible = true
}

func (c *customFeedback) restore() {
	c.label.Text = ""
	c.label.Visible = c.priorVisible
}
