package render

import (
	"context"

	"github.com/goliatone/go-formcheck/pkg/view"
)

// Renderer turns a view tree, and the values bound into it, into a byte
// representation (HTML, plain text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, root *view.Node, options RenderOptions) ([]byte, error)
}
