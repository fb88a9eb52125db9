package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/view"
)

// TextRenderer writes a plain-text outline of a view tree: one line per
// visible leaf, indented by depth, with feedback prefixed by the theme's
// error prefix.
type TextRenderer struct {
	theme Theme
}

var _ render.Renderer = (*TextRenderer)(nil)

// NewTextRenderer returns an outline renderer using theme prefixes.
func NewTextRenderer(theme Theme) *TextRenderer {
	return &TextRenderer{theme: theme}
}

func (r *TextRenderer) Name() string {
	return "text"
}

func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *TextRenderer) Render(ctx context.Context, root *view.Node, options render.RenderOptions) ([]byte, error) {
	if root == nil {
		return nil, errors.New("tui: view root is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var b strings.Builder
	if title := strings.TrimSpace(options.Title); title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}
	r.write(&b, render.Snapshot(root, options.Model), 0)
	return []byte(b.String()), nil
}

func (r *TextRenderer) write(b *strings.Builder, el render.Element, depth int) {
	if el.Container {
		for _, child := range el.Children {
			r.write(b, child, depth+1)
		}
		return
	}
	if !el.Visible {
		return
	}
	line := r.line(el)
	if line == "" {
		return
	}
	b.WriteString(strings.Repeat("  ", max(depth-1, 0)))
	b.WriteString(line)
	b.WriteString("\n")
}

func (r *TextRenderer) line(el render.Element) string {
	switch {
	case el.Path != "" && el.Facet == string(view.FacetToggle):
		mark := "[ ]"
		if el.Checked {
			mark = "[x]"
		}
		return mark + " " + el.Path
	case el.Path != "" && len(el.Options) > 0:
		return el.Path + " = " + el.Value + " (" + strings.Join(el.Options, "|") + ")"
	case el.Path != "":
		return el.Path + " = " + el.Value
	case el.Commit || el.Widget == view.WidgetButton || el.Widget == view.WidgetMenuItem:
		return "(" + el.Text + ")"
	case el.Text == "":
		return ""
	case el.Center || el.Placeholder || el.Feedback:
		return r.theme.ErrorPrefix + el.Text
	default:
		return el.Text
	}
}
