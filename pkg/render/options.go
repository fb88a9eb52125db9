package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-call data a renderer needs besides the tree.
type RenderOptions struct {
	// Title heads the rendered output when set.
	Title string
	// Locale is passed to templates that translate text.
	Locale string
	// Model supplies the values shown in bound controls.
	Model any
	// Theme is a resolved theme selection, see theme.Selection.RendererTheme.
	Theme *theme.RendererConfig
}
