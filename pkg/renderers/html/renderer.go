// Package html renders a view tree, feedback labels included, as an HTML
// snapshot using pongo2 templates.
package html

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/view"
)

// Renderer implements render.Renderer.
type Renderer struct {
	tpl    *pongo2.Template
	funcs  map[string]any
	logger *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New parses the entry template from the configured bundle.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), entry: FormTemplate}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	set := pongo2.NewSet("formcheck-html", pongo2.NewFSLoader(cfg.templateFS))
	tpl, err := set.FromFile(cfg.entry)
	if err != nil {
		return nil, fmt.Errorf("html renderer: load template %q: %w", cfg.entry, err)
	}
	return &Renderer{tpl: tpl, funcs: cfg.funcs, logger: cfg.logger}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes root as HTML. Values of bound controls come from
// options.Model; theme tokens become CSS custom properties on the form and
// feedback labels without a colour take the theme's message colour.
func (r *Renderer) Render(ctx context.Context, root *view.Node, options render.RenderOptions) ([]byte, error) {
	if root == nil {
		return nil, errors.New("html renderer: view root is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := render.Snapshot(root, options.Model)
	items := flatten(snap, render.MessageColor(options.Theme), nil)

	data := pongo2.Context{}
	for name, fn := range r.funcs {
		data[name] = fn
	}
	data.Update(pongo2.Context{
		"title":    strings.TrimSpace(options.Title),
		"locale":   options.Locale,
		"items":    items,
		"messages": snap.Messages(),
		"style":    cssVars(options),
	})
	out, err := r.tpl.ExecuteBytes(data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	r.logger.Debug("rendered view", zap.Int("items", len(items)), zap.Int("bytes", len(out)))
	return out, nil
}

type item struct {
	render.Element
	Open        bool
	Close       bool
	Orientation string
	Kind        string
	HTML        string
	Style       string
	Message     bool
}

func flatten(el render.Element, messageColor string, out []item) []item {
	if el.Container {
		orientation := view.Vertical.String()
		if el.Horizontal {
			orientation = view.Horizontal.String()
		}
		out = append(out, item{Element: el, Open: true, Orientation: orientation})
		for _, child := range el.Children {
			out = flatten(child, messageColor, out)
		}
		return append(out, item{Element: el, Close: true})
	}

	it := item{Element: el, Kind: leafKind(el), HTML: sanitizeText(el.Text)}
	// Engine labels are centred; adopted placeholders are not.
	it.Message = el.Center || (el.Placeholder && el.Visible && el.Text != "")
	color := el.Color
	if color == "" && it.Message {
		color = messageColor
	}
	var style []string
	if color != "" {
		style = append(style, "color: "+color)
	}
	if el.Center {
		style = append(style, "text-align: center")
	}
	it.Style = strings.Join(style, "; ")
	return append(out, it)
}

func leafKind(el render.Element) string {
	switch el.Widget {
	case view.WidgetLabel:
		return "label"
	case view.WidgetButton, view.WidgetMenuItem:
		return "button"
	case view.WidgetEditor:
		return "textarea"
	}
	switch view.Facet(el.Facet) {
	case view.FacetSelection:
		return "select"
	case view.FacetToggle:
		return "checkbox"
	case view.FacetDate:
		return "date"
	case view.FacetText:
		return "text"
	}
	return ""
}

func cssVars(options render.RenderOptions) string {
	if options.Theme == nil || len(options.Theme.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(options.Theme.CSSVars))
	for key := range options.Theme.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+options.Theme.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}
