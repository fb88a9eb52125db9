// Package formcheck binds declarative validation rules to a view tree. It
// re-exports the common types and assembles forms from layout documents or
// OpenAPI operations.
package formcheck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formcheck/pkg/form"
	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/layout"
	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/renderers/html"
	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/view"
	"github.com/goliatone/go-formcheck/pkg/widgets"
)

// Failure aliases rules.Failure.
type Failure = rules.Failure

// Failures aliases rules.Failures.
type Failures = rules.Failures

// Outcome aliases form.Outcome.
type Outcome = form.Outcome

// CustomValidator aliases form.CustomValidator.
type CustomValidator = form.CustomValidator

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Bind creates a form over root and binds model to it.
func Bind(root *view.Node, model any, options ...form.Option) (*form.Form, error) {
	f, err := form.New(root, options...)
	if err != nil {
		return nil, err
	}
	if err := f.Bind(model); err != nil {
		return nil, err
	}
	return f, nil
}

// Request describes where a form's view and rules come from. Set either
// Layouts/LayoutID or Document/OperationID.
type Request struct {
	Layouts  *layout.Store
	LayoutID string

	Document    *openapi.Document
	OperationID string

	// Model is bound to the form. OpenAPI requests default to the schema's
	// default values when Model is nil.
	Model any

	Widgets    *widgets.Registry
	Translator i18n.Translator
	Locale     string
}

// Assemble builds the view tree for req, binds the model and returns the
// ready form. A Translator supplies both layout text and rule messages.
func Assemble(ctx context.Context, req Request, options ...form.Option) (*form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Translator != nil {
		options = append([]form.Option{form.WithTemplates(i18n.Templates(req.Translator, req.Locale))}, options...)
	}

	switch {
	case req.Layouts != nil:
		l, ok := req.Layouts.Layout(req.LayoutID)
		if !ok {
			return nil, fmt.Errorf("formcheck: layout %q not found", req.LayoutID)
		}
		root, err := l.Build(layout.WithWidgets(req.Widgets), layout.WithTranslator(req.Translator, req.Locale))
		if err != nil {
			return nil, err
		}
		return Bind(root, req.Model, options...)

	case req.Document != nil:
		def, err := req.Document.Form(req.OperationID)
		if err != nil {
			return nil, err
		}
		set, err := def.RuleSet()
		if err != nil {
			return nil, err
		}
		root, err := def.View(req.Widgets)
		if err != nil {
			return nil, err
		}
		model := req.Model
		if model == nil {
			model = def.Defaults()
		}
		return Bind(root, model, append(options, form.WithRuleSet(set))...)
	}
	return nil, errors.New("formcheck: request needs a layout store or an OpenAPI document")
}

// EmbeddedTemplates exposes the HTML renderer's built-in templates so callers
// can copy and extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
