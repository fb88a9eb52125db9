// Package demo holds the sample view models, layouts, message catalogs and
// OpenAPI document used by the formcheck-demo binary.
package demo

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/layout"
	"github.com/goliatone/go-formcheck/pkg/openapi"
)

//go:embed assets/layouts/*.yaml assets/messages/*.yaml assets/openapi.yaml
var assets embed.FS

// OpenAPIDocument is the embedded document's path inside Assets.
const OpenAPIDocument = "openapi.yaml"

// Demo describes one runnable sample. Layout demos pair a layout id with a
// struct model; OpenAPI demos derive both view and rules from an operation.
type Demo struct {
	ID          string
	Title       string
	Layout      string
	OperationID string
	NewModel    func() any
}

// OpenAPI reports whether the demo is driven by the embedded OpenAPI document.
func (d Demo) OpenAPI() bool { return d.OperationID != "" }

var demos = map[string]Demo{
	"basic": {
		ID: "basic", Title: "Basic", Layout: "basic",
		NewModel: func() any { return &Basic{} },
	},
	"custom": {
		ID: "custom", Title: "Custom validation", Layout: "custom",
		NewModel: func() any { return &Custom{} },
	},
	"requiredTrue": {
		ID: "requiredTrue", Title: "Required true", Layout: "requiredTrue",
		NewModel: func() any { return &RequiredTrue{} },
	},
	"requiredIfTrue": {
		ID: "requiredIfTrue", Title: "Required if true", Layout: "requiredIfTrue",
		NewModel: func() any { return NewRequiredIfTrue() },
	},
	"requiredIfFalse": {
		ID: "requiredIfFalse", Title: "Required if false", Layout: "requiredIfFalse",
		NewModel: func() any { return &RequiredIfFalse{} },
	},
	"attributes": {
		ID: "attributes", Title: "Attributes", Layout: "attributes",
		NewModel: func() any { return &Attributes{} },
	},
	"signup": {
		ID: "signup", Title: "Sign up (OpenAPI)", OperationID: "createSignup",
	},
}

// IDs lists the demo ids, sorted.
func IDs() []string {
	ids := make([]string, 0, len(demos))
	for id := range demos {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the demo registered under id.
func Lookup(id string) (Demo, bool) {
	d, ok := demos[id]
	return d, ok
}

// Assets exposes the embedded asset tree rooted at assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return assets
	}
	return sub
}

// Layouts loads the embedded layout documents.
func Layouts() (*layout.Store, error) {
	sub, err := fs.Sub(Assets(), "layouts")
	if err != nil {
		return nil, fmt.Errorf("demo: layouts: %w", err)
	}
	return layout.LoadFS(sub)
}

// Messages loads the embedded message catalogs.
func Messages(defaultLocale string) (*i18n.Catalog, error) {
	catalog := i18n.NewCatalog(defaultLocale)
	if err := catalog.LoadFS(Assets(), "messages"); err != nil {
		return nil, fmt.Errorf("demo: messages: %w", err)
	}
	return catalog, nil
}

// Document loads the embedded OpenAPI document.
func Document(ctx context.Context) (*openapi.Document, error) {
	return openapi.Load(ctx, openapi.SourceFromFS(OpenAPIDocument),
		openapi.WithFileSystem(Assets()),
		openapi.WithValidation(),
	)
}
