package openapi

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/view"
	"github.com/goliatone/go-formcheck/pkg/widgets"
)

const extensionNamespace = "x-formcheck"

// Field is one request-body property.
type Field struct {
	widgets.Field
	Title   string
	Default any
	order   float64
}

// Form is the validation surface of one operation.
type Form struct {
	OperationID string
	Method      string
	Path        string
	Title       string
	Fields      []Field

	props []rules.Property
	specs []rules.Spec
}

// Shape returns the map shape describing the request body.
func (f *Form) Shape() *rules.Shape {
	return rules.MapShape(f.props...)
}

// Specs returns the rule declarations in field order.
func (f *Form) Specs() []rules.Spec {
	return append([]rules.Spec(nil), f.specs...)
}

// RuleSet resolves Specs against Shape.
func (f *Form) RuleSet() (*rules.Set, error) {
	return rules.NewSet(f.Shape(), f.specs...)
}

// Defaults returns a model seeded with schema defaults. Bool properties
// without a default start as false.
func (f *Form) Defaults() map[string]any {
	model := make(map[string]any, len(f.Fields))
	for _, field := range f.Fields {
		switch {
		case field.Default != nil:
			model[field.Name] = field.Default
		case field.Kind == rules.ValueBool:
			model[field.Name] = false
		}
	}
	return model
}

// View builds a vertical form: a caption and a control per field (switches
// share a horizontal row with their caption), a placeholder after each
// control and a commit button.
func (f *Form) View(reg *widgets.Registry) (*view.Node, error) {
	if reg == nil {
		reg = widgets.NewRegistry()
	}
	root := view.VStack()
	for _, field := range f.Fields {
		control, err := reg.BuildField(field.Field)
		if err != nil {
			return nil, err
		}
		caption := view.Label(field.Title)
		if b, _ := control.Binding(); b.Facet == view.FacetToggle {
			if err := root.Append(view.HStack(caption, control)); err != nil {
				return nil, err
			}
			continue
		}
		if err := root.Append(caption, control, view.Placeholder()); err != nil {
			return nil, err
		}
	}
	if err := root.Append(view.CommitButton(f.Title)); err != nil {
		return nil, err
	}
	return root, nil
}

type hints struct {
	RequiredTrue   bool              `json:"requiredTrue"`
	RequiredIf     string            `json:"requiredIf"`
	RequiredUnless string            `json:"requiredUnless"`
	Widget         string            `json:"widget"`
	Order          *float64          `json:"order"`
	Messages       map[string]string `json:"messages"`
	MessageKeys    map[string]string `json:"messageKeys"`
}

func readHints(schema *openapi3.Schema) (hints, error) {
	var h hints
	raw, ok := schema.Extensions[extensionNamespace]
	if !ok || raw == nil {
		return h, nil
	}
	var payload []byte
	switch v := raw.(type) {
	case json.RawMessage:
		payload = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return h, err
		}
		payload = encoded
	}
	if err := json.Unmarshal(payload, &h); err != nil {
		return h, fmt.Errorf("%s: %w", extensionNamespace, err)
	}
	return h, nil
}

func (f *Form) collect(schema *openapi3.Schema) error {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	type collected struct {
		field Field
		specs []rules.Spec
	}
	var entries []collected
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		h, err := readHints(prop)
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}

		field := Field{
			Field: widgets.Field{
				Name:   name,
				Kind:   valueKind(prop),
				Format: prop.Format,
				Enum:   enumStrings(prop.Enum),
				Widget: h.Widget,
			},
			Title:   strings.TrimSpace(prop.Title),
			Default: prop.Default,
			order:   math.MaxFloat64,
		}
		if field.Title == "" {
			field.Title = name
		}
		if h.Order != nil {
			field.order = *h.Order
		}

		var specs []rules.Spec
		switch {
		case h.RequiredTrue:
			specs = append(specs, rules.RequiredTrue(name))
		case required[name] && field.Kind != rules.ValueBool:
			specs = append(specs, rules.Required(name))
		}
		if other := strings.TrimSpace(h.RequiredIf); other != "" {
			specs = append(specs, rules.RequiredIfTrue(name, other))
		}
		if other := strings.TrimSpace(h.RequiredUnless); other != "" {
			specs = append(specs, rules.RequiredIfFalse(name, other))
		}
		if prop.Min != nil || prop.Max != nil {
			lo, hi := math.Inf(-1), math.Inf(1)
			if prop.Min != nil {
				lo = *prop.Min
			}
			if prop.Max != nil {
				hi = *prop.Max
			}
			specs = append(specs, rules.Range(name, lo, hi))
		}
		for i := range specs {
			kind := string(specs[i].Kind)
			specs[i].Message = h.Messages[kind]
			specs[i].MessageKey = h.MessageKeys[kind]
		}
		entries = append(entries, collected{field: field, specs: specs})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].field.order < entries[j].field.order
	})
	for _, entry := range entries {
		f.Fields = append(f.Fields, entry.field)
		f.props = append(f.props, rules.Property{
			Name:    entry.field.Name,
			Display: entry.field.Title,
			Kind:    entry.field.Kind,
		})
		f.specs = append(f.specs, entry.specs...)
	}

	// Resolve once so bad guards surface while building the form.
	if _, err := f.RuleSet(); err != nil {
		return err
	}
	return nil
}

func valueKind(schema *openapi3.Schema) rules.ValueKind {
	switch {
	case hasType(schema, openapi3.TypeBoolean):
		return rules.ValueBool
	case hasType(schema, openapi3.TypeInteger), hasType(schema, openapi3.TypeNumber):
		return rules.ValueNumber
	case hasType(schema, openapi3.TypeString):
		return rules.ValueString
	default:
		return rules.ValueOther
	}
}

func enumStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch typed := v.(type) {
		case string:
			out = append(out, typed)
		case float64:
			out = append(out, strconv.FormatFloat(typed, 'f', -1, 64))
		default:
			out = append(out, fmt.Sprint(typed))
		}
	}
	return out
}
