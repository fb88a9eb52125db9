package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned by Document.Form for unknown ids.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Document is a parsed OpenAPI document.
type Document struct {
	source Source
	spec   *openapi3.T
	ops    map[string]operation
}

type operation struct {
	id, method, path string
	op               *openapi3.Operation
}

// Parse loads raw (JSON or YAML) into a Document. Operations without an
// operationId are keyed as "method:path".
func Parse(ctx context.Context, raw []byte, validate bool) (*Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	doc := &Document{spec: spec, ops: make(map[string]operation)}
	if spec.Paths == nil {
		return doc, nil
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := strings.TrimSpace(op.OperationID)
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			doc.ops[id] = operation{id: id, method: strings.ToUpper(method), path: path, op: op}
		}
	}
	return doc, nil
}

// Source returns where the document was loaded from, or nil.
func (d *Document) Source() Source { return d.source }

// Title returns the document's info title.
func (d *Document) Title() string {
	if d.spec == nil || d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// Operations lists operation ids in lexical order.
func (d *Document) Operations() []string {
	ids := make([]string, 0, len(d.ops))
	for id := range d.ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Form derives the form for an operation's request body.
func (d *Document) Form(operationID string) (*Form, error) {
	op, ok := d.ops[strings.TrimSpace(operationID)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	schema := requestSchema(op.op.RequestBody)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", op.id)
	}
	if !hasType(schema, openapi3.TypeObject) && len(schema.Properties) == 0 {
		return nil, fmt.Errorf("openapi: operation %q request body is not an object", op.id)
	}

	title := strings.TrimSpace(op.op.Summary)
	if title == "" {
		title = op.id
	}
	form := &Form{
		OperationID: op.id,
		Method:      op.method,
		Path:        op.path,
		Title:       title,
	}
	if err := form.collect(schema); err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", op.id, err)
	}
	return form, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func hasType(schema *openapi3.Schema, typ string) bool {
	if schema == nil || schema.Type == nil {
		return false
	}
	for _, t := range schema.Type.Slice() {
		if t == typ {
			return true
		}
	}
	return false
}
