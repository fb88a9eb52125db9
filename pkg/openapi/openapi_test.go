package openapi_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/form"
	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/view"
)

const petstore = `
openapi: 3.0.3
info:
  title: Signup
  version: 1.0.0
paths:
  /signup:
    post:
      operationId: createSignup
      summary: Sign up
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
                  title: Full name
                  x-formcheck:
                    order: 1
                    messages:
                      required: "{0} please"
                age:
                  type: integer
                  minimum: 18
                  maximum: 99
                  x-formcheck: { order: 2 }
                color:
                  type: string
                  enum: [red, green]
                  x-formcheck: { order: 3 }
                hasNotes:
                  type: boolean
                  default: true
                  x-formcheck: { order: 4 }
                notes:
                  type: string
                  format: textarea
                  x-formcheck: { order: 5, requiredIf: hasNotes }
                terms:
                  type: boolean
                  title: Terms
                  x-formcheck: { order: 6, requiredTrue: true, messageKeys: { requiredTrue: terms.required } }
  /ping:
    get:
      responses:
        "200":
          description: ok
`

func loadForm(t *testing.T) *openapi.Form {
	t.Helper()
	doc, err := openapi.Parse(context.Background(), []byte(petstore), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f, err := doc.Form("createSignup")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	return f
}

func TestDocument_Operations(t *testing.T) {
	doc, err := openapi.Parse(context.Background(), []byte(petstore), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Title() != "Signup" {
		t.Fatalf("unexpected title %q", doc.Title())
	}
	if diff := cmp.Diff([]string{"createSignup", "get:/ping"}, doc.Operations()); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
	if _, err := doc.Form("missing"); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := doc.Form("get:/ping"); err == nil {
		t.Fatalf("expected error for operation without request body")
	}
}

func TestLoad_FromFS(t *testing.T) {
	files := fstest.MapFS{"specs/signup.yaml": {Data: []byte(petstore)}}
	doc, err := openapi.Load(context.Background(), openapi.SourceFromFS("specs/signup.yaml"), openapi.WithFileSystem(files))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Source() == nil || doc.Source().Location() != "specs/signup.yaml" {
		t.Fatalf("unexpected source %+v", doc.Source())
	}

	if _, err := openapi.Load(context.Background(), openapi.SourceFromFS("specs/signup.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestForm_FieldsAndRules(t *testing.T) {
	f := loadForm(t)
	if f.Method != "POST" || f.Path != "/signup" || f.Title != "Sign up" {
		t.Fatalf("unexpected form header %+v", f)
	}

	var names []string
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"name", "age", "color", "hasNotes", "notes", "terms"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	var kinds []rules.Kind
	for _, spec := range f.Specs() {
		kinds = append(kinds, spec.Kind)
	}
	want := []rules.Kind{rules.KindRequired, rules.KindRange, rules.KindRequiredIfTrue, rules.KindRequiredTrue}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("rule kinds mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(map[string]any{"hasNotes": true, "terms": false}, f.Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_RuleSet(t *testing.T) {
	f := loadForm(t)
	set, err := f.RuleSet()
	if err != nil {
		t.Fatalf("rule set: %v", err)
	}

	model := f.Defaults()
	model["age"] = 12
	failures, err := set.Run(model, rules.WithTemplates(rules.TemplateMap{"terms.required": "Accept the {0}"}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := map[string]string{}
	for _, failure := range failures {
		got[failure.Property] = failure.Message
	}
	want := map[string]string{
		"name":  "Full name please",
		"age":   "The field age must be between 18 and 99.",
		"notes": "The notes field is required.",
		"terms": "Accept the Terms",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}

	model = map[string]any{"name": "Ada", "age": 30, "hasNotes": false, "terms": true}
	failures, err = set.Run(model)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !failures.Empty() {
		t.Fatalf("expected no failures, got %+v", failures)
	}
}

func TestForm_ViewBindsIntoOrchestrator(t *testing.T) {
	f := loadForm(t)
	root, err := f.View(nil)
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	var widgets []string
	for _, leaf := range view.Leaves(root) {
		if _, ok := leaf.BoundProperty(); ok {
			widgets = append(widgets, leaf.String())
		}
	}
	want := []string{"entry[name]", "entry[age]", "picker[color]", "switch[hasNotes]", "editor[notes]", "switch[terms]"}
	if diff := cmp.Diff(want, widgets); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}

	set, _ := f.RuleSet()
	committed := 0
	fm, err := form.New(root, form.WithRuleSet(set), form.WithCommit(func() { committed++ }))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if err := fm.Bind(f.Defaults()); err != nil {
		t.Fatalf("bind: %v", err)
	}
	outcome, err := fm.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Committed || committed != 0 {
		t.Fatalf("expected commit to be withheld")
	}
	if diff := cmp.Diff([]string{"name", "notes", "terms"}, outcome.Failures.Properties()); diff != "" {
		t.Fatalf("failing properties mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_BadGuard(t *testing.T) {
	doc := `
openapi: 3.0.3
info: { title: x, version: "1" }
paths:
  /x:
    post:
      operationId: x
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                notes:
                  type: string
                  x-formcheck: { requiredIf: missing }
      responses:
        "200": { description: ok }
`
	parsed, err := openapi.Parse(context.Background(), []byte(doc), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := parsed.Form("x"); !errors.Is(err, rules.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

const quantities = `
openapi: 3.0.3
info: { title: Order, version: 1.0.0 }
paths:
  /orders:
    post:
      operationId: createOrder
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                quantity: { type: integer, minimum: 1 }
                discount: { type: number, maximum: 50 }
      responses:
        "201": { description: created }
`

func TestForm_OneSidedBounds(t *testing.T) {
	doc, err := openapi.Parse(context.Background(), []byte(quantities), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f, err := doc.Form("createOrder")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	set, err := f.RuleSet()
	if err != nil {
		t.Fatalf("rule set: %v", err)
	}
	failures, err := set.Run(map[string]any{"quantity": 0, "discount": 80})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := rules.Failures{
		{Property: "discount", Message: "The field discount must be at most 50."},
		{Property: "quantity", Message: "The field quantity must be at least 1."},
	}
	if diff := cmp.Diff(want, failures); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
}
