package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/form"
	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/view"
)

type profile struct {
	Name string `validate:"required"`
	Age  string `validate:"range=1:120"`
}

type checked struct {
	Name    string `validate:"required"`
	message string
}

func (c *checked) ValidateForm() string { return c.message }

func profileView() *view.Node {
	return view.VStack(
		view.Entry("Name"),
		view.Entry("Age"),
		view.CustomFeedback(),
		view.CommitButton("Save"),
	)
}

func newForm(t *testing.T, root *view.Node, opts ...form.Option) *form.Form {
	t.Helper()
	f, err := form.New(root, opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestCommitGating(t *testing.T) {
	cases := []struct {
		name      string
		model     any
		commits   int
		wantValid bool
	}{
		{name: "attribute failure", model: &profile{Age: "30"}, commits: 0},
		{name: "custom failure", model: &checked{Name: "x", message: "nope"}, commits: 0},
		{name: "custom pass", model: &checked{Name: "x"}, commits: 1, wantValid: true},
		{name: "no custom hook", model: &profile{Name: "x", Age: "30"}, commits: 1, wantValid: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			commits := 0
			f := newForm(t, profileView(), form.WithCommit(func() { commits++ }))
			if err := f.Bind(tc.model); err != nil {
				t.Fatalf("bind: %v", err)
			}
			outcome, err := f.Submit()
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if commits != tc.commits {
				t.Fatalf("commit invoked %d times, want %d", commits, tc.commits)
			}
			if outcome.Valid() != tc.wantValid || outcome.Committed != tc.wantValid {
				t.Fatalf("unexpected outcome %+v", outcome)
			}
		})
	}
}

func TestSubmit_ThroughTrigger(t *testing.T) {
	root := profileView()
	commits := 0
	f := newForm(t, root, form.WithCommit(func() { commits++ }))
	model := &profile{}
	if err := f.Bind(model); err != nil {
		t.Fatalf("bind: %v", err)
	}

	trigger := view.FindRole(root, view.RoleCommitTrigger)[0]
	if err := trigger.Activate(); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if diff := cmp.Diff([]string{"Name"}, f.Feedback().Active()); diff != "" {
		t.Fatalf("active feedback mismatch (-want +got):\n%s", diff)
	}
	if commits != 0 {
		t.Fatalf("commit must not run while invalid")
	}

	model.Name = "Ada"
	if err := trigger.Activate(); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if commits != 1 || f.Feedback().Len() != 0 {
		t.Fatalf("expected commit and cleared feedback, got %d commits and %d records", commits, f.Feedback().Len())
	}
}

func TestSubmit_CustomFeedbackLifecycle(t *testing.T) {
	root := profileView()
	label := view.FindRole(root, view.RoleCustomFeedback)[0]
	f := newForm(t, root, form.WithCommit(func() {}))
	model := &checked{Name: "x", message: "Passwords do not match"}
	if err := f.Bind(model); err != nil {
		t.Fatalf("bind: %v", err)
	}

	outcome, _ := f.Submit()
	if outcome.CustomMessage != "Passwords do not match" || !label.Visible || label.Text != outcome.CustomMessage {
		t.Fatalf("custom feedback not shown: %+v label=%q visible=%v", outcome, label.Text, label.Visible)
	}

	model.message = ""
	if _, err := f.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if label.Visible || label.Text != "" {
		t.Fatalf("custom feedback not restored: %q visible=%v", label.Text, label.Visible)
	}
}

func TestSubmit_StateIsIdleDuringCommit(t *testing.T) {
	var f *form.Form
	var seen form.State = -1
	f = newForm(t, profileView(), form.WithCommit(func() { seen = f.State() }))
	if err := f.Bind(&profile{Name: "x"}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, err := f.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if seen != form.Idle {
		t.Fatalf("commit observed state %v, want idle", seen)
	}
}

func TestConfigurationErrors(t *testing.T) {
	t.Run("not bound", func(t *testing.T) {
		f := newForm(t, profileView())
		if _, err := f.Submit(); !errors.Is(err, form.ErrNotBound) {
			t.Fatalf("expected ErrNotBound, got %v", err)
		}
	})

	t.Run("no trigger", func(t *testing.T) {
		f := newForm(t, view.VStack(view.Entry("Name")))
		if err := f.Bind(&profile{}); !errors.Is(err, form.ErrNoCommitTrigger) {
			t.Fatalf("expected ErrNoCommitTrigger, got %v", err)
		}
	})

	t.Run("multiple triggers", func(t *testing.T) {
		menu := view.NewLeaf(view.WidgetMenuItem).WithRole(view.RoleCommitTrigger)
		f := newForm(t, view.VStack(view.Entry("Name"), view.CommitButton("a"), menu))
		if err := f.Bind(&profile{}); !errors.Is(err, form.ErrMultipleCommitTriggers) {
			t.Fatalf("expected ErrMultipleCommitTriggers, got %v", err)
		}
	})

	t.Run("missing custom feedback", func(t *testing.T) {
		f := newForm(t, view.VStack(view.Entry("Name"), view.CommitButton("Go")))
		if err := f.Bind(&checked{}); !errors.Is(err, form.ErrNoCustomFeedback) {
			t.Fatalf("expected ErrNoCustomFeedback, got %v", err)
		}
	})

	t.Run("missing commit action", func(t *testing.T) {
		f := newForm(t, profileView())
		if err := f.Bind(&profile{Name: "x"}); err != nil {
			t.Fatalf("bind: %v", err)
		}
		if _, err := f.Submit(); !errors.Is(err, form.ErrNoCommitAction) {
			t.Fatalf("expected ErrNoCommitAction, got %v", err)
		}
	})

	t.Run("bad guard aborts bind", func(t *testing.T) {
		type bad struct {
			Value string `validate:"requiredIfTrue=Missing"`
		}
		f := newForm(t, profileView())
		if err := f.Bind(bad{}); !errors.Is(err, rules.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})
}

func TestRebindTearsDownFeedback(t *testing.T) {
	root := profileView()
	commits := 0
	f := newForm(t, root, form.WithCommit(func() { commits++ }))
	if err := f.Bind(&profile{}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	_, _ = f.Submit()
	if root.Len() != 5 {
		t.Fatalf("expected an inserted label, got %d children", root.Len())
	}

	if err := f.Bind(&profile{Name: "x"}); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	if root.Len() != 4 || f.Feedback().Len() != 0 {
		t.Fatalf("rebind must remove prior feedback, got %d children", root.Len())
	}

	trigger := view.FindRole(root, view.RoleCommitTrigger)[0]
	_ = trigger.Activate()
	if commits != 1 {
		t.Fatalf("expected a single commit after rebind, got %d", commits)
	}
}

func TestFailedRebindKeepsBinding(t *testing.T) {
	root := view.VStack(view.Entry("Name"), view.Entry("Age"), view.CommitButton("Save"))
	f := newForm(t, root, form.WithCommit(func() {}))
	model := &profile{}
	if err := f.Bind(model); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, err := f.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if root.Len() != 4 {
		t.Fatalf("expected an inserted label, got %d children", root.Len())
	}

	if err := f.Bind(&checked{}); !errors.Is(err, form.ErrNoCustomFeedback) {
		t.Fatalf("expected ErrNoCustomFeedback, got %v", err)
	}
	if diff := cmp.Diff([]string{"Name"}, f.Feedback().Active()); diff != "" {
		t.Fatalf("active feedback mismatch (-want +got):\n%s", diff)
	}
	if root.Len() != 4 {
		t.Fatalf("failed rebind changed the view, got %d children", root.Len())
	}
	if f.Model() != model {
		t.Fatalf("failed rebind replaced the model")
	}

	model.Name = "Ada"
	outcome, err := f.Submit()
	if err != nil {
		t.Fatalf("submit after failed rebind: %v", err)
	}
	if !outcome.Committed || root.Len() != 3 {
		t.Fatalf("expected commit and cleared feedback, got %+v with %d children", outcome, root.Len())
	}
}

func TestRebindRestoresCustomFeedback(t *testing.T) {
	root := profileView()
	label := view.FindRole(root, view.RoleCustomFeedback)[0]
	f := newForm(t, root, form.WithCommit(func() {}))
	if err := f.Bind(&checked{Name: "x", message: "nope"}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if _, err := f.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !label.Visible {
		t.Fatalf("expected custom feedback shown")
	}

	next := &checked{Name: "x"}
	if err := f.Bind(next); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	if label.Visible || label.Text != "" {
		t.Fatalf("rebind must restore the custom label, got visible=%v text=%q", label.Visible, label.Text)
	}

	next.message = "still no"
	_, _ = f.Submit()
	next.message = ""
	_, _ = f.Submit()
	if label.Visible {
		t.Fatalf("custom label must return to its authored visibility")
	}
}

func TestMapModelWithRuleSet(t *testing.T) {
	shape := rules.MapShape(
		rules.Property{Name: "title", Display: "Title", Kind: rules.ValueString},
		rules.Property{Name: "published", Kind: rules.ValueBool},
	)
	set, err := rules.NewSet(shape,
		rules.RequiredIfTrue("title", "published"),
	)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}

	root := view.VStack(view.Entry("title"), view.Switch("published"), view.CommitButton("Publish"))
	f := newForm(t, root, form.WithRuleSet(set), form.WithCommit(func() {}))
	if err := f.Bind(map[string]any{"published": true}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	outcome, err := f.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := rules.Failures{{Property: "title", Message: "The Title field is required."}}
	if diff := cmp.Diff(want, outcome.Failures); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageTemplatesAndColor(t *testing.T) {
	type keyed struct {
		Name string `validate:"required" msgkey:"required=NameRequired"`
	}
	field := view.Entry("Name")
	root := view.VStack(field, view.CommitButton("Go"))
	f := newForm(t, root,
		form.WithTemplates(rules.TemplateMap{"NameRequired": "{0} please"}),
		form.WithMessageColor("#b00020"),
	)
	if err := f.Bind(keyed{}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	_, _ = f.Submit()

	label := field.NextSibling()
	if label == nil || label.Text != "Name please" || label.Style.Color != "#b00020" {
		t.Fatalf("unexpected label %v", label)
	}
}
