package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/form"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/view"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type order struct {
	Name     string `validate:"required"`
	Quantity int    `validate:"range=1:5"`
	Size     string
	Gift     bool
	Note     string `validate:"requiredIfTrue=Gift"`
}

func orderForm(t *testing.T, model *order, commit func()) *form.Form {
	t.Helper()
	root := view.VStack(
		view.Label("Your name"),
		view.Entry("Name"),
		view.Label("How many"),
		view.Entry("Quantity"),
		view.Picker("Size", "S", "M", "L"),
		view.HStack(view.Label("Gift wrap"), view.Switch("Gift")),
		view.Editor("Note"),
		view.CommitButton("Order"),
	)
	f, err := form.New(root, form.WithCommit(commit))
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if err := f.Bind(model); err != nil {
		t.Fatalf("bind: %v", err)
	}
	return f
}

func TestSession_CommitsAfterFixingFailures(t *testing.T) {
	driver := &stubDriver{
		// round 1: blank name, bad then out-of-range quantity; round 2: fixed.
		inputs:    []string{"", "lots", "9", "Ada", "3"},
		selectIdx: []int{1, 2},
		confirm:   []bool{true, true, true},
		textAreas: []string{"", "For Bob"},
	}
	committed := 0
	model := &order{}
	f := orderForm(t, model, func() { committed++ })

	s, err := New(WithPromptDriver(driver), WithTheme(Theme{InfoPrefix: "> ", ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := s.Run(context.Background(), f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Committed() || committed != 1 || result.Rounds != 2 {
		t.Fatalf("unexpected result %+v (commits %d)", result, committed)
	}

	wantPrompts := []string{
		"Your name", "How many", "How many", "Size", "Gift wrap", "Note",
		"Fix and resubmit?",
		"Your name", "How many", "Size", "Gift wrap", "Note",
	}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}

	if len(driver.infoMessages) != 5 {
		t.Fatalf("unexpected info messages %q", driver.infoMessages)
	}
	if !strings.HasPrefix(driver.infoMessages[0], "! ") || !strings.Contains(driver.infoMessages[0], "lots") {
		t.Fatalf("expected parse error first, got %q", driver.infoMessages[0])
	}
	wantFeedback := []string{
		"! The Name field is required.",
		"! The field Quantity must be between 1 and 5.",
		"! The Note field is required.",
		"> Committed.",
	}
	if diff := cmp.Diff(wantFeedback, driver.infoMessages[1:]); diff != "" {
		t.Fatalf("feedback mismatch (-want +got):\n%s", diff)
	}

	want := order{Name: "Ada", Quantity: 3, Size: "L", Gift: true, Note: "For Bob"}
	if diff := cmp.Diff(want, *model); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_UserStops(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "2"},
		selectIdx: []int{0},
		confirm:   []bool{false, false},
		textAreas: []string{""},
	}
	f := orderForm(t, &order{}, func() { t.Fatalf("commit must not run") })
	s, _ := New(WithPromptDriver(driver))

	result, err := s.Run(context.Background(), f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Committed() || result.Rounds != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if diff := cmp.Diff([]string{"Name"}, result.Outcome.Failures.Properties()); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_RoundsExhausted(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "2"},
		selectIdx: []int{0},
		confirm:   []bool{false},
		textAreas: []string{""},
	}
	f := orderForm(t, &order{}, func() {})
	s, _ := New(WithPromptDriver(driver), WithMaxRounds(1))

	if _, err := s.Run(context.Background(), f); !errors.Is(err, ErrRoundsExhausted) {
		t.Fatalf("expected ErrRoundsExhausted, got %v", err)
	}
}

func TestSession_Errors(t *testing.T) {
	s, _ := New(WithPromptDriver(&stubDriver{}))
	if _, err := s.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil form")
	}

	f, err := form.New(view.VStack(view.CommitButton("Go")))
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if _, err := s.Run(context.Background(), f); !errors.Is(err, form.ErrNotBound) {
		t.Fatalf("expected ErrNotBound, got %v", err)
	}

	aborting := &stubDriver{}
	f = orderForm(t, &order{}, func() {})
	s, _ = New(WithPromptDriver(aborting))
	if _, err := s.Run(context.Background(), f); err == nil {
		t.Fatalf("expected driver error to propagate")
	}
}

func TestSession_Values(t *testing.T) {
	f := orderForm(t, &order{Name: "Ada", Quantity: 2, Gift: true}, func() {})

	s, _ := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatPrettyText))
	out, err := s.Values(f)
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	want := "Gift: true\nName: Ada\nNote: \nQuantity: 2\nSize: \n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	s, _ = New(WithPromptDriver(&stubDriver{}))
	out, err = s.Values(f)
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if !strings.Contains(string(out), `"Quantity": 2`) {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestTextRenderer(t *testing.T) {
	model := &order{}
	f := orderForm(t, model, func() {})
	if _, err := f.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	r := NewTextRenderer(Theme{ErrorPrefix: "! "})
	if r.Name() != "text" {
		t.Fatalf("unexpected name %q", r.Name())
	}
	out, err := r.Render(context.Background(), f.Root(), render.RenderOptions{Title: "Order", Model: model})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"Order",
		"Your name",
		"Name = ",
		"! The Name field is required.",
		"How many",
		"Quantity = 0",
		"! The field Quantity must be between 1 and 5.",
		"Size =  (S|M|L)",
		"  Gift wrap",
		"  [ ] Gift",
		"Note = ",
		"(Order)",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}
