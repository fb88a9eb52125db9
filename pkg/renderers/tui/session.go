// Package tui hosts a bound form in the terminal: it prompts for every bound
// control, submits, prints the feedback the form produced and repeats until
// the commit action runs.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/binding"
	"github.com/goliatone/go-formcheck/pkg/form"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/view"
)

const defaultMaxRounds = 5

// Session drives one form through prompt rounds.
type Session struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	logger       *zap.Logger
	maxRounds    int
}

// Result summarises a session.
type Result struct {
	Rounds  int
	Outcome form.Outcome
}

// Committed reports whether the last round ran the commit action.
func (r Result) Committed() bool { return r.Outcome.Committed }

// New constructs a session with defaults (survey driver, JSON output).
func New(options ...Option) (*Session, error) {
	s := &Session{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		maxRounds:    defaultMaxRounds,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// Run prompts for each visible bound control of f, submits and prints the
// resulting feedback. It stops when the commit action ran, when the user
// declines another round, or after the configured number of rounds.
func (s *Session) Run(ctx context.Context, f *form.Form) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("tui: context is required")
	}
	if f == nil {
		return Result{}, errors.New("tui: form is nil")
	}
	model := f.Model()
	if model == nil {
		return Result{}, form.ErrNotBound
	}

	var result Result
	for round := 1; round <= s.maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		controls := boundControls(f.Root())
		if len(controls) == 0 {
			return result, ErrNoControls
		}
		for _, control := range controls {
			if err := s.promptControl(ctx, model, control); err != nil {
				return result, err
			}
		}

		outcome, err := f.Submit()
		result.Rounds = round
		result.Outcome = outcome
		if err != nil {
			return result, err
		}
		s.logger.Debug("tui round submitted",
			zap.Int("round", round),
			zap.Bool("committed", outcome.Committed),
			zap.Strings("failures", outcome.Failures.Properties()),
		)
		if outcome.Committed {
			return result, s.driver.Info(ctx, s.theme.InfoPrefix+"Committed.")
		}

		for _, msg := range render.Snapshot(f.Root(), model).Messages() {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+msg); err != nil {
				return result, err
			}
		}
		if round == s.maxRounds {
			break
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Fix and resubmit?", Default: true})
		if err != nil {
			return result, err
		}
		if !again {
			return result, nil
		}
	}
	return result, ErrRoundsExhausted
}

// Values collects the bound values of f's model keyed by binding path and
// serializes them in the configured format.
func (s *Session) Values(f *form.Form) ([]byte, error) {
	if f == nil || f.Model() == nil {
		return nil, form.ErrNotBound
	}
	values := make(map[string]any)
	for _, control := range boundControls(f.Root()) {
		path, _ := control.BoundProperty()
		value, _ := binding.Get(f.Model(), path)
		values[path] = value
	}
	if s.outputFormat == OutputFormatPrettyText {
		return []byte(prettyPrint(values)), nil
	}
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode values: %w", err)
	}
	return payload, nil
}

func (s *Session) promptControl(ctx context.Context, model any, control *view.Node) error {
	b, _ := control.Binding()
	message := caption(control)

	switch {
	case b.Facet == view.FacetToggle:
		current, _ := binding.Get(model, b.Path)
		def, _ := current.(bool)
		if p, ok := current.(*bool); ok && p != nil {
			def = *p
		}
		value, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
		if err != nil {
			return err
		}
		return binding.Set(model, b.Path, value)

	case b.Facet == view.FacetSelection && len(control.Options) > 0:
		current := binding.GetString(model, b.Path)
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      control.Options,
			DefaultIndex: slices.Index(control.Options, current),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(control.Options) {
			return nil
		}
		return binding.SetString(model, b.Path, control.Options[idx])

	case control.Widget == view.WidgetEditor:
		raw, err := s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: binding.GetString(model, b.Path)})
		if err != nil {
			return err
		}
		return binding.SetString(model, b.Path, raw)
	}

	help := ""
	if b.Facet == view.FacetDate {
		help = "Format " + binding.DateLayout
	}
	for {
		raw, err := s.driver.Input(ctx, InputConfig{
			Message: message,
			Default: binding.GetString(model, b.Path),
			Help:    help,
		})
		if err != nil {
			return err
		}
		err = binding.SetString(model, b.Path, raw)
		if err == nil {
			return nil
		}
		if errors.Is(err, binding.ErrUnknownPath) || errors.Is(err, binding.ErrNotAddressable) {
			return err
		}
		if infoErr := s.driver.Info(ctx, s.theme.ErrorPrefix+err.Error()); infoErr != nil {
			return infoErr
		}
	}
}

// boundControls lists visible bound leaves in tree order.
func boundControls(root *view.Node) []*view.Node {
	var out []*view.Node
	for _, leaf := range view.Leaves(root) {
		if !leaf.Visible {
			continue
		}
		if _, ok := leaf.BoundProperty(); ok {
			out = append(out, leaf)
		}
	}
	return out
}

// caption uses the plain label right before a control, falling back to the
// bound path. Centred labels are feedback, not captions.
func caption(control *view.Node) string {
	path, _ := control.BoundProperty()
	parent := control.Parent()
	if parent == nil {
		return path
	}
	idx := parent.IndexOf(control)
	if idx <= 0 {
		return path
	}
	prev := parent.Child(idx - 1)
	if prev.Widget == view.WidgetLabel && prev.Role == view.RoleNone && !prev.Style.Center && strings.TrimSpace(prev.Text) != "" {
		return prev.Text
	}
	return path
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %v\n", key, values[key])
	}
	return b.String()
}
