package rules

import "errors"

// Set is an ordered collection of rules resolved against one model shape.
// A Set is immutable once built and safe for concurrent use.
type Set struct {
	shape *Shape
	rules []Rule
}

// NewSet resolves specs against shape in declaration order. Any spec that
// names an unknown property, a missing or non-bool guard, or a bool-only
// rule on a non-bool property is rejected with a ConfigError.
func NewSet(shape *Shape, specs ...Spec) (*Set, error) {
	if shape == nil {
		return nil, configErr("", "", errors.New("shape is required"))
	}
	set := &Set{shape: shape, rules: make([]Rule, 0, len(specs))}
	for _, spec := range specs {
		rule, err := resolve(shape, spec)
		if err != nil {
			return nil, err
		}
		set.rules = append(set.rules, rule)
	}
	return set, nil
}

// Shape returns the model shape the set was built for.
func (s *Set) Shape() *Shape {
	if s == nil {
		return nil
	}
	return s.shape
}

// Rules returns the resolved rules in declaration order.
func (s *Set) Rules() []Rule {
	if s == nil {
		return nil
	}
	return append([]Rule(nil), s.rules...)
}

// Len reports the number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// RunOption configures a single Run call.
type RunOption func(*runConfig)

type runConfig struct {
	templates TemplateSource
}

// WithTemplates resolves MessageKey templates through src.
func WithTemplates(src TemplateSource) RunOption {
	return func(cfg *runConfig) {
		cfg.templates = src
	}
}

// Run evaluates every rule against model exactly once and returns the
// failures in declaration order. Run has no side effects: calling it twice on
// an unchanged model yields identical results. A configuration error aborts
// the run and no failures are returned.
func (s *Set) Run(model any, opts ...RunOption) (Failures, error) {
	if s == nil {
		return nil, configErr("", "", errors.New("rule set is nil"))
	}
	cfg := runConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := s.shape.Match(model); err != nil {
		return nil, err
	}

	var failures Failures
	for _, rule := range s.rules {
		failure, ok, err := rule.evaluate(model, cfg.templates)
		if err != nil {
			return nil, err
		}
		if !ok {
			failures = append(failures, failure)
		}
	}
	return failures, nil
}
