package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/rules"
)

// Option configures a Form.
type Option func(*Form)

// WithCommit sets the action run after a fully successful validation pass.
func WithCommit(fn CommitFunc) Option {
	return func(f *Form) {
		f.commit = fn
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMessageColor sets the colour of labels the engine inserts.
func WithMessageColor(color string) Option {
	return func(f *Form) {
		f.color = color
	}
}

// WithTemplates resolves rule message keys through src.
func WithTemplates(src rules.TemplateSource) Option {
	return func(f *Form) {
		f.templates = src
	}
}

// WithRuleSet validates bound models with set instead of compiling rules
// from struct tags. Required for map[string]any models.
func WithRuleSet(set *rules.Set) Option {
	return func(f *Form) {
		f.ruleSet = set
	}
}
