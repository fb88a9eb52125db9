package html

import (
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	entry      string
	funcs      map[string]any
	logger     *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle. It must provide the
// entry template (FormTemplate unless WithEntryTemplate overrides it).
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithEntryTemplate overrides the template rendered for each tree.
func WithEntryTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.entry = trimmed
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTemplateFuncs exposes callables to templates, e.g. the helpers from
// i18n.TemplateFuncs. Later registrations win.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.funcs == nil {
			cfg.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			if trimmed := strings.TrimSpace(name); trimmed != "" && fn != nil {
				cfg.funcs[trimmed] = fn
			}
		}
	}
}
