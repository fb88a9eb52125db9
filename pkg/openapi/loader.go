package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoaderOptions configures Load.
type LoaderOptions struct {
	// FileSystem resolves SourceKindFS sources.
	FileSystem fs.FS
	// Validate runs the kin-openapi document validator after parsing.
	Validate bool
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceFromFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithValidation validates the parsed document.
func WithValidation() LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Validate = true
	}
}

// Load reads and parses the document behind src.
func Load(ctx context.Context, src Source, options ...LoaderOption) (*Document, error) {
	if src == nil {
		return nil, errors.New("openapi loader: source is nil")
	}
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		raw []byte
		err error
	)
	switch src.Kind() {
	case SourceKindFile:
		raw, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if cfg.FileSystem == nil {
			return nil, errors.New("openapi loader: filesystem is not configured")
		}
		raw, err = fs.ReadFile(cfg.FileSystem, src.Location())
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %s: %w", src.Location(), err)
	}

	doc, err := Parse(ctx, raw, cfg.Validate)
	if err != nil {
		return nil, err
	}
	doc.source = src
	return doc, nil
}
