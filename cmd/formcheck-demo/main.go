package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	formcheck "github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/internal/demo"
	"github.com/goliatone/go-formcheck/pkg/form"
	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/renderers/html"
	"github.com/goliatone/go-formcheck/pkg/renderers/tui"
)

func main() {
	configFile := flag.String("config", "", "config file (yaml, json or toml)")
	demoID := flag.String("demo", "", "demo to run: "+strings.Join(demo.IDs(), ", "))
	mode := flag.String("mode", "", "tui, html or text")
	list := flag.Bool("list", false, "list demos and exit")
	flag.Parse()

	if *list {
		for _, id := range demo.IDs() {
			d, _ := demo.Lookup(id)
			fmt.Printf("%-16s %s\n", id, d.Title)
		}
		return
	}

	cfg, err := InitConfig[Config](*configFile)
	if err != nil {
		log.Fatalf("Error initializing config: %v", err)
	}
	if *demoID != "" {
		cfg.Demo = *demoID
	}
	if *mode != "" {
		cfg.Mode = *mode
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		logger.Error("demo failed", zap.String("demo", cfg.Demo), zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, logger *zap.Logger, out io.Writer) error {
	d, ok := demo.Lookup(cfg.Demo)
	if !ok {
		return fmt.Errorf("unknown demo %q", cfg.Demo)
	}
	catalog, err := demo.Messages("en")
	if err != nil {
		return err
	}
	themeCfg, err := resolveTheme(cfg.Theme)
	if err != nil {
		return err
	}

	committed := false
	f, err := assemble(ctx, d, catalog, cfg.Locale,
		form.WithLogger(logger.Named("form")),
		form.WithMessageColor(render.MessageColor(themeCfg)),
		form.WithCommit(func() {
			committed = true
			logger.Info("form committed", zap.String("demo", d.ID))
		}),
	)
	if err != nil {
		return err
	}
	defer f.Close()

	if cfg.Mode == "tui" {
		session, err := tui.New(
			tui.WithOutputFormat(tui.OutputFormat(cfg.Format)),
			tui.WithMaxRounds(cfg.MaxRounds),
			tui.WithLogger(logger.Named("tui")),
		)
		if err != nil {
			return err
		}
		result, err := session.Run(ctx, f)
		if err != nil {
			return err
		}
		logger.Debug("session finished", zap.Int("rounds", result.Rounds), zap.Bool("committed", committed))
		if !result.Committed() {
			return nil
		}
		values, err := session.Values(f)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(values))
		return err
	}

	// Non-interactive modes submit once so the snapshot carries feedback.
	if _, err := f.Submit(); err != nil {
		return err
	}
	registry, err := renderers(catalog)
	if err != nil {
		return err
	}
	renderer, err := registry.Get(cfg.Mode)
	if err != nil {
		return err
	}
	output, err := renderer.Render(ctx, f.Root(), render.RenderOptions{
		Title:  d.Title,
		Locale: cfg.Locale,
		Model:  f.Model(),
		Theme:  themeCfg,
	})
	if err != nil {
		return err
	}
	if cfg.Output != "" && cfg.Output != "-" {
		if err := os.WriteFile(cfg.Output, output, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("output written", zap.String("path", cfg.Output), zap.String("content_type", renderer.ContentType()))
		return nil
	}
	_, err = out.Write(output)
	return err
}

func assemble(ctx context.Context, d demo.Demo, catalog *i18n.Catalog, locale string, options ...form.Option) (*form.Form, error) {
	req := formcheck.Request{Translator: catalog, Locale: locale}
	if d.OpenAPI() {
		doc, err := demo.Document(ctx)
		if err != nil {
			return nil, err
		}
		req.Document, req.OperationID = doc, d.OperationID
	} else {
		store, err := demo.Layouts()
		if err != nil {
			return nil, err
		}
		req.Layouts, req.LayoutID, req.Model = store, d.Layout, d.NewModel()
	}
	return formcheck.Assemble(ctx, req, options...)
}

func renderers(catalog *i18n.Catalog) (*render.Registry, error) {
	htmlRenderer, err := html.New(html.WithTemplateFuncs(i18n.TemplateFuncs(catalog, i18n.TemplateFuncsConfig{})))
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(tui.NewTextRenderer(tui.DefaultTheme))
	return registry, nil
}

// resolveTheme registers the inline manifest and any manifests found under
// cfg.Dir, then selects cfg.Name/cfg.Variant through go-theme.
func resolveTheme(cfg ThemeConfig) (*theme.RendererConfig, error) {
	registry := theme.NewRegistry()
	if len(cfg.Tokens) > 0 {
		inline := &theme.Manifest{Name: inlineThemeName, Version: "1.0.0", Tokens: cfg.Tokens}
		if err := registry.Register(inline); err != nil {
			return nil, fmt.Errorf("register inline theme: %w", err)
		}
	}
	if cfg.Dir != "" {
		if err := registerThemeDir(registry, os.DirFS(cfg.Dir)); err != nil {
			return nil, err
		}
	}

	selector := theme.Selector{Registry: registry, DefaultTheme: inlineThemeName}
	selection, err := selector.Select(cfg.Name, cfg.Variant)
	if err != nil {
		return nil, fmt.Errorf("select theme %q: %w", cfg.Name, err)
	}
	rendererCfg := selection.RendererTheme(nil)
	return &rendererCfg, nil
}

const inlineThemeName = "formcheck"

// registerThemeDir loads one manifest per top-level directory of fsys.
func registerThemeDir(registry *theme.MemoryRegistry, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read theme dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := theme.LoadDir(fsys, entry.Name())
		if err != nil {
			return err
		}
		if err := registry.Register(manifest); err != nil {
			return fmt.Errorf("register theme %s: %w", entry.Name(), err)
		}
	}
	return nil
}
