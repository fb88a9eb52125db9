package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func testConfig(mode string) *Config {
	return &Config{
		Demo:   "basic",
		Mode:   mode,
		Locale: "en",
		Theme:  ThemeConfig{Name: "formcheck", Tokens: map[string]string{"message": "#b00020"}},
	}
}

func TestRun_TextMode(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), testConfig("text"), zap.NewNop(), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Value 1 is required", "Value1 = ", "(Commit)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestRun_HTMLModeWritesFile(t *testing.T) {
	cfg := testConfig("html")
	cfg.Demo = "signup"
	cfg.Output = filepath.Join(t.TempDir(), "signup.html")
	if err := run(context.Background(), cfg, zap.NewNop(), &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	raw, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(raw), "--message: #b00020") {
		t.Fatalf("expected theme variables in output:\n%s", raw)
	}
}

func TestRun_UnknownInputs(t *testing.T) {
	cfg := testConfig("text")
	cfg.Demo = "nope"
	if err := run(context.Background(), cfg, zap.NewNop(), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected unknown demo error")
	}
	cfg = testConfig("pdf")
	if err := run(context.Background(), cfg, zap.NewNop(), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	raw := "demo: custom\nmode: html\nlog:\n  level: debug\ntheme:\n  tokens:\n    message: teal\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FORMCHECK_LOCALE", "es")

	cfg, err := InitConfig[Config](path)
	if err != nil {
		t.Fatalf("init config: %v", err)
	}
	want := Config{
		Demo:      "custom",
		Mode:      "html",
		Locale:    "es",
		Format:    "pretty",
		MaxRounds: 5,
		Log:       LogConfig{Level: "debug"},
		Theme:     ThemeConfig{Name: "formcheck", Tokens: map[string]string{"message": "teal"}},
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	if _, err := InitConfig[Config](filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestResolveTheme_FromManifestDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "acme"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := "name: acme\nversion: 1.0.0\ntokens:\n  message: \"#222222\"\nvariants:\n  dark:\n    tokens:\n      message: \"#ff8a80\"\n"
	if err := os.WriteFile(filepath.Join(dir, "acme", "theme.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	cfg, err := resolveTheme(ThemeConfig{Name: "acme", Variant: "dark", Dir: dir, Tokens: map[string]string{"message": "teal"}})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != "acme" || cfg.Tokens["message"] != "#ff8a80" || cfg.CSSVars["--message"] != "#ff8a80" {
		t.Fatalf("unexpected theme config %+v", cfg)
	}

	cfg, err = resolveTheme(ThemeConfig{Name: "formcheck", Tokens: map[string]string{"message": "teal"}})
	if err != nil {
		t.Fatalf("resolve inline: %v", err)
	}
	if cfg.Tokens["message"] != "teal" {
		t.Fatalf("expected inline tokens, got %v", cfg.Tokens)
	}

	if _, err := resolveTheme(ThemeConfig{Name: "missing"}); err == nil {
		t.Fatalf("expected error when no theme is registered")
	}
}
