package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/rules"
)

// Catalog is an in-memory Translator fed from YAML documents shaped as
//
//	en:
//	  ValueRequired: "Value is required"
//	  fields:
//	    name: "Name"
//
// Nested maps flatten into dotted keys ("fields.name"). Locales are stored as
// canonical BCP 47 tags ("es_mx" -> "es-MX"). Lookups fall back from a
// regional locale to its base language ("es-MX" -> "es") and then to the
// catalog's default locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	messages map[string]map[string]string
}

// NewCatalog creates an empty catalog whose misses fall back to
// defaultLocale.
func NewCatalog(defaultLocale string) *Catalog {
	return &Catalog{
		fallback: normalizeLocale(defaultLocale),
		messages: make(map[string]map[string]string),
	}
}

// DefaultLocale returns the fallback locale.
func (c *Catalog) DefaultLocale() string { return c.fallback }

// LoadYAML merges a YAML document into the catalog. Later documents
// override earlier keys.
func (c *Catalog) LoadYAML(raw []byte) error {
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("i18n: parse yaml: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("i18n: no translations found")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for lang, val := range data {
		entries, ok := val.(map[string]any)
		if !ok {
			return fmt.Errorf("i18n: invalid structure for locale %q: expected map, got %T", lang, val)
		}
		locale := normalizeLocale(lang)
		if c.messages[locale] == nil {
			c.messages[locale] = make(map[string]string)
		}
		flatten("", entries, c.messages[locale])
	}
	return nil
}

// LoadFS merges every .yaml/.yml file under root in fsys, in lexical order.
func (c *Catalog) LoadFS(fsys fs.FS, root string) error {
	if fsys == nil {
		return fmt.Errorf("i18n: filesystem is nil")
	}
	if root == "" {
		root = "."
	}
	var files []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("i18n: walk %s: %w", root, err)
	}
	sort.Strings(files)
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", file, err)
		}
		if err := c.LoadYAML(raw); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

// Set stores a single message.
func (c *Catalog) Set(locale, key, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	locale = normalizeLocale(locale)
	if c.messages[locale] == nil {
		c.messages[locale] = make(map[string]string)
	}
	c.messages[locale][key] = message
}

// Locales lists the loaded locales.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate implements Translator. Positional args are substituted into
// {0}, {1}... placeholders.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	key = strings.TrimSpace(key)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range c.chain(locale) {
		if msg, ok := c.messages[candidate][key]; ok {
			return rules.Format(msg, stringify(args)...), nil
		}
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

// Templates returns a rules.TemplateSource bound to locale.
func (c *Catalog) Templates(locale string) rules.TemplateSource {
	return Templates(c, locale)
}

// chain lists the lookup order: locale, its base language, then the default
// locale and its base language.
func (c *Catalog) chain(locale string) []string {
	chain := make([]string, 0, 4)
	add := func(raw string) {
		candidates := []string{normalizeLocale(raw)}
		if tag, err := language.Parse(strings.TrimSpace(raw)); err == nil {
			if base, conf := tag.Base(); conf != language.No {
				candidates = append(candidates, base.String())
			}
		}
		for _, candidate := range candidates {
			if candidate != "" && !slices.Contains(chain, candidate) {
				chain = append(chain, candidate)
			}
		}
	}
	add(locale)
	add(c.fallback)
	return chain
}

func flatten(prefix string, src map[string]any, dst map[string]string) {
	for key, val := range src {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := val.(type) {
		case map[string]any:
			flatten(full, v, dst)
		case nil:
			dst[full] = ""
		case string:
			dst[full] = v
		default:
			dst[full] = fmt.Sprint(v)
		}
	}
}

// normalizeLocale canonicalises locale as a BCP 47 tag. Strings that do not
// parse are kept trimmed and lower-cased.
func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	if tag, err := language.Parse(locale); err == nil {
		return tag.String()
	}
	return strings.ToLower(locale)
}

func stringify(args []any) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = fmt.Sprint(arg)
	}
	return out
}
