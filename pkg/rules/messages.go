package rules

import (
	"strconv"
	"strings"
)

// TemplateSource resolves message resource keys into templates. It is the
// seam to whatever localisation store the host uses.
type TemplateSource interface {
	Template(key string) (string, bool)
}

// TemplateFunc adapts a function into a TemplateSource.
type TemplateFunc func(key string) (string, bool)

// Template delegates to the underlying function.
func (fn TemplateFunc) Template(key string) (string, bool) {
	return fn(key)
}

// TemplateMap is a static TemplateSource.
type TemplateMap map[string]string

// Template looks key up in the map.
func (m TemplateMap) Template(key string) (string, bool) {
	tpl, ok := m[key]
	return tpl, ok && strings.TrimSpace(tpl) != ""
}

func (r Rule) message(src TemplateSource) string {
	tpl := r.spec.Message
	if tpl == "" && r.spec.MessageKey != "" && src != nil {
		if resolved, ok := src.Template(r.spec.MessageKey); ok {
			tpl = resolved
		}
	}
	if tpl == "" {
		tpl = r.spec.defaultTemplate()
	}

	args := []string{r.prop.DisplayName()}
	if r.spec.Kind == KindRange {
		args = append(args, formatNumber(r.spec.Min), formatNumber(r.spec.Max))
	}
	return Format(tpl, args...)
}

// Format substitutes positional {n} placeholders in tpl.
func Format(tpl string, args ...string) string {
	if len(args) == 0 || !strings.Contains(tpl, "{") {
		return tpl
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
