package widgets

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/view"
)

// Field describes a model property a control is chosen for.
type Field struct {
	Name   string
	Kind   rules.ValueKind
	Format string
	Enum   []string
	// Widget is an explicit choice that bypasses the matchers.
	Widget string
}

// Descriptor tells how to build a node for a widget name.
type Descriptor struct {
	Container bool
	// Facet is the binding facet of bindable leaves; empty for static ones.
	Facet view.Facet
}

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers, and knows how to build each widget as a view node. Higher
// priority wins; ties fall back to registration order.
type Registry struct {
	mu          sync.RWMutex
	rules       []rule
	descriptors map[string]Descriptor
}

// NewRegistry constructs a registry with the built-in widgets registered.
func NewRegistry() *Registry {
	reg := &Registry{descriptors: make(map[string]Descriptor)}
	reg.registerBuiltins()
	return reg
}

// Define declares how widget name is built.
func (r *Registry) Define(name string, desc Descriptor) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if r == nil || trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[trimmed] = desc
}

// Describe returns the descriptor for name.
func (r *Registry) Describe(name string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[strings.ToLower(strings.TrimSpace(name))]
	return desc, ok
}

// Register adds a widget matcher with the provided name and priority. Callers
// should avoid duplicate names; the latest registration wins during
// resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit Widget is honoured
// before matcher evaluation.
func (r *Registry) Resolve(field Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	entries := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority == entries[j].priority {
			return entries[i].order < entries[j].order
		}
		return entries[i].priority > entries[j].priority
	})
	for _, entry := range entries {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Build creates an unattached node for widget name. Bindable widgets are
// bound to path on their descriptor's facet.
func (r *Registry) Build(name, path string) (*view.Node, error) {
	desc, ok := r.Describe(name)
	if !ok {
		return nil, fmt.Errorf("widgets: unknown widget %q", name)
	}
	widget := strings.ToLower(strings.TrimSpace(name))
	if desc.Container {
		n := view.NewContainer(view.Vertical)
		n.Widget = widget
		return n, nil
	}
	n := view.NewLeaf(widget)
	if desc.Facet != "" && strings.TrimSpace(path) != "" {
		n.Bind(desc.Facet, path)
	}
	return n, nil
}

// BuildField resolves a widget for field and builds it bound to field.Name.
func (r *Registry) BuildField(field Field) (*view.Node, error) {
	name, ok := r.Resolve(field)
	if !ok {
		return nil, fmt.Errorf("widgets: no widget for %q", field.Name)
	}
	n, err := r.Build(name, field.Name)
	if err != nil {
		return nil, err
	}
	n.Options = append([]string(nil), field.Enum...)
	return n, nil
}

func (r *Registry) registerBuiltins() {
	r.Define(view.WidgetStack, Descriptor{Container: true})
	r.Define(view.WidgetEntry, Descriptor{Facet: view.FacetText})
	r.Define(view.WidgetEditor, Descriptor{Facet: view.FacetText})
	r.Define(view.WidgetPicker, Descriptor{Facet: view.FacetSelection})
	r.Define(view.WidgetSwitch, Descriptor{Facet: view.FacetToggle})
	r.Define(view.WidgetCheckbox, Descriptor{Facet: view.FacetToggle})
	r.Define(view.WidgetDatePicker, Descriptor{Facet: view.FacetDate})
	r.Define(view.WidgetLabel, Descriptor{})
	r.Define(view.WidgetButton, Descriptor{})
	r.Define(view.WidgetMenuItem, Descriptor{})

	r.Register(view.WidgetSwitch, 90, func(field Field) bool {
		return field.Kind == rules.ValueBool
	})

	r.Register(view.WidgetPicker, 70, func(field Field) bool {
		return len(field.Enum) > 0
	})

	r.Register(view.WidgetDatePicker, 60, func(field Field) bool {
		if field.Kind == rules.ValueTime {
			return true
		}
		format := strings.ToLower(strings.TrimSpace(field.Format))
		return format == "date" || format == "date-time"
	})

	r.Register(view.WidgetEditor, 50, func(field Field) bool {
		format := strings.ToLower(strings.TrimSpace(field.Format))
		return format == "textarea" || format == "multiline"
	})

	r.Register(view.WidgetEntry, 0, func(Field) bool { return true })
}
