package layout

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/view"
	"github.com/goliatone/go-formcheck/pkg/widgets"
)

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	widgets    *widgets.Registry
	translator i18n.Translator
	locale     string
}

// WithWidgets uses reg to build nodes instead of the default registry.
func WithWidgets(reg *widgets.Registry) BuildOption {
	return func(cfg *buildConfig) {
		if reg != nil {
			cfg.widgets = reg
		}
	}
}

// WithTranslator resolves TextKey entries through t for locale.
func WithTranslator(t i18n.Translator, locale string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.translator = t
		cfg.locale = locale
	}
}

// Build creates a new view tree from the layout. Each call returns an
// independent tree, so several forms can share one layout.
func (l Layout) Build(opts ...BuildOption) (*view.Node, error) {
	cfg := buildConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}
	root, err := buildNode(l.root, cfg)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.ID, err)
	}
	return root, nil
}

func buildNode(n NodeConfig, cfg buildConfig) (*view.Node, error) {
	node, err := cfg.widgets.Build(n.Widget, "")
	if err != nil {
		return nil, err
	}
	node.ID = strings.TrimSpace(n.ID)
	node.Text = n.Text
	if key := strings.TrimSpace(n.TextKey); key != "" {
		node.Text = i18n.Translate(cfg.translator, cfg.locale, key, n.Text, nil)
	}
	node.Options = append([]string(nil), n.Options...)
	node.Style.Color = strings.TrimSpace(n.Color)
	if n.Visible != nil {
		node.Visible = *n.Visible
	}
	for _, raw := range n.Roles {
		role, _ := parseRole(raw)
		node.Role |= role
	}

	if node.IsContainer() {
		if strings.EqualFold(strings.TrimSpace(n.Orientation), "horizontal") {
			node.Orientation = view.Horizontal
		}
		for _, child := range n.Children {
			built, err := buildNode(child, cfg)
			if err != nil {
				return nil, err
			}
			if err := node.Append(built); err != nil {
				return nil, err
			}
		}
		return node, nil
	}

	if len(n.Children) > 0 {
		return nil, fmt.Errorf("widget %q cannot hold children", n.Widget)
	}
	if path := strings.TrimSpace(n.Bind); path != "" {
		facet := view.Facet(strings.ToLower(strings.TrimSpace(n.Facet)))
		if facet == "" {
			desc, _ := cfg.widgets.Describe(n.Widget)
			facet = desc.Facet
		}
		if facet == "" {
			return nil, fmt.Errorf("widget %q cannot bind %q", n.Widget, path)
		}
		node.Bind(facet, path)
	}
	return node, nil
}

func parseRole(raw string) (view.Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return view.RoleNone, true
	case "placeholder", "validationplaceholder":
		return view.RolePlaceholder, true
	case "customfeedback", "custom-feedback":
		return view.RoleCustomFeedback, true
	case "committrigger", "commit-trigger", "commit":
		return view.RoleCommitTrigger, true
	default:
		return view.RoleNone, false
	}
}
