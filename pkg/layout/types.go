package layout

type documentFile struct {
	Layouts map[string]layoutFile `json:"layouts" yaml:"layouts"`
}

type layoutFile struct {
	Title string     `json:"title" yaml:"title"`
	Model string     `json:"model" yaml:"model"`
	Root  NodeConfig `json:"root" yaml:"root"`
}

// NodeConfig is one node of a layout document. Bind is the model property
// path of bindable widgets; Facet overrides the widget's default binding
// facet; TextKey is translated into Text when a translator is supplied.
type NodeConfig struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Widget      string       `json:"widget" yaml:"widget"`
	Bind        string       `json:"bind,omitempty" yaml:"bind,omitempty"`
	Facet       string       `json:"facet,omitempty" yaml:"facet,omitempty"`
	Text        string       `json:"text,omitempty" yaml:"text,omitempty"`
	TextKey     string       `json:"textKey,omitempty" yaml:"textKey,omitempty"`
	Roles       []string     `json:"roles,omitempty" yaml:"roles,omitempty"`
	Visible     *bool        `json:"visible,omitempty" yaml:"visible,omitempty"`
	Orientation string       `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Options     []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Color       string       `json:"color,omitempty" yaml:"color,omitempty"`
	Children    []NodeConfig `json:"children,omitempty" yaml:"children,omitempty"`
}

// Layout is a parsed layout. Build turns it into a fresh view tree.
type Layout struct {
	ID     string
	Title  string
	Model  string // demo model the layout is written for
	Source string

	root NodeConfig
}

// Root returns the top node configuration.
func (l Layout) Root() NodeConfig { return l.root }
