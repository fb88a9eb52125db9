package feedback

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/view"
)

// ErrNoRoot is returned by New when no view tree is supplied.
var ErrNoRoot = errors.New("feedback: view root is required")

// Ownership tells who created a feedback label.
type Ownership int

const (
	// EngineOwned labels were inserted by the registry and are removed on
	// resolution.
	EngineOwned Ownership = iota
	// AuthorOwned labels are placeholders borrowed from the tree and are
	// handed back with their prior visibility.
	AuthorOwned
)

func (o Ownership) String() string {
	if o == AuthorOwned {
		return "author"
	}
	return "engine"
}

// Record is the displayed feedback for one property.
type Record struct {
	Property  string
	Label     *view.Node
	Ownership Ownership

	priorVisible bool
	hasPrior     bool
}

// PriorVisibility returns the visibility a borrowed placeholder had before
// adoption. ok is false for engine-owned labels.
func (r Record) PriorVisibility() (visible, ok bool) {
	return r.priorVisible, r.hasPrior
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger routes registry decisions to logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMessageColor sets the colour applied to engine-created labels.
func WithMessageColor(color string) Option {
	return func(r *Registry) {
		r.color = strings.TrimSpace(color)
	}
}

// WithLabelFactory overrides how engine-owned labels are synthesised. The
// factory must return an unattached leaf.
func WithLabelFactory(fn func() *view.Node) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newLabel = fn
		}
	}
}

// Registry maps property names to the feedback currently shown for them.
// Reconcile is the only operation that adds or updates records; Teardown is
// the only one that clears them in bulk. A Registry is not safe for
// concurrent use; its owner serialises access.
type Registry struct {
	root     *view.Node
	records  map[string]*Record
	order    []string
	logger   *zap.Logger
	color    string
	newLabel func() *view.Node
}

// New creates an empty registry over root.
func New(root *view.Node, opts ...Option) (*Registry, error) {
	if root == nil {
		return nil, ErrNoRoot
	}
	r := &Registry{
		root:    root,
		records: make(map[string]*Record),
		logger:  zap.NewNop(),
		newLabel: func() *view.Node {
			return view.NewLeaf(view.WidgetLabel)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Active lists the properties with displayed feedback, in the order their
// records were created.
func (r *Registry) Active() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of active records.
func (r *Registry) Len() int { return len(r.records) }

// Lookup returns a copy of the record for property.
func (r *Registry) Lookup(property string) (Record, bool) {
	rec, ok := r.records[property]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Reconcile brings the displayed feedback in line with failures:
// resolved properties give their label back, still-failing ones get the new
// message, and newly failing ones adopt a placeholder or get a synthesised
// label. Failures whose property has no bound control are ignored. When
// several failures name the same property the first one is shown.
func (r *Registry) Reconcile(failures rules.Failures) error {
	current := make(map[string]string, len(failures))
	var pending []rules.Failure
	for _, failure := range failures {
		if _, seen := current[failure.Property]; seen {
			continue
		}
		current[failure.Property] = failure.Message
		pending = append(pending, failure)
	}

	for _, property := range r.Active() {
		if _, failing := current[property]; !failing {
			r.release(property)
		}
	}

	var errs []error
	for _, failure := range pending {
		if rec, ok := r.records[failure.Property]; ok {
			rec.Label.Text = failure.Message
			continue
		}
		if err := r.attach(failure); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Teardown releases every record, restoring placeholders and removing
// engine labels, and leaves the registry empty.
func (r *Registry) Teardown() {
	for _, property := range r.Active() {
		r.release(property)
	}
}

func (r *Registry) attach(failure rules.Failure) error {
	loc, ok := view.Locate(r.root, failure.Property)
	if !ok {
		r.logger.Debug("feedback target not found", zap.String("property", failure.Property))
		return nil
	}

	if next := loc.Next(); next.IsLeaf() && next.Role.Has(view.RolePlaceholder) && !r.owned(next) {
		rec := &Record{
			Property:     failure.Property,
			Label:        next,
			Ownership:    AuthorOwned,
			priorVisible: next.Visible,
			hasPrior:     true,
		}
		next.Text = failure.Message
		next.Visible = true
		r.store(rec)
		r.logger.Debug("feedback placeholder adopted", zap.String("property", failure.Property))
		return nil
	}

	label := r.newLabel()
	label.Text = failure.Message
	label.Visible = true
	label.Style.Center = true
	if r.color != "" {
		label.Style.Color = r.color
	}

	container, index := loc.Container, loc.Index+1
	if container.Orientation == view.Horizontal {
		if parent := container.Parent(); parent != nil {
			index = parent.IndexOf(container) + 1
			container = parent
		}
	}
	if err := container.InsertAt(index, label); err != nil {
		return fmt.Errorf("feedback: insert label for %q: %w", failure.Property, err)
	}
	r.store(&Record{Property: failure.Property, Label: label, Ownership: EngineOwned})
	r.logger.Debug("feedback label inserted", zap.String("property", failure.Property), zap.Int("index", index))
	return nil
}

func (r *Registry) release(property string) {
	rec, ok := r.records[property]
	if !ok {
		return
	}
	switch rec.Ownership {
	case AuthorOwned:
		// A hidden placeholder keeps its last text; a visible one is emptied.
		if rec.priorVisible {
			rec.Label.Text = ""
		}
		rec.Label.Visible = rec.priorVisible
	default:
		if parent := rec.Label.Parent(); parent != nil {
			parent.Remove(rec.Label)
		}
	}
	delete(r.records, property)
	for i, name := range r.order {
		if name == property {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Debug("feedback released", zap.String("property", property), zap.Stringer("ownership", rec.Ownership))
}

func (r *Registry) store(rec *Record) {
	r.records[rec.Property] = rec
	r.order = append(r.order, rec.Property)
}

func (r *Registry) owned(label *view.Node) bool {
	for _, rec := range r.records {
		if rec.Label == label {
			return true
		}
	}
	return false
}
