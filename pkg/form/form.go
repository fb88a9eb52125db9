package form

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/feedback"
	"github.com/goliatone/go-formcheck/pkg/rules"
	"github.com/goliatone/go-formcheck/pkg/view"
)

// State is the observable orchestrator state.
type State int32

const (
	Idle State = iota
	Validating
)

func (s State) String() string {
	if s == Validating {
		return "validating"
	}
	return "idle"
}

// CommitFunc is the author-supplied action run after a successful pass.
type CommitFunc func()

// Outcome summarises one validation pass.
type Outcome struct {
	Failures      rules.Failures
	CustomMessage string
	Committed     bool
}

// Valid reports whether the pass found no problem.
func (o Outcome) Valid() bool {
	return o.Failures.Empty() && o.CustomMessage == ""
}

// Form binds one model to one view tree. Activating the tree's commit trigger
// (or calling Submit) validates the model, reconciles inline feedback and,
// when everything holds, runs the commit action. Submit calls are serialised
// per Form.
type Form struct {
	mu    sync.Mutex
	state atomic.Int32

	root      *view.Node
	registry  *feedback.Registry
	logger    *zap.Logger
	commit    CommitFunc
	color     string
	templates rules.TemplateSource
	ruleSet   *rules.Set

	model   any
	set     *rules.Set
	trigger *view.Node
	detach  func()
	custom  *customFeedback
}

// New wraps root. Bind must be called before the form can be submitted.
func New(root *view.Node, opts ...Option) (*Form, error) {
	if root == nil {
		return nil, ErrNoView
	}
	f := &Form{root: root, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	registry, err := feedback.New(root,
		feedback.WithLogger(f.logger.Named("feedback")),
		feedback.WithMessageColor(f.color),
	)
	if err != nil {
		return nil, err
	}
	f.registry = registry
	return f, nil
}

// Root returns the view tree.
func (f *Form) Root() *view.Node { return f.root }

// State returns the current orchestrator state.
func (f *Form) State() State { return State(f.state.Load()) }

// Model returns the bound model, or nil.
func (f *Form) Model() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.model
}

// Feedback returns a read-only view of the labels the form currently shows.
func (f *Form) Feedback() FeedbackView { return FeedbackView{form: f} }

// FeedbackView inspects a form's feedback registry. Only the form mutates the
// registry, from inside Submit, Bind and Close.
type FeedbackView struct {
	form *Form
}

// Active lists the properties that currently show a message.
func (v FeedbackView) Active() []string {
	v.form.mu.Lock()
	defer v.form.mu.Unlock()
	return v.form.registry.Active()
}

// Lookup returns the record kept for property.
func (v FeedbackView) Lookup(property string) (feedback.Record, bool) {
	v.form.mu.Lock()
	defer v.form.mu.Unlock()
	return v.form.registry.Lookup(property)
}

// Len returns the number of displayed messages.
func (v FeedbackView) Len() int {
	v.form.mu.Lock()
	defer v.form.mu.Unlock()
	return v.form.registry.Len()
}

// Bind attaches model to the form. Bind fails when the view does not hold
// exactly one commit trigger, when model's rules cannot be compiled, or when
// model implements CustomValidator and the view has no custom feedback
// element. A failed Bind leaves the previous binding and its feedback in
// place; a successful one tears the previous feedback down first.
func (f *Form) Bind(model any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if model == nil {
		return ErrNotBound
	}

	trigger, err := discoverTrigger(f.root)
	if err != nil {
		f.logger.Error("form bind failed", zap.Error(err))
		return err
	}

	set := f.ruleSet
	if set == nil {
		set, err = rules.Compile(model)
		if err != nil {
			f.logger.Error("form bind failed", zap.Error(err))
			return fmt.Errorf("form: compile rules: %w", err)
		}
	}
	if err := set.Shape().Match(model); err != nil {
		f.logger.Error("form bind failed", zap.Error(err))
		return fmt.Errorf("form: bind: %w", err)
	}

	var customLabel *view.Node
	if _, ok := model.(CustomValidator); ok {
		customLabel, err = findCustomFeedback(f.root)
		if err != nil {
			f.logger.Error("form bind failed", zap.Error(err))
			return err
		}
	}

	f.unbind()

	var custom *customFeedback
	if customLabel != nil {
		// Read after unbind so a label shown by the previous model is restored first.
		custom = &customFeedback{label: customLabel, priorVisible: customLabel.Visible}
	}

	f.model = model
	f.set = set
	f.trigger = trigger
	f.custom = custom
	f.detach = trigger.OnActivate(func() error {
		_, err := f.Submit()
		return err
	})
	f.logger.Debug("form bound",
		zap.String("model", fmt.Sprintf("%T", model)),
		zap.Int("rules", set.Len()),
		zap.Bool("custom", custom != nil),
	)
	return nil
}

// Close releases the bound model, removing all displayed feedback.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unbind()
}

// Submit runs one validation pass. Configuration errors abort the pass before
// feedback is touched. When the pass is valid the commit action runs exactly
// once, after the form is back to Idle.
func (f *Form) Submit() (Outcome, error) {
	outcome, err := f.validate()
	if err != nil || !outcome.Valid() {
		return outcome, err
	}
	if f.commit == nil {
		f.logger.Error("form commit failed", zap.Error(ErrNoCommitAction))
		return outcome, ErrNoCommitAction
	}
	f.commit()
	outcome.Committed = true
	f.logger.Debug("form committed")
	return outcome, nil
}

func (f *Form) validate() (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.model == nil {
		return Outcome{}, ErrNotBound
	}
	if f.trigger == nil {
		return Outcome{}, ErrNoCommitTrigger
	}

	f.state.Store(int32(Validating))
	defer f.state.Store(int32(Idle))

	failures, err := f.set.Run(f.model, rules.WithTemplates(f.templates))
	if err != nil {
		f.logger.Error("form validation aborted", zap.Error(err))
		return Outcome{}, err
	}
	if err := f.registry.Reconcile(failures); err != nil {
		f.logger.Error("form feedback reconcile failed", zap.Error(err))
		return Outcome{Failures: failures}, err
	}
	outcome := Outcome{Failures: failures}
	if !failures.Empty() {
		f.logger.Debug("form invalid", zap.Strings("properties", failures.Properties()))
		return outcome, nil
	}

	if check, ok := f.model.(CustomValidator); ok && f.custom != nil {
		if message := check.ValidateForm(); message != "" {
			f.custom.show(message)
			outcome.CustomMessage = message
			f.logger.Debug("form custom check failed", zap.String("message", message))
			return outcome, nil
		}
		f.custom.restore()
	}
	return outcome, nil
}

func (f *Form) unbind() {
	if f.detach != nil {
		f.detach()
		f.detach = nil
	}
	f.registry.Teardown()
	if f.custom != nil {
		f.custom.restore()
		f.custom = nil
	}
	f.model = nil
	f.set = nil
	f.trigger = nil
}

func discoverTrigger(root *view.Node) (*view.Node, error) {
	found := view.FindRole(root, view.RoleCommitTrigger)
	switch len(found) {
	case 0:
		return nil, ErrNoCommitTrigger
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleCommitTriggers, len(found))
	}
}
