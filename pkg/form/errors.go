package form

import "errors"

// Configuration errors. They abort the current operation before any feedback
// is reconciled.
var (
	ErrNoView                 = errors.New("form: view root is required")
	ErrNotBound               = errors.New("form: no model bound")
	ErrNoCommitTrigger        = errors.New("form: view has no commit trigger")
	ErrMultipleCommitTriggers = errors.New("form: view has more than one commit trigger")
	ErrNoCustomFeedback       = errors.New("form: model validates itself but view has no custom feedback element")
	ErrMultipleCustomFeedback = errors.New("form: view has more than one custom feedback element")
	ErrNoCommitAction         = errors.New("form: no commit action configured")
)
