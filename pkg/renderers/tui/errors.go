package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoControls is returned when the view has no visible bound controls.
	ErrNoControls = errors.New("tui: view has no bound controls")
	// ErrRoundsExhausted is returned when every editing round failed validation.
	ErrRoundsExhausted = errors.New("tui: validation did not pass")
)
