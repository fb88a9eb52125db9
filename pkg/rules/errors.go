package rules

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every rule configuration error. Callers use
// errors.Is to tell a broken rule declaration apart from an ordinary
// validation failure.
var ErrConfiguration = errors.New("rules: configuration error")

var (
	errGuardMissing    = errors.New("guard property name is required")
	errGuardUnknown    = errors.New("guard property not found")
	errGuardNotBool    = errors.New("guard property must be bool")
	errTargetUnknown   = errors.New("property not found")
	errTargetNotBool   = errors.New("property must be bool")
	errModelMismatch   = errors.New("model does not match rule shape")
	errModelNil        = errors.New("model is nil")
	errRangeBounds     = errors.New("range minimum exceeds maximum")
	errUnknownRuleKind = errors.New("unknown rule kind")
)

// ConfigError describes a rule that cannot be evaluated because of how it was
// declared, not because of the model's current values.
type ConfigError struct {
	Property string
	Kind     Kind
	Err      error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Property == "":
		return fmt.Sprintf("rules: %v", e.Err)
	case e.Kind == "":
		return fmt.Sprintf("rules: %s: %v", e.Property, e.Err)
	default:
		return fmt.Sprintf("rules: %s (%s): %v", e.Property, e.Kind, e.Err)
	}
}

// Unwrap exposes both the specific cause and ErrConfiguration.
func (e *ConfigError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}

func configErr(property string, kind Kind, err error) error {
	return &ConfigError{Property: property, Kind: kind, Err: err}
}
