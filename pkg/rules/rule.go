package rules

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies a rule variant.
type Kind string

const (
	KindRequired        Kind = "required"
	KindRequiredTrue    Kind = "requiredTrue"
	KindRequiredIfTrue  Kind = "requiredIfTrue"
	KindRequiredIfFalse Kind = "requiredIfFalse"
	KindRange           Kind = "range"
)

// Default message templates. {0} is the display name; range messages also
// receive {1} (min) and {2} (max). A range open on one side (an infinite
// bound) uses the at-least or at-most template.
const (
	DefaultRequiredMessage = "The {0} field is required."
	DefaultRangeMessage    = "The field {0} must be between {1} and {2}."
	DefaultMinMessage      = "The field {0} must be at least {1}."
	DefaultMaxMessage      = "The field {0} must be at most {2}."
	DefaultInvalidMessage  = "The field {0} is invalid."
)

// Spec is the declarative form of a rule before it is resolved against a
// model shape.
type Spec struct {
	Kind     Kind
	Property string
	// Other names the sibling bool property guarding conditional rules.
	Other string
	Min   float64
	Max   float64
	// Message overrides the default template inline.
	Message string
	// MessageKey is looked up through a TemplateSource when Message is empty.
	MessageKey string
}

// Required declares that property must hold a non-blank value.
func Required(property string) Spec {
	return Spec{Kind: KindRequired, Property: property}
}

// RequiredTrue declares that a bool property must be true.
func RequiredTrue(property string) Spec {
	return Spec{Kind: KindRequiredTrue, Property: property}
}

// RequiredIfTrue requires property whenever the bool property other is true.
func RequiredIfTrue(property, other string) Spec {
	return Spec{Kind: KindRequiredIfTrue, Property: property, Other: other}
}

// RequiredIfFalse requires property whenever the bool property other is false.
func RequiredIfFalse(property, other string) Spec {
	return Spec{Kind: KindRequiredIfFalse, Property: property, Other: other}
}

// Range declares an inclusive numeric range for property. Pass math.Inf(-1)
// or math.Inf(1) to leave a side open.
func Range(property string, min, max float64) Spec {
	return Spec{Kind: KindRange, Property: property, Min: min, Max: max}
}

// WithMessage returns a copy of s using tpl as its message template.
func (s Spec) WithMessage(tpl string) Spec {
	s.Message = tpl
	return s
}

// WithMessageKey returns a copy of s resolving its template through key.
func (s Spec) WithMessageKey(key string) Spec {
	s.MessageKey = key
	return s
}

func (s Spec) defaultTemplate() string {
	switch s.Kind {
	case KindRequired:
		return DefaultRequiredMessage
	case KindRange:
		switch {
		case math.IsInf(s.Min, -1) && !math.IsInf(s.Max, 1):
			return DefaultMaxMessage
		case math.IsInf(s.Max, 1) && !math.IsInf(s.Min, -1):
			return DefaultMinMessage
		}
		return DefaultRangeMessage
	default:
		return DefaultInvalidMessage
	}
}

// Rule is a Spec resolved against a Shape: its target and guard accessors are
// bound once so evaluation never performs name lookups.
type Rule struct {
	spec   Spec
	prop   Property
	shape  *Shape
	target Accessor
	guard  Accessor
}

// Spec returns the declaration the rule was built from.
func (r Rule) Spec() Spec { return r.spec }

// Property returns the resolved target property.
func (r Rule) Property() Property { return r.prop }

func resolve(shape *Shape, spec Spec) (Rule, error) {
	spec.Property = strings.TrimSpace(spec.Property)
	spec.Other = strings.TrimSpace(spec.Other)

	prop, ok := shape.Property(spec.Property)
	if !ok {
		return Rule{}, configErr(spec.Property, spec.Kind, errTargetUnknown)
	}
	target, _ := shape.Accessor(spec.Property)
	rule := Rule{spec: spec, prop: prop, shape: shape, target: target}

	switch spec.Kind {
	case KindRequired:
	case KindRequiredTrue:
		if !boolCompatible(prop.Kind) {
			return Rule{}, configErr(spec.Property, spec.Kind, errTargetNotBool)
		}
	case KindRequiredIfTrue, KindRequiredIfFalse:
		if spec.Other == "" {
			return Rule{}, configErr(spec.Property, spec.Kind, errGuardMissing)
		}
		other, ok := shape.Property(spec.Other)
		if !ok {
			return Rule{}, configErr(spec.Property, spec.Kind, fmt.Errorf("%w: %q", errGuardUnknown, spec.Other))
		}
		if !boolCompatible(other.Kind) {
			return Rule{}, configErr(spec.Property, spec.Kind, fmt.Errorf("%w: %q is %s", errGuardNotBool, spec.Other, other.Kind))
		}
		rule.guard, _ = shape.Accessor(spec.Other)
	case KindRange:
		if spec.Min > spec.Max {
			return Rule{}, configErr(spec.Property, spec.Kind, errRangeBounds)
		}
	default:
		return Rule{}, configErr(spec.Property, spec.Kind, errUnknownRuleKind)
	}
	return rule, nil
}

// ValueOther covers interface-typed and map-declared properties whose
// concrete type is only known at evaluation time.
func boolCompatible(kind ValueKind) bool {
	return kind == ValueBool || kind == ValueOther
}

// Failure is the outcome of a rule that did not hold.
type Failure struct {
	Property string
	Message  string
}

// Failures is an ordered list of failures, in rule declaration order.
type Failures []Failure

// Empty reports whether no rule failed.
func (f Failures) Empty() bool { return len(f) == 0 }

// Properties lists the failing property names once each, in order.
func (f Failures) Properties() []string {
	if len(f) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(f))
	out := make([]string, 0, len(f))
	for _, failure := range f {
		if _, ok := seen[failure.Property]; ok {
			continue
		}
		seen[failure.Property] = struct{}{}
		out = append(out, failure.Property)
	}
	return out
}

// First returns the first failure recorded for property.
func (f Failures) First(property string) (Failure, bool) {
	for _, failure := range f {
		if failure.Property == property {
			return failure, true
		}
	}
	return Failure{}, false
}
