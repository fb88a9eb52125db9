package rules

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Evaluate checks a single rule against model using the default message
// templates. ok reports whether the rule held; err is non-nil only for
// configuration errors (mismatched model, values that cannot be coerced).
func Evaluate(rule Rule, model any) (Failure, bool, error) {
	if rule.shape == nil {
		return Failure{}, false, configErr(rule.spec.Property, rule.spec.Kind, errUnknownRuleKind)
	}
	if err := rule.shape.Match(model); err != nil {
		return Failure{}, false, err
	}
	return rule.evaluate(model, nil)
}

func (r Rule) evaluate(model any, src TemplateSource) (Failure, bool, error) {
	value := r.target(model)

	var ok bool
	switch r.spec.Kind {
	case KindRequired:
		ok = present(value)
	case KindRequiredTrue:
		flag, err := coerceBool(value)
		if err != nil {
			return Failure{}, false, configErr(r.prop.Name, r.spec.Kind, err)
		}
		ok = flag
	case KindRequiredIfTrue, KindRequiredIfFalse:
		guard, err := coerceBool(r.guard(model))
		if err != nil {
			return Failure{}, false, configErr(r.prop.Name, r.spec.Kind, fmt.Errorf("guard %q: %w", r.spec.Other, err))
		}
		applies := guard == (r.spec.Kind == KindRequiredIfTrue)
		ok = !applies || present(value)
	case KindRange:
		ok = inRange(value, r.spec.Min, r.spec.Max)
	default:
		return Failure{}, false, configErr(r.prop.Name, r.spec.Kind, errUnknownRuleKind)
	}

	if ok {
		return Failure{}, true, nil
	}
	return Failure{Property: r.prop.Name, Message: r.message(src)}, false, nil
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case *bool:
		return v != nil && *v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: cannot coerce %T", errTargetNotBool, value)
}

// present treats nil and blank strings as absent; any other value counts.
func present(value any) bool {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return false
	}
	if rv.Kind() == reflect.String {
		return strings.TrimSpace(rv.String()) != ""
	}
	return true
}

// inRange passes absent values; non-numeric text fails.
func inRange(value any, min, max float64) bool {
	if !present(value) {
		return true
	}
	n, ok := coerceNumber(value)
	if !ok {
		return false
	}
	return n >= min && n <= max
}

func coerceNumber(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
