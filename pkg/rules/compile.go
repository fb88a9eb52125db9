package rules

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Struct tag keys read by Compile.
const (
	TagValidate   = "validate"
	TagMessage    = "msg"
	TagMessageKey = "msgkey"
)

var compiled sync.Map // reflect.Type -> *Set

// Compile builds (or returns the cached) rule set for the struct type of
// model. Rules are declared with struct tags:
//
//	Value2 string `validate:"required;range=5:10" msgkey:"required=Value2Required"`
//	Note   string `validate:"requiredIfTrue=HasNote" msg:"requiredIfTrue={0} please"`
//
// Rules are kept in field order, then tag order.
func Compile(model any) (*Set, error) {
	if model == nil {
		return nil, configErr("", "", errModelNil)
	}
	return CompileType(reflect.TypeOf(model))
}

// CompileType is Compile for a reflect.Type.
func CompileType(t reflect.Type) (*Set, error) {
	if t == nil {
		return nil, configErr("", "", errModelNil)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := compiled.Load(t); ok {
		return cached.(*Set), nil
	}

	shape, err := StructShape(t)
	if err != nil {
		return nil, err
	}
	specs, err := specsFromTags(t)
	if err != nil {
		return nil, err
	}
	set, err := NewSet(shape, specs...)
	if err != nil {
		return nil, err
	}

	actual, _ := compiled.LoadOrStore(t, set)
	return actual.(*Set), nil
}

func specsFromTags(t reflect.Type) ([]Spec, error) {
	var specs []Spec
	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous || !field.IsExported() {
			continue
		}
		raw, ok := field.Tag.Lookup(TagValidate)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		name := field.Name
		if tag := strings.TrimSpace(field.Tag.Get("form")); tag != "" && tag != "-" {
			name = tag
		}
		messages := parsePairs(field.Tag.Get(TagMessage))
		keys := parsePairs(field.Tag.Get(TagMessageKey))

		for _, entry := range splitEntries(raw) {
			spec, err := parseSpec(name, entry)
			if err != nil {
				return nil, err
			}
			spec.Message = messages[spec.Kind]
			spec.MessageKey = keys[spec.Kind]
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

func parseSpec(property, entry string) (Spec, error) {
	rawKind, arg, _ := strings.Cut(entry, "=")
	kind, ok := lookupKind(rawKind)
	if !ok {
		return Spec{}, configErr(property, Kind(strings.TrimSpace(rawKind)), errUnknownRuleKind)
	}
	arg = strings.TrimSpace(arg)

	switch kind {
	case KindRequired:
		return Required(property), nil
	case KindRequiredTrue:
		return RequiredTrue(property), nil
	case KindRequiredIfTrue:
		return RequiredIfTrue(property, arg), nil
	case KindRequiredIfFalse:
		return RequiredIfFalse(property, arg), nil
	default:
		min, max, err := parseBounds(arg)
		if err != nil {
			return Spec{}, configErr(property, kind, err)
		}
		return Range(property, min, max), nil
	}
}

func lookupKind(raw string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "required":
		return KindRequired, true
	case "requiredtrue":
		return KindRequiredTrue, true
	case "requirediftrue":
		return KindRequiredIfTrue, true
	case "requirediffalse":
		return KindRequiredIfFalse, true
	case "range":
		return KindRange, true
	default:
		return "", false
	}
}

func parseBounds(arg string) (float64, float64, error) {
	sep := ":"
	if !strings.Contains(arg, sep) {
		sep = ","
	}
	lo, hi, ok := strings.Cut(arg, sep)
	if !ok {
		return 0, 0, fmt.Errorf("range needs min:max, got %q", arg)
	}
	min, err := parseBound(lo, math.Inf(-1))
	if err != nil {
		return 0, 0, fmt.Errorf("range min: %w", err)
	}
	max, err := parseBound(hi, math.Inf(1))
	if err != nil {
		return 0, 0, fmt.Errorf("range max: %w", err)
	}
	if math.IsInf(min, -1) && math.IsInf(max, 1) {
		return 0, 0, fmt.Errorf("range needs at least one bound, got %q", arg)
	}
	return min, max, nil
}

// parseBound reads one side of a range; an empty side is open.
func parseBound(raw string, open float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return open, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func splitEntries(raw string) []string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parsePairs(raw string) map[Kind]string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	out := make(map[Kind]string)
	for _, entry := range splitEntries(raw) {
		rawKind, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if kind, known := lookupKind(rawKind); known {
			out[kind] = strings.TrimSpace(value)
		}
	}
	return out
}
