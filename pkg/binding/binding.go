// Package binding reads and writes model values by binding path. It stands in
// for a toolkit's data-binding system in the demo hosts: controls push edited
// text through SetString and renderers pull current values through Get.
package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the text form of date-bound values.
const DateLayout = "2006-01-02"

var (
	// ErrUnknownPath is returned when a path does not resolve on the model.
	ErrUnknownPath = errors.New("binding: unknown path")
	// ErrNotAddressable is returned when writing through a non-pointer struct.
	ErrNotAddressable = errors.New("binding: model is not addressable")
)

// Get resolves a dotted path on a struct (or pointer to struct) or on a
// map[string]any model. Struct segments match the `form` tag, then the field
// name.
func Get(model any, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if model == nil || path == "" {
		return nil, false
	}
	if values, ok := model.(map[string]any); ok {
		return getPath(values, path)
	}
	rv, ok := walkStruct(reflect.ValueOf(model), path)
	if !ok {
		return nil, false
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// GetString returns the value at path formatted for a text control.
func GetString(model any, path string) string {
	value, ok := Get(model, path)
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	default:
		return fmt.Sprint(v)
	}
}

// Set writes value at path. Struct models must be passed by pointer.
func Set(model any, path string, value any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrUnknownPath)
	}
	if values, ok := model.(map[string]any); ok {
		return setPath(values, path, value)
	}
	rv := reflect.ValueOf(model)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNotAddressable
	}
	field, ok := walkStruct(rv, path)
	if !ok || !field.CanSet() {
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(field.Type()) {
		field.Set(src)
		return nil
	}
	if field.Kind() == reflect.Pointer && src.Type().AssignableTo(field.Type().Elem()) {
		ptr := reflect.New(field.Type().Elem())
		ptr.Elem().Set(src)
		field.Set(ptr)
		return nil
	}
	if src.Type().ConvertibleTo(field.Type()) && src.Kind() != reflect.String {
		field.Set(src.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("binding: cannot assign %T to %s (%s)", value, path, field.Type())
}

// SetString parses raw into the type of the value at path and writes it.
// Blank input clears pointer fields. Map models store raw as-is unless the
// current value is a bool or a number.
func SetString(model any, path, raw string) error {
	if values, ok := model.(map[string]any); ok {
		current, _ := getPath(values, path)
		parsed, err := parseLike(reflect.TypeOf(current), raw)
		if err != nil {
			return fmt.Errorf("binding: %s: %w", path, err)
		}
		return setPath(values, path, parsed)
	}

	rv := reflect.ValueOf(model)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNotAddressable
	}
	field, ok := walkStruct(rv, path)
	if !ok || !field.CanSet() {
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}

	target := field.Type()
	if target.Kind() == reflect.Pointer {
		if strings.TrimSpace(raw) == "" {
			field.Set(reflect.Zero(target))
			return nil
		}
		parsed, err := parseLike(target.Elem(), raw)
		if err != nil {
			return fmt.Errorf("binding: %s: %w", path, err)
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(reflect.ValueOf(parsed).Convert(target.Elem()))
		field.Set(ptr)
		return nil
	}
	parsed, err := parseLike(target, raw)
	if err != nil {
		return fmt.Errorf("binding: %s: %w", path, err)
	}
	field.Set(reflect.ValueOf(parsed).Convert(target))
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

func parseLike(t reflect.Type, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if t == nil {
		return raw, nil
	}
	if t == timeType {
		if trimmed == "" {
			return time.Time{}, nil
		}
		return time.Parse(DateLayout, trimmed)
	}
	switch t.Kind() {
	case reflect.String:
		return raw, nil
	case reflect.Bool:
		if trimmed == "" {
			return false, nil
		}
		return strconv.ParseBool(trimmed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if trimmed == "" {
			return int64(0), nil
		}
		return strconv.ParseInt(trimmed, 10, 64)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if trimmed == "" {
			return uint64(0), nil
		}
		return strconv.ParseUint(trimmed, 10, 64)
	case reflect.Float32, reflect.Float64:
		if trimmed == "" {
			return float64(0), nil
		}
		return strconv.ParseFloat(trimmed, 64)
	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
}

func walkStruct(rv reflect.Value, path string) (reflect.Value, bool) {
	for _, segment := range strings.Split(path, ".") {
		for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return reflect.Value{}, false
			}
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct {
			return reflect.Value{}, false
		}
		field, ok := fieldByPath(rv, segment)
		if !ok {
			return reflect.Value{}, false
		}
		rv = field
	}
	return rv, true
}

func fieldByPath(rv reflect.Value, segment string) (reflect.Value, bool) {
	t := rv.Type()
	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous || !field.IsExported() {
			continue
		}
		name := field.Name
		if tag := strings.TrimSpace(field.Tag.Get("form")); tag != "" {
			if tag == "-" {
				continue
			}
			name = tag
		}
		if name == segment {
			fv, err := rv.FieldByIndexErr(field.Index)
			return fv, err == nil
		}
	}
	return reflect.Value{}, false
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath writes into nested maps, creating intermediate maps as needed.
func setPath(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("binding: root map is nil")
	}
	segments := strings.Split(path, ".")
	node := root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			if existing, present := node[segment]; present && existing != nil {
				return fmt.Errorf("binding: %q is %T, not a map", segment, existing)
			}
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
	return nil
}
