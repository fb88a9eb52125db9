package rules

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ValueKind classifies a property's value so rules can be checked against it
// when a Set is built rather than on every evaluation.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueBool   ValueKind = "bool"
	ValueNumber ValueKind = "number"
	ValueTime   ValueKind = "time"
	ValueOther  ValueKind = "other"
)

// Property describes one readable member of a bound model.
type Property struct {
	Name    string
	Display string
	Kind    ValueKind
}

// DisplayName returns the label used in messages, falling back to Name.
func (p Property) DisplayName() string {
	if strings.TrimSpace(p.Display) != "" {
		return p.Display
	}
	return p.Name
}

// Accessor reads one property from a model that already matched its Shape.
type Accessor func(model any) any

// Shape is the resolved property layout of a model type. Struct shapes are
// derived once per reflect.Type; map shapes are declared explicitly for
// map[string]any models.
type Shape struct {
	typ     reflect.Type
	props   []Property
	index   map[string]int
	readers []Accessor
}

// Properties returns the shape's properties in declaration order.
func (s *Shape) Properties() []Property {
	if s == nil {
		return nil
	}
	return append([]Property(nil), s.props...)
}

// Property looks up a property by name.
func (s *Shape) Property(name string) (Property, bool) {
	if s == nil {
		return Property{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Property{}, false
	}
	return s.props[idx], true
}

// Accessor returns the reader bound to the named property.
func (s *Shape) Accessor(name string) (Accessor, bool) {
	if s == nil {
		return nil, false
	}
	idx, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.readers[idx], true
}

// Match reports whether model can be read through this shape.
func (s *Shape) Match(model any) error {
	if model == nil {
		return configErr("", "", errModelNil)
	}
	if s.typ == nil {
		if _, ok := model.(map[string]any); !ok {
			return configErr("", "", fmt.Errorf("%w: want map[string]any, got %T", errModelMismatch, model))
		}
		return nil
	}
	rv := reflect.ValueOf(model)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return configErr("", "", errModelNil)
		}
		rv = rv.Elem()
	}
	if rv.Type() != s.typ {
		return configErr("", "", fmt.Errorf("%w: want %s, got %T", errModelMismatch, s.typ, model))
	}
	return nil
}

// MapShape declares the properties of a map[string]any model.
func MapShape(props ...Property) *Shape {
	shape := &Shape{index: make(map[string]int, len(props))}
	for _, prop := range props {
		name := strings.TrimSpace(prop.Name)
		if name == "" {
			continue
		}
		if _, dup := shape.index[name]; dup {
			continue
		}
		prop.Name = name
		if prop.Kind == "" {
			prop.Kind = ValueOther
		}
		shape.index[name] = len(shape.props)
		shape.props = append(shape.props, prop)
		shape.readers = append(shape.readers, func(model any) any {
			values, _ := model.(map[string]any)
			return values[name]
		})
	}
	return shape
}

// StructShape derives a shape from a struct type (or pointer to struct).
// Exported fields become properties; `form:"name"` renames a property,
// `form:"-"` hides it and `display:"..."` sets its display name.
func StructShape(t reflect.Type) (*Shape, error) {
	if t == nil {
		return nil, configErr("", "", errModelNil)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, configErr("", "", fmt.Errorf("%w: %s is not a struct", errModelMismatch, t))
	}

	shape := &Shape{typ: t, index: make(map[string]int)}
	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous || !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("form"); ok {
			tag = strings.TrimSpace(tag)
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		if _, dup := shape.index[name]; dup {
			return nil, configErr(name, "", fmt.Errorf("duplicate property name on %s", t))
		}
		index := field.Index
		shape.index[name] = len(shape.props)
		shape.props = append(shape.props, Property{
			Name:    name,
			Display: strings.TrimSpace(field.Tag.Get("display")),
			Kind:    kindOf(field.Type),
		})
		shape.readers = append(shape.readers, structReader(index))
	}
	return shape, nil
}

func structReader(index []int) Accessor {
	return func(model any) any {
		rv := reflect.ValueOf(model)
		if rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		fv, err := rv.FieldByIndexErr(index)
		if err != nil {
			return nil
		}
		switch fv.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
			if fv.IsNil() {
				return nil
			}
		}
		return fv.Interface()
	}
}

var timeType = reflect.TypeOf(time.Time{})

func kindOf(t reflect.Type) ValueKind {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return ValueTime
	}
	switch t.Kind() {
	case reflect.Bool:
		return ValueBool
	case reflect.String:
		return ValueString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ValueNumber
	default:
		return ValueOther
	}
}
