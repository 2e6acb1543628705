package record

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"entity-schema/primitive"
)

// ErrTypeMismatch is returned when a value cannot be stored into a typed slot.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrNotAddressable is returned when storing into a struct held by value.
var ErrNotAddressable = errors.New("not addressable")

// Container is the keyed view of a record node. Mappings and named-member
// objects both satisfy it, so traversal never needs to know which one it has.
type Container interface {
	// Kind is KindMapping or KindObject.
	Kind() Kind
	Lookup(name string) (any, bool)
	Store(name string, value any) error
	// Names lists the keys or public members in iteration order.
	Names() []string
}

// Members is implemented by objects that expose named members without
// being a Go map or struct.
type Members interface {
	Member(name string) (any, bool)
	SetMember(name string, value any) error
	MemberNames() []string
}

// Open returns the keyed view of v, if v has one.
func Open(v any) (Container, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case *Map:
		if t == nil {
			return nil, false
		}

		return mapContainer{m: t}, true
	case Members:
		return memberContainer{m: t}, true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		return goMapContainer{rv: rv}, true
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return nil, false
		}

		return structContainer{rv: rv.Elem()}, true
	case reflect.Struct:
		return structContainer{rv: rv}, true
	default:
		return nil, false
	}
}

type mapContainer struct {
	m *Map
}

func (c mapContainer) Kind() Kind { return KindMapping }

func (c mapContainer) Lookup(name string) (any, bool) { return c.m.Get(name) }

func (c mapContainer) Store(name string, value any) error {
	c.m.Set(name, value)
	return nil
}

func (c mapContainer) Names() []string { return c.m.Keys() }

type memberContainer struct {
	m Members
}

func (c memberContainer) Kind() Kind { return KindObject }

func (c memberContainer) Lookup(name string) (any, bool) { return c.m.Member(name) }

func (c memberContainer) Store(name string, value any) error { return c.m.SetMember(name, value) }

func (c memberContainer) Names() []string { return c.m.MemberNames() }

// goMapContainer adapts map[string]T (and named string key types).
// Go maps have no order, so names come back sorted.
type goMapContainer struct {
	rv reflect.Value
}

func (c goMapContainer) Kind() Kind { return KindMapping }

func (c goMapContainer) key(name string) reflect.Value {
	return reflect.ValueOf(name).Convert(c.rv.Type().Key())
}

func (c goMapContainer) Lookup(name string) (any, bool) {
	v := c.rv.MapIndex(c.key(name))
	if !v.IsValid() {
		return nil, false
	}

	return v.Interface(), true
}

func (c goMapContainer) Store(name string, value any) error {
	v, err := coerce(value, c.rv.Type().Elem())
	if err != nil {
		return fmt.Errorf("key %q: %w", name, err)
	}

	c.rv.SetMapIndex(c.key(name), v)

	return nil
}

func (c goMapContainer) Names() []string {
	names := make([]string, 0, c.rv.Len())
	for _, k := range c.rv.MapKeys() {
		names = append(names, k.String())
	}

	slices.Sort(names)

	return names
}

type structContainer struct {
	rv reflect.Value
}

func (c structContainer) Kind() Kind { return KindObject }

func (c structContainer) field(name string) (reflect.Value, bool) {
	for _, f := range publicFields(c.rv.Type()) {
		if f.Name != name {
			continue
		}

		v, err := c.rv.FieldByIndexErr(f.Index)
		if err != nil {
			return reflect.Value{}, false
		}

		return v, true
	}

	return reflect.Value{}, false
}

func (c structContainer) Lookup(name string) (any, bool) {
	v, ok := c.field(name)
	if !ok {
		return nil, false
	}

	return v.Interface(), true
}

func (c structContainer) Store(name string, value any) error {
	f, ok := c.field(name)
	if !ok {
		return fmt.Errorf("member %q not found in %s", name, c.rv.Type())
	}

	if !f.CanSet() {
		return fmt.Errorf("member %q of %s: %w", name, c.rv.Type(), ErrNotAddressable)
	}

	v, err := coerce(value, f.Type())
	if err != nil {
		return fmt.Errorf("member %q: %w", name, err)
	}

	f.Set(v)

	return nil
}

func (c structContainer) Names() []string {
	fields := publicFields(c.rv.Type())

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}

	return names
}

// publicFields returns exported, non-embedded fields (promoted ones included)
// that are not excluded with `yaml:"-"`.
func publicFields(t reflect.Type) []reflect.StructField {
	var out []reflect.StructField

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}

		if tag, _, _ := strings.Cut(f.Tag.Get("yaml"), ","); tag == "-" {
			continue
		}

		out = append(out, f)
	}

	return out
}

// coerce converts value for storage into a slot of type t. Numbers convert to
// numbers when the value fits exactly and strings to strings; anything else
// must be assignable.
func coerce(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: cannot store nil into %s", ErrTypeMismatch, t)
		}
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}

	if isNumberKind(v.Kind()) && isNumberKind(t.Kind()) {
		out, err := primitive.ConvertNumber(v, t)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}

		return out, nil
	}

	if v.Kind() == reflect.String && t.Kind() == reflect.String {
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: cannot store %s into %s", ErrTypeMismatch, v.Type(), t)
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
