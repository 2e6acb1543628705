package fieldpath

import (
	"fmt"
	"reflect"

	"entity-schema/internal/record"
	"entity-schema/primitive"
)

// Combine computes the value Write stores when the location currently holds
// old. Assign returns value unchanged, and so does any mode when old is nil.
//
// Add and Subtract are defined for:
//   - numbers, strings (Add only), durations and times, see primitive.Add
//   - sequences: Add appends value (its elements if it is a sequence);
//     Subtract drops every element deep-equal to value or to one of its elements
//   - mappings: Add merges value into a copy of old with value winning;
//     Subtract deletes the keys named by value (a mapping, a list of keys or a key)
//
// Every other combination fails with ErrUnsupportedOperator.
func Combine(old, value any, mode Mode) (any, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	if mode == ModeAssign || old == nil {
		return value, nil
	}

	if seq, ok := record.OpenSequence(old); ok {
		return combineSequence(old, seq, value, mode)
	}

	if c, ok := record.Open(old); ok && c.Kind() == record.KindMapping {
		return combineMapping(old, value, mode)
	}

	var (
		out any
		err error
	)

	if mode == ModeAdd {
		out, err = primitive.Add(old, value)
	} else {
		out, err = primitive.Subtract(old, value)
	}

	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnsupportedOperator, mode, err)
	}

	return out, nil
}

func combineSequence(old any, seq record.Sequence, value any, mode Mode) (any, error) {
	rt := reflect.TypeOf(old)
	if rt.Kind() != reflect.Slice {
		rt = reflect.TypeOf([]any(nil))
	}

	operands := []any{value}
	if other, ok := record.OpenSequence(value); ok {
		operands = make([]any, other.Len())
		for i := range operands {
			operands[i] = other.At(i)
		}
	}

	out := reflect.MakeSlice(rt, 0, seq.Len()+len(operands))

	for i := range seq.Len() {
		item := seq.At(i)

		if mode == ModeSubtract && containsEqual(operands, item) {
			continue
		}

		out = reflect.Append(out, elementValue(item, rt.Elem()))
	}

	if mode == ModeSubtract {
		return out.Interface(), nil
	}

	for _, item := range operands {
		v := elementValue(item, rt.Elem())
		if !v.IsValid() {
			return nil, fmt.Errorf("%w %q: cannot append %T to %s", ErrUnsupportedOperator, mode, item, rt)
		}

		out = reflect.Append(out, v)
	}

	return out.Interface(), nil
}

// elementValue converts item for a slice of elem, returning the zero Value
// when it does not fit.
func elementValue(item any, elem reflect.Type) reflect.Value {
	if item == nil {
		switch elem.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			return reflect.Zero(elem)
		default:
			return reflect.Value{}
		}
	}

	v := reflect.ValueOf(item)

	switch {
	case v.Type().AssignableTo(elem):
		return v
	case primitive.FromReflectType(v.Type()).IsNumber() && primitive.FromReflectType(elem).IsNumber():
		out, err := primitive.ConvertNumber(v, elem)
		if err != nil {
			return reflect.Value{}
		}

		return out
	case v.Kind() == reflect.String && elem.Kind() == reflect.String:
		return v.Convert(elem)
	default:
		return reflect.Value{}
	}
}

func containsEqual(items []any, v any) bool {
	for _, item := range items {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}

	return false
}

func combineMapping(old, value any, mode Mode) (any, error) {
	if m, ok := old.(*record.Map); ok {
		out := m.Clone()

		if mode == ModeAdd {
			src, ok := record.Open(value)
			if !ok {
				return nil, fmt.Errorf("%w %q: cannot merge %T into a mapping", ErrUnsupportedOperator, mode, value)
			}

			for _, k := range src.Names() {
				v, _ := src.Lookup(k)
				out.Set(k, v)
			}

			return out, nil
		}

		keys, err := keysOf(value)
		if err != nil {
			return nil, err
		}

		for _, k := range keys {
			out.Delete(k)
		}

		return out, nil
	}

	return combineGoMap(reflect.ValueOf(old), value, mode)
}

func combineGoMap(rv reflect.Value, value any, mode Mode) (any, error) {
	out := reflect.MakeMapWithSize(rv.Type(), rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		out.SetMapIndex(iter.Key(), iter.Value())
	}

	if mode == ModeAdd {
		src, ok := record.Open(value)
		if !ok {
			return nil, fmt.Errorf("%w %q: cannot merge %T into a mapping", ErrUnsupportedOperator, mode, value)
		}

		dst, _ := record.Open(out.Interface())

		for _, k := range src.Names() {
			v, _ := src.Lookup(k)
			if err := dst.Store(k, v); err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrUnsupportedOperator, mode, err)
			}
		}

		return out.Interface(), nil
	}

	keys, err := keysOf(value)
	if err != nil {
		return nil, err
	}

	for _, k := range keys {
		out.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), reflect.Value{})
	}

	return out.Interface(), nil
}

// keysOf lists the keys a Subtract on a mapping removes.
func keysOf(value any) ([]string, error) {
	if s, ok := value.(string); ok {
		return []string{s}, nil
	}

	if c, ok := record.Open(value); ok {
		return c.Names(), nil
	}

	if seq, ok := record.OpenSequence(value); ok {
		keys := make([]string, 0, seq.Len())

		for i := range seq.Len() {
			k, ok := seq.At(i).(string)
			if !ok {
				return nil, fmt.Errorf("%w %q: key %v is %T, not string", ErrUnsupportedOperator, ModeSubtract, seq.At(i), seq.At(i))
			}

			keys = append(keys, k)
		}

		return keys, nil
	}

	return nil, fmt.Errorf("%w %q: cannot remove %T from a mapping", ErrUnsupportedOperator, ModeSubtract, value)
}
