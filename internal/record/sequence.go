package record

import (
	"fmt"
	"reflect"
	"strconv"
)

// Sequence is the indexed view of a record node.
type Sequence interface {
	Len() int
	At(i int) any
	Set(i int, value any) error
}

// OpenSequence returns the indexed view of a slice or array. Byte slices are
// treated as scalars.
func OpenSequence(v any) (Sequence, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Array {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}

		return reflectSequence{rv: rv}, true
	case reflect.Array:
		return reflectSequence{rv: rv}, true
	default:
		return nil, false
	}
}

type reflectSequence struct {
	rv reflect.Value
}

func (s reflectSequence) Len() int { return s.rv.Len() }

func (s reflectSequence) At(i int) any { return s.rv.Index(i).Interface() }

func (s reflectSequence) Set(i int, value any) error {
	slot := s.rv.Index(i)
	if !slot.CanSet() {
		return fmt.Errorf("element %d of %s: %w", i, s.rv.Type(), ErrNotAddressable)
	}

	v, err := coerce(value, slot.Type())
	if err != nil {
		return fmt.Errorf("element %d: %w", i, err)
	}

	slot.Set(v)

	return nil
}

// JoinKey appends a keyed step to a label.
func JoinKey(label, key string) string {
	if label == "" {
		return key
	}

	return label + "." + key
}

// JoinIndex appends an indexed step to a label.
func JoinIndex(label string, i int) string {
	return label + "[" + strconv.Itoa(i) + "]"
}
