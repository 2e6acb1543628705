package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// ErrOverflow is returned when a number does not fit in the target type.
var ErrOverflow = errors.New("numeric overflow")

// ErrInexact is returned when a number with a fractional part is converted
// to an integer type.
var ErrInexact = errors.New("inexact conversion")

// ConvertNumber converts a numeric value to the numeric type t. Unlike
// reflect.Value.Convert it never wraps or truncates: values out of range
// fail with ErrOverflow and fractional values headed for an integer type
// fail with ErrInexact.
func ConvertNumber(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	kv, kt := FromReflectType(v.Type()), FromReflectType(t)
	if !kv.IsNumber() || !kt.IsNumber() {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrUnsupported, v.Type(), t)
	}

	out := reflect.New(t).Elem()

	switch {
	case kt.IsFloat():
		f := toFloat(v, kv)
		if out.OverflowFloat(f) {
			return reflect.Value{}, overflow(v, t)
		}

		out.SetFloat(f)

	case kt.IsUnsigned():
		u, err := toUint(v, kv, t)
		if err != nil {
			return reflect.Value{}, err
		}

		if out.OverflowUint(u) {
			return reflect.Value{}, overflow(v, t)
		}

		out.SetUint(u)

	default:
		i, err := toInt64(v, kv, t)
		if err != nil {
			return reflect.Value{}, err
		}

		if out.OverflowInt(i) {
			return reflect.Value{}, overflow(v, t)
		}

		out.SetInt(i)
	}

	return out, nil
}

func toUint(v reflect.Value, k KindEnum, t reflect.Type) (uint64, error) {
	switch {
	case k.IsUnsigned():
		return v.Uint(), nil
	case k.IsSigned():
		if v.Int() < 0 {
			return 0, overflow(v, t)
		}

		return uint64(v.Int()), nil
	default:
		f := v.Float()
		if f != math.Trunc(f) {
			return 0, inexact(v, t)
		}

		if f < 0 || f >= math.MaxUint64 {
			return 0, overflow(v, t)
		}

		return uint64(f), nil
	}
}

func toInt64(v reflect.Value, k KindEnum, t reflect.Type) (int64, error) {
	switch {
	case k.IsSigned():
		return v.Int(), nil
	case k.IsUnsigned():
		if v.Uint() > math.MaxInt64 {
			return 0, overflow(v, t)
		}

		return int64(v.Uint()), nil
	default:
		f := v.Float()
		if f != math.Trunc(f) {
			return 0, inexact(v, t)
		}

		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, overflow(v, t)
		}

		return int64(f), nil
	}
}

func overflow(v reflect.Value, t reflect.Type) error {
	return fmt.Errorf("%w: %v does not fit in %s", ErrOverflow, v.Interface(), t)
}

func inexact(v reflect.Value, t reflect.Type) error {
	return fmt.Errorf("%w: %v is not a whole %s", ErrInexact, v.Interface(), t)
}
