package primitive

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"time"
)

// ErrUnsupported is returned when two operands have no defined combination.
var ErrUnsupported = errors.New("unsupported operand types")

// Add combines a and b additively:
//   - numbers: sum; integer+integer keeps the type of a, a float operand yields a float
//   - strings: concatenation, typed like a
//   - durations: sum; time + duration: shifted time
func Add(a, b any) (any, error) {
	ka, kb := Of(a), Of(b)

	switch {
	case ka.IsNumber() && kb.IsNumber():
		return arith(a, b, '+')
	case ka == KindString && kb == KindString:
		ra := reflect.ValueOf(a)
		return reflect.ValueOf(ra.String() + reflect.ValueOf(b).String()).Convert(ra.Type()).Interface(), nil
	case ka == KindDuration && kb == KindDuration:
		return a.(time.Duration) + b.(time.Duration), nil
	case ka == KindTime && kb == KindDuration:
		return a.(time.Time).Add(b.(time.Duration)), nil
	}

	return nil, fmt.Errorf("%w: %T + %T", ErrUnsupported, a, b)
}

// Subtract combines a and b subtractively:
//   - numbers: difference, with the same typing rules as Add
//   - durations: difference; time - duration: shifted time; time - time: duration
func Subtract(a, b any) (any, error) {
	ka, kb := Of(a), Of(b)

	switch {
	case ka.IsNumber() && kb.IsNumber():
		return arith(a, b, '-')
	case ka == KindDuration && kb == KindDuration:
		return a.(time.Duration) - b.(time.Duration), nil
	case ka == KindTime && kb == KindDuration:
		return a.(time.Time).Add(-b.(time.Duration)), nil
	case ka == KindTime && kb == KindTime:
		return a.(time.Time).Sub(b.(time.Time)), nil
	}

	return nil, fmt.Errorf("%w: %T - %T", ErrUnsupported, a, b)
}

// arith computes a op b. Integer results are exact and must fit the type of
// a; a float operand yields a float.
func arith(a, b any, op byte) (any, error) {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	ka, kb := FromReflectType(ra.Type()), FromReflectType(rb.Type())

	if ka.IsFloat() || kb.IsFloat() {
		x, y := toFloat(ra, ka), toFloat(rb, kb)

		r := x + y
		if op == '-' {
			r = x - y
		}

		if !ka.IsFloat() {
			return r, nil
		}

		out, err := ConvertNumber(reflect.ValueOf(r), ra.Type())
		if err != nil {
			return nil, err
		}

		return out.Interface(), nil
	}

	x, y := toBig(ra, ka), toBig(rb, kb)

	r := new(big.Int).Add(x, y)
	if op == '-' {
		r.Sub(x, y)
	}

	var rv reflect.Value

	switch {
	case r.IsInt64():
		rv = reflect.ValueOf(r.Int64())
	case r.IsUint64():
		rv = reflect.ValueOf(r.Uint64())
	default:
		return nil, fmt.Errorf("%w: %v %c %v", ErrOverflow, a, op, b)
	}

	out, err := ConvertNumber(rv, ra.Type())
	if err != nil {
		return nil, fmt.Errorf("%v %c %v: %w", a, op, b, err)
	}

	return out.Interface(), nil
}

func toBig(v reflect.Value, k KindEnum) *big.Int {
	if k.IsUnsigned() {
		return new(big.Int).SetUint64(v.Uint())
	}

	return big.NewInt(v.Int())
}

func toFloat(v reflect.Value, k KindEnum) float64 {
	switch {
	case k.IsFloat():
		return v.Float()
	case k.IsUnsigned():
		return float64(v.Uint())
	default:
		return float64(v.Int())
	}
}
