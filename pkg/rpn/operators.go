// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package rpn

import (
	"math"
	"reflect"
)

// BinaryOp combines the second-popped (left) and first-popped (right) operands.
type BinaryOp func(left, right interface{}) (interface{}, error)

var binaryOps = map[string]BinaryOp{
	"+":   add,
	"-":   arithmetic("-", subInt, func(l, r float64) float64 { return l - r }),
	"*":   arithmetic("*", mulInt, func(l, r float64) float64 { return l * r }),
	"/":   divide,
	"^":   power,
	"%":   modulo,
	">":   compare(">", func(c int) bool { return c > 0 }),
	">=":  compare(">=", func(c int) bool { return c >= 0 }),
	"<":   compare("<", func(c int) bool { return c < 0 }),
	"<=":  compare("<=", func(c int) bool { return c <= 0 }),
	"==":  func(l, r interface{}) (interface{}, error) { return equal(l, r), nil },
	"!=":  func(l, r interface{}) (interface{}, error) { return !equal(l, r), nil },
	"and": func(l, r interface{}) (interface{}, error) { return Truthy(l) && Truthy(r), nil },
	"or":  func(l, r interface{}) (interface{}, error) { return Truthy(l) || Truthy(r), nil },
}

// Operators lists the binary operator tokens.
func Operators() []string {
	var result []string
	for name := range binaryOps {
		result = append(result, name)
	}
	return result
}

func numbers(op string, left, right interface{}) (number, number, error) {
	l, lok := asNumber(left)
	r, rok := asNumber(right)
	if !lok || !rok {
		return number{}, number{}, operandErr("unsupported operand types for %s: %s and %s",
			op, typeName(left), typeName(right))
	}
	return l, r, nil
}

func arithmetic(op string, intFunc func(l, r int64) (int64, bool),
	floatFunc func(l, r float64) float64) BinaryOp {

	return func(left, right interface{}) (interface{}, error) {
		l, r, err := numbers(op, left, right)
		if err != nil {
			return nil, err
		}
		if l.isInt && r.isInt {
			result, ok := intFunc(l.i, r.i)
			if !ok {
				return nil, arithmeticErr("integer overflow in %d %d %s", l.i, r.i, op)
			}
			return result, nil
		}
		return floatFunc(l.f, r.f), nil
	}
}

func add(left, right interface{}) (interface{}, error) {
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok {
			return l + r, nil
		}
	}
	return arithmetic("+", addInt, func(l, r float64) float64 { return l + r })(left, right)
}

func addInt(l, r int64) (int64, bool) {
	s := l + r
	return s, (s > l) == (r > 0)
}

func subInt(l, r int64) (int64, bool) {
	s := l - r
	return s, (s < l) == (r > 0)
}

func mulInt(l, r int64) (int64, bool) {
	if l == 0 || r == 0 {
		return 0, true
	}
	p := l * r
	if p/r != l || (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) {
		return 0, false
	}
	return p, true
}

// divide is always floating point division.
func divide(left, right interface{}) (interface{}, error) {
	l, r, err := numbers("/", left, right)
	if err != nil {
		return nil, err
	}
	return l.f / r.f, nil
}

func power(left, right interface{}) (interface{}, error) {
	l, r, err := numbers("^", left, right)
	if err != nil {
		return nil, err
	}
	if l.isInt && r.isInt && r.i >= 0 {
		result, ok := powInt(l.i, r.i)
		if !ok {
			return nil, arithmeticErr("integer overflow in %d %d ^", l.i, r.i)
		}
		return result, nil
	}
	return math.Pow(l.f, r.f), nil
}

func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	var ok bool
	for exp > 0 {
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

// modulo takes the sign of the divisor (floored division).
func modulo(left, right interface{}) (interface{}, error) {
	l, r, err := numbers("%", left, right)
	if err != nil {
		return nil, err
	}
	if l.isInt && r.isInt {
		if r.i == 0 {
			return nil, arithmeticErr("integer modulo by zero")
		}
		m := l.i % r.i
		if m != 0 && (m < 0) != (r.i < 0) {
			m += r.i
		}
		return m, nil
	}
	if r.f == 0 {
		return nil, arithmeticErr("float modulo by zero")
	}
	m := math.Mod(l.f, r.f)
	if m != 0 && (m < 0) != (r.f < 0) {
		m += r.f
	}
	return m, nil
}

func compare(op string, test func(int) bool) BinaryOp {
	return func(left, right interface{}) (interface{}, error) {
		if l, ok := left.(string); ok {
			if r, ok := right.(string); ok {
				switch {
				case l < r:
					return test(-1), nil
				case l > r:
					return test(1), nil
				default:
					return test(0), nil
				}
			}
		}
		l, r, err := numbers(op, left, right)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(l.f) || math.IsNaN(r.f) {
			return false, nil
		}
		return test(compareNumbers(l, r)), nil
	}
}

func compareNumbers(l, r number) int {
	if l.isInt && r.isInt {
		switch {
		case l.i < r.i:
			return -1
		case l.i > r.i:
			return 1
		}
		return 0
	}
	switch {
	case l.f < r.f:
		return -1
	case l.f > r.f:
		return 1
	}
	return 0
}

func equal(left, right interface{}) bool {
	l, lok := asNumber(left)
	r, rok := asNumber(right)
	if lok && rok {
		if math.IsNaN(l.f) || math.IsNaN(r.f) {
			return false
		}
		return compareNumbers(l, r) == 0
	}
	if lok != rok {
		return false
	}
	if ls, ok := left.([]interface{}); ok {
		rs, ok := right.([]interface{})
		if !ok || len(ls) != len(rs) {
			return false
		}
		for i := range ls {
			if !equal(ls[i], rs[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(left, right)
}
