// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package rpn

import (
	"math"
	"math/big"
)

// Func is a named function usable in expressions. Arguments are passed in
// push order (the first pushed operand is args[0]).
type Func struct {
	Arity int
	Fn    func(args []interface{}) (interface{}, error)
}

// Funcs is the complete table of functions known to the evaluator.
var Funcs = map[string]Func{
	"!":         {1, factorial},
	"factorial": {1, factorial},

	"acos":    floatFunc(math.Acos),
	"acosh":   floatFunc(math.Acosh),
	"asin":    floatFunc(math.Asin),
	"asinh":   floatFunc(math.Asinh),
	"atan":    floatFunc(math.Atan),
	"atanh":   floatFunc(math.Atanh),
	"cbrt":    floatFunc(math.Cbrt),
	"cos":     floatFunc(math.Cos),
	"cosh":    floatFunc(math.Cosh),
	"degrees": floatFunc(func(x float64) float64 { return x * 180 / math.Pi }),
	"erf":     floatFunc(math.Erf),
	"erfc":    floatFunc(math.Erfc),
	"exp":     floatFunc(math.Exp),
	"exp2":    floatFunc(math.Exp2),
	"expm1":   floatFunc(math.Expm1),
	"fabs":    floatFunc(math.Abs),
	"gamma":   floatFunc(math.Gamma),
	"lgamma": floatFunc(func(x float64) float64 {
		lg, _ := math.Lgamma(x)
		return lg
	}),
	"log":     floatFunc(math.Log),
	"log10":   floatFunc(math.Log10),
	"log1p":   floatFunc(math.Log1p),
	"log2":    floatFunc(math.Log2),
	"radians": floatFunc(func(x float64) float64 { return x * math.Pi / 180 }),
	"sin":     floatFunc(math.Sin),
	"sinh":    floatFunc(math.Sinh),
	"sqrt":    floatFunc(math.Sqrt),
	"tan":     floatFunc(math.Tan),
	"tanh":    floatFunc(math.Tanh),

	"ceil":  roundingFunc(math.Ceil),
	"floor": roundingFunc(math.Floor),
	"trunc": roundingFunc(math.Trunc),

	"isfinite": predicateFunc(func(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }),
	"isinf":    predicateFunc(func(x float64) bool { return math.IsInf(x, 0) }),
	"isnan":    predicateFunc(math.IsNaN),
	"isqrt":    {1, isqrt},

	"atan2":     floatFunc2(math.Atan2),
	"copysign":  floatFunc2(math.Copysign),
	"fmod":      floatFunc2(math.Mod),
	"hypot":     floatFunc2(math.Hypot),
	"pow":       floatFunc2(math.Pow),
	"remainder": floatFunc2(math.Remainder),
	"ldexp":     {2, ldexp},
	"gcd":       {2, gcd},
	"comb":      {2, comb},
	"perm":      {2, perm},
}

func floatArg(val interface{}) (float64, error) {
	n, ok := asNumber(val)
	if !ok {
		return 0, operandErr("expected a number, got %s", typeName(val))
	}
	return n.f, nil
}

func intArg(name string, val interface{}) (int64, error) {
	n, ok := asNumber(val)
	if !ok {
		return 0, operandErr("%s() expects an integer, got %s", name, typeName(val))
	}
	if !n.isInt {
		if n.f != math.Trunc(n.f) || math.IsInf(n.f, 0) || math.Abs(n.f) >= math.MaxInt64 {
			return 0, arithmeticErr("%s() only accepts integral values", name)
		}
		return int64(n.f), nil
	}
	return n.i, nil
}

// checkDomain rejects non-finite results computed from finite arguments
// (e.g. "0 log" or "-1 sqrt").
func checkDomain(result float64, args ...float64) (interface{}, error) {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		for _, arg := range args {
			if math.IsNaN(arg) || math.IsInf(arg, 0) {
				return result, nil
			}
		}
		return nil, arithmeticErr("math domain error")
	}
	return result, nil
}

func floatFunc(fn func(float64) float64) Func {
	return Func{1, func(args []interface{}) (interface{}, error) {
		x, err := floatArg(args[0])
		if err != nil {
			return nil, err
		}
		return checkDomain(fn(x), x)
	}}
}

func floatFunc2(fn func(float64, float64) float64) Func {
	return Func{2, func(args []interface{}) (interface{}, error) {
		x, err := floatArg(args[0])
		if err != nil {
			return nil, err
		}
		y, err := floatArg(args[1])
		if err != nil {
			return nil, err
		}
		return checkDomain(fn(x, y), x, y)
	}}
}

func roundingFunc(fn func(float64) float64) Func {
	return Func{1, func(args []interface{}) (interface{}, error) {
		n, ok := asNumber(args[0])
		if !ok {
			return nil, operandErr("expected a number, got %s", typeName(args[0]))
		}
		if n.isInt {
			return n.i, nil
		}
		result := fn(n.f)
		if math.IsNaN(result) || math.IsInf(result, 0) || math.Abs(result) >= math.MaxInt64 {
			return nil, arithmeticErr("cannot convert %v to integer", n.f)
		}
		return int64(result), nil
	}}
}

func predicateFunc(fn func(float64) bool) Func {
	return Func{1, func(args []interface{}) (interface{}, error) {
		x, err := floatArg(args[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}}
}

func bigResult(name string, result *big.Int) (interface{}, error) {
	if !result.IsInt64() {
		return nil, arithmeticErr("%s() result overflows int64", name)
	}
	return result.Int64(), nil
}

// 21! no longer fits in int64
const maxFactorialArg = 20

func factorial(args []interface{}) (interface{}, error) {
	n, err := intArg("factorial", args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, arithmeticErr("factorial() not defined for negative values")
	}
	if n > maxFactorialArg {
		return nil, arithmeticErr("factorial() result overflows int64")
	}
	result := int64(1)
	for i := int64(2); i <= n; i++ {
		result *= i
	}
	return result, nil
}

func isqrt(args []interface{}) (interface{}, error) {
	n, err := intArg("isqrt", args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, arithmeticErr("isqrt() argument must be nonnegative")
	}
	return new(big.Int).Sqrt(big.NewInt(n)).Int64(), nil
}

func ldexp(args []interface{}) (interface{}, error) {
	frac, err := floatArg(args[0])
	if err != nil {
		return nil, err
	}
	exp, err := intArg("ldexp", args[1])
	if err != nil {
		return nil, err
	}
	if exp > math.MaxInt32 || exp < math.MinInt32 {
		return nil, arithmeticErr("ldexp() exponent out of range")
	}
	return checkDomain(math.Ldexp(frac, int(exp)), frac)
}

func gcd(args []interface{}) (interface{}, error) {
	a, err := intArg("gcd", args[0])
	if err != nil {
		return nil, err
	}
	b, err := intArg("gcd", args[1])
	if err != nil {
		return nil, err
	}
	x, y := new(big.Int).Abs(big.NewInt(a)), new(big.Int).Abs(big.NewInt(b))
	return bigResult("gcd", new(big.Int).GCD(nil, nil, x, y))
}

func combArgs(name string, args []interface{}) (int64, int64, error) {
	n, err := intArg(name, args[0])
	if err != nil {
		return 0, 0, err
	}
	k, err := intArg(name, args[1])
	if err != nil {
		return 0, 0, err
	}
	if n < 0 || k < 0 {
		return 0, 0, arithmeticErr("%s() arguments must be non-negative", name)
	}
	return n, k, nil
}

func comb(args []interface{}) (interface{}, error) {
	n, k, err := combArgs("comb", args)
	if err != nil {
		return nil, err
	}
	if k > n {
		return int64(0), nil
	}
	if n-k < k {
		k = n - k
	}

	// result is C(n-k+i, i) after step i, which never exceeds C(n, k)
	result := int64(1)
	for i := int64(1); i <= k; i++ {
		g := gcdInt(result, i)
		next, ok := mulInt(result/g, (n-k+i)/(i/g))
		if !ok {
			return nil, arithmeticErr("comb() result overflows int64")
		}
		result = next
	}
	return result, nil
}

func perm(args []interface{}) (interface{}, error) {
	n, k, err := combArgs("perm", args)
	if err != nil {
		return nil, err
	}
	if k > n {
		return int64(0), nil
	}
	result := int64(1)
	for i := n - k + 1; i <= n; i++ {
		next, ok := mulInt(result, i)
		if !ok {
			return nil, arithmeticErr("perm() result overflows int64")
		}
		result = next
	}
	return result, nil
}

func gcdInt(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
