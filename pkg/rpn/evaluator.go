// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package rpn

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"carvel.dev/stpl/pkg/reader"
	"carvel.dev/stpl/pkg/spell"
)

// Resolver looks up variables referenced by name in an expression.
type Resolver interface {
	Lookup(name string) (interface{}, bool)
}

// Vars is a Resolver over a plain map.
type Vars map[string]interface{}

var _ Resolver = Vars{}

func (v Vars) Lookup(name string) (interface{}, bool) {
	val, found := v[name]
	return val, found
}

type Evaluator struct {
	vars Resolver
}

// NewEvaluator returns an Evaluator substituting variables from vars (may be nil).
func NewEvaluator(vars Resolver) *Evaluator {
	return &Evaluator{vars: vars}
}

// Evaluate is a shorthand for NewEvaluator(vars).Eval(expr).
func Evaluate(expr string, vars Resolver) (interface{}, error) {
	return NewEvaluator(vars).Eval(expr)
}

// Eval evaluates the postfix expression and returns its single result.
func (e *Evaluator) Eval(expr string) (interface{}, error) {
	var stack []interface{}

	r := reader.NewReader(expr)

	for idx := 0; ; idx++ {
		tok := r.ReadToken()
		if len(tok) == 0 {
			break
		}

		newErr := func(kind Kind, msg string) error {
			return &Error{Kind: kind, Expr: expr, Token: tok, Index: idx, Msg: msg}
		}

		if e.vars != nil && reader.IsIdentifier(tok) {
			if val, found := e.vars.Lookup(tok); found {
				stack = append(stack, Normalize(val))
				continue
			}
		}

		var (
			arity  int
			result interface{}
			err    error
		)

		if op, found := binaryOps[tok]; found {
			arity = 2
			if len(stack) < arity {
				return nil, newErr(ErrMalformedExpression, fmt.Sprintf(
					"operator needs 2 operands but stack holds %d", len(stack)))
			}
			result, err = op(stack[len(stack)-2], stack[len(stack)-1])
		} else if fn, found := Funcs[tok]; found {
			arity = fn.Arity
			if len(stack) < arity {
				return nil, newErr(ErrMalformedExpression, fmt.Sprintf(
					"function needs %d operand(s) but stack holds %d", arity, len(stack)))
			}
			args := append([]interface{}{}, stack[len(stack)-arity:]...)
			result, err = fn.Fn(args)
		} else {
			num, ok := parseNumber(tok)
			if !ok {
				return nil, newErr(ErrInvalidOperand, e.unknownTokenMsg(tok))
			}
			stack = append(stack, num)
			continue
		}

		if err != nil {
			var opErr opError
			if errors.As(err, &opErr) {
				return nil, newErr(opErr.kind, opErr.msg)
			}
			return nil, newErr(ErrArithmetic, err.Error())
		}

		stack = append(stack[:len(stack)-arity], result)
	}

	if len(stack) != 1 {
		return nil, &Error{
			Kind: ErrMalformedExpression,
			Expr: expr,
			Msg:  fmt.Sprintf("expected exactly one result but stack holds %d value(s)", len(stack)),
		}
	}

	return stack[0], nil
}

func parseNumber(tok string) (interface{}, bool) {
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return i, true
	}
	// ParseFloat also accepts words such as "inf" and "nan"
	if !startsLikeNumber(tok) {
		return nil, false
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f, true
	}
	return nil, false
}

func startsLikeNumber(tok string) bool {
	for _, c := range tok {
		if c == '+' || c == '-' {
			continue
		}
		return unicode.IsDigit(c) || c == '.'
	}
	return false
}

func (e *Evaluator) unknownTokenMsg(tok string) string {
	msg := "not a number, operator, function or known variable"
	if len(tok) < 3 {
		return msg
	}

	candidates := Operators()
	for name := range Funcs {
		candidates = append(candidates, name)
	}
	if suggestion, found := spell.Suggest(tok, candidates); found {
		msg += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
	}
	return msg
}
